package baggage

import (
	"context"
	"fmt"
	"time"

	"baggage-manager/feature/baggage/models"

	"go.uber.org/zap"
)

// ScanInput carries a tag scan from the capture layer, with whatever
// metadata the scanner managed to extract from the label.
type ScanInput struct {
	Tag           string  `json:"tag"`
	ScannerID     string  `json:"scanner_id"`
	PassengerName string  `json:"passenger_name,omitempty"`
	BookingRef    string  `json:"booking_ref,omitempty"`
	FlightNumber  string  `json:"flight_number,omitempty"`
	Origin        string  `json:"origin,omitempty"`
	Weight        float64 `json:"weight,omitempty"`
	Remarks       string  `json:"remarks,omitempty"`
}

// Service handles scanned baggage operations for one airport.
type Service struct {
	store   *Store
	logger  *zap.Logger
	airport string
	stats   *statsCache
}

// NewService creates a new baggage service.
func NewService(store *Store, logger *zap.Logger, airport string) *Service {
	return &Service{
		store:   store,
		logger:  logger,
		airport: airport,
		stats:   newStatsCache(),
	}
}

// Store exposes the persistence facade to sibling features (the manifest
// orchestrator writes baggage status transitions through the same facade).
func (s *Service) Store() *Store {
	return s.store
}

// CreateOrGetScannedBaggage records a tag scan idempotently. Scanning the
// same tag twice, from the same or another device, yields the same row both
// times: a lost insert race on the tag unique constraint is resolved by
// re-reading, never surfaced to the caller.
func (s *Service) CreateOrGetScannedBaggage(ctx context.Context, in ScanInput) (*models.ScannedBaggage, bool, error) {
	if err := s.store.AwaitReady(ctx); err != nil {
		return nil, false, err
	}
	if in.Tag == "" {
		return nil, false, fmt.Errorf("tag value is required")
	}

	existing, err := s.store.GetBaggageByTag(ctx, in.Tag)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	bag := &models.ScannedBaggage{
		TagValue:      in.Tag,
		ScanDate:      time.Now().UTC(),
		ScannerID:     in.ScannerID,
		Airport:       s.airport,
		Status:        models.StatusScanned,
		PassengerName: in.PassengerName,
		BookingRef:    in.BookingRef,
		FlightNumber:  in.FlightNumber,
		Origin:        in.Origin,
		Weight:        in.Weight,
		Remarks:       in.Remarks,
	}

	err = s.store.CreateScannedBaggage(ctx, bag)
	if err == nil {
		return bag, true, nil
	}
	if !IsUniqueViolation(err) {
		return nil, false, fmt.Errorf("failed to create scanned baggage: %w", err)
	}

	// Another scan won the insert race; return its row.
	s.logger.Debug("Duplicate scan resolved by re-read", zap.String("tag", in.Tag))
	existing, readErr := s.store.GetBaggageByTag(ctx, in.Tag)
	if readErr != nil {
		return nil, false, readErr
	}
	if existing == nil {
		return nil, false, fmt.Errorf("failed to create scanned baggage: %w", err)
	}
	return existing, false, nil
}

// Unreconciled returns every bag at this airport still eligible for a
// reconciliation run.
func (s *Service) Unreconciled(ctx context.Context) ([]models.ScannedBaggage, error) {
	if err := s.store.AwaitReady(ctx); err != nil {
		return nil, err
	}
	return s.store.GetUnreconciled(ctx, s.airport)
}

// MarkRush marks a bag as rerouted (hold full, missed connection). The
// reroute bookkeeping itself lives outside this engine; only the status
// transition is owned here.
func (s *Service) MarkRush(ctx context.Context, id uint, userID, remarks string) error {
	if err := s.store.AwaitReady(ctx); err != nil {
		return err
	}

	bag, err := s.store.GetBaggage(ctx, id)
	if err != nil {
		return err
	}
	if bag.Status == models.StatusRush {
		return nil // already rushed, idempotent
	}

	fields := map[string]any{"status": models.StatusRush}
	if remarks != "" {
		fields["remarks"] = remarks
	}
	if err := s.store.UpdateBaggage(ctx, id, fields); err != nil {
		return err
	}

	s.logger.Info("Baggage marked rush",
		zap.Uint("baggage_id", id),
		zap.String("tag", bag.TagValue),
		zap.String("user", userID),
	)
	return nil
}

// CancelRush takes a bag out of rush status into an explicit target status.
func (s *Service) CancelRush(ctx context.Context, id uint, target string) error {
	if err := s.store.AwaitReady(ctx); err != nil {
		return err
	}

	switch target {
	case models.StatusReconciled, models.StatusScanned, models.StatusArrived:
	default:
		return fmt.Errorf("invalid rush cancellation target: %s", target)
	}

	bag, err := s.store.GetBaggage(ctx, id)
	if err != nil {
		return err
	}
	if bag.Status != models.StatusRush {
		return fmt.Errorf("baggage %d is not in rush status", id)
	}

	return s.store.UpdateBaggage(ctx, id, map[string]any{"status": target})
}

// Statistics returns the aggregate dashboard view for this airport.
func (s *Service) Statistics(ctx context.Context) (*Statistics, error) {
	if err := s.store.AwaitReady(ctx); err != nil {
		return nil, err
	}
	return s.store.Statistics(ctx, s.stats, s.airport)
}
