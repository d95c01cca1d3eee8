package manifest

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"baggage-manager/core/matching"
	"baggage-manager/core/storage"
	"baggage-manager/core/utils"
	"baggage-manager/feature/baggage"
	bmodels "baggage-manager/feature/baggage/models"
	"baggage-manager/feature/manifest/models"
	"baggage-manager/feature/manifest/parsers"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service orchestrates manifest uploads and reconciliation runs for one
// airport. Concurrent runs against the same report are not serialized here;
// each run works on the snapshot it loads at call start, and the one-to-one
// link columns police double assignment at the schema level.
type Service struct {
	store         *baggage.Store
	archive       storage.Client
	archiveBucket string
	logger        *zap.Logger
	airport       string
	defaultFamily string
}

// NewService creates a manifest service. archive may be nil when manifest
// archival is disabled.
func NewService(store *baggage.Store, archive storage.Client, bucket string, logger *zap.Logger, airport, defaultFamily string) *Service {
	return &Service{
		store:         store,
		archive:       archive,
		archiveBucket: bucket,
		logger:        logger,
		airport:       airport,
		defaultFamily: defaultFamily,
	}
}

// UploadResult is the outcome of a manifest upload.
type UploadResult struct {
	Report     *bmodels.ManifestReport `json:"report,omitempty"`
	Validation models.ValidationResult `json:"validation"`
	Items      []bmodels.ManifestItem  `json:"items,omitempty"`
}

// UploadManifest parses, validates and persists one manifest file. A file
// that fails validation persists nothing; the caller gets the full error
// list. Report and items are written in a single transaction so the totals
// on the report can never disagree with the persisted lines.
func (s *Service) UploadManifest(ctx context.Context, file models.FileInfo, content, uploadedBy string) (*UploadResult, error) {
	if err := s.store.AwaitReady(ctx); err != nil {
		return nil, err
	}

	parsed, err := parsers.Parse(file, content, s.defaultFamily)
	if err != nil {
		return nil, err
	}

	validation := parsers.Validate(parsed)
	if !validation.Valid {
		s.logger.Warn("Manifest rejected by validation",
			zap.String("file", file.Name),
			zap.Strings("errors", validation.Errors),
		)
		return &UploadResult{Validation: validation}, nil
	}

	payload, err := json.Marshal(parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize manifest payload: %w", err)
	}

	report := &bmodels.ManifestReport{
		Family:        parsed.Family,
		FlightNumber:  parsed.FlightNumber,
		FlightDate:    parsed.FlightDate,
		Origin:        parsed.Origin,
		Destination:   parsed.Destination,
		Airline:       parsed.Airline,
		AirlineCode:   parsed.AirlineCode,
		FileName:      file.Name,
		FileSize:      file.Size,
		UploadDate:    time.Now().UTC(),
		UploadedBy:    uploadedBy,
		Airport:       s.airport,
		TotalBaggages: len(parsed.Items),
		RawPayload:    string(payload),
	}

	var items []bmodels.ManifestItem
	err = s.store.Transaction(ctx, func(tx *baggage.Store) error {
		if err := tx.CreateReport(ctx, report); err != nil {
			return err
		}
		items = make([]bmodels.ManifestItem, 0, len(parsed.Items))
		for _, item := range parsed.Items {
			items = append(items, bmodels.ManifestItem{
				ReportID:      report.ID,
				BagID:         item.BagID,
				PassengerName: item.PassengerName,
				PNR:           item.PNR,
				Seat:          item.Seat,
				Class:         item.Class,
				Sequence:      item.Sequence,
				Weight:        item.Weight,
				Route:         item.Route,
				Categories:    item.Categories,
				Loaded:        utils.BoolToInt(item.Loaded),
				Received:      utils.BoolToInt(item.Received),
			})
		}
		return tx.CreateItems(ctx, items)
	})
	if err != nil {
		return nil, err
	}

	s.archiveRaw(ctx, report, content)

	s.logger.Info("Manifest uploaded",
		zap.Uint("report_id", report.ID),
		zap.String("family", report.Family),
		zap.String("flight", report.FlightNumber),
		zap.Int("items", len(items)),
	)

	return &UploadResult{Report: report, Validation: validation, Items: items}, nil
}

// archiveRaw keeps the raw uploaded file in object storage for audit and
// replay. Archival is best effort: a failure is logged and never fails the
// upload itself.
func (s *Service) archiveRaw(ctx context.Context, report *bmodels.ManifestReport, content string) {
	if s.archive == nil {
		return
	}

	exists, err := s.archive.BucketExists(ctx, s.archiveBucket)
	if err == nil && !exists {
		err = s.archive.MakeBucket(ctx, s.archiveBucket, minio.MakeBucketOptions{})
	}
	if err != nil {
		s.logger.Warn("Manifest archive bucket unavailable",
			zap.String("bucket", s.archiveBucket), zap.Error(err))
		return
	}

	object := fmt.Sprintf("manifests/%s/%d_%s", s.airport, report.ID, report.FileName)
	_, err = s.archive.PutObject(ctx, s.archiveBucket, object,
		bytes.NewReader([]byte(content)), int64(len(content)), minio.PutObjectOptions{
			ContentType: "text/plain",
		})
	if err != nil {
		s.logger.Warn("Manifest archive upload failed",
			zap.String("object", object), zap.Error(err))
		return
	}
	s.logger.Debug("Manifest archived", zap.String("object", object))
}

// ReconcileResult is the outcome of one reconciliation run.
type ReconcileResult struct {
	ReportID uint             `json:"report_id"`
	Result   *matching.Result `json:"result"`
	Summary  matching.Summary `json:"summary"`
}

// ReconcileReport runs the matcher over a persisted report and the bags
// currently awaiting reconciliation at this airport, then persists the
// outcome: matched bags are linked to their item and marked reconciled,
// unmatched bags are marked unmatched, and the report gets its counts and
// processing timestamp.
func (s *Service) ReconcileReport(ctx context.Context, reportID uint, userID string, opts matching.Options) (*ReconcileResult, error) {
	if err := s.store.AwaitReady(ctx); err != nil {
		return nil, err
	}

	report, err := s.store.GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	var (
		bags  []bmodels.ScannedBaggage
		items []bmodels.ManifestItem
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bags, err = s.store.GetUnreconciled(gctx, s.airport)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.store.GetItemsByReport(gctx, reportID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("report %d has no manifest items to reconcile against", reportID)
	}

	bagRecords := make([]matching.BagRecord, 0, len(bags))
	for _, b := range bags {
		bagRecords = append(bagRecords, matching.BagRecord{
			ID:            b.ID,
			Tag:           b.TagValue,
			PassengerName: b.PassengerName,
			PNR:           b.BookingRef,
		})
	}

	// Items already claimed by an earlier run stay claimed.
	itemRecords := make([]matching.ItemRecord, 0, len(items))
	for _, it := range items {
		if it.ScannedBaggageID != nil {
			continue
		}
		itemRecords = append(itemRecords, matching.ItemRecord{
			ID:            it.ID,
			BagID:         it.BagID,
			PassengerName: it.PassengerName,
			PNR:           it.PNR,
		})
	}

	result := matching.Reconcile(bagRecords, itemRecords, opts)
	result.ProcessedBy = userID

	now := time.Now().UTC()
	err = s.store.Transaction(ctx, func(tx *baggage.Store) error {
		for _, m := range result.Matches {
			if err := tx.UpdateBaggage(ctx, m.BaggageID, map[string]any{
				"status":             bmodels.StatusReconciled,
				"manifest_report_id": reportID,
				"reconciled_at":      now,
				"reconciled_by":      userID,
			}); err != nil {
				return err
			}
			if err := tx.UpdateItem(ctx, m.ItemID, map[string]any{
				"scanned_baggage_id": m.BaggageID,
				"reconciled_at":      now,
			}); err != nil {
				return err
			}
		}

		for _, id := range result.UnmatchedBaggageIDs {
			if err := tx.UpdateBaggage(ctx, id, map[string]any{
				"status": bmodels.StatusUnmatched,
			}); err != nil {
				return err
			}
		}

		claimed := len(items) - len(itemRecords)
		return tx.UpdateReport(ctx, reportID, map[string]any{
			"reconciled_count": result.MatchedCount + claimed,
			"unmatched_count":  result.UnmatchedReport,
			"processed_at":     now,
		})
	})
	if err != nil {
		return nil, err
	}

	summary := matching.Summarize(result)
	s.logger.Info("Reconciliation run completed",
		zap.Uint("report_id", reportID),
		zap.String("flight", report.FlightNumber),
		zap.Int("matched", result.MatchedCount),
		zap.Int("unmatched_scanned", result.UnmatchedScanned),
		zap.Int("unmatched_report", result.UnmatchedReport),
		zap.Int("rate", summary.Rate),
	)

	return &ReconcileResult{ReportID: reportID, Result: result, Summary: summary}, nil
}

// UploadAndReconcile chains an upload and a reconciliation run in one call.
// A validation failure returns the upload result without running the matcher.
func (s *Service) UploadAndReconcile(ctx context.Context, file models.FileInfo, content, userID string, opts matching.Options) (*UploadResult, *ReconcileResult, error) {
	upload, err := s.UploadManifest(ctx, file, content, userID)
	if err != nil {
		return nil, nil, err
	}
	if !upload.Validation.Valid {
		return upload, nil, nil
	}

	run, err := s.ReconcileReport(ctx, upload.Report.ID, userID, opts)
	if err != nil {
		return upload, nil, err
	}
	return upload, run, nil
}

// ManualReconciliation records a human-confirmed pairing between a bag and a
// manifest item, bypassing the matcher. One-to-one is still enforced: a bag
// already reconciled or an item already claimed is rejected.
func (s *Service) ManualReconciliation(ctx context.Context, baggageID, itemID uint, userID string) error {
	if err := s.store.AwaitReady(ctx); err != nil {
		return err
	}

	bag, err := s.store.GetBaggage(ctx, baggageID)
	if err != nil {
		return err
	}
	if bag.Status == bmodels.StatusReconciled {
		return fmt.Errorf("baggage %d is already reconciled", baggageID)
	}

	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item.ScannedBaggageID != nil {
		return fmt.Errorf("manifest item %d is already matched to baggage %d", itemID, *item.ScannedBaggageID)
	}

	now := time.Now().UTC()
	err = s.store.Transaction(ctx, func(tx *baggage.Store) error {
		if err := tx.UpdateBaggage(ctx, baggageID, map[string]any{
			"status":             bmodels.StatusReconciled,
			"manifest_report_id": item.ReportID,
			"reconciled_at":      now,
			"reconciled_by":      userID,
		}); err != nil {
			return err
		}
		return tx.UpdateItem(ctx, itemID, map[string]any{
			"scanned_baggage_id": baggageID,
			"reconciled_at":      now,
		})
	})
	if err != nil {
		return err
	}

	s.logger.Info("Manual match recorded",
		zap.Uint("baggage_id", baggageID),
		zap.Uint("item_id", itemID),
		zap.String("user", userID),
	)
	return nil
}

// SuggestedMatches returns the closest unclaimed manifest items of a report
// for one bag, for manual review. Suggestions are never auto-accepted.
func (s *Service) SuggestedMatches(ctx context.Context, reportID, baggageID uint, max int) ([]matching.Suggestion, error) {
	if err := s.store.AwaitReady(ctx); err != nil {
		return nil, err
	}

	bag, err := s.store.GetBaggage(ctx, baggageID)
	if err != nil {
		return nil, err
	}
	items, err := s.store.GetItemsByReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	record := matching.BagRecord{
		ID:            bag.ID,
		Tag:           bag.TagValue,
		PassengerName: bag.PassengerName,
		PNR:           bag.BookingRef,
	}
	itemRecords := make([]matching.ItemRecord, 0, len(items))
	for _, it := range items {
		if it.ScannedBaggageID != nil {
			continue
		}
		itemRecords = append(itemRecords, matching.ItemRecord{
			ID:            it.ID,
			BagID:         it.BagID,
			PassengerName: it.PassengerName,
			PNR:           it.PNR,
		})
	}

	return matching.Suggest(record, itemRecords, matching.DefaultOptions(), max), nil
}

// Reports lists every manifest report uploaded at this airport.
func (s *Service) Reports(ctx context.Context) ([]bmodels.ManifestReport, error) {
	if err := s.store.AwaitReady(ctx); err != nil {
		return nil, err
	}
	return s.store.GetReportsByAirport(ctx, s.airport)
}

// ReportDetail is one report together with its manifest lines.
type ReportDetail struct {
	Report *bmodels.ManifestReport `json:"report"`
	Items  []bmodels.ManifestItem  `json:"items"`
}

// ReportWithItems returns one report and its manifest lines.
func (s *Service) ReportWithItems(ctx context.Context, reportID uint) (*ReportDetail, error) {
	if err := s.store.AwaitReady(ctx); err != nil {
		return nil, err
	}

	report, err := s.store.GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	items, err := s.store.GetItemsByReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	return &ReportDetail{Report: report, Items: items}, nil
}
