package baggage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"baggage-manager/core/utils"
	"baggage-manager/feature/baggage/models"

	"gorm.io/gorm"
)

// Store is the persistence facade over the shared embedded relational store.
// It owns the snake_case column mapping and the boolean-as-integer
// translation so that callers never touch either.
//
// A Store may be constructed before the database connection exists (the
// capture layer starts before the store opens on some devices); Bind
// publishes the connection and closes the readiness channel every pending
// operation awaits.
type Store struct {
	db    *gorm.DB
	ready chan struct{}
}

// NewStore creates a Store bound to an open database connection.
func NewStore(db *gorm.DB) *Store {
	s := NewDeferredStore()
	s.Bind(db)
	return s
}

// NewDeferredStore creates a Store with no connection yet. Operations block
// in AwaitReady until Bind is called.
func NewDeferredStore() *Store {
	return &Store{ready: make(chan struct{})}
}

// Bind attaches the database connection and signals readiness.
// Calling Bind twice is a programming error and panics on channel close.
func (s *Store) Bind(db *gorm.DB) {
	s.db = db
	close(s.ready)
}

// AwaitReady blocks until the store has a database connection or the context
// expires. This replaces retry-with-sleep polling: the readiness signal is
// published exactly once by Bind.
func (s *Store) AwaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("store not initialized: %w", ctx.Err())
	}
}

// Migrate creates or updates the schema for the three persisted entities.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(
		&models.ScannedBaggage{},
		&models.ManifestReport{},
		&models.ManifestItem{},
	)
}

// Transaction runs fn against a Store bound to a single transaction.
// The report-then-items sequence of an upload goes through this so a crash
// mid-upload cannot leave totals inconsistent with persisted items.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txStore := NewStore(tx)
		return fn(txStore)
	})
}

// IsUniqueViolation reports whether err is a unique-constraint violation.
// Both sqlite and mysql phrasings are recognized.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry")
}

// --- ScannedBaggage ---

// CreateScannedBaggage inserts a new scanned baggage row.
// The sync flag always starts unset; the sync collaborator flips it.
func (s *Store) CreateScannedBaggage(ctx context.Context, b *models.ScannedBaggage) error {
	b.Synced = 0
	if err := s.db.WithContext(ctx).Create(b).Error; err != nil {
		return err
	}
	return nil
}

// GetBaggageByTag returns the baggage with the given raw tag value, or nil
// if no such row exists.
func (s *Store) GetBaggageByTag(ctx context.Context, tag string) (*models.ScannedBaggage, error) {
	var b models.ScannedBaggage
	err := s.db.WithContext(ctx).Where("tag_value = ?", tag).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query baggage by tag: %w", err)
	}
	return &b, nil
}

// GetBaggage returns the baggage row with the given id.
func (s *Store) GetBaggage(ctx context.Context, id uint) (*models.ScannedBaggage, error) {
	var b models.ScannedBaggage
	err := s.db.WithContext(ctx).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("baggage %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query baggage %d: %w", id, err)
	}
	return &b, nil
}

// GetUnreconciled returns every bag at the airport still eligible for a
// reconciliation run, in scan order.
func (s *Store) GetUnreconciled(ctx context.Context, airport string) ([]models.ScannedBaggage, error) {
	var bags []models.ScannedBaggage
	err := s.db.WithContext(ctx).
		Where("airport = ? AND status IN ?", airport, []string{models.StatusPending, models.StatusScanned}).
		Order("scan_date ASC").
		Find(&bags).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query unreconciled baggages: %w", err)
	}
	return bags, nil
}

// UpdateBaggage rewrites only the supplied fields of a baggage row.
// Boolean values are translated to their integer storage form and the
// updated_at timestamp is always touched.
func (s *Store) UpdateBaggage(ctx context.Context, id uint, fields map[string]any) error {
	result := s.db.WithContext(ctx).
		Model(&models.ScannedBaggage{}).
		Where("id = ?", id).
		Updates(prepareUpdate(fields))
	if result.Error != nil {
		return fmt.Errorf("failed to update baggage %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("baggage %d not found", id)
	}
	return nil
}

// --- ManifestReport ---

// CreateReport inserts a new manifest report row.
func (s *Store) CreateReport(ctx context.Context, r *models.ManifestReport) error {
	r.Synced = 0
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// GetReport returns the report with the given id.
func (s *Store) GetReport(ctx context.Context, id uint) (*models.ManifestReport, error) {
	var r models.ManifestReport
	err := s.db.WithContext(ctx).First(&r, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("report %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query report %d: %w", id, err)
	}
	return &r, nil
}

// GetReportsByAirport returns every report uploaded at the airport, most
// recent first.
func (s *Store) GetReportsByAirport(ctx context.Context, airport string) ([]models.ManifestReport, error) {
	var reports []models.ManifestReport
	err := s.db.WithContext(ctx).
		Where("airport = ?", airport).
		Order("upload_date DESC").
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	return reports, nil
}

// UpdateReport rewrites only the supplied fields of a report row.
func (s *Store) UpdateReport(ctx context.Context, id uint, fields map[string]any) error {
	result := s.db.WithContext(ctx).
		Model(&models.ManifestReport{}).
		Where("id = ?", id).
		Updates(prepareUpdate(fields))
	if result.Error != nil {
		return fmt.Errorf("failed to update report %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("report %d not found", id)
	}
	return nil
}

// --- ManifestItem ---

// CreateItems bulk-inserts the manifest lines of one report.
func (s *Store) CreateItems(ctx context.Context, items []models.ManifestItem) error {
	if len(items) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).CreateInBatches(items, 100).Error; err != nil {
		return fmt.Errorf("failed to create manifest items: %w", err)
	}
	return nil
}

// GetItemsByReport returns every manifest line of a report in sequence order.
func (s *Store) GetItemsByReport(ctx context.Context, reportID uint) ([]models.ManifestItem, error) {
	var items []models.ManifestItem
	err := s.db.WithContext(ctx).
		Where("report_id = ?", reportID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query items for report %d: %w", reportID, err)
	}
	return items, nil
}

// GetItem returns the manifest item with the given id.
func (s *Store) GetItem(ctx context.Context, id uint) (*models.ManifestItem, error) {
	var item models.ManifestItem
	err := s.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("manifest item %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query item %d: %w", id, err)
	}
	return &item, nil
}

// UpdateItem rewrites only the supplied fields of a manifest item row.
func (s *Store) UpdateItem(ctx context.Context, id uint, fields map[string]any) error {
	result := s.db.WithContext(ctx).
		Model(&models.ManifestItem{}).
		Where("id = ?", id).
		Updates(prepareUpdate(fields))
	if result.Error != nil {
		return fmt.Errorf("failed to update item %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("manifest item %d not found", id)
	}
	return nil
}

// prepareUpdate copies a partial-update map, converting booleans to their
// integer storage representation and stamping updated_at.
func prepareUpdate(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		if b, ok := v.(bool); ok {
			out[k] = utils.BoolToInt(b)
			continue
		}
		out[k] = v
	}
	out["updated_at"] = time.Now().UTC()
	return out
}
