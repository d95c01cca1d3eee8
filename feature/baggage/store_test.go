package baggage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"baggage-manager/feature/baggage/models"
)

// newTestStore opens a fresh in-memory database per test.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	store := NewStore(db)
	require.NoError(t, store.Migrate())
	return store
}

func newBag(tag string) *models.ScannedBaggage {
	return &models.ScannedBaggage{
		TagValue: tag,
		ScanDate: time.Now().UTC(),
		Airport:  "ABJ",
		Status:   models.StatusScanned,
	}
}

func TestAwaitReady(t *testing.T) {
	t.Run("bound store is ready", func(t *testing.T) {
		store := newTestStore(t)
		assert.NoError(t, store.AwaitReady(context.Background()))
	})

	t.Run("deferred store blocks until bind", func(t *testing.T) {
		store := NewDeferredStore()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		err := store.AwaitReady(ctx)
		assert.ErrorContains(t, err, "store not initialized")

		done := make(chan error, 1)
		go func() {
			done <- store.AwaitReady(context.Background())
		}()
		store.Bind(nil)
		assert.NoError(t, <-done)
	})
}

func TestCreateScannedBaggage(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("forces sync flag off", func(t *testing.T) {
		bag := newBag("ET1234567890")
		bag.Synced = 1
		require.NoError(t, store.CreateScannedBaggage(ctx, bag))
		assert.NotZero(t, bag.ID)
		assert.Zero(t, bag.Synced)
	})

	t.Run("duplicate tag violates unique constraint", func(t *testing.T) {
		err := store.CreateScannedBaggage(ctx, newBag("ET1234567890"))
		require.Error(t, err)
		assert.True(t, IsUniqueViolation(err))
	})
}

func TestGetBaggageByTag(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateScannedBaggage(ctx, newBag("ET1234567890")))

	t.Run("found", func(t *testing.T) {
		bag, err := store.GetBaggageByTag(ctx, "ET1234567890")
		require.NoError(t, err)
		require.NotNil(t, bag)
		assert.Equal(t, "ET1234567890", bag.TagValue)
	})

	t.Run("missing yields nil without error", func(t *testing.T) {
		bag, err := store.GetBaggageByTag(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, bag)
	})
}

func TestGetUnreconciled(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	older := newBag("ET0000000001")
	older.ScanDate = time.Now().UTC().Add(-time.Hour)
	older.Status = models.StatusPending
	require.NoError(t, store.CreateScannedBaggage(ctx, older))

	newer := newBag("ET0000000002")
	require.NoError(t, store.CreateScannedBaggage(ctx, newer))

	done := newBag("ET0000000003")
	done.Status = models.StatusReconciled
	require.NoError(t, store.CreateScannedBaggage(ctx, done))

	elsewhere := newBag("ET0000000004")
	elsewhere.Airport = "LFW"
	require.NoError(t, store.CreateScannedBaggage(ctx, elsewhere))

	bags, err := store.GetUnreconciled(ctx, "ABJ")
	require.NoError(t, err)
	require.Len(t, bags, 2)
	// Scan order, oldest first.
	assert.Equal(t, "ET0000000001", bags[0].TagValue)
	assert.Equal(t, "ET0000000002", bags[1].TagValue)
}

func TestUpdateBaggage(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	bag := newBag("ET1234567890")
	require.NoError(t, store.CreateScannedBaggage(ctx, bag))

	t.Run("partial update touches updated_at and converts booleans", func(t *testing.T) {
		before := bag.UpdatedAt

		time.Sleep(5 * time.Millisecond)
		err := store.UpdateBaggage(ctx, bag.ID, map[string]any{
			"status": models.StatusRush,
			"synced": true,
		})
		require.NoError(t, err)

		got, err := store.GetBaggage(ctx, bag.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusRush, got.Status)
		assert.Equal(t, 1, got.Synced)
		assert.True(t, got.UpdatedAt.After(before))
		// Untouched fields survive.
		assert.Equal(t, "ET1234567890", got.TagValue)
	})

	t.Run("missing row", func(t *testing.T) {
		err := store.UpdateBaggage(ctx, 999, map[string]any{"status": models.StatusRush})
		assert.ErrorContains(t, err, "not found")
	})
}

func TestReportAndItems(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	report := &models.ManifestReport{
		Family:       "generic",
		FlightNumber: "ET0845",
		FlightDate:   "2026-01-15",
		Airport:      "ABJ",
		UploadDate:   time.Now().UTC(),
	}
	require.NoError(t, store.CreateReport(ctx, report))
	require.NotZero(t, report.ID)

	items := []models.ManifestItem{
		{ReportID: report.ID, BagID: "ET1234567890", PassengerName: "MARTIN/JEAN"},
		{ReportID: report.ID, BagID: "ET1234567891", PassengerName: "DUPONT/MARIE"},
	}
	require.NoError(t, store.CreateItems(ctx, items))

	t.Run("items come back in insertion order", func(t *testing.T) {
		got, err := store.GetItemsByReport(ctx, report.ID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "ET1234567890", got[0].BagID)
	})

	t.Run("one bag per item is schema enforced", func(t *testing.T) {
		got, err := store.GetItemsByReport(ctx, report.ID)
		require.NoError(t, err)

		bagID := uint(42)
		require.NoError(t, store.UpdateItem(ctx, got[0].ID, map[string]any{"scanned_baggage_id": bagID}))
		err = store.UpdateItem(ctx, got[1].ID, map[string]any{"scanned_baggage_id": bagID})
		require.Error(t, err)
		assert.True(t, IsUniqueViolation(err))
	})

	t.Run("reports listed most recent first", func(t *testing.T) {
		later := &models.ManifestReport{
			Family:     "generic",
			Airport:    "ABJ",
			UploadDate: time.Now().UTC().Add(time.Hour),
		}
		require.NoError(t, store.CreateReport(ctx, later))

		reports, err := store.GetReportsByAirport(ctx, "ABJ")
		require.NoError(t, err)
		require.Len(t, reports, 2)
		assert.Equal(t, later.ID, reports[0].ID)
	})
}

func TestTransactionRollsBack(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Transaction(ctx, func(tx *Store) error {
		report := &models.ManifestReport{Family: "generic", Airport: "ABJ", UploadDate: time.Now().UTC()}
		if err := tx.CreateReport(ctx, report); err != nil {
			return err
		}
		return fmt.Errorf("forced failure")
	})
	require.Error(t, err)

	reports, err := store.GetReportsByAirport(ctx, "ABJ")
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"gorm sentinel", gorm.ErrDuplicatedKey, true},
		{"sqlite phrasing", fmt.Errorf("UNIQUE constraint failed: scanned_baggages.tag_value"), true},
		{"mysql phrasing", fmt.Errorf("Error 1062: Duplicate entry 'ET123' for key 'tag_value'"), true},
		{"unrelated", fmt.Errorf("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsUniqueViolation(tt.err))
		})
	}
}
