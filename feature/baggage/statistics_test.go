package baggage

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"baggage-manager/feature/baggage/models"
)

// newMockStore wires the store to a sqlmock-backed mysql dialector so the
// dialect-specific SQL of the aggregation can be asserted.
func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return NewStore(db), mock
}

func TestComputeStatisticsMySQLDialect(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT status, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow(models.StatusScanned, 3).
			AddRow(models.StatusReconciled, 7))

	// Week and month buckets must use the mysql date formatter.
	mock.ExpectQuery(`DATE_FORMAT\(upload_date, '%Y-%u'\)`).
		WillReturnRows(sqlmock.NewRows([]string{"period", "count"}).
			AddRow("2026-35", 2))
	mock.ExpectQuery(`DATE_FORMAT\(upload_date, '%Y-%m'\)`).
		WillReturnRows(sqlmock.NewRows([]string{"period", "count"}).
			AddRow("2026-08", 2))

	mock.ExpectQuery(`AVG\(reconciled_count \* 100\.0 / total_baggages\)`).
		WillReturnRows(sqlmock.NewRows([]string{"rate"}).AddRow(87.5))

	mock.ExpectQuery("origin as label").
		WillReturnRows(sqlmock.NewRows([]string{"label", "count"}).
			AddRow("ADD", 5))
	mock.ExpectQuery("airline as label").
		WillReturnRows(sqlmock.NewRows([]string{"label", "count"}).
			AddRow("Ethiopian Airlines", 5))

	stats, err := store.computeStatistics(context.Background(), "ABJ")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, int64(10), stats.TotalBaggages)
	assert.Equal(t, int64(3), stats.StatusCounts[models.StatusScanned])
	assert.Equal(t, int64(2), stats.TotalReports)
	assert.InDelta(t, 87.5, stats.AverageReconciliationRate, 0.001)
	require.Len(t, stats.TopOrigins, 1)
	assert.Equal(t, "ADD", stats.TopOrigins[0].Label)
}

func TestStatsCacheTTL(t *testing.T) {
	cache := newStatsCache()

	fresh := &Statistics{Airport: "ABJ", GeneratedAt: time.Now().UTC()}
	cache.put("ABJ", fresh)

	got, ok := cache.get("ABJ")
	require.True(t, ok)
	assert.Same(t, fresh, got)

	stale := &Statistics{Airport: "LFW", GeneratedAt: time.Now().UTC().Add(-2 * statisticsTTL)}
	cache.put("LFW", stale)
	_, ok = cache.get("LFW")
	assert.False(t, ok)
}
