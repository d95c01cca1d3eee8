package baggage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"baggage-manager/core/database"

	"golang.org/x/sync/singleflight"
)

// statisticsTTL is how long a computed statistics snapshot stays fresh.
// The supervisory UI polls these endpoints; there is no need to re-run the
// aggregation for every poll.
const statisticsTTL = 30 * time.Second

// PeriodCount is an aggregate bucket (week or month) of uploaded reports.
type PeriodCount struct {
	Period string `json:"period"`
	Count  int64  `json:"count"`
}

// LabelCount is a ranked aggregate over a label column (origin, airline).
type LabelCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// Statistics is the aggregate view the supervisory UI consumes.
type Statistics struct {
	Airport        string           `json:"airport"`
	TotalBaggages  int64            `json:"total_baggages"`
	StatusCounts   map[string]int64 `json:"status_counts"`
	TotalReports   int64            `json:"total_reports"`
	ReportsByWeek  []PeriodCount    `json:"reports_by_week"`
	ReportsByMonth []PeriodCount    `json:"reports_by_month"`
	// AverageReconciliationRate is the mean of reconciled/total*100 over
	// reports that have at least one item.
	AverageReconciliationRate float64     `json:"average_reconciliation_rate"`
	TopOrigins                []LabelCount `json:"top_origins"`
	TopAirlines               []LabelCount `json:"top_airlines"`
	GeneratedAt               time.Time    `json:"generated_at"`
}

// statsCache memoizes statistics per airport with stampede protection.
type statsCache struct {
	mu      sync.RWMutex
	entries map[string]*Statistics
	sf      singleflight.Group
}

func newStatsCache() *statsCache {
	return &statsCache{entries: make(map[string]*Statistics)}
}

func (c *statsCache) get(airport string) (*Statistics, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	stats, ok := c.entries[airport]
	if !ok || time.Since(stats.GeneratedAt) > statisticsTTL {
		return nil, false
	}
	return stats, true
}

func (c *statsCache) put(airport string, stats *Statistics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[airport] = stats
}

// Statistics computes (or returns a cached copy of) the aggregate view for
// an airport.
func (s *Store) Statistics(ctx context.Context, cache *statsCache, airport string) (*Statistics, error) {
	if stats, ok := cache.get(airport); ok {
		return stats, nil
	}

	v, err, _ := cache.sf.Do(airport, func() (any, error) {
		stats, err := s.computeStatistics(ctx, airport)
		if err != nil {
			return nil, err
		}
		cache.put(airport, stats)
		return stats, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Statistics), nil
}

func (s *Store) computeStatistics(ctx context.Context, airport string) (*Statistics, error) {
	db := s.db.WithContext(ctx)
	stats := &Statistics{
		Airport:      airport,
		StatusCounts: make(map[string]int64),
		GeneratedAt:  time.Now().UTC(),
	}

	// Baggage counts grouped by status
	var statusRows []struct {
		Status string
		Count  int64
	}
	err := db.Table("scanned_baggages").
		Select("status, COUNT(*) as count").
		Where("airport = ?", airport).
		Group("status").
		Scan(&statusRows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate baggage statuses: %w", err)
	}
	for _, row := range statusRows {
		stats.StatusCounts[row.Status] = row.Count
		stats.TotalBaggages += row.Count
	}

	// Report counts by week and month
	weekExpr := database.WeekExpr(db, "upload_date")
	monthExpr := database.MonthExpr(db, "upload_date")

	err = db.Table("manifest_reports").
		Select(weekExpr+" as period, COUNT(*) as count").
		Where("airport = ?", airport).
		Group("period").
		Order("period ASC").
		Scan(&stats.ReportsByWeek).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate reports by week: %w", err)
	}

	err = db.Table("manifest_reports").
		Select(monthExpr+" as period, COUNT(*) as count").
		Where("airport = ?", airport).
		Group("period").
		Order("period ASC").
		Scan(&stats.ReportsByMonth).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate reports by month: %w", err)
	}

	for _, p := range stats.ReportsByMonth {
		stats.TotalReports += p.Count
	}

	// Average reconciliation rate over reports that parsed at least one item
	var avg struct {
		Rate *float64
	}
	err = db.Table("manifest_reports").
		Select("AVG(reconciled_count * 100.0 / total_baggages) as rate").
		Where("airport = ? AND total_baggages > 0", airport).
		Scan(&avg).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute average reconciliation rate: %w", err)
	}
	if avg.Rate != nil {
		stats.AverageReconciliationRate = *avg.Rate
	}

	// Top origins and airlines over uploaded reports
	err = db.Table("manifest_reports").
		Select("origin as label, COUNT(*) as count").
		Where("airport = ? AND origin != ''", airport).
		Group("origin").
		Order("count DESC").
		Limit(5).
		Scan(&stats.TopOrigins).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate top origins: %w", err)
	}

	err = db.Table("manifest_reports").
		Select("airline as label, COUNT(*) as count").
		Where("airport = ? AND airline != ''", airport).
		Group("airline").
		Order("count DESC").
		Limit(5).
		Scan(&stats.TopAirlines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate top airlines: %w", err)
	}

	return stats, nil
}
