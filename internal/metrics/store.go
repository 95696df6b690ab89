package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	metricsdb "ah-mealplanner/internal/metrics/db"
)

// PlanMetric records metadata for a single plan generation run.
type PlanMetric struct {
	PlanDate         string
	TargetCalories   float64
	AchievedCalories float64
	ItemCount        int
	TargetMet        bool
	DurationMS       int64
	Timestamp        time.Time
}

// Store handles persistence of metrics to SQLite.
type Store struct {
	queries *metricsdb.Queries
	db      *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{
		queries: metricsdb.New(db),
		db:      db,
	}
}

// Record saves a metric to the database.
func (s *Store) Record(ctx context.Context, m PlanMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	var targetMet int64
	if m.TargetMet {
		targetMet = 1
	}

	err := s.queries.InsertPlanMetric(ctx, metricsdb.InsertPlanMetricParams{
		PlanDate:         m.PlanDate,
		TargetCalories:   m.TargetCalories,
		AchievedCalories: m.AchievedCalories,
		ItemCount:        int64(m.ItemCount),
		TargetMet:        targetMet,
		DurationMs:       m.DurationMS,
		Timestamp:        ts,
	})
	if err != nil {
		return fmt.Errorf("failed to insert plan metric: %w", err)
	}
	return nil
}

// DailySummary represents plan generation totals for a single plan date.
type DailySummary struct {
	PlanDate      string
	Runs          int
	TargetMetRuns int
	AvgDeviation  float64
	AvgDurationMS float64
}

// GetDailySummary aggregates runs per plan date over the last N days.
func (s *Store) GetDailySummary(ctx context.Context, days int) ([]DailySummary, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	rows, err := s.queries.GetDailySummary(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query plan metrics: %w", err)
	}

	var results []DailySummary
	for _, row := range rows {
		d := DailySummary{
			PlanDate: row.PlanDate,
			Runs:     int(row.Runs),
		}
		if row.TargetMetRuns.Valid {
			d.TargetMetRuns = int(row.TargetMetRuns.Float64)
		}
		if row.AvgDeviation.Valid {
			d.AvgDeviation = row.AvgDeviation.Float64
		}
		if row.AvgDurationMs.Valid {
			d.AvgDurationMS = row.AvgDurationMs.Float64
		}
		results = append(results, d)
	}
	return results, nil
}

// Cleanup removes records older than the specified number of days and
// returns how many were deleted.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	threshold := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	deleted, err := s.queries.DeletePlanMetricsOlderThan(ctx, threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up plan metrics: %w", err)
	}
	return deleted, nil
}
