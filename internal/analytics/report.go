package analytics

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"retention-analytics/internal/models"

	"github.com/shopspring/decimal"
)

// ErrInvalidConfig is wrapped by all parameter validation failures.
// Configuration errors are fatal before any computation starts.
var ErrInvalidConfig = errors.New("invalid analytics configuration")

// Params are the knobs the core consumes. MinCohortSize is deliberately
// absent: the small-cohort filter belongs to the presentation side and is
// applied against the CohortSize exposed on every retention row.
type Params struct {
	DeliveredStatus string `json:"delivered_status"`
	ShortWindowDays int    `json:"short_window_days"`
	TopCategoriesN  int    `json:"top_categories_n"`
}

// DefaultParams returns the standard configuration
func DefaultParams() Params {
	return Params{
		DeliveredStatus: models.DefaultDeliveredStatus,
		ShortWindowDays: 30,
		TopCategoriesN:  10,
	}
}

// Validate fails fast on unusable parameters; values are never clamped
func (p Params) Validate() error {
	if p.DeliveredStatus == "" {
		return fmt.Errorf("%w: delivered_status must not be empty", ErrInvalidConfig)
	}
	if p.ShortWindowDays <= 0 {
		return fmt.Errorf("%w: short_window_days must be positive, got %d", ErrInvalidConfig, p.ShortWindowDays)
	}
	if p.TopCategoriesN <= 0 {
		return fmt.Errorf("%w: top_categories_n must be positive, got %d", ErrInvalidConfig, p.TopCategoriesN)
	}
	return nil
}

// Report carries every result table of one computation run. RunID and
// GeneratedAt are stamped by the caller; the tables themselves are a pure
// function of snapshot and params.
type Report struct {
	RunID          string              `json:"run_id,omitempty"`
	GeneratedAt    time.Time           `json:"generated_at,omitempty"`
	Monthly        []MonthlyKPI        `json:"monthly"`
	RepeatPct      decimal.NullDecimal `json:"repeat_customer_pct"`
	TopCategories  []CategoryRevenue   `json:"top_categories"`
	Retention      []RetentionRow      `json:"retention"`
	ShortWindowPct decimal.NullDecimal `json:"short_window_retention_pct"`
	Exclusions     Exclusions          `json:"exclusions"`
}

// Compute runs the full batch over one immutable snapshot. The five
// aggregations are independent read-only consumers of the normalized
// stream and run concurrently; an empty snapshot yields empty tables and
// null ratios, which is a valid outcome, not an error.
func Compute(ctx context.Context, snap *models.Snapshot, p Params) (*Report, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	ds := Normalize(snap, p.DeliveredStatus)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{Exclusions: ds.Exclusions}

	var wg sync.WaitGroup
	wg.Add(5)
	go func() {
		defer wg.Done()
		report.Monthly = MonthlyKPIs(ds.Events)
	}()
	go func() {
		defer wg.Done()
		report.RepeatPct = RepeatRate(ds.Events)
	}()
	go func() {
		defer wg.Done()
		report.TopCategories = RankCategories(ds.Categories, p.TopCategoriesN)
	}()
	go func() {
		defer wg.Done()
		report.Retention = CohortRetention(ds.Events)
	}()
	go func() {
		defer wg.Done()
		report.ShortWindowPct = ShortWindowRetention(ds.Events, p.ShortWindowDays)
	}()
	wg.Wait()

	return report, ctx.Err()
}

// DeliveredOrders is the number of canonical events behind a report's
// tables, recomputed from the monthly rows.
func (r *Report) DeliveredOrders() int {
	total := 0
	for _, m := range r.Monthly {
		total += m.Orders
	}
	return total
}

// FilterRetention applies the presentation-side cohort filters: cohorts
// smaller than minCohortSize are dropped as statistically noisy, and
// cells beyond maxMonthIndex are trimmed. A non-positive bound disables
// the corresponding filter.
func FilterRetention(rows []RetentionRow, minCohortSize, maxMonthIndex int) []RetentionRow {
	filtered := make([]RetentionRow, 0, len(rows))
	for _, row := range rows {
		if minCohortSize > 0 && row.CohortSize < minCohortSize {
			continue
		}
		if maxMonthIndex > 0 && row.MonthIndex > maxMonthIndex {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}
