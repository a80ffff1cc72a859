package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// RetentionRow is one cell of the cohort retention matrix. CohortSize is
// carried on every row so callers can apply a minimum-size filter; the
// engine itself never drops small cohorts.
type RetentionRow struct {
	CohortMonth     time.Time           `json:"cohort_month"`
	OrderMonth      time.Time           `json:"order_month"`
	MonthIndex      int                 `json:"month_index"`
	ActiveCustomers int                 `json:"active_customers"`
	CohortSize      int                 `json:"cohort_size"`
	RetentionPct    decimal.NullDecimal `json:"retention_pct"`
}

// CohortRetention computes the monthly cohort retention matrix in three
// passes over the canonical stream:
//
//  1. assign each customer to the month of their first delivered order;
//  2. count distinct active customers per (cohort month, order month);
//  3. normalize each cell against the cohort's month-0 count.
//
// The month-0 cell is the cohort size by construction (every member has
// an event in their own cohort month), so month-0 retention is always
// exactly 100.00. Rows are sorted by cohort month, then month index.
func CohortRetention(events []CanonicalEvent) []RetentionRow {
	// Pass 1: cohort month = earliest event month per customer.
	cohortByCustomer := make(map[string]time.Time)
	for _, ev := range events {
		cohort, ok := cohortByCustomer[ev.CustomerUniqueID]
		if !ok || ev.Month.Before(cohort) {
			cohortByCustomer[ev.CustomerUniqueID] = ev.Month
		}
	}

	// Pass 2: distinct active customers per (cohort month, order month).
	type cellKey struct{ cohortMonth, orderMonth time.Time }
	active := make(map[cellKey]map[string]struct{})
	for _, ev := range events {
		key := cellKey{cohortMonth: cohortByCustomer[ev.CustomerUniqueID], orderMonth: ev.Month}
		customers, ok := active[key]
		if !ok {
			customers = make(map[string]struct{})
			active[key] = customers
		}
		customers[ev.CustomerUniqueID] = struct{}{}
	}

	// Pass 3: cohort size from the month-0 cell, then normalize.
	sizeByCohort := make(map[time.Time]int)
	for key, customers := range active {
		if key.orderMonth.Equal(key.cohortMonth) {
			sizeByCohort[key.cohortMonth] = len(customers)
		}
	}

	rows := make([]RetentionRow, 0, len(active))
	for key, customers := range active {
		size := sizeByCohort[key.cohortMonth]
		rows = append(rows, RetentionRow{
			CohortMonth:     key.cohortMonth,
			OrderMonth:      key.orderMonth,
			MonthIndex:      monthIndex(key.cohortMonth, key.orderMonth),
			ActiveCustomers: len(customers),
			CohortSize:      size,
			RetentionPct:    percent(len(customers), size),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CohortMonth.Equal(rows[j].CohortMonth) {
			return rows[i].CohortMonth.Before(rows[j].CohortMonth)
		}
		return rows[i].MonthIndex < rows[j].MonthIndex
	})
	return rows
}
