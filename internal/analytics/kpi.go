package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyKPI holds revenue and volume figures for one calendar month.
// AOV is null for a month with zero orders rather than zero or an error.
type MonthlyKPI struct {
	Month     time.Time           `json:"month"`
	Orders    int                 `json:"orders"`
	Customers int                 `json:"customers"`
	Revenue   decimal.Decimal     `json:"revenue"`
	AOV       decimal.NullDecimal `json:"aov"`
}

// MonthlyKPIs groups the canonical stream by month and computes order
// count, distinct customer count, revenue and average order value.
// Rows are ordered ascending by month.
func MonthlyKPIs(events []CanonicalEvent) []MonthlyKPI {
	type bucket struct {
		orders    int
		customers map[string]struct{}
		revenue   decimal.Decimal
	}

	buckets := make(map[time.Time]*bucket)
	for _, ev := range events {
		b, ok := buckets[ev.Month]
		if !ok {
			b = &bucket{customers: make(map[string]struct{})}
			buckets[ev.Month] = b
		}
		// One canonical event per delivered order, so counting events
		// counts distinct orders.
		b.orders++
		b.customers[ev.CustomerUniqueID] = struct{}{}
		b.revenue = b.revenue.Add(ev.Revenue)
	}

	rows := make([]MonthlyKPI, 0, len(buckets))
	for month, b := range buckets {
		rows = append(rows, MonthlyKPI{
			Month:     month,
			Orders:    b.orders,
			Customers: len(b.customers),
			Revenue:   b.revenue,
			AOV:       averageOrderValue(b.revenue, b.orders),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Month.Before(rows[j].Month) })
	return rows
}

// averageOrderValue guards the revenue/orders ratio: zero orders yields
// null, never a division by zero.
func averageOrderValue(revenue decimal.Decimal, orders int) decimal.NullDecimal {
	if orders == 0 {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{
		Decimal: revenue.DivRound(decimal.NewFromInt(int64(orders)), 2),
		Valid:   true,
	}
}
