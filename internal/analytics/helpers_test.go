package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

func ts(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func evt(customer, order string, at time.Time, revenue string) CanonicalEvent {
	return CanonicalEvent{
		CustomerUniqueID: customer,
		OrderID:          order,
		Timestamp:        at,
		Month:            monthFloor(at),
		Revenue:          decimal.RequireFromString(revenue),
	}
}

func pct(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}
