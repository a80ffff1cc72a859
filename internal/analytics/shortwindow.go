package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShortWindowRetention is the percentage of customers whose second
// delivered order falls within windowDays of their first. Customers who
// never ordered again stay in the denominator as failures of the window
// criterion; they are not filtered out. Null when there are no customers.
func ShortWindowRetention(events []CanonicalEvent, windowDays int) decimal.NullDecimal {
	first := make(map[string]time.Time)
	for _, ev := range events {
		t, ok := first[ev.CustomerUniqueID]
		if !ok || ev.Timestamp.Before(t) {
			first[ev.CustomerUniqueID] = ev.Timestamp
		}
	}

	// Earliest event strictly after the first purchase, per customer.
	second := make(map[string]time.Time)
	for _, ev := range events {
		if !ev.Timestamp.After(first[ev.CustomerUniqueID]) {
			continue
		}
		t, ok := second[ev.CustomerUniqueID]
		if !ok || ev.Timestamp.Before(t) {
			second[ev.CustomerUniqueID] = ev.Timestamp
		}
	}

	retained := 0
	for customer, firstAt := range first {
		secondAt, ok := second[customer]
		if !ok {
			continue
		}
		if !secondAt.After(firstAt.AddDate(0, 0, windowDays)) {
			retained++
		}
	}
	return percent(retained, len(first))
}
