package analytics

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// percent returns 100*num/den rounded to two decimals, or null when the
// denominator is zero. Callers must be able to tell "0%" from "no data".
func percent(num, den int) decimal.NullDecimal {
	if den == 0 {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{
		Decimal: decimal.NewFromInt(int64(num)).Mul(hundred).DivRound(decimal.NewFromInt(int64(den)), 2),
		Valid:   true,
	}
}

// RepeatRate is the percentage of customers with at least two delivered
// orders. Null when the stream has no customers at all.
func RepeatRate(events []CanonicalEvent) decimal.NullDecimal {
	ordersByCustomer := make(map[string]map[string]struct{})
	for _, ev := range events {
		orders, ok := ordersByCustomer[ev.CustomerUniqueID]
		if !ok {
			orders = make(map[string]struct{})
			ordersByCustomer[ev.CustomerUniqueID] = orders
		}
		orders[ev.OrderID] = struct{}{}
	}

	repeaters := 0
	for _, orders := range ordersByCustomer {
		if len(orders) >= 2 {
			repeaters++
		}
	}
	return percent(repeaters, len(ordersByCustomer))
}
