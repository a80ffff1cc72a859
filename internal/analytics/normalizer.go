package analytics

import (
	"time"

	"retention-analytics/internal/models"

	"github.com/shopspring/decimal"
)

// CanonicalEvent is one delivered order projected onto the identity,
// time and revenue axes every aggregation reads from.
type CanonicalEvent struct {
	CustomerUniqueID string          `json:"customer_unique_id"`
	OrderID          string          `json:"order_id"`
	Timestamp        time.Time       `json:"timestamp"`
	Month            time.Time       `json:"month"`
	Revenue          decimal.Decimal `json:"revenue"`
}

// CategoryLine is one delivered order item with its category name already
// resolved (English translation when one exists, raw name otherwise).
type CategoryLine struct {
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

// Exclusions counts raw records dropped during normalization because a
// required join key did not resolve. Exclusions are reported, never fatal.
type Exclusions struct {
	OrdersMissingCustomer int `json:"orders_missing_customer"`
	PaymentsUnknownOrder  int `json:"payments_unknown_order"`
	ItemsUnknownOrder     int `json:"items_unknown_order"`
	ItemsUnknownProduct   int `json:"items_unknown_product"`
}

// Total returns the number of excluded records across all reasons
func (e Exclusions) Total() int {
	return e.OrdersMissingCustomer + e.PaymentsUnknownOrder + e.ItemsUnknownOrder + e.ItemsUnknownProduct
}

// Dataset is the normalized view of one ledger snapshot. Every component
// downstream of the normalizer consumes it read-only.
type Dataset struct {
	Events     []CanonicalEvent
	Categories []CategoryLine
	Exclusions Exclusions
}

// Normalize projects the raw snapshot into the canonical event stream:
// one event per delivered order, with the stable customer identity, the
// purchase timestamp truncated to calendar month, and the order revenue
// summed over all payment rows of the order. Orders without a matching
// customer, and payments or items referencing an order outside the
// delivered set, are excluded and counted.
func Normalize(snap *models.Snapshot, deliveredStatus string) *Dataset {
	ds := &Dataset{}

	uniqueByCustomer := make(map[string]string, len(snap.Customers))
	for _, c := range snap.Customers {
		uniqueByCustomer[c.CustomerID] = c.CustomerUniqueID
	}

	// Every order id in the ledger, regardless of status. A payment or
	// item is malformed only when its order is missing from this set;
	// rows pointing at a non-delivered order are scoped out silently.
	knownOrders := make(map[string]struct{}, len(snap.Orders))
	for _, o := range snap.Orders {
		knownOrders[o.OrderID] = struct{}{}
	}

	// Delivered orders that resolved to a stable customer identity.
	delivered := make(map[string]orderInfo)
	for _, o := range snap.Orders {
		if o.OrderStatus != deliveredStatus {
			continue
		}
		unique, ok := uniqueByCustomer[o.CustomerID]
		if !ok {
			ds.Exclusions.OrdersMissingCustomer++
			continue
		}
		delivered[o.OrderID] = orderInfo{customerUniqueID: unique, purchasedAt: o.PurchaseTimestamp}
	}

	revenueByOrder := make(map[string]decimal.Decimal, len(delivered))
	for _, p := range snap.Payments {
		if _, ok := delivered[p.OrderID]; !ok {
			if _, inLedger := knownOrders[p.OrderID]; !inLedger {
				ds.Exclusions.PaymentsUnknownOrder++
			}
			continue
		}
		revenueByOrder[p.OrderID] = revenueByOrder[p.OrderID].Add(p.PaymentValue)
	}

	// Emit events in ledger order so a snapshot always normalizes to the
	// same stream.
	ds.Events = make([]CanonicalEvent, 0, len(delivered))
	for _, o := range snap.Orders {
		info, ok := delivered[o.OrderID]
		if !ok {
			continue
		}
		ds.Events = append(ds.Events, CanonicalEvent{
			CustomerUniqueID: info.customerUniqueID,
			OrderID:          o.OrderID,
			Timestamp:        info.purchasedAt,
			Month:            monthFloor(info.purchasedAt),
			Revenue:          revenueByOrder[o.OrderID],
		})
	}

	ds.Categories = resolveCategories(snap, delivered, knownOrders, &ds.Exclusions)
	return ds
}

type orderInfo struct {
	customerUniqueID string
	purchasedAt      time.Time
}

// resolveCategories joins delivered order items with products and the
// optional translation table. The translation join is a left join: a
// category with no English name keeps its raw name verbatim.
func resolveCategories(snap *models.Snapshot, delivered map[string]orderInfo, knownOrders map[string]struct{}, excl *Exclusions) []CategoryLine {
	categoryByProduct := make(map[string]string, len(snap.Products))
	for _, p := range snap.Products {
		categoryByProduct[p.ProductID] = p.CategoryName
	}
	english := make(map[string]string, len(snap.Translations))
	for _, t := range snap.Translations {
		english[t.CategoryName] = t.CategoryNameEnglish
	}

	lines := make([]CategoryLine, 0, len(snap.Items))
	for _, it := range snap.Items {
		if _, ok := delivered[it.OrderID]; !ok {
			if _, inLedger := knownOrders[it.OrderID]; !inLedger {
				excl.ItemsUnknownOrder++
			}
			continue
		}
		raw, ok := categoryByProduct[it.ProductID]
		if !ok {
			excl.ItemsUnknownProduct++
			continue
		}
		category := raw
		if translated, ok := english[raw]; ok {
			category = translated
		}
		lines = append(lines, CategoryLine{Category: category, Price: it.Price})
	}
	return lines
}
