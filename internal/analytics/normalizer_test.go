package analytics

import (
	"testing"
	"time"

	"retention-analytics/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotFixture() *models.Snapshot {
	return &models.Snapshot{
		Customers: []models.Customer{
			{CustomerID: "c1", CustomerUniqueID: "u1"},
			{CustomerID: "c2", CustomerUniqueID: "u1"}, // same person, second order id
			{CustomerID: "c3", CustomerUniqueID: "u2"},
		},
		Orders: []models.Order{
			{OrderID: "o1", CustomerID: "c1", OrderStatus: "delivered", PurchaseTimestamp: ts(2018, 1, 5)},
			{OrderID: "o2", CustomerID: "c2", OrderStatus: "delivered", PurchaseTimestamp: ts(2018, 2, 10)},
			{OrderID: "o3", CustomerID: "c3", OrderStatus: "canceled", PurchaseTimestamp: ts(2018, 1, 7)},
			{OrderID: "o4", CustomerID: "c3", OrderStatus: "delivered", PurchaseTimestamp: ts(2018, 1, 9)},
		},
		Payments: []models.Payment{
			{OrderID: "o1", PaymentValue: decimal.RequireFromString("50.00")},
			{OrderID: "o1", PaymentValue: decimal.RequireFromString("25.50")}, // split payment
			{OrderID: "o2", PaymentValue: decimal.RequireFromString("10.00")},
			{OrderID: "o4", PaymentValue: decimal.RequireFromString("99.90")},
		},
		Items: []models.OrderItem{
			{OrderID: "o1", ProductID: "p1", Price: decimal.RequireFromString("40.00")},
			{OrderID: "o4", ProductID: "p2", Price: decimal.RequireFromString("60.00")},
		},
		Products: []models.Product{
			{ProductID: "p1", CategoryName: "beleza_saude"},
			{ProductID: "p2", CategoryName: "moveis_decoracao"},
		},
		Translations: []models.CategoryTranslation{
			{CategoryName: "beleza_saude", CategoryNameEnglish: "health_beauty"},
		},
	}
}

func TestNormalize_DeliveredFilterAndIdentity(t *testing.T) {
	ds := Normalize(snapshotFixture(), "delivered")

	require.Len(t, ds.Events, 3)
	byOrder := map[string]CanonicalEvent{}
	for _, ev := range ds.Events {
		byOrder[ev.OrderID] = ev
	}
	assert.NotContains(t, byOrder, "o3") // canceled

	assert.Equal(t, "u1", byOrder["o1"].CustomerUniqueID)
	assert.Equal(t, "u1", byOrder["o2"].CustomerUniqueID)
	assert.Equal(t, "u2", byOrder["o4"].CustomerUniqueID)
	assert.Equal(t, time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC), byOrder["o1"].Month)
}

func TestNormalize_SumsSplitPayments(t *testing.T) {
	ds := Normalize(snapshotFixture(), "delivered")

	for _, ev := range ds.Events {
		if ev.OrderID == "o1" {
			assert.True(t, ev.Revenue.Equal(decimal.RequireFromString("75.50")),
				"got %s", ev.Revenue)
		}
	}
}

func TestNormalize_CountsMalformedRecords(t *testing.T) {
	snap := snapshotFixture()
	snap.Orders = append(snap.Orders, models.Order{
		OrderID: "o9", CustomerID: "ghost", OrderStatus: "delivered", PurchaseTimestamp: ts(2018, 3, 1),
	})
	snap.Payments = append(snap.Payments, models.Payment{
		OrderID: "missing", PaymentValue: decimal.RequireFromString("1.00"),
	})
	snap.Items = append(snap.Items,
		models.OrderItem{OrderID: "missing", ProductID: "p1", Price: decimal.RequireFromString("1.00")},
		models.OrderItem{OrderID: "o1", ProductID: "ghost-product", Price: decimal.RequireFromString("1.00")},
	)

	ds := Normalize(snap, "delivered")

	assert.Equal(t, 1, ds.Exclusions.OrdersMissingCustomer)
	assert.Equal(t, 1, ds.Exclusions.PaymentsUnknownOrder)
	assert.Equal(t, 1, ds.Exclusions.ItemsUnknownOrder)
	assert.Equal(t, 1, ds.Exclusions.ItemsUnknownProduct)
	assert.Equal(t, 4, ds.Exclusions.Total())
	require.Len(t, ds.Events, 3) // none of the malformed rows became events
}

func TestNormalize_NonDeliveredOrdersAreNotMalformed(t *testing.T) {
	// o3 is canceled: its payment and item carry valid join keys and are
	// scoped out by the delivered filter, not excluded as malformed.
	snap := snapshotFixture()
	snap.Payments = append(snap.Payments, models.Payment{
		OrderID: "o3", PaymentValue: decimal.RequireFromString("5.00"),
	})
	snap.Items = append(snap.Items, models.OrderItem{
		OrderID: "o3", ProductID: "p1", Price: decimal.RequireFromString("5.00"),
	})

	ds := Normalize(snap, "delivered")

	assert.Zero(t, ds.Exclusions.Total())
	require.Len(t, ds.Events, 3)
	for _, ev := range ds.Events {
		assert.NotEqual(t, "o3", ev.OrderID)
	}
}

func TestNormalize_TranslationFallback(t *testing.T) {
	ds := Normalize(snapshotFixture(), "delivered")

	require.Len(t, ds.Categories, 2)
	names := []string{ds.Categories[0].Category, ds.Categories[1].Category}
	assert.Contains(t, names, "health_beauty")     // translated
	assert.Contains(t, names, "moveis_decoracao") // no translation row, raw name kept
}

func TestNormalize_EmptySnapshot(t *testing.T) {
	ds := Normalize(&models.Snapshot{}, "delivered")

	assert.Empty(t, ds.Events)
	assert.Empty(t, ds.Categories)
	assert.Zero(t, ds.Exclusions.Total())
}
