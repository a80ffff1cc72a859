package service

import (
	"testing"

	"retention-analytics/internal/analytics"
	"retention-analytics/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() *models.Snapshot {
	return &models.Snapshot{
		Customers: []models.Customer{{CustomerID: "c1", CustomerUniqueID: "u1"}},
		Orders:    []models.Order{{OrderID: "o1", CustomerID: "c1", OrderStatus: "delivered"}},
		Payments:  []models.Payment{{OrderID: "o1", PaymentValue: decimal.RequireFromString("10.00")}},
	}
}

func TestSnapshotHash_Deterministic(t *testing.T) {
	params := analytics.DefaultParams()

	first, err := SnapshotHash(sampleSnapshot(), params)
	require.NoError(t, err)
	second, err := SnapshotHash(sampleSnapshot(), params)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestSnapshotHash_ChangesWithData(t *testing.T) {
	params := analytics.DefaultParams()

	base, err := SnapshotHash(sampleSnapshot(), params)
	require.NoError(t, err)

	changed := sampleSnapshot()
	changed.Orders[0].OrderStatus = "canceled"
	got, err := SnapshotHash(changed, params)
	require.NoError(t, err)

	assert.NotEqual(t, base, got)
}

func TestSnapshotHash_ChangesWithParams(t *testing.T) {
	base, err := SnapshotHash(sampleSnapshot(), analytics.DefaultParams())
	require.NoError(t, err)

	params := analytics.DefaultParams()
	params.ShortWindowDays = 60
	got, err := SnapshotHash(sampleSnapshot(), params)
	require.NoError(t, err)

	assert.NotEqual(t, base, got)
}
