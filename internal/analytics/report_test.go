package analytics

import (
	"context"
	"testing"

	"retention-analytics/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsValidate(t *testing.T) {
	assert.NoError(t, DefaultParams().Validate())

	bad := DefaultParams()
	bad.ShortWindowDays = 0
	err := bad.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	bad = DefaultParams()
	bad.TopCategoriesN = -1
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	bad = DefaultParams()
	bad.DeliveredStatus = ""
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)
}

func TestCompute_FailsFastOnInvalidParams(t *testing.T) {
	p := DefaultParams()
	p.ShortWindowDays = -5

	_, err := Compute(context.Background(), snapshotFixture(), p)

	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestCompute_FullReport(t *testing.T) {
	report, err := Compute(context.Background(), snapshotFixture(), DefaultParams())

	require.NoError(t, err)
	assert.Len(t, report.Monthly, 2)
	assert.Equal(t, 3, report.DeliveredOrders())
	assert.True(t, report.RepeatPct.Valid)
	assert.NotEmpty(t, report.TopCategories)
	assert.NotEmpty(t, report.Retention)
	assert.True(t, report.ShortWindowPct.Valid)
	assert.Zero(t, report.Exclusions.Total())
}

func TestCompute_Idempotent(t *testing.T) {
	snap := snapshotFixture()

	first, err := Compute(context.Background(), snap, DefaultParams())
	require.NoError(t, err)
	second, err := Compute(context.Background(), snap, DefaultParams())
	require.NoError(t, err)

	assert.Equal(t, first.Monthly, second.Monthly)
	assert.Equal(t, first.TopCategories, second.TopCategories)
	assert.Equal(t, first.Retention, second.Retention)
	assert.Equal(t, first.RepeatPct, second.RepeatPct)
	assert.Equal(t, first.ShortWindowPct, second.ShortWindowPct)
}

func TestCompute_EmptySnapshotIsValid(t *testing.T) {
	report, err := Compute(context.Background(), &models.Snapshot{}, DefaultParams())

	require.NoError(t, err)
	assert.Empty(t, report.Monthly)
	assert.Empty(t, report.TopCategories)
	assert.Empty(t, report.Retention)
	assert.False(t, report.RepeatPct.Valid)
	assert.False(t, report.ShortWindowPct.Valid)
	assert.Zero(t, report.DeliveredOrders())
}

func TestCompute_RespectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Compute(ctx, snapshotFixture(), DefaultParams())

	assert.ErrorIs(t, err, context.Canceled)
}
