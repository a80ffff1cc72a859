package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 9, 0, 0, 0, time.UTC)
}

func TestShortWindowRetention_SecondOrderOnDay30Counts(t *testing.T) {
	events := []CanonicalEvent{
		evt("u1", "o1", at(2018, 1, 1), "10"),
		evt("u1", "o2", at(2018, 1, 31), "10"), // exactly 30 days later
	}

	got := ShortWindowRetention(events, 30)

	require.True(t, got.Valid)
	assert.True(t, got.Decimal.Equal(pct("100").Decimal))
}

func TestShortWindowRetention_SecondOrderOnDay31Excluded(t *testing.T) {
	events := []CanonicalEvent{
		evt("u1", "o1", at(2018, 1, 1), "10"),
		evt("u1", "o2", at(2018, 2, 1), "10"), // 31 days later
	}

	got := ShortWindowRetention(events, 30)

	require.True(t, got.Valid)
	assert.True(t, got.Decimal.Equal(pct("0").Decimal))
}

func TestShortWindowRetention_NoRepeatCustomersStayInDenominator(t *testing.T) {
	// One of two customers repeats in time; the single-order customer is
	// a failure of the criterion, not a row to drop.
	events := []CanonicalEvent{
		evt("u1", "o1", at(2018, 1, 1), "10"),
		evt("u1", "o2", at(2018, 1, 10), "10"),
		evt("u2", "o3", at(2018, 1, 5), "10"),
	}

	got := ShortWindowRetention(events, 30)

	require.True(t, got.Valid)
	assert.True(t, got.Decimal.Equal(pct("50").Decimal), "got %s", got.Decimal)
}

func TestShortWindowRetention_ThirdOrderDoesNotRescue(t *testing.T) {
	// The window is measured against the second order only.
	events := []CanonicalEvent{
		evt("u1", "o1", at(2018, 1, 1), "10"),
		evt("u1", "o2", at(2018, 3, 1), "10"),
		evt("u1", "o3", at(2018, 3, 2), "10"),
	}

	got := ShortWindowRetention(events, 30)

	require.True(t, got.Valid)
	assert.True(t, got.Decimal.Equal(pct("0").Decimal))
}

func TestShortWindowRetention_NoCustomersIsUndefined(t *testing.T) {
	got := ShortWindowRetention(nil, 30)
	assert.False(t, got.Valid)
}
