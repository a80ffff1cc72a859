package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthFloor(t *testing.T) {
	got := monthFloor(time.Date(2017, 11, 24, 23, 59, 58, 0, time.UTC))
	assert.Equal(t, time.Date(2017, 11, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestMonthIndex_SameMonth(t *testing.T) {
	jan := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, monthIndex(jan, jan))
}

func TestMonthIndex_WithinYear(t *testing.T) {
	jan := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2018, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, monthIndex(jan, mar))
}

func TestMonthIndex_AcrossYearBoundary(t *testing.T) {
	dec := time.Date(2017, 12, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2018, 2, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, monthIndex(dec, feb))
}

func TestMonthIndex_MultipleYears(t *testing.T) {
	nov := time.Date(2016, 11, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2018, 2, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 15, monthIndex(nov, feb))
}
