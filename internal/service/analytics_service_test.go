package service

import (
	"testing"

	"retention-analytics/internal/analytics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnalyticsService_RejectsInvalidParams(t *testing.T) {
	params := analytics.DefaultParams()
	params.TopCategoriesN = 0

	_, err := NewAnalyticsService(nil, nil, nil, params)

	require.Error(t, err)
	assert.ErrorIs(t, err, analytics.ErrInvalidConfig)
}

func TestGetReport(t *testing.T) {
	// Requires database, Redis and Kafka.
	t.Skip("Integration test - requires infrastructure")
}
