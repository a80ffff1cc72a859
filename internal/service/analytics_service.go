package service

import (
	"context"
	"fmt"
	"time"

	"retention-analytics/internal/analytics"
	"retention-analytics/internal/broker"
	"retention-analytics/internal/models"
	"retention-analytics/internal/redisclient"
	"retention-analytics/internal/store"
	"retention-analytics/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnalyticsService orchestrates one report run: load a ledger snapshot,
// look the snapshot hash up in the cache, compute on a miss, cache the
// result and publish a ReportComputed event. The computation itself is a
// pure batch over the snapshot; this layer owns all I/O around it.
type AnalyticsService struct {
	store          *store.Store
	cache          *redisclient.Client
	eventPublisher *broker.EventPublisher
	params         analytics.Params
	logger         *zap.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(
	store *store.Store,
	cache *redisclient.Client,
	eventPublisher *broker.EventPublisher,
	params analytics.Params,
) (*AnalyticsService, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &AnalyticsService{
		store:          store,
		cache:          cache,
		eventPublisher: eventPublisher,
		params:         params,
		logger:         util.GetLogger(),
	}, nil
}

// Params returns the configured computation parameters
func (s *AnalyticsService) Params() analytics.Params {
	return s.params
}

// GetReport returns the report for the current ledger state, served from
// the cache when the snapshot has not changed.
func (s *AnalyticsService) GetReport(ctx context.Context) (*analytics.Report, error) {
	return s.run(ctx, true)
}

// RefreshReport recomputes unconditionally and overwrites the cache
func (s *AnalyticsService) RefreshReport(ctx context.Context) (*analytics.Report, error) {
	return s.run(ctx, false)
}

func (s *AnalyticsService) run(ctx context.Context, useCache bool) (*analytics.Report, error) {
	ctx, span := util.StartSpan(ctx, "AnalyticsService.Run")
	defer span.End()

	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		util.ReportsFailedTotal.WithLabelValues("snapshot_load").Inc()
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	hash, err := SnapshotHash(snap, s.params)
	if err != nil {
		util.ReportsFailedTotal.WithLabelValues("hash").Inc()
		return nil, fmt.Errorf("failed to hash snapshot: %w", err)
	}

	if useCache {
		cached, err := s.cache.GetReport(ctx, hash)
		if err != nil {
			s.logger.Warn("Report cache unavailable, recomputing", zap.Error(err))
		}
		if cached != nil {
			util.ReportCacheHitsTotal.Inc()
			s.logger.Info("Report served from cache",
				zap.String("snapshot_hash", hash),
				zap.String("run_id", cached.RunID))
			return cached, nil
		}
		util.ReportCacheMissesTotal.Inc()
	}

	report, err := s.compute(ctx, snap)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetReport(ctx, hash, report); err != nil {
		s.logger.Warn("Failed to cache report", zap.Error(err))
	}

	s.publishComputed(ctx, report, hash)
	return report, nil
}

func (s *AnalyticsService) compute(ctx context.Context, snap *models.Snapshot) (*analytics.Report, error) {
	ctx, span := util.StartSpan(ctx, "AnalyticsService.Compute")
	defer span.End()

	start := time.Now()
	report, err := analytics.Compute(ctx, snap, s.params)
	if err != nil {
		util.ReportsFailedTotal.WithLabelValues("compute").Inc()
		return nil, fmt.Errorf("report computation failed: %w", err)
	}
	util.ReportComputeLatency.Observe(time.Since(start).Seconds())
	util.ReportsComputedTotal.Inc()

	report.RunID = uuid.New().String()
	report.GeneratedAt = time.Now().UTC()

	excl := report.Exclusions
	util.RecordsExcludedTotal.WithLabelValues("order_missing_customer").Add(float64(excl.OrdersMissingCustomer))
	util.RecordsExcludedTotal.WithLabelValues("payment_unknown_order").Add(float64(excl.PaymentsUnknownOrder))
	util.RecordsExcludedTotal.WithLabelValues("item_unknown_order").Add(float64(excl.ItemsUnknownOrder))
	util.RecordsExcludedTotal.WithLabelValues("item_unknown_product").Add(float64(excl.ItemsUnknownProduct))

	if excl.Total() > 0 {
		s.logger.Warn("Malformed records excluded from aggregation",
			zap.Int("orders_missing_customer", excl.OrdersMissingCustomer),
			zap.Int("payments_unknown_order", excl.PaymentsUnknownOrder),
			zap.Int("items_unknown_order", excl.ItemsUnknownOrder),
			zap.Int("items_unknown_product", excl.ItemsUnknownProduct))
	}

	s.logger.Info("Report computed",
		zap.String("run_id", report.RunID),
		zap.Int("delivered_orders", report.DeliveredOrders()),
		zap.Int("retention_rows", len(report.Retention)),
		zap.Duration("elapsed", time.Since(start)))

	return report, nil
}

func (s *AnalyticsService) publishComputed(ctx context.Context, report *analytics.Report, hash string) {
	event := &models.ReportComputedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeReportComputed,
			Timestamp: time.Now(),
		},
		RunID:           report.RunID,
		SnapshotHash:    hash,
		DeliveredOrders: report.DeliveredOrders(),
		ExcludedRecords: report.Exclusions.Total(),
	}

	if err := s.eventPublisher.PublishReportComputed(ctx, event); err != nil {
		s.logger.Error("Failed to publish ReportComputed event", zap.Error(err))
	}
}
