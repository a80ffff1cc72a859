package worker

import (
	"context"
	"log"

	"retention-analytics/internal/broker"
	"retention-analytics/internal/models"
	"retention-analytics/internal/service"
)

// RefreshWorker recomputes the report whenever the ingestion pipeline
// announces a new ledger snapshot. Each refresh is a full batch run; there
// is no incremental path.
type RefreshWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	analytics    *service.AnalyticsService
}

// NewRefreshWorker creates a new refresh worker
func NewRefreshWorker(consumer *broker.Consumer, analytics *service.AnalyticsService) *RefreshWorker {
	eventHandler := broker.NewEventHandler()

	worker := &RefreshWorker{
		consumer:     consumer,
		eventHandler: eventHandler,
		analytics:    analytics,
	}
	eventHandler.OnLedgerRefreshed(worker.handleLedgerRefreshed)

	return worker
}

func (w *RefreshWorker) handleLedgerRefreshed(ctx context.Context, event *models.LedgerRefreshedEvent) error {
	log.Printf("Ledger refreshed (source=%s), recomputing report", event.Source)

	if _, err := w.analytics.RefreshReport(ctx); err != nil {
		log.Printf("Report refresh failed: %v", err)
		return err
	}
	return nil
}

// Start starts the worker
func (w *RefreshWorker) Start(ctx context.Context) error {
	log.Println("Starting refresh worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *RefreshWorker) Stop() error {
	log.Println("Stopping refresh worker...")
	return w.consumer.Close()
}
