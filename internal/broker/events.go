package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"retention-analytics/internal/models"

	"github.com/segmentio/kafka-go"
)

// EventPublisher handles publishing domain events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishReportComputed publishes a ReportComputed event
func (ep *EventPublisher) PublishReportComputed(ctx context.Context, event *models.ReportComputedEvent) error {
	key := fmt.Sprintf("report-%s", event.RunID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishLedgerRefreshed publishes a LedgerRefreshed event
func (ep *EventPublisher) PublishLedgerRefreshed(ctx context.Context, event *models.LedgerRefreshedEvent) error {
	return ep.producer.PublishEvent(ctx, "ledger", event)
}

// EventHandler routes incoming events to registered callbacks
type EventHandler struct {
	onLedgerRefreshed func(context.Context, *models.LedgerRefreshedEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnLedgerRefreshed registers a handler for LedgerRefreshed events
func (eh *EventHandler) OnLedgerRefreshed(handler func(context.Context, *models.LedgerRefreshedEvent) error) {
	eh.onLedgerRefreshed = handler
}

// HandleMessage routes messages to appropriate handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	log.Printf("Handling event: type=%s, id=%s", baseEvent.EventType, baseEvent.EventID)

	switch baseEvent.EventType {
	case models.EventTypeLedgerRefreshed:
		if eh.onLedgerRefreshed != nil {
			var event models.LedgerRefreshedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal LedgerRefreshed event: %w", err)
			}
			return eh.onLedgerRefreshed(ctx, &event)
		}

	default:
		log.Printf("Unhandled event type: %s", baseEvent.EventType)
	}

	return nil
}
