package models

import "time"

// Event types
const (
	EventTypeLedgerRefreshed = "LEDGER_REFRESHED"
	EventTypeReportComputed  = "REPORT_COMPUTED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// LedgerRefreshedEvent is published by the ingestion pipeline after a new
// ledger snapshot lands; consuming it triggers a full recomputation.
type LedgerRefreshedEvent struct {
	BaseEvent
	Source string `json:"source,omitempty"`
}

// ReportComputedEvent is published after a report run finishes
type ReportComputedEvent struct {
	BaseEvent
	RunID           string `json:"run_id"`
	SnapshotHash    string `json:"snapshot_hash"`
	DeliveredOrders int    `json:"delivered_orders"`
	ExcludedRecords int    `json:"excluded_records"`
}
