package usecase

import (
	"context"
	"time"

	"exposure/internal/domain/entity"
)

// DispatchReport summarizes what the delivery engine did with a batch.
type DispatchReport struct {
	Dispatched     int `json:"dispatched"`
	Duplicates     int `json:"duplicates"`
	NotDeliverable int `json:"not_deliverable"`
	Overflow       int `json:"overflow"`
}

// CycleReport summarizes one evaluation cycle.
type CycleReport struct {
	CycleID       string         `json:"cycle_id"`
	StartedAt     time.Time      `json:"started_at"`
	SnapshotAt    time.Time      `json:"snapshot_at,omitempty"`
	Transitioned  int            `json:"transitioned"`
	Subscriptions int            `json:"subscriptions"`
	Matched       int            `json:"matched"`
	Dispatch      DispatchReport `json:"dispatch"`
	Skipped       bool           `json:"skipped"`
	Error         string         `json:"error,omitempty"`
}

// PublishUsecase drives evaluation cycles.
type PublishUsecase interface {
	// Run executes cycles on the periodic timer and on triggers until ctx is done.
	Run(ctx context.Context) error

	// Trigger queues an immediate cycle. Triggers arriving while one is pending
	// share it; the returned channel receives that cycle's report.
	Trigger() (<-chan CycleReport, error)
}

// DeliveryUsecase sends matched events to subscriber webhooks.
type DeliveryUsecase interface {
	// Deliver hands events over for asynchronous delivery and returns immediately.
	Deliver(ctx context.Context, events []*entity.Event) DispatchReport

	// Drain waits for in-flight deliveries to resolve or ctx to end.
	Drain(ctx context.Context) error
}

// EventUsecase exposes the log of matched events.
type EventUsecase interface {
	ListEvents(ctx context.Context, filter entity.EventFilter) ([]*entity.Event, error)
}
