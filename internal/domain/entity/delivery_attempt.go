package entity

import "time"

// AttemptOutcome is how a delivery attempt was resolved.
type AttemptOutcome string

const (
	OutcomeDelivered      AttemptOutcome = "delivered"
	OutcomeDropped        AttemptOutcome = "dropped"
	OutcomeDuplicate      AttemptOutcome = "duplicate"
	OutcomeNotDeliverable AttemptOutcome = "not_deliverable"
	OutcomeOverflow       AttemptOutcome = "overflow"
)

// DeliveryAttempt tracks one event on its way to a webhook endpoint.
type DeliveryAttempt struct {
	Event        *Event
	Endpoint     string
	AttemptCount int
	NextRetryAt  time.Time
	LastError    error
	LastStatus   int
}

// NewDeliveryAttempt starts tracking event for endpoint.
func NewDeliveryAttempt(event *Event, endpoint string) *DeliveryAttempt {
	return &DeliveryAttempt{
		Event:    event,
		Endpoint: endpoint,
	}
}

// Failed records a failed try and when the next one is due.
func (a *DeliveryAttempt) Failed(err error, status int, next time.Time) {
	a.AttemptCount++
	a.LastError = err
	a.LastStatus = status
	a.NextRetryAt = next
}

// Succeeded records the successful try.
func (a *DeliveryAttempt) Succeeded(status int) {
	a.AttemptCount++
	a.LastError = nil
	a.LastStatus = status
	a.NextRetryAt = time.Time{}
}
