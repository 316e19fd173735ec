package entity

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// eventNamespace seeds deterministic event IDs.
var eventNamespace = uuid.MustParse("6f1c7f7e-3b1a-4d6e-9a52-8f2f0c1d9e44")

// LdrType tells why a location report was produced.
type LdrType string

const (
	LdrEnteringIntoArea LdrType = "EnteringIntoArea"
	LdrMotion           LdrType = "Motion"
)

// LocationInfo is the payload of location events.
type LocationInfo struct {
	CellID        string    `json:"cell_id,omitempty"`
	ENodeBID      string    `json:"e_node_b_id,omitempty"`
	Position      orb.Point `json:"position"`
	DistanceMoved float64   `json:"distance_moved"`
	LdrType       LdrType   `json:"ldr_type"`
}

// PdnConnectionInfo is the payload of PDN connection events.
type PdnConnectionInfo struct {
	Status         ConnectionState `json:"status"`
	PreviousStatus ConnectionState `json:"previous_status"`
	Apn            string          `json:"apn"`
	PdnType        string          `json:"pdn_type"`
	IPv4Addr       string          `json:"ipv4_addr,omitempty"`
}

// Event is one match of a subscription against a snapshot. It is never mutated
// after creation; retries resend the same value.
type Event struct {
	ID             uuid.UUID          `json:"event_id"`
	SubscriptionID uuid.UUID          `json:"subscription_id"`
	Kind           SubscriptionKind   `json:"kind"`
	UserID         UserID             `json:"user_id"`
	Timestamp      time.Time          `json:"timestamp"`
	Location       *LocationInfo      `json:"location,omitempty"`
	PdnConnection  *PdnConnectionInfo `json:"pdn_connection,omitempty"`
}

// NewEventID derives the idempotency key of (subscription, user, timestamp).
func NewEventID(subscriptionID uuid.UUID, user UserID, ts time.Time) uuid.UUID {
	name := subscriptionID.String() + "|" + string(user) + "|" + strconv.FormatInt(ts.UnixNano(), 10)

	return uuid.NewSHA1(eventNamespace, []byte(name))
}

// EventFilter narrows an event log listing.
type EventFilter struct {
	SubscriptionID uuid.UUID
	UserID         UserID
	Kind           SubscriptionKind
	Limit          int
}

// Matches reports whether e passes the filter, ignoring Limit.
func (f EventFilter) Matches(e *Event) bool {
	if f.SubscriptionID != uuid.Nil && e.SubscriptionID != f.SubscriptionID {
		return false
	}
	if f.UserID != "" && e.UserID != f.UserID {
		return false
	}
	if f.Kind != "" && e.Kind != f.Kind {
		return false
	}

	return true
}
