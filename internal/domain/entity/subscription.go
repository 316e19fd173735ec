// Package entity contains the core business objects of the project.
package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// SubscriptionKind is the event type a subscription asks for.
type SubscriptionKind string

const (
	KindPdnConnectionEvent SubscriptionKind = "PdnConnectionEvent"
	KindLocationReporting  SubscriptionKind = "LocationReporting"
	KindMonitoringEvent    SubscriptionKind = "MonitoringEvent"
)

// IsValid reports whether k is a supported kind.
func (k SubscriptionKind) IsValid() bool {
	switch k {
	case KindPdnConnectionEvent, KindLocationReporting, KindMonitoringEvent:
		return true
	default:
		return false
	}
}

// MonitoringType parameterizes MonitoringEvent subscriptions.
type MonitoringType string

const MonitoringTypeLocationReporting MonitoringType = "LOCATION_REPORTING"

// ReachabilityType gates location reports on the user's reachability.
type ReachabilityType string

const (
	ReachabilityData ReachabilityType = "DATA"
	ReachabilitySMS  ReachabilityType = "SMS"
)

// IsValid reports whether r is empty or a supported reachability type.
func (r ReachabilityType) IsValid() bool {
	return r == "" || r == ReachabilityData || r == ReachabilitySMS
}

// SubscriptionStatus is the lifecycle state of a subscription.
type SubscriptionStatus string

const (
	StatusActive    SubscriptionStatus = "Active"
	StatusExpired   SubscriptionStatus = "Expired"
	StatusExhausted SubscriptionStatus = "Exhausted"
	StatusCancelled SubscriptionStatus = "Cancelled"
)

// IsTerminal reports whether the status can never change again.
func (s SubscriptionStatus) IsTerminal() bool {
	return s == StatusExpired || s == StatusExhausted || s == StatusCancelled
}

// Subscription is a client's standing request for network events.
type Subscription struct {
	ID                   uuid.UUID          `json:"id"`
	AppID                string             `json:"app_id,omitempty"` // 3GPP scsAsId of the owning application
	Kind                 SubscriptionKind   `json:"kind"`
	MonitoringType       MonitoringType     `json:"monitoring_type,omitempty"`
	ReachabilityType     ReachabilityType   `json:"reachability_type,omitempty"`
	TargetUsers          []UserID           `json:"target_users"`
	CallbackEndpoint     string             `json:"callback_endpoint"`
	MaxReports           *int               `json:"max_reports,omitempty"`
	ExpireAt             *time.Time         `json:"expire_at,omitempty"`
	MaximumDetectionTime *int               `json:"maximum_detection_time,omitempty"`
	ReportsSent          int                `json:"reports_sent"`
	ReportsReserved      int                `json:"-"` // slots held by in-flight deliveries
	Status               SubscriptionStatus `json:"status"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}

// IsExpired reports whether now is at or past ExpireAt.
func (s *Subscription) IsExpired(now time.Time) bool {
	return s.ExpireAt != nil && !now.Before(*s.ExpireAt)
}

// IsExhausted reports whether every allowed report has been sent.
func (s *Subscription) IsExhausted() bool {
	return s.MaxReports != nil && s.ReportsSent >= *s.MaxReports
}

// IsEvaluable reports whether the matcher may produce events for s at now.
func (s *Subscription) IsEvaluable(now time.Time) bool {
	return s.Status == StatusActive && !s.IsExpired(now) && !s.IsExhausted()
}

// NextStatus returns the status s should move to at now, and whether it changed.
// Terminal subscriptions never move.
func (s *Subscription) NextStatus(now time.Time) (SubscriptionStatus, bool) {
	if s.Status != StatusActive {
		return s.Status, false
	}
	if s.IsExpired(now) {
		return StatusExpired, true
	}
	if s.IsExhausted() {
		return StatusExhausted, true
	}

	return s.Status, false
}

// HasCapacity reports whether another delivery slot can be reserved.
func (s *Subscription) HasCapacity() bool {
	if s.Status != StatusActive {
		return false
	}

	return s.MaxReports == nil || s.ReportsSent+s.ReportsReserved < *s.MaxReports
}

// TracksLocation reports whether s asks for periodic location reports.
func (s *Subscription) TracksLocation() bool {
	switch s.Kind {
	case KindLocationReporting:
		return true
	case KindMonitoringEvent:
		return s.MonitoringType == MonitoringTypeLocationReporting
	default:
		return false
	}
}

// HasTarget reports whether user is one of the subscription's targets.
func (s *Subscription) HasTarget(user UserID) bool {
	return slices.Contains(s.TargetUsers, user)
}

// Clone returns a deep copy so callers never share store-owned memory.
func (s *Subscription) Clone() *Subscription {
	if s == nil {
		return nil
	}

	c := *s
	c.TargetUsers = slices.Clone(s.TargetUsers)
	if s.MaxReports != nil {
		v := *s.MaxReports
		c.MaxReports = &v
	}
	if s.ExpireAt != nil {
		v := *s.ExpireAt
		c.ExpireAt = &v
	}
	if s.MaximumDetectionTime != nil {
		v := *s.MaximumDetectionTime
		c.MaximumDetectionTime = &v
	}

	return &c
}

// SubscriptionFilter narrows a subscription listing; zero fields match everything.
type SubscriptionFilter struct {
	Kind   SubscriptionKind
	Status SubscriptionStatus
	UserID UserID
	AppID  string
}

// Matches reports whether s passes the filter.
func (f SubscriptionFilter) Matches(s *Subscription) bool {
	if f.Kind != "" && s.Kind != f.Kind {
		return false
	}
	if f.Status != "" && s.Status != f.Status {
		return false
	}
	if f.UserID != "" && !s.HasTarget(f.UserID) {
		return false
	}
	if f.AppID != "" && s.AppID != f.AppID {
		return false
	}

	return true
}
