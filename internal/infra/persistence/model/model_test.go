package model

import (
	"testing"
	"time"

	"exposure/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSubscriptionModel_RoundTrip(t *testing.T) {
	limit := 3
	detection := 60
	expire := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	sub := &entity.Subscription{
		ID:                   uuid.New(),
		AppID:                "myNetapp",
		Kind:                 entity.KindMonitoringEvent,
		MonitoringType:       entity.MonitoringTypeLocationReporting,
		ReachabilityType:     entity.ReachabilityData,
		TargetUsers:          []entity.UserID{"10001", "10002"},
		CallbackEndpoint:     "http://localhost/hook",
		MaxReports:           &limit,
		ExpireAt:             &expire,
		MaximumDetectionTime: &detection,
		ReportsSent:          1,
		ReportsReserved:      1,
		Status:               entity.StatusActive,
		CreatedAt:            created,
		UpdatedAt:            created,
	}

	m := FromSubscription(sub)
	assert.Equal(t, "MonitoringEvent", m.Kind)
	assert.Equal(t, "Active", m.Status)
	assert.Equal(t, "subscriptions", m.TableName())
	assert.Equal(t, sub, m.ToEntity())
}

func TestEventModel_KeepsFilterColumns(t *testing.T) {
	subID := uuid.New()
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	event := &entity.Event{
		ID:             entity.NewEventID(subID, "7", ts),
		SubscriptionID: subID,
		Kind:           entity.KindPdnConnectionEvent,
		UserID:         "7",
		Timestamp:      ts,
	}

	m := FromEvent(event)
	assert.Equal(t, event.ID, m.ID)
	assert.Equal(t, "7", m.UserID)
	assert.Equal(t, "PdnConnectionEvent", m.Kind)
	assert.Same(t, event, m.ToEntity())
}
