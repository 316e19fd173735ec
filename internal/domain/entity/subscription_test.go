package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubscription_NextStatus(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	two := 2

	tests := []struct {
		name    string
		sub     Subscription
		want    SubscriptionStatus
		changed bool
	}{
		{name: "active unbounded", sub: Subscription{Status: StatusActive}, want: StatusActive},
		{name: "expire at now", sub: Subscription{Status: StatusActive, ExpireAt: &now}, want: StatusExpired, changed: true},
		{name: "expired", sub: Subscription{Status: StatusActive, ExpireAt: &past}, want: StatusExpired, changed: true},
		{name: "exhausted", sub: Subscription{Status: StatusActive, MaxReports: &two, ReportsSent: 2}, want: StatusExhausted, changed: true},
		{name: "cancelled stays", sub: Subscription{Status: StatusCancelled, ExpireAt: &past}, want: StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := tt.sub.NextStatus(now)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.changed, changed)
		})
	}
}

func TestSubscription_IsEvaluable(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Second)

	assert.True(t, (&Subscription{Status: StatusActive}).IsEvaluable(now))
	assert.False(t, (&Subscription{Status: StatusActive, ExpireAt: &past}).IsEvaluable(now))
	assert.False(t, (&Subscription{Status: StatusExhausted}).IsEvaluable(now))
}

func TestSubscription_HasCapacityCountsReservations(t *testing.T) {
	one := 1
	sub := &Subscription{Status: StatusActive, MaxReports: &one}
	assert.True(t, sub.HasCapacity())

	sub.ReportsReserved = 1
	assert.False(t, sub.HasCapacity())

	sub.MaxReports = nil
	assert.True(t, sub.HasCapacity())

	sub.Status = StatusCancelled
	assert.False(t, sub.HasCapacity())
}

func TestSubscription_TracksLocation(t *testing.T) {
	assert.True(t, (&Subscription{Kind: KindLocationReporting}).TracksLocation())
	assert.True(t, (&Subscription{Kind: KindMonitoringEvent, MonitoringType: MonitoringTypeLocationReporting}).TracksLocation())
	assert.False(t, (&Subscription{Kind: KindMonitoringEvent}).TracksLocation())
	assert.False(t, (&Subscription{Kind: KindPdnConnectionEvent}).TracksLocation())
}

func TestSubscription_CloneIsDeep(t *testing.T) {
	limit := 3
	expire := time.Now()
	sub := &Subscription{TargetUsers: []UserID{"1"}, MaxReports: &limit, ExpireAt: &expire}

	clone := sub.Clone()
	clone.TargetUsers[0] = "2"
	*clone.MaxReports = 9
	*clone.ExpireAt = expire.Add(time.Hour)

	assert.Equal(t, UserID("1"), sub.TargetUsers[0])
	assert.Equal(t, 3, *sub.MaxReports)
	assert.Equal(t, expire, *sub.ExpireAt)
	assert.Nil(t, (*Subscription)(nil).Clone())
}

func TestSubscriptionKind_IsValid(t *testing.T) {
	assert.True(t, KindPdnConnectionEvent.IsValid())
	assert.True(t, KindMonitoringEvent.IsValid())
	assert.False(t, SubscriptionKind("Paging").IsValid())
	assert.True(t, ReachabilityType("").IsValid())
	assert.False(t, ReachabilityType("VOICE").IsValid())
}
