package impl

import (
	"context"
	"testing"
	"time"

	"exposure/internal/domain/entity"
	domainerrors "exposure/internal/domain/errors"
	"exposure/internal/domain/repository"
	"exposure/internal/errors"
	mockRepo "exposure/internal/mocks/repository"
	"exposure/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func validInput() *usecase.CreateSubscriptionInput {
	return &usecase.CreateSubscriptionInput{
		Kind:             entity.KindLocationReporting,
		TargetUsers:      []entity.UserID{"1", "2", "1"},
		CallbackEndpoint: "http://localhost:8001/hook",
		MaxReports:       intPtr(3),
	}
}

func TestSubscriptionService_CreateSubscription(t *testing.T) {
	mockSubRepo := mockRepo.NewMockSubscriptionRepository(t)
	svc := newSubscriptionService(mockSubRepo, func() time.Time { return matchTime })

	ctx := context.Background()
	mockSubRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Subscription")).
		Return(nil)

	sub, err := svc.CreateSubscription(ctx, validInput())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, sub.ID)
	assert.Equal(t, entity.StatusActive, sub.Status)
	assert.Equal(t, []entity.UserID{"1", "2"}, sub.TargetUsers)
	assert.Equal(t, matchTime, sub.CreatedAt)
	assert.Zero(t, sub.ReportsSent)
}

func TestSubscriptionService_CreateMonitoringEvent(t *testing.T) {
	mockSubRepo := mockRepo.NewMockSubscriptionRepository(t)
	svc := newSubscriptionService(mockSubRepo, func() time.Time { return matchTime })

	ctx := context.Background()
	mockSubRepo.EXPECT().Create(ctx, mock.Anything).Return(nil)

	expire := matchTime.Add(time.Hour)
	sub, err := svc.CreateSubscription(ctx, &usecase.CreateSubscriptionInput{
		AppID:            "myNetapp",
		Kind:             entity.KindMonitoringEvent,
		MonitoringType:   entity.MonitoringTypeLocationReporting,
		ReachabilityType: entity.ReachabilityData,
		TargetUsers:      []entity.UserID{"10003"},
		CallbackEndpoint: "https://netapp.example/callback",
		ExpireAt:         &expire,
	})
	require.NoError(t, err)
	assert.Equal(t, "myNetapp", sub.AppID)
	assert.True(t, sub.TracksLocation())
}

func TestSubscriptionService_CreateSubscription_ValidationErrors(t *testing.T) {
	past := matchTime.Add(-time.Second)

	tests := []struct {
		name   string
		mutate func(in *usecase.CreateSubscriptionInput)
		detail string
	}{
		{"unknown kind", func(in *usecase.CreateSubscriptionInput) { in.Kind = "Teleport" }, "unsupported kind"},
		{"no users", func(in *usecase.CreateSubscriptionInput) { in.TargetUsers = nil }, "TargetUsers is required"},
		{"empty user id", func(in *usecase.CreateSubscriptionInput) { in.TargetUsers = []entity.UserID{""} }, "is required"},
		{"missing endpoint", func(in *usecase.CreateSubscriptionInput) { in.CallbackEndpoint = "" }, "CallbackEndpoint is required"},
		{"relative endpoint", func(in *usecase.CreateSubscriptionInput) { in.CallbackEndpoint = "/hook" }, "URL"},
		{"ftp endpoint", func(in *usecase.CreateSubscriptionInput) { in.CallbackEndpoint = "ftp://host/hook" }, "http or https"},
		{"zero max reports", func(in *usecase.CreateSubscriptionInput) { in.MaxReports = intPtr(0) }, "MaxReports must be at least 1"},
		{"negative max reports", func(in *usecase.CreateSubscriptionInput) { in.MaxReports = intPtr(-2) }, "MaxReports"},
		{"expired already", func(in *usecase.CreateSubscriptionInput) { in.ExpireAt = &past }, "future"},
		{"monitoring type on plain kind", func(in *usecase.CreateSubscriptionInput) {
			in.MonitoringType = entity.MonitoringTypeLocationReporting
		}, "monitoring type only applies"},
		{"monitoring event without type", func(in *usecase.CreateSubscriptionInput) { in.Kind = entity.KindMonitoringEvent }, "unsupported monitoring type"},
		{"bad reachability", func(in *usecase.CreateSubscriptionInput) { in.ReachabilityType = "VOICE" }, "reachability"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSubRepo := mockRepo.NewMockSubscriptionRepository(t)
			svc := newSubscriptionService(mockSubRepo, func() time.Time { return matchTime })

			input := validInput()
			tt.mutate(input)

			sub, err := svc.CreateSubscription(context.Background(), input)
			require.Error(t, err)
			assert.Nil(t, sub)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
			assert.Contains(t, err.Error(), tt.detail)
		})
	}
}

func TestSubscriptionService_CreateSubscription_NilInput(t *testing.T) {
	svc := newSubscriptionService(mockRepo.NewMockSubscriptionRepository(t), time.Now)

	_, err := svc.CreateSubscription(context.Background(), nil)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestSubscriptionService_CreateSubscription_RepositoryError(t *testing.T) {
	mockSubRepo := mockRepo.NewMockSubscriptionRepository(t)
	svc := newSubscriptionService(mockSubRepo, time.Now)

	ctx := context.Background()
	mockSubRepo.EXPECT().Create(ctx, mock.Anything).Return(errors.New("connection refused"))

	_, err := svc.CreateSubscription(ctx, validInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create subscription")
}

func TestSubscriptionService_GetSubscription_NotFound(t *testing.T) {
	mockSubRepo := mockRepo.NewMockSubscriptionRepository(t)
	svc := newSubscriptionService(mockSubRepo, time.Now)

	ctx := context.Background()
	id := uuid.New()
	mockSubRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrSubscriptionNotFound)

	_, err := svc.GetSubscription(ctx, id)
	assert.ErrorIs(t, err, domainerrors.ErrSubscriptionNotFound)
}

func TestSubscriptionService_CancelSubscription(t *testing.T) {
	mockSubRepo := mockRepo.NewMockSubscriptionRepository(t)
	svc := newSubscriptionService(mockSubRepo, time.Now)

	ctx := context.Background()
	id := uuid.New()
	cancelled := &entity.Subscription{ID: id, Status: entity.StatusCancelled}
	mockSubRepo.EXPECT().Cancel(ctx, id).Return(cancelled, nil).Twice()

	first, err := svc.CancelSubscription(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, first.Status)

	second, err := svc.CancelSubscription(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, second.Status)
}

func TestSubscriptionService_CancelSubscription_NotFound(t *testing.T) {
	mockSubRepo := mockRepo.NewMockSubscriptionRepository(t)
	svc := newSubscriptionService(mockSubRepo, time.Now)

	ctx := context.Background()
	id := uuid.New()
	mockSubRepo.EXPECT().Cancel(ctx, id).Return(nil, repository.ErrSubscriptionNotFound)

	_, err := svc.CancelSubscription(ctx, id)
	assert.ErrorIs(t, err, domainerrors.ErrSubscriptionNotFound)
}

func TestSubscriptionService_ListSubscriptions(t *testing.T) {
	mockSubRepo := mockRepo.NewMockSubscriptionRepository(t)
	svc := newSubscriptionService(mockSubRepo, time.Now)

	ctx := context.Background()
	filter := entity.SubscriptionFilter{Kind: entity.KindPdnConnectionEvent}
	expected := []*entity.Subscription{{ID: uuid.New(), Kind: entity.KindPdnConnectionEvent}}
	mockSubRepo.EXPECT().List(ctx, filter).Return(expected, nil)

	got, err := svc.ListSubscriptions(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}
