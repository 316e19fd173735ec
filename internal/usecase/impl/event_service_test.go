package impl

import (
	"context"
	"testing"

	"exposure/internal/domain/entity"
	"exposure/internal/errors"
	mockRepo "exposure/internal/mocks/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventService_ListEvents_ClampsLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"default", 0, defaultEventLimit},
		{"negative", -5, defaultEventLimit},
		{"within bounds", 20, 20},
		{"too large", 5000, maxEventLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mockRepo.NewMockEventRepository(t)
			svc := NewEventService(repo)

			ctx := context.Background()
			subID := uuid.New()
			repo.EXPECT().
				List(ctx, entity.EventFilter{SubscriptionID: subID, Limit: tt.want}).
				Return([]*entity.Event{}, nil)

			events, err := svc.ListEvents(ctx, entity.EventFilter{SubscriptionID: subID, Limit: tt.limit})
			require.NoError(t, err)
			assert.Empty(t, events)
		})
	}
}

func TestEventService_ListEvents_RepositoryError(t *testing.T) {
	repo := mockRepo.NewMockEventRepository(t)
	svc := NewEventService(repo)

	ctx := context.Background()
	repo.EXPECT().List(ctx, entity.EventFilter{Limit: defaultEventLimit}).Return(nil, errors.New("db down"))

	_, err := svc.ListEvents(ctx, entity.EventFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list events")
}
