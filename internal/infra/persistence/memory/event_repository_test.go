package memory

import (
	"context"
	"testing"

	"exposure/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEvent(sub uuid.UUID, user entity.UserID) *entity.Event {
	return &entity.Event{
		ID:             uuid.New(),
		SubscriptionID: sub,
		Kind:           entity.KindLocationReporting,
		UserID:         user,
		Timestamp:      baseTime,
	}
}

func TestEventRepository_ListNewestFirstWithinCapacity(t *testing.T) {
	repo := newEventRepository(3)
	ctx := context.Background()
	sub := uuid.New()

	events := []*entity.Event{newEvent(sub, "1"), newEvent(sub, "2"), newEvent(sub, "3"), newEvent(sub, "4")}
	require.NoError(t, repo.Append(ctx, events[:2]))
	require.NoError(t, repo.Append(ctx, events[2:]))

	got, err := repo.List(ctx, entity.EventFilter{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, events[3].ID, got[0].ID)
	assert.Equal(t, events[2].ID, got[1].ID)
	assert.Equal(t, events[1].ID, got[2].ID)
}

func TestEventRepository_ListFilterAndLimit(t *testing.T) {
	repo := newEventRepository(10)
	ctx := context.Background()
	subA, subB := uuid.New(), uuid.New()

	require.NoError(t, repo.Append(ctx, []*entity.Event{
		newEvent(subA, "1"), newEvent(subB, "1"), newEvent(subA, "2"), newEvent(subA, "1"),
	}))

	got, err := repo.List(ctx, entity.EventFilter{SubscriptionID: subA})
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = repo.List(ctx, entity.EventFilter{UserID: "1", Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, subA, got[0].SubscriptionID)
	assert.Equal(t, subB, got[1].SubscriptionID)
}

func TestEventRepository_EmptyList(t *testing.T) {
	repo := newEventRepository(2)

	got, err := repo.List(context.Background(), entity.EventFilter{})
	require.NoError(t, err)
	assert.Empty(t, got)
}
