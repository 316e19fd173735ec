package memory

import (
	"context"
	"sync"

	"exposure/config"
	"exposure/internal/domain/entity"
	"exposure/internal/domain/repository"
)

// eventRepository is a bounded ring of the most recent events.
type eventRepository struct {
	mu     sync.RWMutex
	events []*entity.Event
	next   int
	full   bool
}

// NewEventRepository creates an event log holding storage.eventLogSize events.
func NewEventRepository(cfg *config.Config) repository.EventRepository {
	return newEventRepository(cfg.Storage.EventLogSize)
}

func newEventRepository(capacity int) *eventRepository {
	if capacity <= 0 {
		capacity = 1
	}

	return &eventRepository{events: make([]*entity.Event, capacity)}
}

func (repo *eventRepository) Append(_ context.Context, events []*entity.Event) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, event := range events {
		repo.events[repo.next] = event
		repo.next = (repo.next + 1) % len(repo.events)
		if repo.next == 0 {
			repo.full = true
		}
	}

	return nil
}

func (repo *eventRepository) List(_ context.Context, filter entity.EventFilter) ([]*entity.Event, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	size := repo.next
	if repo.full {
		size = len(repo.events)
	}

	result := make([]*entity.Event, 0)
	for i := 1; i <= size; i++ {
		idx := (repo.next - i + len(repo.events)) % len(repo.events)
		event := repo.events[idx]
		if !filter.Matches(event) {
			continue
		}
		result = append(result, event)
		if filter.Limit > 0 && len(result) == filter.Limit {
			break
		}
	}

	return result, nil
}
