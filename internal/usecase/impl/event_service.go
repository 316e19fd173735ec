package impl

import (
	"context"

	"exposure/internal/domain/entity"
	"exposure/internal/domain/repository"
	"exposure/internal/errors"
	"exposure/internal/usecase"
)

const (
	defaultEventLimit = 100
	maxEventLimit     = 1000
)

type eventService struct {
	eventRepo repository.EventRepository
}

// NewEventService creates the event log query use case.
func NewEventService(eventRepo repository.EventRepository) usecase.EventUsecase {
	return &eventService{eventRepo: eventRepo}
}

// ListEvents returns the newest matched events passing filter
func (s *eventService) ListEvents(ctx context.Context, filter entity.EventFilter) ([]*entity.Event, error) {
	switch {
	case filter.Limit <= 0:
		filter.Limit = defaultEventLimit
	case filter.Limit > maxEventLimit:
		filter.Limit = maxEventLimit
	}

	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list events")
	}

	return events, nil
}
