// Package memory keeps subscriptions and events in process memory.
package memory

import (
	"context"
	"sync"
	"time"

	"exposure/internal/domain/entity"
	"exposure/internal/domain/repository"
	"exposure/internal/errors"

	"github.com/google/uuid"
)

// record guards one subscription. The repository map lock is never held
// while a record lock is being acquired, so sweeps and delivery callbacks on
// different subscriptions do not contend.
type record struct {
	mu  sync.Mutex
	sub *entity.Subscription
}

type subscriptionRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*record
	order   []uuid.UUID
	now     func() time.Time
}

// NewSubscriptionRepository creates an empty in-memory store.
func NewSubscriptionRepository() repository.SubscriptionRepository {
	return newSubscriptionRepository(time.Now)
}

func newSubscriptionRepository(now func() time.Time) *subscriptionRepository {
	return &subscriptionRepository{
		records: make(map[uuid.UUID]*record),
		now:     now,
	}
}

func (repo *subscriptionRepository) Create(_ context.Context, subscription *entity.Subscription) error {
	if subscription.ID == uuid.Nil {
		subscription.ID = uuid.New()
	}
	now := repo.now()
	if subscription.CreatedAt.IsZero() {
		subscription.CreatedAt = now
	}
	subscription.UpdatedAt = now
	if subscription.Status == "" {
		subscription.Status = entity.StatusActive
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, exists := repo.records[subscription.ID]; exists {
		return errors.Errorf("subscription %s already exists", subscription.ID)
	}
	repo.records[subscription.ID] = &record{sub: subscription.Clone()}
	repo.order = append(repo.order, subscription.ID)

	return nil
}

func (repo *subscriptionRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Subscription, error) {
	rec, err := repo.lookup(id)
	if err != nil {
		return nil, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	return rec.sub.Clone(), nil
}

func (repo *subscriptionRepository) List(ctx context.Context, filter entity.SubscriptionFilter) ([]*entity.Subscription, error) {
	records := repo.snapshot()

	subscriptions := make([]*entity.Subscription, 0, len(records))
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, errors.WithStack(err)
		}

		rec.mu.Lock()
		if filter.Matches(rec.sub) {
			subscriptions = append(subscriptions, rec.sub.Clone())
		}
		rec.mu.Unlock()
	}

	return subscriptions, nil
}

func (repo *subscriptionRepository) Cancel(_ context.Context, id uuid.UUID) (*entity.Subscription, error) {
	rec, err := repo.lookup(id)
	if err != nil {
		return nil, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.sub.Status == entity.StatusActive {
		rec.sub.Status = entity.StatusCancelled
		rec.sub.UpdatedAt = repo.now()
	}

	return rec.sub.Clone(), nil
}

func (repo *subscriptionRepository) AdvanceLifecycle(ctx context.Context, now time.Time) (int, error) {
	transitioned := 0
	for _, rec := range repo.snapshot() {
		if err := ctx.Err(); err != nil {
			return transitioned, errors.WithStack(err)
		}

		rec.mu.Lock()
		if next, changed := rec.sub.NextStatus(now); changed {
			rec.sub.Status = next
			rec.sub.UpdatedAt = now
			transitioned++
		}
		rec.mu.Unlock()
	}

	return transitioned, nil
}

func (repo *subscriptionRepository) ReserveDelivery(_ context.Context, id uuid.UUID) (*entity.Subscription, error) {
	rec, err := repo.lookup(id)
	if err != nil {
		return nil, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	// expiry is checked here too since the sweep may not have run yet
	if !rec.sub.HasCapacity() || rec.sub.IsExpired(repo.now()) {
		return nil, repository.ErrNotDeliverable
	}
	rec.sub.ReportsReserved++

	return rec.sub.Clone(), nil
}

func (repo *subscriptionRepository) RecordDelivery(_ context.Context, id uuid.UUID, success bool) (*entity.Subscription, error) {
	rec, err := repo.lookup(id)
	if err != nil {
		return nil, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.sub.ReportsReserved > 0 {
		rec.sub.ReportsReserved--
	}
	if success {
		rec.sub.ReportsSent++
		rec.sub.UpdatedAt = repo.now()
		if rec.sub.Status == entity.StatusActive && rec.sub.IsExhausted() {
			rec.sub.Status = entity.StatusExhausted
		}
	}

	return rec.sub.Clone(), nil
}

func (repo *subscriptionRepository) lookup(id uuid.UUID) (*record, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	rec, ok := repo.records[id]
	if !ok {
		return nil, repository.ErrSubscriptionNotFound
	}

	return rec, nil
}

// snapshot returns the records in creation order.
func (repo *subscriptionRepository) snapshot() []*record {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	records := make([]*record, 0, len(repo.order))
	for _, id := range repo.order {
		records = append(records, repo.records[id])
	}

	return records
}
