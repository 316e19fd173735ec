package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"exposure/config"
	"exposure/internal/domain/entity"
	domainerrors "exposure/internal/domain/errors"
	"exposure/internal/domain/repository"
	"exposure/internal/domain/service"
	"exposure/internal/errors"
	"exposure/internal/infra/metrics"
	"exposure/internal/usecase"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"golang.org/x/sync/semaphore"
)

type deliveryService struct {
	cfg              config.DeliveryConfig
	subscriptionRepo repository.SubscriptionRepository
	sender           service.WebhookSender
	metrics          *metrics.Metrics
	logger           *slog.Logger
	sem              *semaphore.Weighted
	perSubscription  int64
	now              func() time.Time

	mu       sync.Mutex
	closed   bool
	pending  map[uuid.UUID]struct{}
	resolved map[uuid.UUID]time.Time
	// resolvedOrder holds resolved ids oldest first, so eviction stops at the first live one
	resolvedOrder []resolvedID
	limiters      map[uuid.UUID]*subscriptionLimiter
	wg            sync.WaitGroup

	baseCtx context.Context
	cancel  context.CancelFunc
}

type resolvedID struct {
	id uuid.UUID
	at time.Time
}

// subscriptionLimiter bounds the concurrent requests of one subscription. It
// lives while at least one of its deliveries is outstanding.
type subscriptionLimiter struct {
	sem  *semaphore.Weighted
	refs int
}

// DeliveryServiceParams holds dependencies for DeliveryService, injected by Fx.
type DeliveryServiceParams struct {
	fx.In

	Config           *config.Config
	SubscriptionRepo repository.SubscriptionRepository
	Sender           service.WebhookSender
	Metrics          *metrics.Metrics
	Logger           *slog.Logger
}

// NewDeliveryService creates the webhook delivery engine.
func NewDeliveryService(params DeliveryServiceParams) usecase.DeliveryUsecase {
	return newDeliveryService(params, time.Now)
}

func newDeliveryService(params DeliveryServiceParams, now func() time.Time) *deliveryService {
	cfg := params.Config.Delivery
	baseCtx, cancel := context.WithCancel(context.Background())

	perSubscription := cfg.MaxInFlightPerSubscription
	if perSubscription <= 0 || perSubscription > cfg.MaxInFlight {
		perSubscription = max(cfg.MaxInFlight/4, 1)
	}

	return &deliveryService{
		cfg:              cfg,
		subscriptionRepo: params.SubscriptionRepo,
		sender:           params.Sender,
		metrics:          params.Metrics,
		logger:           params.Logger,
		sem:              semaphore.NewWeighted(int64(cfg.MaxInFlight)),
		perSubscription:  int64(perSubscription),
		now:              now,
		pending:          make(map[uuid.UUID]struct{}),
		resolved:         make(map[uuid.UUID]time.Time),
		limiters:         make(map[uuid.UUID]*subscriptionLimiter),
		baseCtx:          baseCtx,
		cancel:           cancel,
	}
}

// Deliver reserves a report slot for each event and starts its delivery in the
// background. Events already pending or recently delivered are skipped.
func (s *deliveryService) Deliver(ctx context.Context, events []*entity.Event) usecase.DispatchReport {
	var report usecase.DispatchReport

	s.evictResolved()

	for _, event := range events {
		switch s.admit(event.ID) {
		case entity.OutcomeDuplicate:
			report.Duplicates++
			s.metrics.DeliveriesTotal.WithLabelValues(string(entity.OutcomeDuplicate)).Inc()

			continue
		case entity.OutcomeOverflow:
			report.Overflow++
			s.metrics.DeliveriesTotal.WithLabelValues(string(entity.OutcomeOverflow)).Inc()
			s.logger.Warn("[Delivery] Pending queue full, event not delivered",
				slog.String("event_id", event.ID.String()),
				slog.String("subscription_id", event.SubscriptionID.String()),
				slog.Int("max_pending", s.cfg.MaxPending),
			)

			continue
		}

		sub, err := s.subscriptionRepo.ReserveDelivery(ctx, event.SubscriptionID)
		if err != nil {
			s.release(event.ID, false)
			report.NotDeliverable++
			s.metrics.DeliveriesTotal.WithLabelValues(string(entity.OutcomeNotDeliverable)).Inc()
			if !errors.Is(err, repository.ErrNotDeliverable) && !errors.Is(err, repository.ErrSubscriptionNotFound) {
				s.logger.Error("[Delivery] Failed to reserve report slot",
					slog.String("subscription_id", event.SubscriptionID.String()),
					slog.Any("error", err),
				)
			}

			continue
		}

		if !s.start() {
			// drained between admission and reservation
			s.release(event.ID, false)
			s.recordOutcome(event, false)
			report.Overflow++
			s.metrics.DeliveriesTotal.WithLabelValues(string(entity.OutcomeOverflow)).Inc()

			continue
		}

		report.Dispatched++
		go s.deliver(entity.NewDeliveryAttempt(event, sub.CallbackEndpoint), s.acquireLimiter(event.SubscriptionID))
	}

	return report
}

// Drain stops accepting events and waits for pending deliveries. When ctx ends
// first the remaining attempts are cancelled and their slots released.
func (s *deliveryService) Drain(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.cancel()

		return nil
	case <-ctx.Done():
		s.cancel()
		<-done

		return errors.Wrap(ctx.Err(), "drain deliveries")
	}
}

// admit marks id as pending unless it is a duplicate or the queue is full.
func (s *deliveryService) admit(id uuid.UUID) entity.AttemptOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pending[id]; ok {
		return entity.OutcomeDuplicate
	}
	if _, ok := s.resolved[id]; ok {
		return entity.OutcomeDuplicate
	}
	if s.closed || len(s.pending) >= s.cfg.MaxPending {
		return entity.OutcomeOverflow
	}

	s.pending[id] = struct{}{}

	return ""
}

// evictResolved forgets ids resolved longer than the dedup window ago. It
// touches only the evicted entries.
func (s *deliveryService) evictResolved() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	evicted := 0
	for _, entry := range s.resolvedOrder {
		if now.Sub(entry.at) <= s.cfg.DedupWindow {
			break
		}
		// a re-resolved id has a newer entry further back
		if at, ok := s.resolved[entry.id]; ok && at.Equal(entry.at) {
			delete(s.resolved, entry.id)
		}
		evicted++
	}
	if evicted > 0 {
		clear(s.resolvedOrder[:evicted])
		s.resolvedOrder = s.resolvedOrder[evicted:]
	}
}

func (s *deliveryService) acquireLimiter(subscriptionID uuid.UUID) *subscriptionLimiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, ok := s.limiters[subscriptionID]
	if !ok {
		limiter = &subscriptionLimiter{sem: semaphore.NewWeighted(s.perSubscription)}
		s.limiters[subscriptionID] = limiter
	}
	limiter.refs++

	return limiter
}

func (s *deliveryService) releaseLimiter(subscriptionID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, ok := s.limiters[subscriptionID]
	if !ok {
		return
	}
	limiter.refs--
	if limiter.refs <= 0 {
		delete(s.limiters, subscriptionID)
	}
}

func (s *deliveryService) start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	s.wg.Add(1)
	s.metrics.DeliveriesInFlight.Inc()

	return true
}

func (s *deliveryService) release(id uuid.UUID, delivered bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.pending, id)
	if delivered {
		at := s.now()
		s.resolved[id] = at
		s.resolvedOrder = append(s.resolvedOrder, resolvedID{id: id, at: at})
	}
}

// deliver sends one attempt with retries. The subscription limiter is taken
// before a global slot so a hanging endpoint holds at most its own share.
func (s *deliveryService) deliver(attempt *entity.DeliveryAttempt, limiter *subscriptionLimiter) {
	defer s.wg.Done()
	defer s.metrics.DeliveriesInFlight.Dec()
	defer s.releaseLimiter(attempt.Event.SubscriptionID)

	started := time.Now()
	event := attempt.Event

	operation := func() error {
		if err := limiter.sem.Acquire(s.baseCtx, 1); err != nil {
			return backoff.Permanent(err)
		}
		defer limiter.sem.Release(1)

		if err := s.sem.Acquire(s.baseCtx, 1); err != nil {
			return backoff.Permanent(err)
		}
		defer s.sem.Release(1)

		reqCtx, cancel := context.WithTimeout(s.baseCtx, s.cfg.RequestTimeout)
		defer cancel()

		s.metrics.DeliveryAttempts.Inc()
		resp, err := s.sender.Send(reqCtx, attempt.Endpoint, event)
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		if err != nil {
			attempt.Failed(err, status, time.Time{})
			if errors.Is(err, service.ErrInvalidEndpoint) {
				return backoff.Permanent(err)
			}

			return err
		}
		attempt.Succeeded(status)

		return nil
	}

	notify := func(err error, wait time.Duration) {
		attempt.NextRetryAt = s.now().Add(wait)
		s.logger.Warn("[Delivery] Webhook attempt failed, retrying",
			slog.String("event_id", event.ID.String()),
			slog.String("subscription_id", event.SubscriptionID.String()),
			slog.Int("attempt", attempt.AttemptCount),
			slog.Duration("retry_in", wait),
			slog.Any("error", err),
		)
	}

	err := backoff.RetryNotify(operation, s.newBackOff(), notify)
	delivered := err == nil

	s.recordOutcome(event, delivered)
	s.release(event.ID, delivered)
	s.metrics.DeliveryDuration.Observe(time.Since(started).Seconds())

	if delivered {
		s.metrics.DeliveriesTotal.WithLabelValues(string(entity.OutcomeDelivered)).Inc()
		s.logger.Debug("[Delivery] Event delivered",
			slog.String("event_id", event.ID.String()),
			slog.String("subscription_id", event.SubscriptionID.String()),
			slog.Int("attempts", attempt.AttemptCount),
		)

		return
	}

	s.metrics.DeliveriesTotal.WithLabelValues(string(entity.OutcomeDropped)).Inc()
	deliveryErr := &domainerrors.DeliveryError{
		SubscriptionID: event.SubscriptionID,
		EventID:        event.ID,
		Endpoint:       attempt.Endpoint,
		Attempts:       attempt.AttemptCount,
		StatusCode:     attempt.LastStatus,
		Err:            err,
	}
	s.logger.Warn("[Delivery] Event dropped",
		slog.String("event_id", event.ID.String()),
		slog.String("subscription_id", event.SubscriptionID.String()),
		slog.Any("error", deliveryErr),
	)
}

// recordOutcome settles the reserved slot. It runs even after Drain has
// cancelled the attempts so no reservation is leaked.
func (s *deliveryService) recordOutcome(event *entity.Event, delivered bool) {
	ctx := context.WithoutCancel(s.baseCtx)
	if _, err := s.subscriptionRepo.RecordDelivery(ctx, event.SubscriptionID, delivered); err != nil {
		s.logger.Error("[Delivery] Failed to record delivery outcome",
			slog.String("event_id", event.ID.String()),
			slog.String("subscription_id", event.SubscriptionID.String()),
			slog.Bool("delivered", delivered),
			slog.Any("error", err),
		)
	}
}

func (s *deliveryService) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.cfg.InitialInterval
	b.MaxInterval = s.cfg.MaxInterval
	b.Multiplier = s.cfg.Multiplier
	b.RandomizationFactor = s.cfg.RandomizationFactor
	b.MaxElapsedTime = 0

	retries := max(s.cfg.MaxAttempts-1, 0)

	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), s.baseCtx)
}
