package impl

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"exposure/config"
	"exposure/internal/domain/entity"
	domainerrors "exposure/internal/domain/errors"
	"exposure/internal/domain/repository"
	"exposure/internal/domain/service"
	"exposure/internal/errors"
	"exposure/internal/infra/metrics"
	"exposure/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// PublishScheduler runs evaluation cycles: lifecycle sweep, snapshot, match,
// dispatch. Cycles run one at a time on the goroutine executing Run.
type PublishScheduler struct {
	cfg              config.SchedulerConfig
	subscriptionRepo repository.SubscriptionRepository
	eventRepo        repository.EventRepository
	snapshots        service.SnapshotProvider
	delivery         usecase.DeliveryUsecase
	publisher        service.EventPublisher
	matcher          *Matcher
	metrics          *metrics.Metrics
	logger           *slog.Logger
	now              func() time.Time

	running atomic.Bool
	kick    chan struct{}

	waitMu  sync.Mutex
	waiters []chan usecase.CycleReport

	cycleMu sync.Mutex
	prev    *entity.Snapshot

	publishWg sync.WaitGroup
}

// PublishSchedulerParams holds dependencies for PublishScheduler, injected by Fx.
type PublishSchedulerParams struct {
	fx.In

	Config           *config.Config
	SubscriptionRepo repository.SubscriptionRepository
	EventRepo        repository.EventRepository
	Snapshots        service.SnapshotProvider
	Delivery         usecase.DeliveryUsecase
	Publisher        service.EventPublisher
	Metrics          *metrics.Metrics
	Logger           *slog.Logger
}

// NewPublishScheduler creates the scheduler. It does nothing until Run is called.
func NewPublishScheduler(params PublishSchedulerParams) usecase.PublishUsecase {
	return newPublishScheduler(params, time.Now)
}

func newPublishScheduler(params PublishSchedulerParams, now func() time.Time) *PublishScheduler {
	return &PublishScheduler{
		cfg:              params.Config.Scheduler,
		subscriptionRepo: params.SubscriptionRepo,
		eventRepo:        params.EventRepo,
		snapshots:        params.Snapshots,
		delivery:         params.Delivery,
		publisher:        params.Publisher,
		matcher:          NewMatcher(),
		metrics:          params.Metrics,
		logger:           params.Logger,
		now:              now,
		kick:             make(chan struct{}, 1),
	}
}

// Run executes cycles on the periodic timer and on triggers until ctx is done.
func (s *PublishScheduler) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return errors.New("publish scheduler already running")
	}
	defer func() {
		s.abandonWaiters()
		s.publishWg.Wait()
	}()

	var tick <-chan time.Time
	if s.cfg.Interval > 0 {
		ticker := time.NewTicker(s.cfg.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	s.logger.Info("[Scheduler] Started",
		slog.Duration("interval", s.cfg.Interval),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("[Scheduler] Stopped")

			return nil
		case <-tick:
			s.runAndNotify(ctx)
		case <-s.kick:
			s.runAndNotify(ctx)
		}
	}
}

// Trigger queues an immediate cycle. While one is queued, further triggers
// join it and receive the same report.
func (s *PublishScheduler) Trigger() (<-chan usecase.CycleReport, error) {
	ch := make(chan usecase.CycleReport, 1)

	s.waitMu.Lock()
	if !s.running.Load() {
		s.waitMu.Unlock()

		return nil, domainerrors.ErrSchedulerStopped
	}
	s.waiters = append(s.waiters, ch)
	s.waitMu.Unlock()

	select {
	case s.kick <- struct{}{}:
	default:
	}

	return ch, nil
}

// runAndNotify runs one cycle and hands its report to every trigger that was
// queued before it started. A timer cycle also serves pending triggers.
func (s *PublishScheduler) runAndNotify(ctx context.Context) {
	select {
	case <-s.kick:
	default:
	}

	s.waitMu.Lock()
	waiters := s.waiters
	s.waiters = nil
	s.waitMu.Unlock()

	report := s.RunCycle(ctx)
	for _, ch := range waiters {
		ch <- report
	}
}

// abandonWaiters marks the scheduler stopped and closes the channels of
// triggers that will never run.
func (s *PublishScheduler) abandonWaiters() {
	s.waitMu.Lock()
	s.running.Store(false)
	waiters := s.waiters
	s.waiters = nil
	s.waitMu.Unlock()

	for _, ch := range waiters {
		close(ch)
	}
}

// RunCycle performs one evaluation cycle. A snapshot failure skips the cycle
// and keeps the previous snapshot for edge detection.
func (s *PublishScheduler) RunCycle(ctx context.Context) usecase.CycleReport {
	s.cycleMu.Lock()
	defer s.cycleMu.Unlock()

	report := usecase.CycleReport{
		CycleID:   uuid.NewString(),
		StartedAt: s.now(),
	}
	logger := s.logger.With(slog.String("cycle_id", report.CycleID))

	cycleCtx, cancel := context.WithTimeout(ctx, s.cfg.CycleTimeout)
	defer cancel()

	transitioned, err := s.subscriptionRepo.AdvanceLifecycle(cycleCtx, report.StartedAt)
	if err != nil {
		return s.fail(logger, report, errors.Wrap(err, "advance subscription lifecycle"))
	}
	report.Transitioned = transitioned

	snapshot, err := s.snapshots.Snapshot(cycleCtx)
	if err == nil && snapshot == nil {
		err = errors.New("provider returned no snapshot")
	}
	if err != nil {
		snapErr := domainerrors.NewSnapshotUnavailableError(err)
		report.Skipped = true
		report.Error = snapErr.Error()
		s.metrics.CyclesTotal.WithLabelValues(metrics.CycleSkipped).Inc()
		logger.Warn("[Scheduler] Cycle skipped",
			slog.Any("error", snapErr),
		)

		return report
	}
	report.SnapshotAt = snapshot.Timestamp

	active, err := s.subscriptionRepo.List(cycleCtx, entity.SubscriptionFilter{Status: entity.StatusActive})
	if err != nil {
		return s.fail(logger, report, errors.Wrap(err, "list active subscriptions"))
	}
	report.Subscriptions = len(active)
	s.metrics.SubscriptionsActive.Set(float64(len(active)))

	events := s.matcher.Match(s.prev, snapshot, active, s.now())
	s.prev = snapshot
	report.Matched = len(events)
	for _, event := range events {
		s.metrics.EventsMatchedTotal.WithLabelValues(string(event.Kind)).Inc()
	}

	if len(events) > 0 {
		report.Dispatch = s.delivery.Deliver(cycleCtx, events)

		if err := s.eventRepo.Append(cycleCtx, events); err != nil {
			logger.Error("[Scheduler] Failed to store matched events",
				slog.Int("events", len(events)),
				slog.Any("error", err),
			)
		}

		s.publish(ctx, report, events)
	}

	s.metrics.CyclesTotal.WithLabelValues(metrics.CycleOK).Inc()
	logger.Info("[Scheduler] Cycle completed",
		slog.Int("transitioned", report.Transitioned),
		slog.Int("subscriptions", report.Subscriptions),
		slog.Int("matched", report.Matched),
		slog.Int("dispatched", report.Dispatch.Dispatched),
		slog.Int("duplicates", report.Dispatch.Duplicates),
		slog.Int("not_deliverable", report.Dispatch.NotDeliverable),
		slog.Int("overflow", report.Dispatch.Overflow),
	)

	return report
}

func (s *PublishScheduler) fail(logger *slog.Logger, report usecase.CycleReport, err error) usecase.CycleReport {
	report.Skipped = true
	report.Error = err.Error()
	s.metrics.CyclesTotal.WithLabelValues(metrics.CycleFailed).Inc()
	logger.Error("[Scheduler] Cycle failed", slog.Any("error", err))

	return report
}

// publish forwards the cycle's events to the analytics sink without holding
// up the next cycle.
func (s *PublishScheduler) publish(ctx context.Context, report usecase.CycleReport, events []*entity.Event) {
	batch := &service.CycleEvents{
		CycleID:   report.CycleID,
		Timestamp: report.SnapshotAt.UTC().Format(time.RFC3339Nano),
		Events:    events,
	}

	s.publishWg.Add(1)
	go func() {
		defer s.publishWg.Done()

		if err := s.publisher.PublishCycleEvents(context.WithoutCancel(ctx), batch); err != nil {
			s.logger.Warn("[Scheduler] Failed to publish cycle events",
				slog.String("cycle_id", batch.CycleID),
				slog.Int("events", len(batch.Events)),
				slog.Any("error", err),
			)
		}
	}()
}
