package impl

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"exposure/internal/domain/entity"
	domainerrors "exposure/internal/domain/errors"
	"exposure/internal/domain/repository"
	"exposure/internal/domain/service"
	"exposure/internal/errors"
	"exposure/internal/infra/metrics"
	"exposure/internal/infra/persistence/memory"
	"exposure/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshotFunc func(ctx context.Context) (*entity.Snapshot, error)

func (f snapshotFunc) Snapshot(ctx context.Context) (*entity.Snapshot, error) {
	return f(ctx)
}

// snapshotSequence serves snapshots in order and repeats the last one.
func snapshotSequence(steps ...func() (*entity.Snapshot, error)) snapshotFunc {
	var mu sync.Mutex
	i := 0

	return func(context.Context) (*entity.Snapshot, error) {
		mu.Lock()
		defer mu.Unlock()

		step := steps[min(i, len(steps)-1)]
		i++

		return step()
	}
}

func snap(s *entity.Snapshot) func() (*entity.Snapshot, error) {
	return func() (*entity.Snapshot, error) { return s, nil }
}

func snapErr(err error) func() (*entity.Snapshot, error) {
	return func() (*entity.Snapshot, error) { return nil, err }
}

type recordingPublisher struct {
	mu      sync.Mutex
	batches []*service.CycleEvents
}

func (p *recordingPublisher) PublishCycleEvents(_ context.Context, batch *service.CycleEvents) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.batches = append(p.batches, batch)

	return nil
}

func (p *recordingPublisher) Close() error {
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.batches)
}

type schedulerFixture struct {
	subs      repository.SubscriptionRepository
	events    repository.EventRepository
	delivery  *deliveryService
	scheduler *PublishScheduler
	publisher *recordingPublisher
	calls     *atomic.Int32
}

func newSchedulerFixture(t *testing.T, snapshots service.SnapshotProvider) *schedulerFixture {
	t.Helper()

	cfg := testConfig()
	subs := memory.NewSubscriptionRepository()
	events := memory.NewEventRepository(cfg)
	m := metrics.New()
	calls := &atomic.Int32{}

	delivery := newDeliveryService(DeliveryServiceParams{
		Config:           cfg,
		SubscriptionRepo: subs,
		Sender:           okSender(calls),
		Metrics:          m,
		Logger:           discardLogger(),
	}, time.Now)

	publisher := &recordingPublisher{}
	scheduler := newPublishScheduler(PublishSchedulerParams{
		Config:           cfg,
		SubscriptionRepo: subs,
		EventRepo:        events,
		Snapshots:        snapshots,
		Delivery:         delivery,
		Publisher:        publisher,
		Metrics:          m,
		Logger:           discardLogger(),
	}, time.Now)

	return &schedulerFixture{
		subs:      subs,
		events:    events,
		delivery:  delivery,
		scheduler: scheduler,
		publisher: publisher,
		calls:     calls,
	}
}

func (f *schedulerFixture) subscribe(t *testing.T, sub *entity.Subscription) *entity.Subscription {
	t.Helper()

	if sub.CallbackEndpoint == "" {
		sub.CallbackEndpoint = "http://localhost/hook"
	}
	require.NoError(t, f.subs.Create(context.Background(), sub))

	return sub
}

func TestPublishScheduler_MaxReportsAcrossCycles(t *testing.T) {
	s1 := buildSnapshot(matchTime, snapshotUser{id: "1", x: 1, y: 1})
	s2 := buildSnapshot(matchTime.Add(time.Second), snapshotUser{id: "1", x: 2, y: 1})
	s3 := buildSnapshot(matchTime.Add(2*time.Second), snapshotUser{id: "1", x: 3, y: 1})
	f := newSchedulerFixture(t, snapshotSequence(snap(s1), snap(s2), snap(s3)))

	limit := 2
	sub := f.subscribe(t, &entity.Subscription{
		Kind:        entity.KindLocationReporting,
		TargetUsers: []entity.UserID{"1"},
		MaxReports:  &limit,
	})

	var dispatched int
	for range 3 {
		report := f.scheduler.RunCycle(context.Background())
		require.False(t, report.Skipped)
		dispatched += report.Dispatch.Dispatched
	}
	require.NoError(t, f.delivery.Drain(context.Background()))

	assert.Equal(t, 2, dispatched)
	assert.Equal(t, int32(2), f.calls.Load())

	got, err := f.subs.FindByID(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ReportsSent)
	assert.Equal(t, entity.StatusExhausted, got.Status)
}

func TestPublishScheduler_PdnDisconnectDeliversOnce(t *testing.T) {
	connected := func(ts time.Time) *entity.Snapshot {
		return buildSnapshot(ts, snapshotUser{id: "2", connected: true})
	}
	f := newSchedulerFixture(t, snapshotSequence(
		snap(connected(matchTime)),
		snap(connected(matchTime.Add(time.Second))),
		snap(buildSnapshot(matchTime.Add(2*time.Second), snapshotUser{id: "2"})),
	))
	f.subscribe(t, &entity.Subscription{
		Kind:        entity.KindPdnConnectionEvent,
		TargetUsers: []entity.UserID{"2"},
	})

	matched := make([]int, 0, 3)
	for range 3 {
		matched = append(matched, f.scheduler.RunCycle(context.Background()).Matched)
	}
	require.NoError(t, f.delivery.Drain(context.Background()))

	assert.Equal(t, []int{0, 0, 1}, matched)
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestPublishScheduler_SnapshotFailureSkipsCycleAndKeepsPrevious(t *testing.T) {
	f := newSchedulerFixture(t, snapshotSequence(
		snap(buildSnapshot(matchTime, snapshotUser{id: "2", connected: true})),
		snapErr(errors.New("emulator down")),
		snap(buildSnapshot(matchTime.Add(2*time.Second), snapshotUser{id: "2"})),
	))
	f.subscribe(t, &entity.Subscription{
		Kind:        entity.KindPdnConnectionEvent,
		TargetUsers: []entity.UserID{"2"},
	})

	assert.False(t, f.scheduler.RunCycle(context.Background()).Skipped)

	skipped := f.scheduler.RunCycle(context.Background())
	assert.True(t, skipped.Skipped)
	assert.Contains(t, skipped.Error, "emulator down")

	third := f.scheduler.RunCycle(context.Background())
	assert.False(t, third.Skipped)
	assert.Equal(t, 1, third.Matched)

	require.NoError(t, f.delivery.Drain(context.Background()))
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestPublishScheduler_SweepsExpiredSubscriptions(t *testing.T) {
	f := newSchedulerFixture(t, snapshotSequence(snap(buildSnapshot(matchTime, snapshotUser{id: "1"}))))
	past := time.Now().Add(-time.Minute)
	sub := f.subscribe(t, &entity.Subscription{
		Kind:        entity.KindLocationReporting,
		TargetUsers: []entity.UserID{"1"},
		ExpireAt:    &past,
	})

	report := f.scheduler.RunCycle(context.Background())
	assert.Equal(t, 1, report.Transitioned)
	assert.Zero(t, report.Matched)

	got, err := f.subs.FindByID(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusExpired, got.Status)
	require.NoError(t, f.delivery.Drain(context.Background()))
	assert.Zero(t, f.calls.Load())
}

func TestPublishScheduler_StoresAndPublishesMatchedEvents(t *testing.T) {
	f := newSchedulerFixture(t, snapshotSequence(snap(buildSnapshot(matchTime, snapshotUser{id: "1"}, snapshotUser{id: "2"}))))
	sub := f.subscribe(t, &entity.Subscription{
		Kind:        entity.KindLocationReporting,
		TargetUsers: []entity.UserID{"1", "2"},
	})

	report := f.scheduler.RunCycle(context.Background())
	assert.Equal(t, 2, report.Matched)

	logged, err := f.events.List(context.Background(), entity.EventFilter{SubscriptionID: sub.ID})
	require.NoError(t, err)
	assert.Len(t, logged, 2)

	assert.Eventually(t, func() bool { return f.publisher.count() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, f.delivery.Drain(context.Background()))
}

func TestPublishScheduler_TriggerRequiresRunningScheduler(t *testing.T) {
	f := newSchedulerFixture(t, snapshotSequence(snap(buildSnapshot(matchTime))))

	_, err := f.scheduler.Trigger()
	assert.ErrorIs(t, err, domainerrors.ErrSchedulerStopped)
}

func TestPublishScheduler_ConcurrentTriggersCoalesce(t *testing.T) {
	started := make(chan struct{}, 4)
	release := make(chan struct{})
	var cycles atomic.Int32
	provider := snapshotFunc(func(ctx context.Context) (*entity.Snapshot, error) {
		if cycles.Add(1) == 1 {
			started <- struct{}{}
			<-release
		}

		return buildSnapshot(matchTime), nil
	})
	f := newSchedulerFixture(t, provider)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.scheduler.Run(ctx) }()

	var first <-chan usecase.CycleReport
	require.Eventually(t, func() bool {
		ch, err := f.scheduler.Trigger()
		if err != nil {
			return false
		}
		first = ch

		return true
	}, time.Second, time.Millisecond)
	<-started

	// both arrive while the first cycle is still running
	second, err := f.scheduler.Trigger()
	require.NoError(t, err)
	third, err := f.scheduler.Trigger()
	require.NoError(t, err)

	close(release)

	r1 := <-first
	r2 := <-second
	r3 := <-third
	assert.NotEqual(t, r1.CycleID, r2.CycleID)
	assert.Equal(t, r2.CycleID, r3.CycleID)
	assert.Equal(t, int32(2), cycles.Load())

	cancel()
	require.NoError(t, <-done)

	_, err = f.scheduler.Trigger()
	assert.ErrorIs(t, err, domainerrors.ErrSchedulerStopped)
}
