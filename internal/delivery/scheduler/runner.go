// Package scheduler runs the publish scheduler as an application delivery.
package scheduler

import (
	"context"
	"log/slog"
	"sync"

	"exposure/internal/delivery"
	"exposure/internal/domain/lifecycle"
	"exposure/internal/errors"
	"exposure/internal/usecase"

	"go.uber.org/fx"
)

// RunnerParams holds dependencies for the scheduler runner, injected by Fx.
type RunnerParams struct {
	fx.In

	Lc        fx.Lifecycle
	Logger    *slog.Logger
	PublishUC usecase.PublishUsecase
	Delivery  usecase.DeliveryUsecase
}

type runner struct {
	logger    *slog.Logger
	publishUC usecase.PublishUsecase
	delivery  usecase.DeliveryUsecase

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRunner creates the delivery that drives evaluation cycles. On stop it
// ends the cycle loop first, then waits for outstanding webhook deliveries.
func NewRunner(params RunnerParams) delivery.Delivery {
	r := &runner{
		logger:    params.Logger,
		publishUC: params.PublishUC,
		delivery:  params.Delivery,
	}

	params.Lc.Append(fx.Hook{
		OnStop: r.stop,
	})

	return r
}

func (r *runner) Serve(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	r.mu.Lock()
	r.cancel = cancel
	r.done = done
	r.mu.Unlock()

	defer close(done)

	r.logger.Info("Starting publish scheduler")

	return errors.WithStack(r.publishUC.Run(runCtx))
}

func (r *runner) stop(ctx context.Context) error {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.mu.Unlock()

	if cancel != nil {
		cancel()
		select {
		case <-done:
		case <-ctx.Done():
		}
	}

	r.logger.Info("Draining webhook deliveries")

	drainCtx, cancelDrain := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancelDrain()

	return errors.WithStack(r.delivery.Drain(drainCtx))
}
