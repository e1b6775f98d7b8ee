package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DispatchRecoveryJob sweeps for orders that are ready for pickup but still
// have no courier assignment and re-triggers the dispatch workflow for them.
// It catches orders whose in-process retries were exhausted or lost to a
// restart; the coordinator's in-flight bookkeeping keeps the sweep from
// doubling up on orders it is already working on.
type DispatchRecoveryJob struct {
	uowFactory commands.OrderUoWFactory
	handler    commands.RequestDispatchCommandHandler
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewDispatchRecoveryJob creates the recovery sweep, which runs every 30
// seconds.
func NewDispatchRecoveryJob(uowFactory commands.OrderUoWFactory,
	handler commands.RequestDispatchCommandHandler, logger *slog.Logger) *DispatchRecoveryJob {
	return &DispatchRecoveryJob{
		uowFactory: uowFactory,
		handler:    handler,
		cron:       cron.New(),
		logger:     logger.With("component", "dispatch_recovery_job"),
	}
}

// Start schedules the sweep.
func (j *DispatchRecoveryJob) Start() error {
	_, err := j.cron.AddFunc("@every 30s", j.sweep)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("dispatch recovery job started", "interval", "30s")
	return nil
}

// Stop stops the sweep.
func (j *DispatchRecoveryJob) Stop() {
	j.cron.Stop()
	j.logger.Info("dispatch recovery job stopped")
}

func (j *DispatchRecoveryJob) sweep() {
	ctx := context.Background()

	awaiting, err := j.uowFactory.Create().OrderRepository().GetAllAwaitingDispatch(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "dispatch recovery sweep failed", "error", err)
		return
	}
	if len(awaiting) == 0 {
		return
	}

	j.logger.InfoContext(ctx, "dispatch recovery sweep found waiting orders", "count", len(awaiting))
	for _, aggregate := range awaiting {
		cmd, err := commands.NewRequestDispatchCommand(aggregate.ID())
		if err != nil {
			j.logger.ErrorContext(ctx, "dispatch recovery skipped an order",
				"order_id", aggregate.ID(), "error", err)
			continue
		}
		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "dispatch recovery trigger failed",
				"order_id", aggregate.ID(), "error", err)
		}
	}
}
