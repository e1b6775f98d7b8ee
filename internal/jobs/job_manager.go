package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
)

// JobManager coordinates the scheduled jobs of the application behind one
// start/stop interface.
type JobManager struct {
	dispatchRecoveryJob *DispatchRecoveryJob
}

// NewJobManager creates a job manager wired to the given handlers.
func NewJobManager(
	uowFactory commands.OrderUoWFactory,
	requestDispatchHandler commands.RequestDispatchCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		dispatchRecoveryJob: NewDispatchRecoveryJob(uowFactory, requestDispatchHandler, logger),
	}
}

// StartAll starts every scheduled job.
func (jm *JobManager) StartAll() error {
	if err := jm.dispatchRecoveryJob.Start(); err != nil {
		return fmt.Errorf("failed to start dispatch recovery job: %w", err)
	}

	return nil
}

// StopAll stops every scheduled job.
func (jm *JobManager) StopAll() {
	jm.dispatchRecoveryJob.Stop()
}
