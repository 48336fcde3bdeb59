package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/application/usecases/commands"
)

// ExpiryWindows carries the configured cutoffs for both sweeps.
type ExpiryWindows struct {
	Order      time.Duration
	Withdrawal time.Duration
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderExpiryJob      *OrderExpiryJob
	withdrawalExpiryJob *WithdrawalExpiryJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	expireOrdersHandler commands.ExpireOrdersCommandHandler,
	expireWithdrawalsHandler commands.ExpireWithdrawalsCommandHandler,
	windows ExpiryWindows,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderExpiryJob:      NewOrderExpiryJob(expireOrdersHandler, windows.Order, logger),
		withdrawalExpiryJob: NewWithdrawalExpiryJob(expireWithdrawalsHandler, windows.Withdrawal, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.orderExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start order expiry job: %w", err)
	}

	if err := jm.withdrawalExpiryJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.orderExpiryJob.Stop()
		return fmt.Errorf("failed to start withdrawal expiry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderExpiryJob.Stop()
	jm.withdrawalExpiryJob.Stop()
}
