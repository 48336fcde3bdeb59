package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// WithdrawalExpiryJob auto-rejects pending withdrawals whose review window
// lapsed. The rejection refunds the amount debited at request time.
type WithdrawalExpiryJob struct {
	handler commands.ExpireWithdrawalsCommandHandler
	window  time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewWithdrawalExpiryJob creates the sweep with the given review window.
func NewWithdrawalExpiryJob(
	handler commands.ExpireWithdrawalsCommandHandler,
	window time.Duration,
	logger *slog.Logger,
) *WithdrawalExpiryJob {
	return &WithdrawalExpiryJob{
		handler: handler,
		window:  window,
		cron:    cron.New(),
		logger:  logger.With("component", "withdrawal_expiry_job"),
	}
}

// Start schedules the sweep to run every minute.
func (j *WithdrawalExpiryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewExpireWithdrawalsCommand(time.Now().UTC().Add(-j.window))
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Withdrawal expiry command rejected", "error", cmdErr)
			return
		}

		rejected, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Withdrawal expiry sweep failed", "error", handleErr)
			return
		}
		if rejected > 0 {
			j.logger.InfoContext(ctx, "Rejected stale pending withdrawals", "count", rejected)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Withdrawal expiry job started", "window", j.window.String())
	return nil
}

// Stop stops the sweep.
func (j *WithdrawalExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Withdrawal expiry job stopped")
}
