package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderExpiryJob cancels pending orders that outlived the expiry window.
// An order nobody assigned or claimed within the window is dead weight in
// every collector's pool.
type OrderExpiryJob struct {
	handler commands.ExpireOrdersCommandHandler
	window  time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderExpiryJob creates the sweep with the given expiry window.
func NewOrderExpiryJob(
	handler commands.ExpireOrdersCommandHandler,
	window time.Duration,
	logger *slog.Logger,
) *OrderExpiryJob {
	return &OrderExpiryJob{
		handler: handler,
		window:  window,
		cron:    cron.New(),
		logger:  logger.With("component", "order_expiry_job"),
	}
}

// Start schedules the sweep to run every minute.
func (j *OrderExpiryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewExpireOrdersCommand(time.Now().UTC().Add(-j.window))
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Order expiry command rejected", "error", cmdErr)
			return
		}

		expired, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Order expiry sweep failed", "error", handleErr)
			return
		}
		if expired > 0 {
			j.logger.InfoContext(ctx, "Expired stale pending orders", "count", expired)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order expiry job started", "window", j.window.String())
	return nil
}

// Stop stops the sweep.
func (j *OrderExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order expiry job stopped")
}
