// Package jobs provides scheduled background tasks for the recycling
// platform.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to sweep stale state out of the order and withdrawal pipelines.
//
// # Available Jobs
//
// 1. OrderExpiryJob - Cancels pending orders nobody scheduled within the
// configured window and notifies the booking user.
// 2. WithdrawalExpiryJob - Rejects pending withdrawals whose review window
// lapsed, refunding the debited amount.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(expireOrdersHandler, expireWithdrawalsHandler, windows, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Both sweeps run every minute. The expiry windows themselves (24 hours for
// orders, 72 hours for withdrawals by default) come from configuration; a
// tick only touches rows that crossed the cutoff.
package jobs
