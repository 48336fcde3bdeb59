// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"github.com/alanbulan/EcoLoop/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest interface covering the repositories it
// touches, so tests mock exactly what a command can reach.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CollectorRepoFactory provides access to the collector repository within a transaction.
	CollectorRepoFactory interface {
		CollectorRepository() ports.CollectorRepository
	}

	// AccountRepoFactory provides access to the account repository within a transaction.
	AccountRepoFactory interface {
		AccountRepository() ports.AccountRepository
	}

	// WithdrawalRepoFactory provides access to the withdrawal repository within a transaction.
	WithdrawalRepoFactory interface {
		WithdrawalRepository() ports.WithdrawalRepository
	}

	// MaterialRepoFactory provides access to the material repository within a transaction.
	MaterialRepoFactory interface {
		MaterialRepository() ports.MaterialRepository
	}

	// AuditRepoFactory provides access to the audit repository within a transaction.
	AuditRepoFactory interface {
		AuditRepository() ports.AuditRepository
	}

	// NotificationRepoFactory provides access to the notification repository within a transaction.
	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// OrderUoW manages transactions for order booking and cancellation.
	// Every order mutation also writes an audit entry.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		MaterialRepoFactory
		AuditRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ScheduleUoW manages transactions for assigning and claiming orders.
	// Needs the collector repository to verify the acting collector.
	ScheduleUoW interface {
		TxManager
		OrderRepoFactory
		CollectorRepoFactory
		AuditRepoFactory
	}

	// ScheduleUoWFactory creates new schedule unit of work instances.
	ScheduleUoWFactory interface {
		Create() ScheduleUoW
	}

	// SettlementUoW manages transactions for order completion. Settlement
	// touches the order, the user's balance, the collector's commission,
	// station inventory, the audit trail, and the user's inbox, all atomically.
	SettlementUoW interface {
		TxManager
		OrderRepoFactory
		CollectorRepoFactory
		AccountRepoFactory
		MaterialRepoFactory
		AuditRepoFactory
		NotificationRepoFactory
	}

	// SettlementUoWFactory creates new settlement unit of work instances.
	SettlementUoWFactory interface {
		Create() SettlementUoW
	}

	// WithdrawalUoW manages transactions for payout requests and reviews.
	// The order repository backs the one-withdrawal-per-order check.
	WithdrawalUoW interface {
		TxManager
		WithdrawalRepoFactory
		OrderRepoFactory
		AccountRepoFactory
		CollectorRepoFactory
		AuditRepoFactory
		NotificationRepoFactory
	}

	// WithdrawalUoWFactory creates new withdrawal unit of work instances.
	WithdrawalUoWFactory interface {
		Create() WithdrawalUoW
	}

	// AccountUoW manages transactions for account sign-in and profile changes.
	AccountUoW interface {
		TxManager
		AccountRepoFactory
	}

	// AccountUoWFactory creates new account unit of work instances.
	AccountUoWFactory interface {
		Create() AccountUoW
	}

	// ExpiryUoW manages transactions for the scheduled expiry sweeps. The
	// sweeps cancel stale orders and reject stale withdrawals, refunding and
	// notifying their owners.
	ExpiryUoW interface {
		TxManager
		OrderRepoFactory
		WithdrawalRepoFactory
		AccountRepoFactory
		CollectorRepoFactory
		AuditRepoFactory
		NotificationRepoFactory
	}

	// ExpiryUoWFactory creates new expiry unit of work instances.
	ExpiryUoWFactory interface {
		Create() ExpiryUoW
	}
)
