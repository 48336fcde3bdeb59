package memory

import (
	"context"
	"errors"

	"github.com/alanbulan/EcoLoop/internal/core/ports"
)

// ErrNoActiveTransaction is returned by Commit and Rollback when Begin was
// not called first.
var ErrNoActiveTransaction = errors.New("no active transaction")

// UnitOfWorkFactory creates units of work over one shared store.
type UnitOfWorkFactory struct {
	store *Store
}

// NewUnitOfWorkFactory creates a factory bound to the store.
func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// Create produces a new UnitOfWork with its own transaction state.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork implements ports.UnitOfWork over the in-memory store. Begin
// takes the store lock and snapshots the tables; Commit releases the lock,
// Rollback restores the snapshot first. Holding the lock for the whole
// transaction serializes concurrent units of work, which is what makes the
// conditional order update a real arbitration point in tests.
type UnitOfWork struct {
	store    *Store
	active   bool
	snapshot tables
}

// Begin starts a transaction. Calling Begin on an active transaction is a
// no-op.
func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.active {
		return nil
	}
	uow.store.mu.Lock()
	uow.snapshot = uow.store.tables.clone()
	uow.active = true
	return nil
}

// Commit keeps all writes made since Begin and releases the store.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	uow.active = false
	uow.snapshot = tables{}
	uow.store.mu.Unlock()
	return nil
}

// Rollback restores the snapshot taken at Begin and releases the store.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	uow.store.tables = uow.snapshot
	uow.active = false
	uow.snapshot = tables{}
	uow.store.mu.Unlock()
	return nil
}

// run executes fn against the tables, locking the store for the duration
// when no transaction is active.
func (uow *UnitOfWork) run(fn func(t *tables) error) error {
	if !uow.active {
		uow.store.mu.Lock()
		defer uow.store.mu.Unlock()
	}
	return fn(&uow.store.tables)
}

// OrderRepository returns an OrderRepository bound to this unit of work.
func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &memoryOrderRepository{uow: uow}
}

// CollectorRepository returns a CollectorRepository bound to this unit of work.
func (uow *UnitOfWork) CollectorRepository() ports.CollectorRepository {
	return &memoryCollectorRepository{uow: uow}
}

// AccountRepository returns an AccountRepository bound to this unit of work.
func (uow *UnitOfWork) AccountRepository() ports.AccountRepository {
	return &memoryAccountRepository{uow: uow}
}

// WithdrawalRepository returns a WithdrawalRepository bound to this unit of work.
func (uow *UnitOfWork) WithdrawalRepository() ports.WithdrawalRepository {
	return &memoryWithdrawalRepository{uow: uow}
}

// MaterialRepository returns a MaterialRepository bound to this unit of work.
func (uow *UnitOfWork) MaterialRepository() ports.MaterialRepository {
	return &memoryMaterialRepository{uow: uow}
}

// AuditRepository returns an AuditRepository bound to this unit of work.
func (uow *UnitOfWork) AuditRepository() ports.AuditRepository {
	return &memoryAuditRepository{uow: uow}
}

// NotificationRepository returns a NotificationRepository bound to this unit of work.
func (uow *UnitOfWork) NotificationRepository() ports.NotificationRepository {
	return &memoryNotificationRepository{uow: uow}
}
