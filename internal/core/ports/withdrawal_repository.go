package ports

import (
	"context"
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/withdrawal"
)

// WithdrawalRepository defines the persistence contract for withdrawal aggregates.
type WithdrawalRepository interface {
	// Add persists a new withdrawal aggregate to storage.
	Add(ctx context.Context, aggregate *withdrawal.Withdrawal) error

	// Update persists changes to an existing withdrawal aggregate.
	Update(ctx context.Context, aggregate *withdrawal.Withdrawal) error

	// Get retrieves a withdrawal aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*withdrawal.Withdrawal, error)

	// GetByOrderID retrieves the withdrawal tied to a completed order, if any.
	// The request command uses this to enforce at most one payout per order.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*withdrawal.Withdrawal, error)

	// GetAllPendingBefore retrieves pending requests made before the cutoff.
	// Used by the expiry job to auto-reject stale requests.
	GetAllPendingBefore(ctx context.Context, cutoff time.Time) ([]*withdrawal.Withdrawal, error)
}
