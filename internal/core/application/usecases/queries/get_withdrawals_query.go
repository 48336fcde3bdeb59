package queries

import (
	"errors"
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/withdrawal"
)

var ErrGetWithdrawalsQueryIsNotConstructed = errors.New(
	"GetWithdrawalsQuery must be created via a NewGetWithdrawalsQuery* constructor",
)

// GetWithdrawalsQuery retrieves withdrawal read models, scoped to one
// account or unscoped for the admin review queue.
type GetWithdrawalsQuery struct {
	accountID *kernel.UUID
	status    *withdrawal.Status

	guard kernel.ConstructorGuard
}

// NewGetWithdrawalsQueryForAccount creates a query scoped to one account.
func NewGetWithdrawalsQueryForAccount(accountID kernel.UUID, status *withdrawal.Status) (GetWithdrawalsQuery, error) {
	if err := accountID.Validate(); err != nil {
		return GetWithdrawalsQuery{}, err
	}
	return GetWithdrawalsQuery{
		accountID: &accountID,
		status:    status,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// NewGetWithdrawalsQueryAll creates an unscoped query for admin views,
// optionally narrowed to a status.
func NewGetWithdrawalsQueryAll(status *withdrawal.Status) GetWithdrawalsQuery {
	return GetWithdrawalsQuery{
		status: status,
		guard:  kernel.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through a constructor.
func (q GetWithdrawalsQuery) Validate() error {
	return q.guard.Validate(ErrGetWithdrawalsQueryIsNotConstructed)
}

// AccountID returns the account scope, or nil.
func (q GetWithdrawalsQuery) AccountID() *kernel.UUID {
	return q.accountID
}

// Status returns the status filter, or nil for all statuses.
func (q GetWithdrawalsQuery) Status() *withdrawal.Status {
	return q.status
}

// GetWithdrawalsQueryResponse is the withdrawal read model.
type GetWithdrawalsQueryResponse struct {
	ID           kernel.UUID
	AccountID    kernel.UUID
	CollectorID  *kernel.UUID
	OrderID      *kernel.UUID
	Amount       float64
	Channel      string
	Status       string
	RejectReason string
	RequestedAt  time.Time
}
