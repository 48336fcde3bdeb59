// Package withdrawal contains the Withdrawal aggregate: a payout request
// debited from a user's balance (or a collector's commission balance) at
// creation time and later approved or rejected by an admin. Rejection
// refunds the debited amount.
package withdrawal

import (
	"errors"
	"fmt"
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"
)

var (
	// ErrWithdrawalIsNotConstructed is returned for improperly initialized instances.
	ErrWithdrawalIsNotConstructed = errors.New("Withdrawal must be created via NewWithdrawal or RestoreWithdrawal")
	// ErrChannelIsRequired is returned when no payout channel is given.
	ErrChannelIsRequired = errs.NewValueIsRequiredError("channel")
)

// Withdrawal is the aggregate root for a payout request.
//
// Invariants:
//   - amount is positive and fixed at creation
//   - orderID, when present, references the completed order the payout is
//     tied to; at most one withdrawal may reference a given order (enforced
//     by the request command via the repository)
//   - collectorID is set for commission withdrawals and nil for user ones
//   - status follows the Pending -> Approved|Rejected machine
type Withdrawal struct {
	id          kernel.UUID
	accountID   kernel.UUID
	collectorID *kernel.UUID
	orderID     *kernel.UUID

	amount       float64
	channel      string
	status       Status
	rejectReason string
	requestedAt  time.Time

	guard kernel.ConstructorGuard
}

// NewWithdrawal creates a pending withdrawal request.
// The caller is responsible for having debited the owner's balance first;
// the two always happen inside one unit of work.
func NewWithdrawal(
	id, accountID kernel.UUID,
	collectorID, orderID *kernel.UUID,
	amount float64,
	channel string,
	requestedAt time.Time,
) (*Withdrawal, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := accountID.Validate(); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%v is not greater than 0", amount))
	}
	if channel == "" {
		return nil, ErrChannelIsRequired
	}

	return &Withdrawal{
		id:          id,
		accountID:   accountID,
		collectorID: collectorID,
		orderID:     orderID,
		amount:      kernel.RoundCents(amount),
		channel:     channel,
		status:      Pending,
		requestedAt: requestedAt,
		guard:       kernel.NewConstructorGuard(),
	}, nil
}

// RestoreWithdrawal rehydrates a withdrawal from persistence.
func RestoreWithdrawal(
	id, accountID kernel.UUID,
	collectorID, orderID *kernel.UUID,
	amount float64,
	channel string,
	status Status,
	rejectReason string,
	requestedAt time.Time,
) (*Withdrawal, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	w, err := NewWithdrawal(id, accountID, collectorID, orderID, amount, channel, requestedAt)
	if err != nil {
		return nil, err
	}

	w.status = status
	w.rejectReason = rejectReason
	return w, nil
}

// Validate ensures the Withdrawal came through a constructor.
func (w *Withdrawal) Validate() error {
	if w == nil {
		return ErrWithdrawalIsNotConstructed
	}
	return w.guard.Validate(ErrWithdrawalIsNotConstructed)
}

// ID returns the withdrawal's unique identifier.
func (w *Withdrawal) ID() kernel.UUID {
	return w.id
}

// AccountID returns the owning account.
func (w *Withdrawal) AccountID() kernel.UUID {
	return w.accountID
}

// CollectorID returns the collector for commission withdrawals, nil otherwise.
func (w *Withdrawal) CollectorID() *kernel.UUID {
	return w.collectorID
}

// OrderID returns the linked completed order, or nil.
func (w *Withdrawal) OrderID() *kernel.UUID {
	return w.orderID
}

// Amount returns the requested payout amount.
func (w *Withdrawal) Amount() float64 {
	return w.amount
}

// Channel returns the payout channel (e.g. "wechat", "alipay").
func (w *Withdrawal) Channel() string {
	return w.channel
}

// Status returns the current review status.
func (w *Withdrawal) Status() Status {
	return w.status
}

// RejectReason returns the admin's reason for a rejected request.
func (w *Withdrawal) RejectReason() string {
	return w.rejectReason
}

// RequestedAt returns the creation timestamp.
func (w *Withdrawal) RequestedAt() time.Time {
	return w.requestedAt
}

// Approve releases the payout, transitioning Pending -> Approved.
func (w *Withdrawal) Approve() error {
	newStatus, err := w.status.Approve()
	if err != nil {
		return err
	}
	w.status = newStatus
	return nil
}

// Reject declines the request with a reason, transitioning Pending -> Rejected.
// The refund of the debited amount is the caller's responsibility within the
// same unit of work.
func (w *Withdrawal) Reject(reason string) error {
	newStatus, err := w.status.Reject()
	if err != nil {
		return err
	}
	w.status = newStatus
	w.rejectReason = reason
	return nil
}
