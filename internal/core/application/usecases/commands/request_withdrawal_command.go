package commands

import (
	"errors"
	"fmt"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"
)

// MaxWithdrawalAmount caps a single payout request.
const MaxWithdrawalAmount = 5000.0

var (
	ErrRequestWithdrawalCommandIsNotConstructed = errors.New(
		"RequestWithdrawalCommand must be created via NewRequestWithdrawalCommand constructor",
	)
	ErrChannelIsRequired = errs.NewValueIsRequiredError("channel")
)

// RequestWithdrawalCommand represents a payout request against a user's
// balance or, when collectorID is set, a collector's commission balance.
// An optional orderID ties the request to a completed order; each order
// supports at most one withdrawal.
type RequestWithdrawalCommand struct { //nolint:recvcheck //using for validation
	withdrawalID kernel.UUID
	accountID    kernel.UUID
	collectorID  *kernel.UUID
	orderID      *kernel.UUID
	amount       float64
	channel      string

	guard kernel.ConstructorGuard
}

// NewRequestWithdrawalCommand creates a new command to request a payout.
// Validates that the amount is positive and within the per-request cap.
func NewRequestWithdrawalCommand(
	withdrawalID, accountID kernel.UUID,
	collectorID, orderID *kernel.UUID,
	amount float64,
	channel string,
) (RequestWithdrawalCommand, error) {
	command := RequestWithdrawalCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		withdrawalID.Validate(),
		accountID.Validate(),
		command.setAmount(amount),
		command.setChannel(channel),
	); err != nil {
		return RequestWithdrawalCommand{}, err
	}

	command.withdrawalID = withdrawalID
	command.accountID = accountID
	command.collectorID = collectorID
	command.orderID = orderID
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestWithdrawalCommand) Validate() error {
	return c.guard.Validate(ErrRequestWithdrawalCommandIsNotConstructed)
}

// WithdrawalID returns the identifier the new request will be stored under.
func (c RequestWithdrawalCommand) WithdrawalID() kernel.UUID {
	return c.withdrawalID
}

// AccountID returns the owning account.
func (c RequestWithdrawalCommand) AccountID() kernel.UUID {
	return c.accountID
}

// CollectorID returns the collector for commission withdrawals, nil otherwise.
func (c RequestWithdrawalCommand) CollectorID() *kernel.UUID {
	return c.collectorID
}

// OrderID returns the completed order the payout is tied to, or nil.
func (c RequestWithdrawalCommand) OrderID() *kernel.UUID {
	return c.orderID
}

// Amount returns the requested payout amount.
func (c RequestWithdrawalCommand) Amount() float64 {
	return c.amount
}

// Channel returns the payout channel.
func (c RequestWithdrawalCommand) Channel() string {
	return c.channel
}

func (c *RequestWithdrawalCommand) setAmount(amount float64) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%v is not greater than 0", amount))
	}
	if amount > MaxWithdrawalAmount {
		return errs.NewValueIsOutOfRangeError("amount", amount, 0, MaxWithdrawalAmount)
	}
	c.amount = amount
	return nil
}

func (c *RequestWithdrawalCommand) setChannel(channel string) error {
	if channel == "" {
		return ErrChannelIsRequired
	}
	c.channel = channel
	return nil
}
