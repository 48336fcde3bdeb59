package commands

import (
	"errors"
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"
)

var ErrExpireWithdrawalsCommandIsNotConstructed = errors.New(
	"ExpireWithdrawalsCommand must be created via NewExpireWithdrawalsCommand constructor",
)

// ExpireWithdrawalsCommand represents a scheduled sweep that auto-rejects
// payout requests no admin reviewed before the cutoff, refunding them.
type ExpireWithdrawalsCommand struct { //nolint:recvcheck //using for validation
	cutoff time.Time

	guard kernel.ConstructorGuard
}

// NewExpireWithdrawalsCommand creates a new sweep command for the given cutoff.
func NewExpireWithdrawalsCommand(cutoff time.Time) (ExpireWithdrawalsCommand, error) {
	if cutoff.IsZero() {
		return ExpireWithdrawalsCommand{}, errs.NewValueIsRequiredError("cutoff")
	}

	return ExpireWithdrawalsCommand{
		cutoff: cutoff,
		guard:  kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireWithdrawalsCommand) Validate() error {
	return c.guard.Validate(ErrExpireWithdrawalsCommandIsNotConstructed)
}

// Cutoff returns the request-time threshold; pending requests older than
// this are rejected and refunded.
func (c ExpireWithdrawalsCommand) Cutoff() time.Time {
	return c.cutoff
}
