package commands

import (
	"errors"
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"
)

var ErrExpireOrdersCommandIsNotConstructed = errors.New(
	"ExpireOrdersCommand must be created via NewExpireOrdersCommand constructor",
)

// ExpireOrdersCommand represents a scheduled sweep that cancels pending
// orders nobody claimed before the cutoff.
type ExpireOrdersCommand struct { //nolint:recvcheck //using for validation
	cutoff time.Time

	guard kernel.ConstructorGuard
}

// NewExpireOrdersCommand creates a new sweep command for the given cutoff.
func NewExpireOrdersCommand(cutoff time.Time) (ExpireOrdersCommand, error) {
	if cutoff.IsZero() {
		return ExpireOrdersCommand{}, errs.NewValueIsRequiredError("cutoff")
	}

	return ExpireOrdersCommand{
		cutoff: cutoff,
		guard:  kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpireOrdersCommandIsNotConstructed)
}

// Cutoff returns the booking-time threshold; pending orders older than this
// are cancelled.
func (c ExpireOrdersCommand) Cutoff() time.Time {
	return c.cutoff
}
