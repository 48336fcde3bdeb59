package commands

import (
	"errors"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"
)

var (
	ErrSignInCommandIsNotConstructed = errors.New(
		"SignInCommand must be created via NewSignInCommand constructor",
	)
	ErrOpenIDIsRequired = errs.NewValueIsRequiredError("openID")
)

// SignInCommand represents a login with an external identity. First-time
// identities are auto-registered, so sign-in always yields an account.
type SignInCommand struct { //nolint:recvcheck //using for validation
	openID string
	name   string

	guard kernel.ConstructorGuard
}

// NewSignInCommand creates a new sign-in command for an external identity.
func NewSignInCommand(openID, name string) (SignInCommand, error) {
	if openID == "" {
		return SignInCommand{}, ErrOpenIDIsRequired
	}

	return SignInCommand{
		openID: openID,
		name:   name,
		guard:  kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SignInCommand) Validate() error {
	return c.guard.Validate(ErrSignInCommandIsNotConstructed)
}

// OpenID returns the external identity.
func (c SignInCommand) OpenID() string {
	return c.openID
}

// Name returns the optional display name used when auto-registering.
func (c SignInCommand) Name() string {
	return c.name
}
