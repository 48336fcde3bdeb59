package commands

import (
	"context"
	"errors"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/account"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"
)

// SignInCommandHandler resolves an external identity to an account,
// registering it on first contact.
type SignInCommandHandler struct {
	uowFactory AccountUoWFactory
}

// NewSignInCommandHandler creates a new handler for sign-ins.
func NewSignInCommandHandler(uowFactory AccountUoWFactory) SignInCommandHandler {
	return SignInCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the SignInCommand within a transaction and returns the
// signed-in account, freshly registered when the identity is new.
func (h *SignInCommandHandler) Handle(ctx context.Context, cmd SignInCommand) (*account.Account, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	accountRepo := uow.AccountRepository()
	existing, err := accountRepo.GetByOpenID(ctx, cmd.OpenID())
	switch {
	case err == nil:
		if commitErr := uow.Commit(ctx); commitErr != nil {
			return nil, commitErr
		}
		return existing, nil
	case errors.Is(err, errs.ErrObjectNotFound):
		// First contact, register below.
	default:
		return nil, err
	}

	registered, err := account.NewAccount(kernel.NewUUID(), cmd.OpenID(), cmd.Name())
	if err != nil {
		return nil, err
	}
	if err = accountRepo.Add(ctx, registered); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return registered, nil
}
