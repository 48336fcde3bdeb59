// Package account contains the Account aggregate: a user's identity, payout
// balance, and reward points. Balances are credited by order settlement and
// debited by withdrawal requests; points accrue with recycled weight.
package account

import (
	"errors"
	"fmt"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"
)

// PointsPerKilogram is the reward rate applied at settlement time.
const PointsPerKilogram = 10

var (
	// ErrOpenIDIsRequired is returned when registering without an openid.
	ErrOpenIDIsRequired = errs.NewValueIsRequiredError("openid")
	// ErrAccountIsNotConstructed is returned for improperly initialized instances.
	ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount or RestoreAccount")
	// ErrInsufficientFunds is returned when a debit exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Account is the aggregate root for a platform user.
// The balance never goes negative; all money movement is rounded to cents.
type Account struct {
	id      kernel.UUID
	openID  string
	name    string
	balance float64
	points  int

	guard kernel.ConstructorGuard
}

// NewAccount registers an account with a zero balance.
// An empty name falls back to a suffix of the openid, matching how mini-app
// logins auto-register first-time users.
func NewAccount(id kernel.UUID, openID, name string) (*Account, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if openID == "" {
		return nil, ErrOpenIDIsRequired
	}
	if name == "" {
		suffix := openID
		if len(suffix) > 4 {
			suffix = suffix[len(suffix)-4:]
		}
		name = "User_" + suffix
	}

	return &Account{
		id:     id,
		openID: openID,
		name:   name,
		guard:  kernel.NewConstructorGuard(),
	}, nil
}

// RestoreAccount rehydrates an account from persistence.
func RestoreAccount(id kernel.UUID, openID, name string, balance float64, points int) (*Account, error) {
	a, err := NewAccount(id, openID, name)
	if err != nil {
		return nil, err
	}
	if balance < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("balance",
			fmt.Errorf("%v is negative", balance))
	}
	if points < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("points",
			fmt.Errorf("%d is negative", points))
	}

	a.balance = balance
	a.points = points
	return a, nil
}

// Validate ensures the Account came through a constructor.
func (a *Account) Validate() error {
	if a == nil {
		return ErrAccountIsNotConstructed
	}
	return a.guard.Validate(ErrAccountIsNotConstructed)
}

// ID returns the account's unique identifier.
func (a *Account) ID() kernel.UUID {
	return a.id
}

// OpenID returns the external identity the account was registered with.
func (a *Account) OpenID() string {
	return a.openID
}

// Name returns the display name.
func (a *Account) Name() string {
	return a.name
}

// Balance returns the withdrawable balance.
func (a *Account) Balance() float64 {
	return a.balance
}

// Points returns the accumulated reward points.
func (a *Account) Points() int {
	return a.points
}

// CreditSettlement applies an order settlement: the payout lands on the
// balance and points accrue per kilogram of recycled weight.
func (a *Account) CreditSettlement(amount, weight float64) error {
	if amount < 0 || weight < 0 {
		return errs.NewValueIsInvalidErrorWithCause("settlement",
			fmt.Errorf("amount %v / weight %v must not be negative", amount, weight))
	}
	a.balance = kernel.RoundCents(a.balance + amount)
	a.points += int(weight * PointsPerKilogram)
	return nil
}

// Debit reserves part of the balance for a withdrawal request.
// Returns ErrInsufficientFunds when the balance does not cover the amount.
func (a *Account) Debit(amount float64) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%v is not greater than 0", amount))
	}
	if a.balance < amount {
		return ErrInsufficientFunds
	}
	a.balance = kernel.RoundCents(a.balance - amount)
	return nil
}

// Credit returns money to the balance, e.g. a rejected withdrawal refund.
func (a *Account) Credit(amount float64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%v is negative", amount))
	}
	a.balance = kernel.RoundCents(a.balance + amount)
	return nil
}

// Rename updates the display name.
func (a *Account) Rename(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	a.name = name
	return nil
}
