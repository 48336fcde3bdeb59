// Package collector contains the Collector aggregate: a field worker who
// claims or receives pickup orders, earns a commission on every completed
// settlement, and withdraws the accumulated commission balance.
package collector

import (
	"errors"
	"fmt"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"
)

const (
	// CommissionPercent is the collector's share of every settled order.
	CommissionPercent = 10.0

	// defaultRating is the rating a freshly registered collector starts with.
	defaultRating = 5.0
)

var (
	// ErrNameIsRequired is returned when creating a collector without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrPhoneIsRequired is returned when creating a collector without a phone.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
	// ErrCollectorIsNotConstructed is returned for improperly initialized instances.
	ErrCollectorIsNotConstructed = errors.New("Collector must be created via NewCollector or RestoreCollector")
	// ErrInsufficientBalance is returned when a debit exceeds the commission balance.
	ErrInsufficientBalance = errors.New("insufficient commission balance")
	// ErrCollectorInactive is returned when an inactive collector tries to work the pool.
	ErrCollectorInactive = errors.New("collector is not active")
)

// Collector is the aggregate root for a recycling collector.
//
// Business rules:
//   - a collector has a valid UUID, a non-empty name, and a unique phone
//   - the commission balance never goes negative
//   - only active collectors may claim orders or request withdrawals
//
// The optional accountID links the collector to a user account so commission
// withdrawals land in the shared withdrawal ledger.
type Collector struct {
	id        kernel.UUID
	accountID *kernel.UUID
	name      string
	phone     string
	balance   float64
	rating    float64
	active    bool

	guard kernel.ConstructorGuard
}

// NewCollector creates an active collector with a zero commission balance and
// the default rating.
func NewCollector(id kernel.UUID, name, phone string, accountID *kernel.UUID) (*Collector, error) {
	c := &Collector{
		accountID: accountID,
		rating:    defaultRating,
		active:    true,
		guard:     kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setPhone(phone),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCollector rehydrates a collector from persistence.
func RestoreCollector(
	id kernel.UUID,
	accountID *kernel.UUID,
	name, phone string,
	balance, rating float64,
	active bool,
) (*Collector, error) {
	c, err := NewCollector(id, name, phone, accountID)
	if err != nil {
		return nil, err
	}
	if balance < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("balance",
			fmt.Errorf("%v is negative", balance))
	}

	c.balance = balance
	c.rating = rating
	c.active = active
	return c, nil
}

// Validate ensures the Collector came through a constructor.
func (c *Collector) Validate() error {
	if c == nil {
		return ErrCollectorIsNotConstructed
	}
	return c.guard.Validate(ErrCollectorIsNotConstructed)
}

// ID returns the collector's unique identifier.
func (c *Collector) ID() kernel.UUID {
	return c.id
}

// AccountID returns the linked user account, or nil when unlinked.
func (c *Collector) AccountID() *kernel.UUID {
	return c.accountID
}

// Name returns the collector's display name.
func (c *Collector) Name() string {
	return c.name
}

// Phone returns the collector's unique phone number.
func (c *Collector) Phone() string {
	return c.phone
}

// Balance returns the accumulated commission balance.
func (c *Collector) Balance() float64 {
	return c.balance
}

// Rating returns the collector's service rating.
func (c *Collector) Rating() float64 {
	return c.rating
}

// IsActive reports whether the collector may work the pending pool.
func (c *Collector) IsActive() bool {
	return c.active
}

// EnsureActive returns ErrCollectorInactive unless the collector is active.
// Claim and withdrawal commands call this before proceeding.
func (c *Collector) EnsureActive() error {
	if !c.active {
		return ErrCollectorInactive
	}
	return nil
}

// CreditCommission adds the collector's cut of a settled order.
// The credited amount is rounded to cents.
func (c *Collector) CreditCommission(amount float64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%v is negative", amount))
	}
	c.balance = kernel.RoundCents(c.balance + amount)
	return nil
}

// DebitBalance reserves part of the commission balance for a withdrawal.
// Returns ErrInsufficientBalance when the balance does not cover the amount.
func (c *Collector) DebitBalance(amount float64) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%v is not greater than 0", amount))
	}
	if c.balance < amount {
		return ErrInsufficientBalance
	}
	c.balance = kernel.RoundCents(c.balance - amount)
	return nil
}

// CreditBalance refunds a previously debited amount, e.g. when a withdrawal
// is rejected.
func (c *Collector) CreditBalance(amount float64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%v is negative", amount))
	}
	c.balance = kernel.RoundCents(c.balance + amount)
	return nil
}

// Deactivate takes the collector off the pending pool.
func (c *Collector) Deactivate() {
	c.active = false
}

// Activate returns the collector to the pending pool.
func (c *Collector) Activate() {
	c.active = true
}

func (c *Collector) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Collector) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Collector) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}
	c.phone = phone
	return nil
}
