package commands

import (
	"errors"
	"fmt"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand represents a collector finishing a pickup with the
// measured weight and impurity rate. Settlement is computed from these and
// the order's price snapshot.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	collectorID     kernel.UUID
	actualWeight    float64
	impurityPercent float64

	guard kernel.ConstructorGuard
}

// NewCompleteOrderCommand creates a new command to complete an order.
// Validates that the weight is positive and the impurity rate is a percentage.
func NewCompleteOrderCommand(
	orderID, collectorID kernel.UUID,
	actualWeight, impurityPercent float64,
) (CompleteOrderCommand, error) {
	command := CompleteOrderCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		collectorID.Validate(),
		command.setActualWeight(actualWeight),
		command.setImpurityPercent(impurityPercent),
	); err != nil {
		return CompleteOrderCommand{}, err
	}

	command.orderID = orderID
	command.collectorID = collectorID
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

// OrderID returns the order being completed.
func (c CompleteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CollectorID returns the collector performing the weigh-in.
func (c CompleteOrderCommand) CollectorID() kernel.UUID {
	return c.collectorID
}

// ActualWeight returns the measured weight in kilograms.
func (c CompleteOrderCommand) ActualWeight() float64 {
	return c.actualWeight
}

// ImpurityPercent returns the contamination deduction rate.
func (c CompleteOrderCommand) ImpurityPercent() float64 {
	return c.impurityPercent
}

func (c *CompleteOrderCommand) setActualWeight(actualWeight float64) error {
	if actualWeight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("actualWeight",
			fmt.Errorf("%v is not greater than 0", actualWeight))
	}
	c.actualWeight = actualWeight
	return nil
}

func (c *CompleteOrderCommand) setImpurityPercent(impurityPercent float64) error {
	if impurityPercent < 0 || impurityPercent > 100 {
		return errs.NewValueIsOutOfRangeError("impurityPercent", impurityPercent, 0, 100)
	}
	c.impurityPercent = impurityPercent
	return nil
}
