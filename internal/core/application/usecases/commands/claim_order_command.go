package commands

import (
	"errors"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
)

var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand represents a collector claiming a pending order for
// themselves. Multiple collectors may race for the same order; exactly one
// claim wins and every loser receives a conflict.
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	collectorID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewClaimOrderCommand creates a new command to claim an order.
func NewClaimOrderCommand(orderID, collectorID kernel.UUID) (ClaimOrderCommand, error) {
	command := ClaimOrderCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		collectorID.Validate(),
	); err != nil {
		return ClaimOrderCommand{}, err
	}

	command.orderID = orderID
	command.collectorID = collectorID
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

// OrderID returns the order being claimed.
func (c ClaimOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CollectorID returns the claiming collector.
func (c ClaimOrderCommand) CollectorID() kernel.UUID {
	return c.collectorID
}
