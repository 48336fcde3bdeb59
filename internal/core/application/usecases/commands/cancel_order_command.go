package commands

import (
	"errors"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a user cancelling their own pending order.
// Cancellation races with claims the same way assignment does; once a
// collector is bound, the order can no longer be cancelled.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	userID  kernel.UUID

	guard kernel.ConstructorGuard
}

// NewCancelOrderCommand creates a new command to cancel an order.
func NewCancelOrderCommand(orderID, userID kernel.UUID) (CancelOrderCommand, error) {
	command := CancelOrderCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		userID.Validate(),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	command.orderID = orderID
	command.userID = userID
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the order being cancelled.
func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the order's owner.
func (c CancelOrderCommand) UserID() kernel.UUID {
	return c.userID
}
