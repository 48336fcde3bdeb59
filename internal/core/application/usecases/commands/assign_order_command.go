package commands

import (
	"errors"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand represents a dispatcher binding a collector to a pending
// order. Assignment competes with collector claims for the same order; the
// conditional write in the repository decides who wins.
type AssignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	collectorID kernel.UUID
	adminID     kernel.UUID

	guard kernel.ConstructorGuard
}

// NewAssignOrderCommand creates a new command to assign a collector.
func NewAssignOrderCommand(orderID, collectorID, adminID kernel.UUID) (AssignOrderCommand, error) {
	command := AssignOrderCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		collectorID.Validate(),
		adminID.Validate(),
	); err != nil {
		return AssignOrderCommand{}, err
	}

	command.orderID = orderID
	command.collectorID = collectorID
	command.adminID = adminID
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

// OrderID returns the order to assign.
func (c AssignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CollectorID returns the collector being bound to the order.
func (c AssignOrderCommand) CollectorID() kernel.UUID {
	return c.collectorID
}

// AdminID returns the dispatcher performing the assignment.
func (c AssignOrderCommand) AdminID() kernel.UUID {
	return c.adminID
}
