package commands

import (
	"errors"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrAddressIsRequired = errs.NewValueIsRequiredError("address")
)

// CreateOrderCommand represents a request to book a recycling pickup.
// The unit price is snapshotted from the material at booking time, so later
// price changes never affect this order's settlement.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	userID       kernel.UUID
	materialID   kernel.UUID
	address      string
	contactPhone string

	guard kernel.ConstructorGuard
}

// NewCreateOrderCommand creates a new command to book a pickup.
// Validates that all IDs are valid and the address is present.
func NewCreateOrderCommand(
	orderID, userID, materialID kernel.UUID,
	address, contactPhone string,
) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setUserID(userID),
		command.setMaterialID(materialID),
		command.setAddress(address),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	command.contactPhone = contactPhone
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will be stored under.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the booking user.
func (c CreateOrderCommand) UserID() kernel.UUID {
	return c.userID
}

// MaterialID returns the material to be collected.
func (c CreateOrderCommand) MaterialID() kernel.UUID {
	return c.materialID
}

// Address returns the pickup address.
func (c CreateOrderCommand) Address() string {
	return c.address
}

// ContactPhone returns the user's contact number, possibly empty.
func (c CreateOrderCommand) ContactPhone() string {
	return c.contactPhone
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setMaterialID(materialID kernel.UUID) error {
	if err := materialID.Validate(); err != nil {
		return err
	}
	c.materialID = materialID
	return nil
}

func (c *CreateOrderCommand) setAddress(address string) error {
	if address == "" {
		return ErrAddressIsRequired
	}
	c.address = address
	return nil
}
