package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand represents a receiver's request to claim a pending order
// for delivery.
type AcceptOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	receiverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptOrderCommand creates a command to claim an order.
// Validates that both identifiers are valid UUIDs.
func NewAcceptOrderCommand(orderID kernel.UUID, receiverID kernel.UUID) (AcceptOrderCommand, error) {
	acceptCommand := AcceptOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		acceptCommand.setOrderID(orderID),
		acceptCommand.setReceiverID(receiverID),
	); err != nil {
		return AcceptOrderCommand{}, err
	}

	return acceptCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being claimed.
func (c AcceptOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ReceiverID returns the identity of the claiming receiver.
func (c AcceptOrderCommand) ReceiverID() kernel.UUID {
	return c.receiverID
}

func (c *AcceptOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AcceptOrderCommand) setReceiverID(receiverID kernel.UUID) error {
	if err := receiverID.Validate(); err != nil {
		return err
	}

	c.receiverID = receiverID
	return nil
}
