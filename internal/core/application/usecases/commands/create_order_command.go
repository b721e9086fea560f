package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrContentIsRequired = errors.New("content is required")
)

// CreateOrderCommand represents a dispatcher's request to register a new order.
// Carries the acting dispatcher's identity and the free-form order content.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(dispatcherID, "2 boxes of parts for the north site")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	dispatcherID kernel.UUID
	content      string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates that the dispatcher ID is valid and the content is not empty.
func NewCreateOrderCommand(dispatcherID kernel.UUID, content string) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setDispatcherID(dispatcherID),
		orderCommand.setContent(content),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// DispatcherID returns the identity of the dispatcher creating the order.
func (c CreateOrderCommand) DispatcherID() kernel.UUID {
	return c.dispatcherID
}

// Content returns the order's free-form description.
func (c CreateOrderCommand) Content() string {
	return c.content
}

func (c *CreateOrderCommand) setDispatcherID(dispatcherID kernel.UUID) error {
	if err := dispatcherID.Validate(); err != nil {
		return err
	}

	c.dispatcherID = dispatcherID
	return nil
}

func (c *CreateOrderCommand) setContent(content string) error {
	if content == "" {
		return ErrContentIsRequired
	}

	c.content = content
	return nil
}
