package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// ErrNotADispatcher is returned when a user without the dispatcher role
// attempts to create an order.
var ErrNotADispatcher = errors.New("only dispatchers can create orders")

// maxNumberAttempts bounds order number regeneration on a unique collision.
// The number carries millisecond precision plus a random suffix, so a second
// collision in a row is already vanishingly unlikely.
const maxNumberAttempts = 3

// CreateOrderCommandHandler handles the business logic for order creation.
// Verifies the caller holds the dispatcher role, generates a unique order
// number and persists the order in "pending" status.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	cmd, _ := NewCreateOrderCommand(dispatcherID, "spare pump for line 3")
//
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	fmt.Printf("Order %s is awaiting a receiver", created.Number())
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires a UoWFactory because the dispatcher's role is resolved in the same
// transaction as the order insert.
func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command and returns the created order.
// Returns ErrNotADispatcher when the acting user holds a different role.
// On an order number collision the whole attempt is retried with a fresh
// number and a fresh transaction, since the unique violation aborts the
// current one.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		created, err := h.createOnce(ctx, cmd)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, errs.ErrObjectAlreadyExists) {
			return nil, err
		}

		lastErr = err
	}

	return nil, lastErr
}

func (h CreateOrderCommandHandler) createOnce(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	dispatcher, err := uow.UserRepository().Get(ctx, cmd.DispatcherID())
	if err != nil {
		return nil, err
	}
	if !dispatcher.Role().IsDispatcher() {
		return nil, ErrNotADispatcher
	}

	newOrder, err := order.NewOrder(kernel.NewUUID(), order.GenerateNumber(), cmd.Content(), dispatcher.ID())
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newOrder, nil
}
