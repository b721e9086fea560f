package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/order"
)

// ErrNotAReceiver is returned when a user without the receiver role attempts
// to accept or complete an order.
var ErrNotAReceiver = errors.New("only receivers can accept or complete orders")

// AcceptOrderCommandHandler handles the business logic for claiming orders.
// The claim is decided by a single conditional update: of all receivers
// racing for the same pending order, exactly one flips it to "delivering"
// and becomes its bound receiver. Losers never observe intermediate state,
// they only learn the precondition no longer held.
//
// Example:
//
//	handler := NewAcceptOrderCommandHandler(uowFactory)
//	cmd, _ := NewAcceptOrderCommand(orderID, receiverID)
//
//	claimed, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrAlreadyClaimed):
//	    log.Println("Another receiver got there first")
//	case err != nil:
//	    log.Printf("Accept failed: %v", err)
//	default:
//	    log.Printf("Order %s is now delivering", claimed.Number())
//	}
type AcceptOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewAcceptOrderCommandHandler creates a handler for order claim operations.
func NewAcceptOrderCommandHandler(uowFactory UoWFactory) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the claim command and returns the claimed order.
// Returns ErrNotAReceiver when the acting user holds a different role,
// errs.ErrObjectNotFound when the order does not exist, and
// order.ErrAlreadyClaimed when the order left "pending" before this
// attempt won.
func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	receiver, err := uow.UserRepository().Get(ctx, cmd.ReceiverID())
	if err != nil {
		return nil, err
	}
	if !receiver.Role().IsReceiver() {
		return nil, ErrNotAReceiver
	}

	change, err := order.ClaimChange(receiver.ID())
	if err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()

	applied, err := orderRepo.UpdateStatusIf(ctx, cmd.OrderID(), change)
	if err != nil {
		return nil, err
	}
	if !applied {
		// The conditional update already decided the race; this read only
		// tells a missing order apart from a lost claim.
		if _, err = orderRepo.Get(ctx, cmd.OrderID()); err != nil {
			return nil, err
		}

		return nil, order.ErrAlreadyClaimed
	}

	claimed, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return claimed, nil
}
