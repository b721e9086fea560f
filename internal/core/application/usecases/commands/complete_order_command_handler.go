package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/order"
)

// ErrNotOrderReceiver is returned when a receiver attempts to complete an
// order that is bound to a different receiver.
var ErrNotOrderReceiver = errors.New("order is bound to another receiver")

// CompleteOrderCommandHandler handles the business logic for order completion.
// Only the receiver who claimed an order may complete it, and only while it
// is delivering. Like the claim, the transition is decided by one conditional
// update guarded on both the current status and the bound receiver.
//
// Example:
//
//	handler := NewCompleteOrderCommandHandler(uowFactory)
//	cmd, _ := NewCompleteOrderCommand(orderID, receiverID)
//
//	completed, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrNotOrderReceiver):
//	    log.Println("This order belongs to someone else")
//	case errors.Is(err, order.ErrAlreadyCompleted):
//	    log.Println("Nothing to do, already completed")
//	case err != nil:
//	    log.Printf("Complete failed: %v", err)
//	default:
//	    log.Printf("Order %s completed at %s", completed.Number(), completed.CompletedAt())
//	}
type CompleteOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCompleteOrderCommandHandler creates a handler for order completion operations.
func NewCompleteOrderCommandHandler(uowFactory UoWFactory) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the completion command and returns the completed order.
// Returns ErrNotAReceiver when the acting user holds a different role,
// errs.ErrObjectNotFound when the order does not exist, ErrNotOrderReceiver
// when the order is bound to someone else, and order.ErrNotDelivering or
// order.ErrAlreadyCompleted when the order is in the wrong status.
func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) (*order.Order, error) {
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

	change, err := order.CompletionChange(receiver.ID(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()

	applied, err := orderRepo.UpdateStatusIf(ctx, cmd.OrderID(), change)
	if err != nil {
		return nil, err
	}
	if !applied {
		existing, getErr := orderRepo.Get(ctx, cmd.OrderID())
		if getErr != nil {
			return nil, getErr
		}

		return nil, classifyCompletionFailure(existing, cmd)
	}

	completed, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return completed, nil
}

// classifyCompletionFailure explains why the conditional update matched
// nothing for an order that does exist. A receiver mismatch trumps a status
// mismatch, except on an unclaimed order where there is no receiver to be.
func classifyCompletionFailure(existing *order.Order, cmd CompleteOrderCommand) error {
	boundReceiver := existing.ReceiverID()
	if boundReceiver == nil {
		return order.ErrNotDelivering
	}
	if !boundReceiver.IsEqual(cmd.ReceiverID()) {
		return ErrNotOrderReceiver
	}

	if _, err := existing.Status().Complete(); err != nil {
		return err
	}

	// Preconditions look satisfied on re-read, so the guard raced with a
	// concurrent transition. Report it as a plain conflict.
	return order.ErrNotDelivering
}
