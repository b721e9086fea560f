package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// UpdateStatusIf is the only mutation path after creation and the
// serialization point for the claim and completion races.
type OrderRepository interface {
	// Add persists a new order aggregate. A duplicate order number
	// surfaces as errs.ErrObjectAlreadyExists so callers can regenerate
	// and retry.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its unique identifier, or
	// errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateStatusIf applies the described status transition only if the
	// order's current state still satisfies the change's preconditions.
	// The check and the write execute as one atomic statement against
	// concurrent callers on the same order. Returns false, with no error,
	// when the preconditions did not hold at the moment of the attempt
	// (missing order included); the caller classifies why.
	UpdateStatusIf(ctx context.Context, id kernel.UUID, change order.StatusChange) (bool, error)
}
