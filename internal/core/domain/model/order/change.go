package order

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// StatusChange describes a conditional status transition for the store to
// apply as one atomic operation: the From check and the write happen in the
// same statement, so two racing callers on the same order resolve to exactly
// one winner. A plain read-then-write sequence can never provide this and is
// deliberately not expressible through the repository port.
type StatusChange struct {
	from Status
	to   Status

	// receiverID is bound to the order by the transition (claim only).
	receiverID *kernel.UUID

	// boundReceiverID, when set, restricts the transition to orders whose
	// current receiver matches (completion only).
	boundReceiverID *kernel.UUID

	completedAt *time.Time
}

// ClaimChange describes the exclusive claim: Pending to Delivering, binding
// the given receiver. At most one such change ever applies to an order.
func ClaimChange(receiverID kernel.UUID) (StatusChange, error) {
	if err := receiverID.Validate(); err != nil {
		return StatusChange{}, err
	}
	return StatusChange{
		from:       Pending,
		to:         Delivering,
		receiverID: &receiverID,
	}, nil
}

// CompletionChange describes completion: Delivering to Completed, guarded on
// the order still being bound to the given receiver, stamping completedAt.
func CompletionChange(boundReceiverID kernel.UUID, completedAt time.Time) (StatusChange, error) {
	if err := boundReceiverID.Validate(); err != nil {
		return StatusChange{}, err
	}
	return StatusChange{
		from:            Delivering,
		to:              Completed,
		boundReceiverID: &boundReceiverID,
		completedAt:     &completedAt,
	}, nil
}

// From returns the status the order must still be in for the change to apply.
func (c StatusChange) From() Status {
	return c.from
}

// To returns the target status.
func (c StatusChange) To() Status {
	return c.to
}

// ReceiverID returns the receiver bound by the change, or nil.
func (c StatusChange) ReceiverID() *kernel.UUID {
	return c.receiverID
}

// BoundReceiverID returns the receiver the order must currently be bound to,
// or nil when the change carries no ownership guard.
func (c StatusChange) BoundReceiverID() *kernel.UUID {
	return c.boundReceiverID
}

// CompletedAt returns the completion timestamp carried by the change, or nil.
func (c StatusChange) CompletedAt() *time.Time {
	return c.completedAt
}

// Validate rejects the zero value; a usable change always names a valid
// source and target status.
func (c StatusChange) Validate() error {
	if err := c.from.Validate(); err != nil {
		return err
	}
	return c.to.Validate()
}
