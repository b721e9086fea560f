package order

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory functions.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root of the dispatch domain. It carries the order
// through its lifecycle from creation by a dispatcher, through an exclusive
// claim by one receiver, to completion.
//
// Order maintains these invariants:
//   - Pending implies no receiver; Delivering and Completed imply exactly one
//   - Completed implies a completion timestamp
//   - the order number and the creating dispatcher never change
//   - the receiver, once bound, never changes
//
// The in-memory mutators (Claim, Complete) express the legal transitions and
// back the unit tests; under concurrent access the equivalent transition is
// applied by the store as a single conditional update described by a
// StatusChange.
type Order struct {
	id           kernel.UUID
	number       Number
	content      string
	status       Status
	dispatcherID kernel.UUID

	// receiverID is the claiming receiver (nil while pending)
	receiverID *kernel.UUID

	createdAt   time.Time
	updatedAt   time.Time
	completedAt *time.Time

	isConstructed bool
}

// NewOrder creates a pending order for the given dispatcher. The content is
// the free-text description of what must be fulfilled and must not be empty.
//
// Example:
//
//	number := order.GenerateNumber()
//	o, err := order.NewOrder(kernel.NewUUID(), number, "deliver package", dispatcherID)
//	if err != nil {
//	    // handle validation error
//	}
func NewOrder(id kernel.UUID, number Number, content string, dispatcherID kernel.UUID) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setContent(content),
		o.setDispatcherID(dispatcherID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence, re-validating the
// status/receiver/completion invariants so corrupted rows never become live
// aggregates.
func RestoreOrder(
	id kernel.UUID,
	number Number,
	content string,
	status Status,
	dispatcherID kernel.UUID,
	receiverID *kernel.UUID,
	createdAt time.Time,
	updatedAt time.Time,
	completedAt *time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setContent(content),
		o.setDispatcherID(dispatcherID),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if err := status.ValidateCanHaveReceiver(receiverID != nil); err != nil {
		return nil, err
	}
	if receiverID != nil {
		if err := receiverID.Validate(); err != nil {
			return nil, err
		}
		value := *receiverID
		o.receiverID = &value
	}

	if status == Completed && completedAt == nil {
		return nil, errs.NewValueIsRequiredError("completedAt")
	}
	if completedAt != nil {
		value := *completedAt
		o.completedAt = &value
	}

	o.status = status
	return o, nil
}

// Validate ensures the Order was built via NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the unique order number.
func (o *Order) Number() Number {
	return o.number
}

// Content returns the free-text order description.
func (o *Order) Content() string {
	return o.content
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// DispatcherID returns the creating dispatcher. Immutable for the lifetime
// of the order.
func (o *Order) DispatcherID() kernel.UUID {
	return o.dispatcherID
}

// ReceiverID returns the bound receiver, or nil while the order is pending.
func (o *Order) ReceiverID() *kernel.UUID {
	return o.receiverID
}

// CreatedAt returns the creation time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the time of the last mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// CompletedAt returns the completion time, or nil before completion.
func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// Claim binds the order to a receiver and moves it to Delivering. Legal only
// from Pending; any other status returns ErrAlreadyClaimed.
func (o *Order) Claim(receiverID kernel.UUID) error {
	if err := receiverID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Claim()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.receiverID = &receiverID
	o.updatedAt = time.Now().UTC()
	return nil
}

// Complete marks the order as fulfilled and records the completion time.
// Legal only from Delivering.
func (o *Order) Complete() error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus
	o.completedAt = &now
	o.updatedAt = now
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number Number) error {
	if err := number.Validate(); err != nil {
		return err
	}
	o.number = number
	return nil
}

func (o *Order) setContent(content string) error {
	if content == "" {
		return errs.NewValueIsRequiredError("content")
	}
	o.content = content
	return nil
}

func (o *Order) setDispatcherID(dispatcherID kernel.UUID) error {
	if err := dispatcherID.Validate(); err != nil {
		return err
	}
	o.dispatcherID = dispatcherID
	return nil
}
