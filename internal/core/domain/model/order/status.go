package order

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Transition conflicts. These are returned when a requested transition is
// not legal from the order's current status, including the case where a
// concurrent receiver won the claim race.
var (
	// ErrAlreadyClaimed is returned when claiming an order that is no
	// longer pending, whether it never was or another receiver got there
	// first.
	ErrAlreadyClaimed = errors.New("order is already claimed")

	// ErrNotDelivering is returned when completing an order that has not
	// been claimed yet.
	ErrNotDelivering = errors.New("order is not being delivered")

	// ErrAlreadyCompleted is returned when completing an order a second
	// time. Completion is never silently idempotent.
	ErrAlreadyCompleted = errors.New("order is already completed")
)

// Status represents the lifecycle state of an order. It implements a
// forward-only state machine:
//
//	Pending ──> Delivering ──> Completed
//
// Pending orders belong to the shared pool any receiver may claim.
// Delivering orders are bound to exactly one receiver. Completed is
// terminal; no transition ever regresses the status or rebinds the
// receiver.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status assigned on creation. The order is
	// waiting in the shared pool and has no receiver.
	Pending

	// Delivering indicates exactly one receiver has claimed the order.
	Delivering

	// Completed indicates the bound receiver finished the order.
	// This is a final state with no further transitions.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		Delivering: "Delivering",
		Completed:  "Completed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "Pending",
		Delivering: "Delivering",
		Completed:  "Completed",
	}
}

// Validate checks that the Status is one of Pending, Delivering, Completed.
// Used to reject values read back from persistence or external input.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status, or "Unknown" for
// invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Claim transitions the status to Delivering.
//
// The only valid source status is Pending. Any other status returns
// ErrAlreadyClaimed, which callers surface as the claim-race conflict.
func (s Status) Claim() (Status, error) {
	if s != Pending {
		return 0, ErrAlreadyClaimed
	}
	return Delivering, nil
}

// Complete transitions the status to Completed.
//
// The only valid source status is Delivering. Completing an already
// completed order returns ErrAlreadyCompleted; completing an unclaimed
// order returns ErrNotDelivering.
func (s Status) Complete() (Status, error) {
	switch s {
	case Delivering:
		return Completed, nil
	case Completed:
		return 0, ErrAlreadyCompleted
	default:
		return 0, ErrNotDelivering
	}
}

// ValidateCanHaveReceiver validates consistency between status and receiver
// binding: a pending order must have no receiver, a claimed or completed
// order must have one.
func (s Status) ValidateCanHaveReceiver(hasReceiver bool) error {
	if hasReceiver && s != Delivering && s != Completed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a receiver", s.String()),
		)
	}

	if !hasReceiver && (s == Delivering || s == Completed) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no receiver", s.String()),
		)
	}

	return nil
}
