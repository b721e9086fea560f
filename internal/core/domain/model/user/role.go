package user

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Role tags a user as one of the two fixed parties of the dispatch flow.
// Dispatchers create orders; receivers claim and complete them. A user's
// role is fixed at registration and never changes.
type Role int

const (
	// UnknownRole represents an invalid or undefined role.
	UnknownRole Role = iota

	// Dispatcher creates orders.
	Dispatcher

	// Receiver claims pending orders and completes the ones bound to it.
	Receiver
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "unknown",
		Dispatcher:  "dispatcher",
		Receiver:    "receiver",
	}
}

// RoleFromString parses the wire representation of a role ("dispatcher" or
// "receiver"), as carried in registration requests and token claims.
func RoleFromString(s string) (Role, error) {
	switch s {
	case "dispatcher":
		return Dispatcher, nil
	case "receiver":
		return Receiver, nil
	default:
		return UnknownRole, errs.NewValueIsInvalidErrorWithCause(
			"role",
			fmt.Errorf("%q is not a valid role", s),
		)
	}
}

// Validate checks that the Role is Dispatcher or Receiver.
func (r Role) Validate() error {
	if r != Dispatcher && r != Receiver {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire representation. Implements fmt.Stringer.
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

// IsDispatcher reports whether the role may create orders.
func (r Role) IsDispatcher() bool {
	return r == Dispatcher
}

// IsReceiver reports whether the role may claim and complete orders.
func (r Role) IsReceiver() bool {
	return r == Receiver
}
