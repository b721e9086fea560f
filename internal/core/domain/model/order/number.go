package order

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"

	"dispatch/internal/pkg/errs"
)

// numberPattern matches "ORD" followed by a millisecond timestamp and a
// three-digit random suffix.
var numberPattern = regexp.MustCompile(`^ORD[0-9]{13,19}$`)

// Number is the human-facing unique identifier of an order, distinct from
// its UUID primary key. It combines a time-derived component with a random
// suffix so independent creators practically never collide; an insert-time
// collision is still possible and is treated as retryable by the create
// operation, never as fatal.
//
// The zero value is invalid; use GenerateNumber or NumberFromString.
type Number struct {
	value string
}

// GenerateNumber mints a fresh order number from the current time and a
// random three-digit suffix, e.g. "ORD1756623817412042".
func GenerateNumber() Number {
	return Number{value: fmt.Sprintf("ORD%d%03d", time.Now().UnixMilli(), rand.IntN(1000))}
}

// NumberFromString parses and validates an order number, typically when
// reconstructing an order from persistence.
func NumberFromString(s string) (Number, error) {
	if s == "" {
		return Number{}, errs.NewValueIsRequiredError("orderNumber")
	}
	if !numberPattern.MatchString(s) {
		return Number{}, errs.NewValueIsInvalidErrorWithCause(
			"orderNumber",
			fmt.Errorf("%q does not match the expected format", s),
		)
	}
	return Number{value: s}, nil
}

// String returns the textual order number.
func (n Number) String() string {
	return n.value
}

// IsEqual reports whether two numbers are the same.
func (n Number) IsEqual(other Number) bool {
	return n.value == other.value
}

// Validate rejects the zero value.
func (n Number) Validate() error {
	if n.value == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	return nil
}
