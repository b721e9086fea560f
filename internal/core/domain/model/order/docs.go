// Package order contains the order aggregate and its lifecycle state
// machine. An order is created pending by a dispatcher, claimed by exactly
// one receiver (the exclusive transition to Delivering), and completed by
// that same receiver. Transitions are forward-only and never rebind the
// receiver.
//
// The StatusChange type is how the rest of the system requests a
// transition: it describes a compare-and-set the persistence adapter
// executes as a single statement, which is what makes the claim race-free
// across processes.
package order
