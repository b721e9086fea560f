// Package queries contains read-only operations over the order and user
// stores. Query handlers bypass the domain aggregates and read the database
// directly with raw SQL, returning flat response structs shaped for display.
// Each query carries a constructor guard so handlers never execute an
// unvalidated request.
package queries
