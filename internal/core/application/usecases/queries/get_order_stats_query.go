package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/guard"
)

var ErrGetOrderStatsQueryIsNotConstructed = errors.New(
	"GetOrderStatsQuery must be created via NewGetOrderStatsQuery constructor",
)

// GetOrderStatsQuery computes per-user order counters for the dashboard.
// Dispatchers are measured over the orders they created, receivers over the
// orders they claimed.
type GetOrderStatsQuery struct {
	userID kernel.UUID
	role   user.Role

	guard guard.ConstructorGuard
}

// NewGetOrderStatsQuery creates a stats query for the given user.
func NewGetOrderStatsQuery(userID kernel.UUID, role user.Role) (GetOrderStatsQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetOrderStatsQuery{}, err
	}
	if err := role.Validate(); err != nil {
		return GetOrderStatsQuery{}, err
	}

	return GetOrderStatsQuery{
		userID: userID,
		role:   role,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatsQueryIsNotConstructed)
}

// UserID returns the user the counters are computed for.
func (q GetOrderStatsQuery) UserID() kernel.UUID {
	return q.userID
}

// Role returns the user's role, which selects the counting perspective.
func (q GetOrderStatsQuery) Role() user.Role {
	return q.role
}

// GetOrderStatsQueryResponse carries the per-user counters. Pending is only
// meaningful from the dispatcher's perspective (a receiver has no pending
// orders of their own) and stays nil for receivers.
type GetOrderStatsQueryResponse struct {
	Total      int64
	Pending    *int64
	Delivering int64
	Completed  int64
}
