package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrGetBacklogQueryIsNotConstructed = errors.New(
	"GetBacklogQuery must be created via NewGetBacklogQuery constructor",
)

// GetBacklogQuery retrieves the global per-status order counts. Used by the
// periodic backlog report job and exposed for operational visibility.
type GetBacklogQuery struct {
	guard guard.ConstructorGuard
}

// NewGetBacklogQuery creates a query for the global order backlog.
func NewGetBacklogQuery() GetBacklogQuery {
	return GetBacklogQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetBacklogQuery) Validate() error {
	return q.guard.Validate(ErrGetBacklogQueryIsNotConstructed)
}

// GetBacklogQueryResponse carries the system-wide per-status counts.
type GetBacklogQueryResponse struct {
	Pending    int64
	Delivering int64
	Completed  int64
}
