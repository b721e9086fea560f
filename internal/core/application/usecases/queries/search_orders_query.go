package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/guard"
)

var (
	ErrSearchOrdersQueryIsNotConstructed = errors.New(
		"SearchOrdersQuery must be created via NewSearchOrdersQuery constructor",
	)
	ErrSearchTermIsRequired = errors.New("search term is required")
)

// SearchOrdersQuery performs a substring search over order numbers, content
// and participant usernames. Results are scoped to what the viewer may see:
// dispatchers search their own orders, receivers search orders they claimed
// plus the open pending board.
type SearchOrdersQuery struct {
	term       string
	viewerID   kernel.UUID
	viewerRole user.Role

	guard guard.ConstructorGuard
}

// NewSearchOrdersQuery creates a search query for the given viewer.
func NewSearchOrdersQuery(term string, viewerID kernel.UUID, viewerRole user.Role) (SearchOrdersQuery, error) {
	searchQuery := SearchOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if term == "" {
		return SearchOrdersQuery{}, ErrSearchTermIsRequired
	}
	if err := viewerID.Validate(); err != nil {
		return SearchOrdersQuery{}, err
	}
	if err := viewerRole.Validate(); err != nil {
		return SearchOrdersQuery{}, err
	}

	searchQuery.term = term
	searchQuery.viewerID = viewerID
	searchQuery.viewerRole = viewerRole
	return searchQuery, nil
}

// Validate ensures the query was created through the constructor.
func (q SearchOrdersQuery) Validate() error {
	return q.guard.Validate(ErrSearchOrdersQueryIsNotConstructed)
}

// Term returns the substring being searched for.
func (q SearchOrdersQuery) Term() string {
	return q.term
}

// ViewerID returns the identity of the searching user.
func (q SearchOrdersQuery) ViewerID() kernel.UUID {
	return q.viewerID
}

// ViewerRole returns the role of the searching user.
func (q SearchOrdersQuery) ViewerRole() user.Role {
	return q.viewerRole
}
