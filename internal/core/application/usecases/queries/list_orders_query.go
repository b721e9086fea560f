package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// OrdersFilter narrows a listing. Nil fields match everything, so the zero
// filter lists all orders.
type OrdersFilter struct {
	Status       *order.Status
	DispatcherID *kernel.UUID
	ReceiverID   *kernel.UUID
}

// ListOrdersQuery retrieves orders matching a filter, newest first. Backs the
// pending board (status filter) and the per-user "my orders" listings
// (dispatcher/receiver filters).
type ListOrdersQuery struct {
	filter OrdersFilter

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a listing query from a filter.
// Set filter fields are validated; unset fields are ignored.
func NewListOrdersQuery(filter OrdersFilter) (ListOrdersQuery, error) {
	if filter.Status != nil {
		if err := filter.Status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if filter.DispatcherID != nil {
		if err := filter.DispatcherID.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if filter.ReceiverID != nil {
		if err := filter.ReceiverID.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}

	return ListOrdersQuery{
		filter: filter,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Filter returns the listing filter.
func (q ListOrdersQuery) Filter() OrdersFilter {
	return q.filter
}
