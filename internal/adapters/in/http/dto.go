package http

import (
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/order"
)

// Error is the uniform error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RegisterUserRequest is the body of POST /users/register.
type RegisterUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest is the body of POST /users/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token and the authenticated profile.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// User is the public profile shape.
type User struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Role      string     `json:"role"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	Content string `json:"content"`
}

// Order is the wire shape of an order. Display names are present on read
// endpoints, which join them in; command responses carry identifiers only.
type Order struct {
	ID             string     `json:"id"`
	Number         string     `json:"number"`
	Content        string     `json:"content"`
	Status         string     `json:"status"`
	DispatcherID   string     `json:"dispatcherId"`
	DispatcherName string     `json:"dispatcherName,omitempty"`
	ReceiverID     *string    `json:"receiverId,omitempty"`
	ReceiverName   *string    `json:"receiverName,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
}

// OrderStats is the per-user counter response.
type OrderStats struct {
	Total      int64  `json:"total"`
	Pending    *int64 `json:"pending,omitempty"`
	Delivering int64  `json:"delivering"`
	Completed  int64  `json:"completed"`
}

// Backlog is the global per-status counter response.
type Backlog struct {
	Pending    int64 `json:"pending"`
	Delivering int64 `json:"delivering"`
	Completed  int64 `json:"completed"`
}

func orderFromAggregate(o *order.Order) Order {
	resp := Order{
		ID:           o.ID().String(),
		Number:       o.Number().String(),
		Content:      o.Content(),
		Status:       o.Status().String(),
		DispatcherID: o.DispatcherID().String(),
		CreatedAt:    o.CreatedAt(),
		CompletedAt:  o.CompletedAt(),
	}
	if receiverID := o.ReceiverID(); receiverID != nil {
		id := receiverID.String()
		resp.ReceiverID = &id
	}
	return resp
}

func orderFromResponse(r queries.OrderResponse) Order {
	resp := Order{
		ID:             r.ID.String(),
		Number:         r.Number,
		Content:        r.Content,
		Status:         r.Status,
		DispatcherID:   r.DispatcherID.String(),
		DispatcherName: r.DispatcherName,
		ReceiverName:   r.ReceiverName,
		CreatedAt:      r.CreatedAt,
		CompletedAt:    r.CompletedAt,
	}
	if r.ReceiverID != nil {
		id := r.ReceiverID.String()
		resp.ReceiverID = &id
	}
	return resp
}

func ordersFromResponses(rs []queries.OrderResponse) []Order {
	orders := make([]Order, len(rs))
	for i, r := range rs {
		orders[i] = orderFromResponse(r)
	}
	return orders
}
