package queries

import (
	"database/sql"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderResponse is the display shape of an order: the raw row joined with the
// usernames of the dispatcher and, when bound, the receiver.
type OrderResponse struct {
	ID             kernel.UUID
	Number         string
	Content        string
	Status         string
	DispatcherID   kernel.UUID
	DispatcherName string
	ReceiverID     *kernel.UUID
	ReceiverName   *string
	CreatedAt      time.Time
	CompletedAt    *time.Time
}

// orderColumns is the shared projection for order reads. The left join keeps
// pending orders (no receiver yet) in the result set.
const orderColumns = `
	SELECT
		o.id,
		o.order_number,
		o.content,
		o.status,
		o.dispatcher_id,
		d.username,
		o.receiver_id,
		r.username,
		o.created_at,
		o.completed_at
	FROM orders o
	JOIN users d ON d.id = o.dispatcher_id
	LEFT JOIN users r ON r.id = o.receiver_id
`

func scanOrderRow(scan func(dest ...any) error) (OrderResponse, error) {
	var (
		resp         OrderResponse
		id           uuid.UUID
		status       int
		dispatcherID uuid.UUID
		receiverID   uuid.NullUUID
		receiverName sql.NullString
		completedAt  sql.NullTime
	)

	if err := scan(
		&id,
		&resp.Number,
		&resp.Content,
		&status,
		&dispatcherID,
		&resp.DispatcherName,
		&receiverID,
		&receiverName,
		&resp.CreatedAt,
		&completedAt,
	); err != nil {
		return OrderResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderResponse{}, err
	}
	resp.ID = orderID

	orderStatus := order.Status(status)
	if err = orderStatus.Validate(); err != nil {
		return OrderResponse{}, err
	}
	resp.Status = orderStatus.String()

	dispatcher, err := kernel.UUIDFromBytes(dispatcherID[:])
	if err != nil {
		return OrderResponse{}, err
	}
	resp.DispatcherID = dispatcher

	if receiverID.Valid {
		receiver, recErr := kernel.UUIDFromBytes(receiverID.UUID[:])
		if recErr != nil {
			return OrderResponse{}, recErr
		}
		resp.ReceiverID = &receiver
	}
	if receiverName.Valid {
		name := receiverName.String
		resp.ReceiverName = &name
	}
	if completedAt.Valid {
		ts := completedAt.Time
		resp.CompletedAt = &ts
	}

	return resp, nil
}
