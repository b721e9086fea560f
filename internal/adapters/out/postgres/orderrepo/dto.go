// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The unique index on the order number backs collision detection at insert
// time; the status and participant indexes serve the listing boards.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber  string     `gorm:"type:varchar(32);uniqueIndex"`
	Content      string     `gorm:"type:text"`
	Status       int        `gorm:"index"`
	DispatcherID uuid.UUID  `gorm:"type:uuid;index"`
	ReceiverID   *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CompletedAt  *time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var receiverID *uuid.UUID
	if id := aggregate.ReceiverID(); id != nil {
		raw := id.Bytes()
		receiverID = &raw
	}

	return OrderDTO{
		ID:           aggregate.ID().Bytes(),
		OrderNumber:  aggregate.Number().String(),
		Content:      aggregate.Content(),
		Status:       int(aggregate.Status()),
		DispatcherID: aggregate.DispatcherID().Bytes(),
		ReceiverID:   receiverID,
		CreatedAt:    aggregate.CreatedAt(),
		UpdatedAt:    aggregate.UpdatedAt(),
		CompletedAt:  aggregate.CompletedAt(),
	}
}

// toDomain converts a database row back into an order aggregate, re-running
// the aggregate's own invariant checks via RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	number, err := order.NumberFromString(dto.OrderNumber)
	if err != nil {
		return nil, err
	}

	dispatcherID, err := kernel.UUIDFromBytes(dto.DispatcherID[:])
	if err != nil {
		return nil, err
	}

	var receiverID *kernel.UUID
	if dto.ReceiverID != nil {
		rID, receiverErr := kernel.UUIDFromBytes((*dto.ReceiverID)[:])
		if receiverErr != nil {
			return nil, receiverErr
		}

		receiverID = &rID
	}

	return order.RestoreOrder(
		id,
		number,
		dto.Content,
		order.Status(dto.Status),
		dispatcherID,
		receiverID,
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.CompletedAt,
	)
}
