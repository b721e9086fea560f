package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler retrieves order listings with display names joined
// in, newest first so fresh work surfaces at the top of every board.
//
// Example:
//
//	handler := NewListOrdersQueryHandler(db)
//	pending := order.Pending
//	query, _ := NewListOrdersQuery(OrdersFilter{Status: &pending})
//
//	board, err := handler.Handle(ctx, query)
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listings.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing. Returns an empty slice when nothing matches.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := orderColumns + ` WHERE 1=1`
	args := make([]any, 0, 3)

	filter := query.Filter()
	if filter.Status != nil {
		sql += ` AND o.status = ?`
		args = append(args, *filter.Status)
	}
	if filter.DispatcherID != nil {
		sql += ` AND o.dispatcher_id = ?`
		args = append(args, filter.DispatcherID.Bytes())
	}
	if filter.ReceiverID != nil {
		sql += ` AND o.receiver_id = ?`
		args = append(args, filter.ReceiverID.Bytes())
	}
	sql += ` ORDER BY o.created_at DESC`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0)
	for rows.Next() {
		resp, scanErr := scanOrderRow(rows.Scan)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
