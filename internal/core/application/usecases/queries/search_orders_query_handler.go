package queries

import (
	"context"

	"dispatch/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// SearchOrdersQueryHandler runs the visibility-scoped substring search.
//
// Example:
//
//	handler := NewSearchOrdersQueryHandler(db)
//	query, _ := NewSearchOrdersQuery("ORD17", viewerID, viewerRole)
//
//	matches, err := handler.Handle(ctx, query)
type SearchOrdersQueryHandler struct {
	db *gorm.DB
}

// NewSearchOrdersQueryHandler creates a handler for order searches.
func NewSearchOrdersQueryHandler(db *gorm.DB) SearchOrdersQueryHandler {
	return SearchOrdersQueryHandler{db: db}
}

// Handle executes the search, newest matches first.
func (h SearchOrdersQueryHandler) Handle(ctx context.Context, query SearchOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pattern := "%" + query.Term() + "%"
	sql := orderColumns + `
		WHERE (
			o.order_number ILIKE ?
			OR o.content ILIKE ?
			OR d.username ILIKE ?
			OR COALESCE(r.username, '') ILIKE ?
		)`
	args := []any{pattern, pattern, pattern, pattern}

	// visibility scope mirrors the listing boards
	if query.ViewerRole().IsDispatcher() {
		sql += ` AND o.dispatcher_id = ?`
		args = append(args, query.ViewerID().Bytes())
	} else {
		sql += ` AND (o.receiver_id = ? OR o.status = ?)`
		args = append(args, query.ViewerID().Bytes(), order.Pending)
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
