package queries

import (
	"context"

	"dispatch/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetOrderStatsQueryHandler computes the per-user counters in a single
// aggregate statement, so the numbers are mutually consistent even while
// orders keep moving.
//
// Example:
//
//	handler := NewGetOrderStatsQueryHandler(db)
//	query, _ := NewGetOrderStatsQuery(userID, user.Dispatcher)
//
//	stats, err := handler.Handle(ctx, query)
type GetOrderStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatsQueryHandler creates a handler for per-user order counters.
func NewGetOrderStatsQueryHandler(db *gorm.DB) GetOrderStatsQueryHandler {
	return GetOrderStatsQueryHandler{db: db}
}

// Handle executes the stats query from the perspective the role selects.
func (h GetOrderStatsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatsQuery,
) (GetOrderStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	if query.Role().IsDispatcher() {
		return h.dispatcherStats(ctx, query)
	}
	return h.receiverStats(ctx, query)
}

func (h GetOrderStatsQueryHandler) dispatcherStats(
	ctx context.Context,
	query GetOrderStatsQuery,
) (GetOrderStatsQueryResponse, error) {
	var resp GetOrderStatsQueryResponse
	var pending int64

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE status = ?)
		FROM orders
		WHERE dispatcher_id = ?
	`, order.Pending, order.Delivering, order.Completed, query.UserID().Bytes()).Row()

	if err := row.Scan(&resp.Total, &pending, &resp.Delivering, &resp.Completed); err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	resp.Pending = &pending
	return resp, nil
}

func (h GetOrderStatsQueryHandler) receiverStats(
	ctx context.Context,
	query GetOrderStatsQuery,
) (GetOrderStatsQueryResponse, error) {
	var resp GetOrderStatsQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE status = ?)
		FROM orders
		WHERE receiver_id = ?
	`, order.Delivering, order.Completed, query.UserID().Bytes()).Row()

	if err := row.Scan(&resp.Total, &resp.Delivering, &resp.Completed); err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	return resp, nil
}
