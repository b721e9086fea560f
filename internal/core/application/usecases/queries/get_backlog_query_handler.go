package queries

import (
	"context"

	"dispatch/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetBacklogQueryHandler counts orders per status across the whole system.
type GetBacklogQueryHandler struct {
	db *gorm.DB
}

// NewGetBacklogQueryHandler creates a handler for the backlog counters.
func NewGetBacklogQueryHandler(db *gorm.DB) GetBacklogQueryHandler {
	return GetBacklogQueryHandler{db: db}
}

// Handle executes the backlog query.
func (h GetBacklogQueryHandler) Handle(
	ctx context.Context,
	query GetBacklogQuery,
) (GetBacklogQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBacklogQueryResponse{}, err
	}

	var resp GetBacklogQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE status = ?)
		FROM orders
	`, order.Pending, order.Delivering, order.Completed).Row()

	if err := row.Scan(&resp.Pending, &resp.Delivering, &resp.Completed); err != nil {
		return GetBacklogQueryResponse{}, err
	}

	return resp, nil
}
