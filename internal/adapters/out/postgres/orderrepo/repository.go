package orderrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation is the postgres SQLSTATE for a unique constraint violation.
const uniqueViolation = "23505"

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database. A duplicate order number is reported
// as errs.ErrObjectAlreadyExists so the caller can regenerate and retry.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return errs.NewObjectAlreadyExistsErrorWithCause("orderNumber", dto.OrderNumber, err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateStatusIf applies the status transition described by the change as one
// conditional UPDATE. The WHERE clause re-checks the change's preconditions
// (current status, and the bound receiver for completion) in the same
// statement that writes, so racing callers on one order serialize in the
// database and exactly one sees rows affected.
func (r *GormOrderRepository) UpdateStatusIf(
	ctx context.Context,
	id kernel.UUID,
	change order.StatusChange,
) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}
	if err := change.Validate(); err != nil {
		return false, err
	}

	updates := map[string]any{
		"status":     int(change.To()),
		"updated_at": time.Now().UTC(),
	}
	if receiver := change.ReceiverID(); receiver != nil {
		updates["receiver_id"] = receiver.Bytes()
	}
	if ts := change.CompletedAt(); ts != nil {
		updates["completed_at"] = *ts
	}

	tx := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), int(change.From()))
	if bound := change.BoundReceiverID(); bound != nil {
		tx = tx.Where("receiver_id = ?", bound.Bytes())
	}

	result := tx.Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
