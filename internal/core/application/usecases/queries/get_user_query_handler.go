package queries

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
)

// GetUserQueryHandler reads a user's public profile.
type GetUserQueryHandler struct {
	db *gorm.DB
}

// NewGetUserQueryHandler creates a handler for profile reads.
func NewGetUserQueryHandler(db *gorm.DB) GetUserQueryHandler {
	return GetUserQueryHandler{db: db}
}

// Handle executes the profile query. Returns errs.ErrObjectNotFound for an
// unknown identifier.
func (h GetUserQueryHandler) Handle(ctx context.Context, query GetUserQuery) (GetUserQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetUserQueryResponse{}, err
	}

	var (
		resp GetUserQueryResponse
		id   uuid.UUID
		role int
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT id, username, role, created_at
		FROM users
		WHERE id = ?
	`, query.UserID().Bytes()).Row()

	err := row.Scan(&id, &resp.Username, &role, &resp.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return GetUserQueryResponse{}, errs.NewObjectNotFoundError("userId", query.UserID())
	}
	if err != nil {
		return GetUserQueryResponse{}, err
	}

	userID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetUserQueryResponse{}, err
	}
	resp.ID = userID

	resp.Role = user.Role(role)
	if err = resp.Role.Validate(); err != nil {
		return GetUserQueryResponse{}, err
	}

	return resp, nil
}
