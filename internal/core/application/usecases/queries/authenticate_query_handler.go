package queries

import (
	"context"
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// AuthenticateQueryHandler verifies login credentials. An unknown username
// and a wrong password are indistinguishable to the caller.
//
// Example:
//
//	handler := NewAuthenticateQueryHandler(db)
//	query, _ := NewAuthenticateQuery("alice", "s3cret-pw")
//
//	identity, err := handler.Handle(ctx, query)
//	if errors.Is(err, ErrInvalidCredentials) {
//	    // 401
//	}
type AuthenticateQueryHandler struct {
	db *gorm.DB
}

// NewAuthenticateQueryHandler creates a handler for credential checks.
func NewAuthenticateQueryHandler(db *gorm.DB) AuthenticateQueryHandler {
	return AuthenticateQueryHandler{db: db}
}

// Handle executes the credential check. Returns ErrInvalidCredentials when
// the username is unknown or the password does not match.
func (h AuthenticateQueryHandler) Handle(
	ctx context.Context,
	query AuthenticateQuery,
) (AuthenticateQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return AuthenticateQueryResponse{}, err
	}

	var (
		id           uuid.UUID
		username     string
		passwordHash string
		role         int
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT id, username, password_hash, role
		FROM users
		WHERE username = ?
	`, query.Username()).Row()

	err := row.Scan(&id, &username, &passwordHash, &role)
	if errors.Is(err, sql.ErrNoRows) {
		return AuthenticateQueryResponse{}, ErrInvalidCredentials
	}
	if err != nil {
		return AuthenticateQueryResponse{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(query.Password())) != nil {
		return AuthenticateQueryResponse{}, ErrInvalidCredentials
	}

	userID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return AuthenticateQueryResponse{}, err
	}

	userRole := user.Role(role)
	if err = userRole.Validate(); err != nil {
		return AuthenticateQueryResponse{}, err
	}

	return AuthenticateQueryResponse{
		UserID:   userID,
		Username: username,
		Role:     userRole,
	}, nil
}
