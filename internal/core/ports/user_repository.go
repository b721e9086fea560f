package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for the user directory.
type UserRepository interface {
	// Add persists a new user. A duplicate username surfaces as
	// errs.ErrObjectAlreadyExists.
	Add(ctx context.Context, aggregate *user.User) error

	// Get retrieves a user by id, or errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetByUsername retrieves a user by unique username, or
	// errs.ErrObjectNotFound.
	GetByUsername(ctx context.Context, username string) (*user.User, error)
}
