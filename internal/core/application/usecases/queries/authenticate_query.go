package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/guard"
)

var (
	ErrAuthenticateQueryIsNotConstructed = errors.New(
		"AuthenticateQuery must be created via NewAuthenticateQuery constructor",
	)
	ErrCredentialsAreRequired = errors.New("username and password are required")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password, so callers cannot probe which usernames exist.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AuthenticateQuery verifies a username/password pair against the stored
// bcrypt hash and resolves the account's identity.
type AuthenticateQuery struct {
	username string
	password string

	guard guard.ConstructorGuard
}

// NewAuthenticateQuery creates an authentication query.
func NewAuthenticateQuery(username string, password string) (AuthenticateQuery, error) {
	if username == "" || password == "" {
		return AuthenticateQuery{}, ErrCredentialsAreRequired
	}

	return AuthenticateQuery{
		username: username,
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q AuthenticateQuery) Validate() error {
	return q.guard.Validate(ErrAuthenticateQueryIsNotConstructed)
}

// Username returns the submitted account name.
func (q AuthenticateQuery) Username() string {
	return q.username
}

// Password returns the submitted plaintext password.
func (q AuthenticateQuery) Password() string {
	return q.password
}

// AuthenticateQueryResponse identifies the authenticated account.
type AuthenticateQueryResponse struct {
	UserID   kernel.UUID
	Username string
	Role     user.Role
}
