package user

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrUserIsNotConstructed is returned when a User instance was not created
// through the NewUser or RestoreUser factory functions.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser")

// User is a role-tagged account in the directory. It carries only identity:
// orders reference users by id and never embed them.
//
// The password hash stored here is opaque to the domain; hashing and
// verification live with the registration and authentication use cases.
type User struct {
	id           kernel.UUID
	username     string
	passwordHash string
	role         Role

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewUser creates a user with the given unique username, pre-hashed
// password, and role. The role is immutable afterwards.
func NewUser(id kernel.UUID, username string, passwordHash string, role Role) (*User, error) {
	now := time.Now().UTC()
	u := &User{
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		u.setID(id),
		u.setUsername(username),
		u.setPasswordHash(passwordHash),
		u.setRole(role),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUser reconstructs a user from persistence.
func RestoreUser(
	id kernel.UUID,
	username string,
	passwordHash string,
	role Role,
	createdAt time.Time,
	updatedAt time.Time,
) (*User, error) {
	u := &User{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		u.setID(id),
		u.setUsername(username),
		u.setPasswordHash(passwordHash),
		u.setRole(role),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// Validate ensures the User was built via NewUser or RestoreUser.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

// IsEqual compares two users by identifier.
func (u *User) IsEqual(other *User) bool {
	return other != nil && u.id.IsEqual(other.id)
}

// ID returns the user's unique identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// Username returns the unique login name.
func (u *User) Username() string {
	return u.username
}

// PasswordHash returns the stored bcrypt hash.
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// Role returns the user's fixed role.
func (u *User) Role() Role {
	return u.role
}

// CreatedAt returns the registration time.
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// UpdatedAt returns the time of the last mutation.
func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setUsername(username string) error {
	if username == "" {
		return errs.NewValueIsRequiredError("username")
	}
	u.username = username
	return nil
}

func (u *User) setPasswordHash(passwordHash string) error {
	if passwordHash == "" {
		return errs.NewValueIsRequiredError("passwordHash")
	}
	u.passwordHash = passwordHash
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}
