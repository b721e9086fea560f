package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/guard"
)

const minPasswordLength = 6

var (
	ErrRegisterUserCommandIsNotConstructed = errors.New(
		"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
	)
	ErrUsernameIsRequired = errors.New("username is required")
	ErrPasswordIsTooShort = errors.New("password must be at least 6 characters")
)

// RegisterUserCommand represents a request to create a new user account with
// a fixed role.
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	username string
	password string
	role     user.Role

	guard guard.ConstructorGuard
}

// NewRegisterUserCommand creates a command to register a new user.
// Validates that the username is not empty, the password meets the minimum
// length and the role is a known one.
func NewRegisterUserCommand(username string, password string, role user.Role) (RegisterUserCommand, error) {
	registerCommand := RegisterUserCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		registerCommand.setUsername(username),
		registerCommand.setPassword(password),
		registerCommand.setRole(role),
	); err != nil {
		return RegisterUserCommand{}, err
	}

	return registerCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

// Username returns the requested account name.
func (c RegisterUserCommand) Username() string {
	return c.username
}

// Password returns the plaintext password. It never leaves the handler,
// which stores only a bcrypt hash.
func (c RegisterUserCommand) Password() string {
	return c.password
}

// Role returns the requested account role.
func (c RegisterUserCommand) Role() user.Role {
	return c.role
}

func (c *RegisterUserCommand) setUsername(username string) error {
	if username == "" {
		return ErrUsernameIsRequired
	}

	c.username = username
	return nil
}

func (c *RegisterUserCommand) setPassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordIsTooShort
	}

	c.password = password
	return nil
}

func (c *RegisterUserCommand) setRole(role user.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	c.role = role
	return nil
}
