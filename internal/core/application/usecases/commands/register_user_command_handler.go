package commands

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/errs"
)

// RegisterUserCommandHandler handles the business logic for account creation.
// Hashes the password with bcrypt and persists the user. Username uniqueness
// is checked up front for a friendly error and enforced by the database's
// unique index against concurrent registrations.
type RegisterUserCommandHandler struct {
	uowFactory UserUoWFactory
}

// NewRegisterUserCommandHandler creates a handler for user registration.
func NewRegisterUserCommandHandler(uowFactory UserUoWFactory) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the registration command and returns the created user.
// Returns errs.ErrObjectAlreadyExists when the username is taken.
func (h RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()

	if _, err = userRepo.GetByUsername(ctx, cmd.Username()); err == nil {
		return nil, errs.NewObjectAlreadyExistsError("username", cmd.Username())
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	newUser, err := user.NewUser(kernel.NewUUID(), cmd.Username(), string(hash), cmd.Role())
	if err != nil {
		return nil, err
	}

	if err = userRepo.Add(ctx, newUser); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newUser, nil
}
