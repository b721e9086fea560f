package http

import (
	"errors"
	"fmt"
	nethttp "net/http"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid credentials", queries.ErrInvalidCredentials, nethttp.StatusUnauthorized},
		{"not a dispatcher", commands.ErrNotADispatcher, nethttp.StatusForbidden},
		{"not a receiver", commands.ErrNotAReceiver, nethttp.StatusForbidden},
		{"not the order receiver", commands.ErrNotOrderReceiver, nethttp.StatusForbidden},
		{"object not found", errs.NewObjectNotFoundError("order", "42"), nethttp.StatusNotFound},
		{"already exists", errs.NewObjectAlreadyExistsError("username", "bob"), nethttp.StatusConflict},
		{"already claimed", order.ErrAlreadyClaimed, nethttp.StatusConflict},
		{"not delivering", order.ErrNotDelivering, nethttp.StatusConflict},
		{"already completed", order.ErrAlreadyCompleted, nethttp.StatusConflict},
		{"value required", errs.NewValueIsRequiredError("content"), nethttp.StatusBadRequest},
		{"unknown error", errors.New("boom"), nethttp.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusOf(tt.err))
		})
	}
}

func TestStatusOf_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("handling accept: %w", order.ErrAlreadyClaimed)
	assert.Equal(t, nethttp.StatusConflict, statusOf(wrapped))
}
