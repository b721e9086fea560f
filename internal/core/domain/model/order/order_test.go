package order_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), order.GenerateNumber(), "deliver package", kernel.NewUUID())
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates a pending unbound order", func(t *testing.T) {
		id := kernel.NewUUID()
		number := order.GenerateNumber()
		dispatcherID := kernel.NewUUID()

		o, err := order.NewOrder(id, number, "deliver package", dispatcherID)
		require.NoError(t, err)
		require.NoError(t, o.Validate())

		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.Number().IsEqual(number))
		assert.Equal(t, "deliver package", o.Content())
		assert.Equal(t, order.Pending, o.Status())
		assert.True(t, o.DispatcherID().IsEqual(dispatcherID))
		assert.Nil(t, o.ReceiverID())
		assert.Nil(t, o.CompletedAt())
		assert.False(t, o.CreatedAt().IsZero())
	})

	t.Run("empty content is rejected", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), order.GenerateNumber(), "", kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero ids are rejected", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, order.GenerateNumber(), "x", kernel.NewUUID())
		require.Error(t, err)

		_, err = order.NewOrder(kernel.NewUUID(), order.GenerateNumber(), "x", kernel.UUID{})
		require.Error(t, err)
	})

	t.Run("zero number is rejected", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), order.Number{}, "x", kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestOrder_Validate_ZeroValue(t *testing.T) {
	var o order.Order
	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)

	var nilOrder *order.Order
	require.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)
}

func TestOrder_Claim(t *testing.T) {
	t.Run("binds the receiver and moves to delivering", func(t *testing.T) {
		o := newTestOrder(t)
		receiverID := kernel.NewUUID()

		require.NoError(t, o.Claim(receiverID))
		assert.Equal(t, order.Delivering, o.Status())
		require.NotNil(t, o.ReceiverID())
		assert.True(t, o.ReceiverID().IsEqual(receiverID))
	})

	t.Run("second claim conflicts and leaves the binding untouched", func(t *testing.T) {
		o := newTestOrder(t)
		winner := kernel.NewUUID()
		require.NoError(t, o.Claim(winner))

		err := o.Claim(kernel.NewUUID())
		require.ErrorIs(t, err, order.ErrAlreadyClaimed)
		assert.True(t, o.ReceiverID().IsEqual(winner))
		assert.Equal(t, order.Delivering, o.Status())
	})

	t.Run("invalid receiver id is rejected", func(t *testing.T) {
		o := newTestOrder(t)
		require.Error(t, o.Claim(kernel.UUID{}))
		assert.Equal(t, order.Pending, o.Status())
	})
}

func TestOrder_Complete(t *testing.T) {
	t.Run("delivering order completes with a timestamp", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Claim(kernel.NewUUID()))

		require.NoError(t, o.Complete())
		assert.Equal(t, order.Completed, o.Status())
		require.NotNil(t, o.CompletedAt())
	})

	t.Run("pending order cannot complete", func(t *testing.T) {
		o := newTestOrder(t)
		require.ErrorIs(t, o.Complete(), order.ErrNotDelivering)
		assert.Nil(t, o.CompletedAt())
	})

	t.Run("double completion conflicts", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Claim(kernel.NewUUID()))
		require.NoError(t, o.Complete())
		first := *o.CompletedAt()

		require.ErrorIs(t, o.Complete(), order.ErrAlreadyCompleted)
		assert.Equal(t, first, *o.CompletedAt())
	})
}

func TestOrder_StatusNeverRegresses(t *testing.T) {
	o := newTestOrder(t)
	observed := []order.Status{o.Status()}

	require.NoError(t, o.Claim(kernel.NewUUID()))
	observed = append(observed, o.Status())

	require.NoError(t, o.Complete())
	observed = append(observed, o.Status())

	// further attempts must not move the status at all
	_ = o.Claim(kernel.NewUUID())
	_ = o.Complete()
	observed = append(observed, o.Status())

	for i := 1; i < len(observed); i++ {
		assert.GreaterOrEqual(t, int(observed[i]), int(observed[i-1]))
	}
}

func TestRestoreOrder(t *testing.T) {
	id := kernel.NewUUID()
	number := order.GenerateNumber()
	dispatcherID := kernel.NewUUID()
	receiverID := kernel.NewUUID()
	now := time.Now().UTC()

	t.Run("restores a delivering order", func(t *testing.T) {
		o, err := order.RestoreOrder(
			id, number, "deliver package", order.Delivering, dispatcherID, &receiverID, now, now, nil,
		)
		require.NoError(t, err)
		assert.Equal(t, order.Delivering, o.Status())
		assert.True(t, o.ReceiverID().IsEqual(receiverID))
	})

	t.Run("pending order with a receiver is rejected", func(t *testing.T) {
		_, err := order.RestoreOrder(
			id, number, "deliver package", order.Pending, dispatcherID, &receiverID, now, now, nil,
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("delivering order without a receiver is rejected", func(t *testing.T) {
		_, err := order.RestoreOrder(
			id, number, "deliver package", order.Delivering, dispatcherID, nil, now, now, nil,
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("completed order requires completedAt", func(t *testing.T) {
		_, err := order.RestoreOrder(
			id, number, "deliver package", order.Completed, dispatcherID, &receiverID, now, now, nil,
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		completedAt := now
		o, err := order.RestoreOrder(
			id, number, "deliver package", order.Completed, dispatcherID, &receiverID, now, now, &completedAt,
		)
		require.NoError(t, err)
		require.NotNil(t, o.CompletedAt())
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		_, err := order.RestoreOrder(
			id, number, "deliver package", order.Unknown, dispatcherID, nil, now, now, nil,
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatusChange(t *testing.T) {
	t.Run("claim change", func(t *testing.T) {
		receiverID := kernel.NewUUID()
		change, err := order.ClaimChange(receiverID)
		require.NoError(t, err)
		require.NoError(t, change.Validate())

		assert.Equal(t, order.Pending, change.From())
		assert.Equal(t, order.Delivering, change.To())
		require.NotNil(t, change.ReceiverID())
		assert.True(t, change.ReceiverID().IsEqual(receiverID))
		assert.Nil(t, change.BoundReceiverID())
		assert.Nil(t, change.CompletedAt())
	})

	t.Run("completion change", func(t *testing.T) {
		receiverID := kernel.NewUUID()
		completedAt := time.Now().UTC()
		change, err := order.CompletionChange(receiverID, completedAt)
		require.NoError(t, err)
		require.NoError(t, change.Validate())

		assert.Equal(t, order.Delivering, change.From())
		assert.Equal(t, order.Completed, change.To())
		assert.Nil(t, change.ReceiverID())
		require.NotNil(t, change.BoundReceiverID())
		assert.True(t, change.BoundReceiverID().IsEqual(receiverID))
		require.NotNil(t, change.CompletedAt())
		assert.Equal(t, completedAt, *change.CompletedAt())
	})

	t.Run("invalid receiver ids are rejected", func(t *testing.T) {
		_, err := order.ClaimChange(kernel.UUID{})
		require.Error(t, err)

		_, err = order.CompletionChange(kernel.UUID{}, time.Now())
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var change order.StatusChange
		require.Error(t, change.Validate())
	})
}
