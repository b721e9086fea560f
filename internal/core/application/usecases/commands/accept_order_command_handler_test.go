package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pendingTestOrder(t *testing.T, dispatcherID kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), order.GenerateNumber(), "test cargo", dispatcherID)
	require.NoError(t, err)
	return o
}

func deliveringTestOrder(t *testing.T, id kernel.UUID, receiverID kernel.UUID) *order.Order {
	t.Helper()
	now := time.Now().UTC()
	o, err := order.RestoreOrder(
		id, order.GenerateNumber(), "test cargo", order.Delivering,
		kernel.NewUUID(), &receiverID, now, now, nil,
	)
	require.NoError(t, err)
	return o
}

func TestAcceptOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	receiverID := kernel.NewUUID()
	cmd, err := commands.NewAcceptOrderCommand(orderID, receiverID)
	require.NoError(t, err)

	claimed := deliveringTestOrder(t, orderID, receiverID)

	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", ctx, receiverID).Return(newTestReceiver(receiverID), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("UpdateStatusIf", ctx, orderID, mock.AnythingOfType("order.StatusChange")).
			Return(true, nil).
			Once(),
		orderRepo.On("Get", ctx, orderID).Return(claimed, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptOrderCommandHandler(factory)
	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, order.Delivering, got.Status())
	require.NotNil(t, got.ReceiverID())
	assert.True(t, got.ReceiverID().IsEqual(receiverID))

	// the change shipped to the store must be the pending-to-delivering claim
	change := orderRepo.Calls[0].Arguments[2].(order.StatusChange)
	assert.Equal(t, order.Pending, change.From())
	assert.Equal(t, order.Delivering, change.To())
	require.NotNil(t, change.ReceiverID())
	assert.True(t, change.ReceiverID().IsEqual(receiverID))
	assert.Nil(t, change.BoundReceiverID())

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAcceptOrderCommandHandler_Handle_NotAReceiver(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	dispatcherID := kernel.NewUUID()
	cmd, err := commands.NewAcceptOrderCommand(orderID, dispatcherID)
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", ctx, dispatcherID).Return(newTestDispatcher(dispatcherID), nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptOrderCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrNotAReceiver)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestAcceptOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	receiverID := kernel.NewUUID()
	cmd, err := commands.NewAcceptOrderCommand(orderID, receiverID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", ctx, receiverID).Return(newTestReceiver(receiverID), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("UpdateStatusIf", ctx, orderID, mock.AnythingOfType("order.StatusChange")).
			Return(false, nil).
			Once(),
		orderRepo.On("Get", ctx, orderID).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptOrderCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestAcceptOrderCommandHandler_Handle_AlreadyClaimed(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	receiverID := kernel.NewUUID()
	otherReceiverID := kernel.NewUUID()
	cmd, err := commands.NewAcceptOrderCommand(orderID, receiverID)
	require.NoError(t, err)

	taken := deliveringTestOrder(t, orderID, otherReceiverID)

	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", ctx, receiverID).Return(newTestReceiver(receiverID), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("UpdateStatusIf", ctx, orderID, mock.AnythingOfType("order.StatusChange")).
			Return(false, nil).
			Once(),
		orderRepo.On("Get", ctx, orderID).Return(taken, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptOrderCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrAlreadyClaimed)
	uow.AssertNotCalled(t, "Commit", ctx)
}

// memoryStore is a mutex-guarded fake of the persistence layer whose
// UpdateStatusIf has the same check-and-write atomicity as the real SQL
// statement. It backs the claim exclusivity test below.
type memoryStore struct {
	mu     sync.Mutex
	users  map[string]*user.User
	orders map[string]*memoryOrderRow
}

type memoryOrderRow struct {
	id           kernel.UUID
	number       order.Number
	content      string
	status       order.Status
	dispatcherID kernel.UUID
	receiverID   *kernel.UUID
	createdAt    time.Time
	updatedAt    time.Time
	completedAt  *time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:  make(map[string]*user.User),
		orders: make(map[string]*memoryOrderRow),
	}
}

func (s *memoryStore) putUser(u *user.User) {
	s.users[u.ID().String()] = u
}

func (s *memoryStore) putOrder(o *order.Order) {
	s.orders[o.ID().String()] = &memoryOrderRow{
		id:           o.ID(),
		number:       o.Number(),
		content:      o.Content(),
		status:       o.Status(),
		dispatcherID: o.DispatcherID(),
		receiverID:   o.ReceiverID(),
		createdAt:    o.CreatedAt(),
		updatedAt:    o.UpdatedAt(),
		completedAt:  o.CompletedAt(),
	}
}

func (s *memoryStore) Add(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putOrder(o)
	return nil
}

func (s *memoryStore) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderId", id)
	}
	return order.RestoreOrder(
		row.id, row.number, row.content, row.status,
		row.dispatcherID, row.receiverID, row.createdAt, row.updatedAt, row.completedAt,
	)
}

func (s *memoryStore) UpdateStatusIf(
	_ context.Context,
	id kernel.UUID,
	change order.StatusChange,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.orders[id.String()]
	if !ok {
		return false, nil
	}
	if row.status != change.From() {
		return false, nil
	}
	if bound := change.BoundReceiverID(); bound != nil {
		if row.receiverID == nil || !row.receiverID.IsEqual(*bound) {
			return false, nil
		}
	}

	row.status = change.To()
	if r := change.ReceiverID(); r != nil {
		row.receiverID = r
	}
	if ts := change.CompletedAt(); ts != nil {
		row.completedAt = ts
	}
	row.updatedAt = time.Now().UTC()
	return true, nil
}

type memoryUserRepo struct{ store *memoryStore }

func (r memoryUserRepo) Add(_ context.Context, u *user.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.putUser(u)
	return nil
}

func (r memoryUserRepo) Get(_ context.Context, id kernel.UUID) (*user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.users[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("userId", id)
	}
	return u, nil
}

func (r memoryUserRepo) GetByUsername(_ context.Context, username string) (*user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, u := range r.store.users {
		if u.Username() == username {
			return u, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("username", username)
}

type memoryUoW struct{ store *memoryStore }

func (u memoryUoW) Begin(context.Context) error            { return nil }
func (u memoryUoW) Commit(context.Context) error           { return nil }
func (u memoryUoW) Rollback(context.Context) error         { return nil }
func (u memoryUoW) OrderRepository() ports.OrderRepository { return u.store }
func (u memoryUoW) UserRepository() ports.UserRepository   { return memoryUserRepo{store: u.store} }

type memoryUoWFactory struct{ store *memoryStore }

func (f memoryUoWFactory) Create() commands.UoW { return memoryUoW{store: f.store} }

func TestAcceptOrderCommandHandler_Handle_ExactlyOneWinner(t *testing.T) {
	ctx := t.Context()

	store := newMemoryStore()
	pending := pendingTestOrder(t, kernel.NewUUID())
	store.putOrder(pending)

	const racers = 32
	receiverIDs := make([]kernel.UUID, racers)
	for i := range receiverIDs {
		receiverIDs[i] = kernel.NewUUID()
		store.putUser(newTestReceiver(receiverIDs[i]))
	}

	handler := commands.NewAcceptOrderCommandHandler(memoryUoWFactory{store: store})

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		winners  []kernel.UUID
		conflict int
	)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(receiverID kernel.UUID) {
			defer wg.Done()

			cmd, err := commands.NewAcceptOrderCommand(pending.ID(), receiverID)
			if err != nil {
				t.Error(err)
				return
			}

			claimed, err := handler.Handle(ctx, cmd)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				winners = append(winners, *claimed.ReceiverID())
			case assert.ErrorIs(t, err, order.ErrAlreadyClaimed):
				conflict++
			}
		}(receiverIDs[i])
	}
	wg.Wait()

	require.Len(t, winners, 1, "exactly one receiver must win the claim")
	assert.Equal(t, racers-1, conflict)

	final, err := store.Get(ctx, pending.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Delivering, final.Status())
	require.NotNil(t, final.ReceiverID())
	assert.True(t, final.ReceiverID().IsEqual(winners[0]))
}
