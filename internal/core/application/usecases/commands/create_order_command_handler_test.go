package commands_test

import (
	"context"
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateCommand(t *testing.T, total string) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(7, kernel.MustMoney(total), "1 Main St", exampleItems(), order.Details{})
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	cmd := newCreateCommand(t, "45.50")
	stored := storedOrder(42, order.Created)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
			return o.Status() == order.Created && len(o.Items()) == 2 && o.ID().IsZero()
		})).Return(kernel.ID(42), nil).Once(),
		repo.On("Get", mock.Anything, kernel.ID(42)).Return(stored, nil).Once(),
		uow.On("Commit", mock.Anything).Return(nil).Once(),
		publisher.On("Publish", mock.Anything, eventOfType(ports.OrderCreated)).Return(nil).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, publisher, order.DeclaredTotal{}, discardLogger())
	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Same(t, stored, created)
	assert.Equal(t, order.Created, created.Status())
	assert.Equal(t, order.PaymentPending, created.PaymentStatus())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, new(MockEventPublisher), order.DeclaredTotal{}, discardLogger())

	_, err := h.Handle(context.Background(), commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_StrictTotalMismatch(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, new(MockEventPublisher), order.ReconciledTotal{}, discardLogger())

	_, err := h.Handle(context.Background(), newCreateCommand(t, "50.00"))

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", mock.Anything).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory, new(MockEventPublisher), order.DeclaredTotal{}, discardLogger())
	_, err := h.Handle(context.Background(), newCreateCommand(t, "45.50"))

	require.EqualError(t, err, "begin error")
	uow.AssertNotCalled(t, "Rollback", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_ItemInsertErrorRollsBack(t *testing.T) {
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	publisher := new(MockEventPublisher)
	storageErr := errs.NewStorageErrorWithCause("insert order items", errors.New("connection reset"))
	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(kernel.ID(0), storageErr).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, publisher, order.DeclaredTotal{}, discardLogger())
	created, err := h.Handle(context.Background(), newCreateCommand(t, "45.50"))

	assert.Nil(t, created)
	require.ErrorIs(t, err, errs.ErrStorage)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(kernel.ID(42), nil).Once(),
		repo.On("Get", mock.Anything, kernel.ID(42)).Return(storedOrder(42, order.Created), nil).Once(),
		uow.On("Commit", mock.Anything).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, publisher, order.DeclaredTotal{}, discardLogger())
	_, err := h.Handle(context.Background(), newCreateCommand(t, "45.50"))

	require.EqualError(t, err, "commit error")
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_PublishErrorIsNotReturned(t *testing.T) {
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	publisher := new(MockEventPublisher)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("OrderRepository").Return(repo)
	repo.On("Add", mock.Anything, mock.Anything).Return(kernel.ID(42), nil)
	repo.On("Get", mock.Anything, kernel.ID(42)).Return(storedOrder(42, order.Created), nil)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewCreateOrderCommandHandler(factory, publisher, order.DeclaredTotal{}, discardLogger())
	created, err := h.Handle(context.Background(), newCreateCommand(t, "45.50"))

	require.NoError(t, err)
	assert.Equal(t, kernel.ID(42), created.ID())
	publisher.AssertExpectations(t)
}
