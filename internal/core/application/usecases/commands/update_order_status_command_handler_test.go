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

func TestUpdateOrderStatusCommandHandler_Handle_DeliveredStampsTime(t *testing.T) {
	cmd, err := commands.NewUpdateOrderStatusCommand(42, "DELIVERED")
	require.NoError(t, err)

	current := storedOrder(42, order.Created)
	reloaded := storedOrder(42, order.Delivered)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, kernel.ID(42)).Return(current, nil).Once(),
		repo.On("Update", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
			return o.Status() == order.Delivered && o.ActualDeliveryTime() != nil
		})).Return(nil).Once(),
		repo.On("Get", mock.Anything, kernel.ID(42)).Return(reloaded, nil).Once(),
		uow.On("Commit", mock.Anything).Return(nil).Once(),
		publisher.On("Publish", mock.Anything, eventOfType(ports.OrderStatusChanged)).Return(nil).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, publisher, order.PermissiveTransitions{}, discardLogger())
	updated, err := h.Handle(context.Background(), cmd)

	require.NoError(t, err)
	assert.Same(t, reloaded, updated)
	require.NotNil(t, current.ActualDeliveryTime())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_NotFound(t *testing.T) {
	cmd, err := commands.NewUpdateOrderStatusCommand(404, "SHIPPED")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, kernel.ID(404)).Return(nil, errs.NewObjectNotFoundError("order", int64(404))).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, new(MockEventPublisher), order.PermissiveTransitions{}, discardLogger())
	_, err = h.Handle(context.Background(), cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_StrictPolicyRejects(t *testing.T) {
	cmd, err := commands.NewUpdateOrderStatusCommand(42, "CREATED")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, kernel.ID(42)).Return(storedOrder(42, order.Delivered), nil).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, new(MockEventPublisher), order.NewStrictTransitions(), discardLogger())
	_, err = h.Handle(context.Background(), cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_UpdateErrorRollsBack(t *testing.T) {
	cmd, err := commands.NewUpdateOrderStatusCommand(42, "SHIPPED")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, kernel.ID(42)).Return(storedOrder(42, order.Created), nil).Once(),
		repo.On("Update", mock.Anything, mock.Anything).Return(errors.New("update error")).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, new(MockEventPublisher), order.PermissiveTransitions{}, discardLogger())
	_, err = h.Handle(context.Background(), cmd)

	require.EqualError(t, err, "update error")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}
