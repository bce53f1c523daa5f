package http_test

import (
	"context"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) (kernel.ID, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(kernel.ID), args.Error(1)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) ReplaceItems(ctx context.Context, orderID kernel.ID, items []*order.Item) error {
	return m.Called(ctx, orderID, items).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) FindPage(
	ctx context.Context,
	filter ports.OrderFilter,
	page, limit int,
) ([]*order.Order, int64, error) {
	args := m.Called(ctx, filter, page, limit)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.ID) error {
	return m.Called(ctx, id).Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockOrderUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockOrderUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event ports.OrderChangedEvent) error {
	return m.Called(ctx, event).Error(0)
}

type MockIdentityProvider struct{ mock.Mock }

func (m *MockIdentityProvider) ValidateToken(ctx context.Context, token string) (ports.Identity, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(ports.Identity), args.Error(1)
}
