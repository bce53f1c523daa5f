package commands_test

import (
	"context"
	"io"
	"log/slog"

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
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) ReplaceItems(ctx context.Context, orderID kernel.ID, items []*order.Item) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
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
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event ports.OrderChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func eventOfType(eventType ports.EventType) any {
	return mock.MatchedBy(func(e ports.OrderChangedEvent) bool {
		return e.Type == eventType && e.ID != ""
	})
}

// storedOrder is the aggregate as the repository would return it after insert.
func storedOrder(id kernel.ID, status order.Status) *order.Order {
	widget, _ := order.RestoreItem(1, 1, "Widget", 3, kernel.MustMoney("10.00"), kernel.MustMoney("30.00"), nil)
	gadget, _ := order.RestoreItem(2, 2, "Gadget", 1, kernel.MustMoney("15.50"), kernel.MustMoney("15.50"), nil)
	o, _ := order.RestoreOrder(order.State{
		ID:              id,
		UserID:          7,
		TotalAmount:     kernel.MustMoney("45.50"),
		Status:          status,
		PaymentMethod:   order.CreditCard,
		PaymentStatus:   order.PaymentPending,
		ShippingAddress: "1 Main St",
	}, []*order.Item{widget, gadget})
	return o
}

func exampleItems() []commands.ItemSpec {
	return []commands.ItemSpec{
		{ProductID: 1, ProductName: "Widget", Quantity: 3, UnitPrice: kernel.MustMoney("10.00")},
		{ProductID: 2, ProductName: "Gadget", Quantity: 1, UnitPrice: kernel.MustMoney("15.50")},
	}
}
