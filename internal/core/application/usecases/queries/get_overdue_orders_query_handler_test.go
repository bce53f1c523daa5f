package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOverdueOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOverdueOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetOverdueOrdersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))

	suite.handler = queries.NewGetOverdueOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db)
}

func (suite *GetOverdueOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetOverdueOrdersQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_items, orders RESTART IDENTITY").Error)
}

func (suite *GetOverdueOrdersQueryHandlerTestSuite) TestHandle_ReturnsOnlyOpenOverdueOrders() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	overdue := suite.addOrder(ctx, now.Add(-2*time.Hour), order.Shipped)
	mostOverdue := suite.addOrder(ctx, now.Add(-5*time.Hour), order.Created)
	suite.addOrder(ctx, now.Add(time.Hour), order.Processing)
	suite.addOrder(ctx, now.Add(-time.Hour), order.Delivered)
	suite.addOrder(ctx, now.Add(-time.Hour), order.Cancelled)
	suite.addOrderWithoutEstimate(ctx)

	result, err := suite.handler.Handle(ctx, queries.NewGetOverdueOrdersQuery(now))
	suite.Require().NoError(err)

	suite.Require().Len(result, 2)
	suite.Equal(mostOverdue, result[0].ID)
	suite.Equal(order.Created, result[0].Status)
	suite.Equal(overdue, result[1].ID)
	suite.Equal(kernel.ID(7), result[1].UserID)
	suite.True(now.Add(-2 * time.Hour).Equal(result[1].EstimatedDeliveryTime))
	suite.Require().NotNil(result[1].DriverID)
	suite.Equal(kernel.ID(11), *result[1].DriverID)
}

func (suite *GetOverdueOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase() {
	result, err := suite.handler.Handle(context.Background(), queries.NewGetOverdueOrdersQuery(time.Now()))

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetOverdueOrdersQueryHandlerTestSuite) TestHandle_DatabaseFailure_ReturnsStorageError() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := suite.handler.Handle(ctx, queries.NewGetOverdueOrdersQuery(time.Now()))

	suite.Nil(result)
	suite.Require().ErrorIs(err, errs.ErrStorage)
	suite.Require().ErrorIs(err, context.Canceled)
}

func (suite *GetOverdueOrdersQueryHandlerTestSuite) TestHandle_NotConstructed() {
	_, err := suite.handler.Handle(context.Background(), queries.GetOverdueOrdersQuery{})
	suite.Require().ErrorIs(err, queries.ErrGetOverdueOrdersQueryIsNotConstructed)
}

func (suite *GetOverdueOrdersQueryHandlerTestSuite) addOrder(ctx context.Context, eta time.Time, status order.Status) kernel.ID {
	driver := kernel.ID(11)
	widget, err := order.NewItem(1, "Widget", 1, kernel.MustMoney("1.00"), nil)
	suite.Require().NoError(err)
	o, err := order.NewOrder(7, kernel.MustMoney("1.00"), "1 Main St", []*order.Item{widget}, order.Details{
		EstimatedDeliveryTime: &eta,
		DriverID:              &driver,
	})
	suite.Require().NoError(err)
	suite.Require().NoError(o.ChangeStatus(status, order.PermissiveTransitions{}, time.Now()))

	id, err := suite.orderRepo.Add(ctx, o)
	suite.Require().NoError(err)
	return id
}

func (suite *GetOverdueOrdersQueryHandlerTestSuite) addOrderWithoutEstimate(ctx context.Context) {
	widget, err := order.NewItem(1, "Widget", 1, kernel.MustMoney("1.00"), nil)
	suite.Require().NoError(err)
	o, err := order.NewOrder(8, kernel.MustMoney("1.00"), "1 Main St", []*order.Item{widget}, order.Details{})
	suite.Require().NoError(err)

	_, err = suite.orderRepo.Add(ctx, o)
	suite.Require().NoError(err)
}

func TestGetOverdueOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOverdueOrdersQueryHandlerTestSuite))
}
