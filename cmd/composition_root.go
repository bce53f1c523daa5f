package cmd

import (
	"fmt"
	"log/slog"

	httpapi "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/identity"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot builds the application graph from Config.
type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, publisher ports.EventPublisher, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.TotalPolicy(), c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(
		c.orderUoWFactory(), c.publisher, c.TransitionPolicy(), c.TotalPolicy(), c.logger,
	)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory(), c.publisher, c.TransitionPolicy(), c.logger)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(orderrepo.NewGormOrderRepository(c.gormDB))
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(orderrepo.NewGormOrderRepository(c.gormDB))
}

func (c *CompositionRoot) CreateGetOverdueOrdersQueryHandler() queries.GetOverdueOrdersQueryHandler {
	return queries.NewGetOverdueOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpapi.Server {
	return httpapi.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateUpdateOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateDeleteOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateListOrdersQueryHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetOverdueOrdersQueryHandler(), c.configs.OverdueOrdersSchedule, c.logger)
}

// CreateIdentityProvider returns nil when no tokens are configured, which
// leaves the API open.
func (c *CompositionRoot) CreateIdentityProvider() (ports.IdentityProvider, error) {
	if c.configs.IdentityTokens == "" {
		return nil, nil
	}
	provider, err := identity.ParseStaticProvider(c.configs.IdentityTokens)
	if err != nil {
		return nil, fmt.Errorf("identity provider: %w", err)
	}
	return provider, nil
}

// TransitionPolicy is permissive unless ORDER_STRICT_TRANSITIONS is set.
func (c *CompositionRoot) TransitionPolicy() order.TransitionPolicy {
	if c.configs.StrictTransitions {
		return order.NewStrictTransitions()
	}
	return order.PermissiveTransitions{}
}

// TotalPolicy accepts declared totals unless ORDER_STRICT_TOTALS is set.
func (c *CompositionRoot) TotalPolicy() order.TotalPolicy {
	if c.configs.StrictTotals {
		return order.ReconciledTotal{}
	}
	return order.DeclaredTotal{}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

// NewEventPublisher connects to Kafka, or drops events when KAFKA_HOST is empty.
// The returned func releases the connection.
func NewEventPublisher(configs Config, logger *slog.Logger) (ports.EventPublisher, func(), error) {
	if configs.KafkaHost == "" {
		logger.Info("KAFKA_HOST is not set, order events will not be published")
		return kafka.NewNopPublisher(logger), func() {}, nil
	}

	publisher, err := kafka.NewOrderChangedPublisher(configs.KafkaHost, configs.KafkaOrderChangedTopic, logger)
	if err != nil {
		return nil, nil, err
	}
	return publisher, publisher.Close, nil
}

// FuncOrderUoWFactory adapts a function to commands.OrderUoWFactory.
type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
