package cmd

import (
	"log/slog"
	"time"

	"fulfillment/internal/adapters/out/catalognet"
	"fulfillment/internal/adapters/out/dispatchnet"
	"fulfillment/internal/adapters/out/mailer"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/rabbitmq"
	"fulfillment/internal/adapters/out/redis/cartrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	amqp "github.com/rabbitmq/amqp091-go"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires the adapters to the use case handlers. The dispatch
// coordinator is shared, so its in-flight bookkeeping spans the HTTP handlers
// and the recovery sweep.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	cartRepo       ports.CartRepository
	catalogClient  ports.CatalogClient
	dispatchClient ports.DispatchClient
	invoiceMailer  ports.InvoiceMailer
	publisher      ports.EventPublisher

	coordinator *commands.DispatchCoordinator
	logger      *slog.Logger
}

// NewCompositionRoot builds the object graph from the opened connections.
func NewCompositionRoot(config Config, gormDB *gorm.DB, redisClient *goredis.Client,
	amqpChannel *amqp.Channel, logger *slog.Logger) (*CompositionRoot, error) {
	cartRepo, err := cartrepo.NewRedisCartRepository(redisClient)
	if err != nil {
		return nil, err
	}
	catalogClient, err := catalognet.NewClient(config.CatalogBaseURL, 3*time.Second)
	if err != nil {
		return nil, err
	}
	dispatchClient, err := dispatchnet.NewClient(config.DispatchBaseURL, 3*time.Second)
	if err != nil {
		return nil, err
	}
	invoiceMailer, err := mailer.NewRelayMailer(config.MailerBaseURL, 5*time.Second)
	if err != nil {
		return nil, err
	}
	publisher, err := rabbitmq.NewPublisher(amqpChannel)
	if err != nil {
		return nil, err
	}

	root := &CompositionRoot{
		gormDB:         gormDB,
		uowFactory:     postgres.NewGormUnitOfWorkFactory(gormDB),
		cartRepo:       cartRepo,
		catalogClient:  catalogClient,
		dispatchClient: dispatchClient,
		invoiceMailer:  invoiceMailer,
		publisher:      publisher,
		logger:         logger,
	}
	root.coordinator = commands.NewDispatchCoordinator(root.orderUoWFactory(),
		dispatchClient, logger, commands.DispatchCoordinatorConfig{})
	return root, nil
}

// Coordinator exposes the shared dispatch coordinator for shutdown.
func (c *CompositionRoot) Coordinator() *commands.DispatchCoordinator {
	return c.coordinator
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateAddCartItemCommandHandler() commands.AddCartItemCommandHandler {
	return commands.NewAddCartItemCommandHandler(c.cartRepo, c.catalogClient)
}

func (c *CompositionRoot) CreateSetCartItemQuantityCommandHandler() commands.SetCartItemQuantityCommandHandler {
	return commands.NewSetCartItemQuantityCommandHandler(c.cartRepo, c.catalogClient)
}

func (c *CompositionRoot) CreateRemoveCartItemCommandHandler() commands.RemoveCartItemCommandHandler {
	return commands.NewRemoveCartItemCommandHandler(c.cartRepo)
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	return commands.NewCheckoutCommandHandler(c.orderUoWFactory(), c.cartRepo,
		c.catalogClient, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.publisher,
		c.coordinator, c.catalogClient, c.logger)
}

func (c *CompositionRoot) CreateMarkPaymentCommandHandler() commands.MarkPaymentCommandHandler {
	return commands.NewMarkPaymentCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateEnsureInvoiceCommandHandler() commands.EnsureInvoiceCommandHandler {
	return commands.NewEnsureInvoiceCommandHandler(c.uoWFactory())
}

func (c *CompositionRoot) CreateSendInvoiceEmailCommandHandler() commands.SendInvoiceEmailCommandHandler {
	return commands.NewSendInvoiceEmailCommandHandler(c.uoWFactory(), c.invoiceMailer,
		c.publisher, c.logger)
}

func (c *CompositionRoot) CreateRequestDispatchCommandHandler() commands.RequestDispatchCommandHandler {
	return commands.NewRequestDispatchCommandHandler(c.coordinator)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() (queries.GetOrderQueryHandler, error) {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() (queries.GetActiveOrdersQueryHandler, error) {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetInvoiceArtifactQueryHandler() (queries.GetInvoiceArtifactQueryHandler, error) {
	return queries.NewGetInvoiceArtifactQueryHandler(c.uowFactory.Create().InvoiceRepository())
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.orderUoWFactory(), c.CreateRequestDispatchCommandHandler(), c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
