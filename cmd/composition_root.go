package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"foodorder/internal/adapters/in/http"
	"foodorder/internal/adapters/out/broker"
	"foodorder/internal/adapters/out/directory"
	"foodorder/internal/adapters/out/dispatcher"
	"foodorder/internal/adapters/out/httpclient"
	"foodorder/internal/adapters/out/ledger"
	"foodorder/internal/adapters/out/postgres"
	"foodorder/internal/adapters/out/postgres/deliveryrepo"
	"foodorder/internal/adapters/out/postgres/orderrepo"
	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/core/ports"
	"foodorder/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires the orchestrator.
type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	policy    order.TransitionPolicy
	planner   services.SideEffectPlanner
	directory ports.Directory
	ledger    ports.Ledger
	notifier  ports.Notifier
	publisher ports.EventPublisher
	runner    *commands.SideEffectRunner

	closers []io.Closer
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	policy, err := order.ParseTransitionPolicy(configs.TransitionPolicy)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		policy:     policy,
		planner:    services.NewSideEffectPlanner(configs.OutboxClaimDelay),
	}

	catalogClient, err := httpclient.New("directory", configs.DirectoryURL, configs.HTTPClientTimeout)
	if err != nil {
		return nil, err
	}
	usersURL := configs.UsersURL
	if usersURL == "" {
		usersURL = configs.DirectoryURL
	}
	usersClient, err := httpclient.New("users", usersURL, configs.HTTPClientTimeout)
	if err != nil {
		return nil, err
	}
	ledgerClient, err := httpclient.New("ledger", configs.LedgerURL, configs.HTTPClientTimeout)
	if err != nil {
		return nil, err
	}
	dispatcherClient, err := httpclient.New("dispatcher", configs.DispatcherURL, configs.HTTPClientTimeout)
	if err != nil {
		return nil, err
	}

	c.directory = directory.NewClient(catalogClient, usersClient)
	c.ledger = ledger.NewClient(ledgerClient)
	c.notifier = dispatcher.NewClient(dispatcherClient)

	if c.publisher, err = c.newEventPublisher(); err != nil {
		return nil, err
	}

	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	executor := commands.NewSideEffectExecutor(c.ledger, c.directory, c.notifier, c.publisher, logger)
	retryPolicy := commands.NewRetryPolicy(configs.OutboxMaxAttempts, configs.OutboxInitialBackoff, configs.OutboxMaxBackoff)
	c.runner = commands.NewSideEffectRunner(f, executor, retryPolicy, logger)

	return c, nil
}

// newEventPublisher selects the broker named by EVENT_BROKER.
func (c *CompositionRoot) newEventPublisher() (ports.EventPublisher, error) {
	switch strings.ToLower(c.configs.EventBroker) {
	case "", "log":
		return broker.NewLogPublisher(c.logger), nil
	case "rabbitmq":
		MustNonEmpty(c.configs.RabbitMQURL, "RABBITMQ_URL")
		p, err := broker.DialRabbitMQ(c.configs.RabbitMQURL)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, p)
		return p, nil
	case "kafka":
		brokers := broker.SplitBrokers(c.configs.KafkaBrokers)
		if len(brokers) == 0 {
			return nil, errors.New("missing required env KAFKA_BROKERS")
		}
		p := broker.NewKafkaPublisher(brokers, c.configs.KafkaOrderEventsTopic)
		c.closers = append(c.closers, p)
		return p, nil
	default:
		return nil, fmt.Errorf("unknown EVENT_BROKER %q, expected log, rabbitmq or kafka", c.configs.EventBroker)
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.planner, c.policy)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.planner, c.policy, c.runner)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateRetryOutboxMessageCommandHandler() commands.RetryOutboxMessageCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRetryOutboxMessageCommandHandler(f)
}

func (c *CompositionRoot) CreateProcessOutboxCommandHandler() commands.ProcessOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewProcessOutboxCommandHandler(f, c.runner)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(orderrepo.NewGormOrderRepository(c.gormDB), c.createEnricher())
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(orderrepo.NewGormOrderRepository(c.gormDB), c.createEnricher())
}

func (c *CompositionRoot) CreateListOutboxMessagesQueryHandler() queries.ListOutboxMessagesQueryHandler {
	return queries.NewListOutboxMessagesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) createEnricher() *queries.Enricher {
	return queries.NewEnricher(c.directory, c.ledger, c.configs.EnrichConcurrency, c.logger)
}

func (c *CompositionRoot) CreateServer() *http.Server {
	return http.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateTransitionOrderCommandHandler(),
		c.CreateDeleteOrderCommandHandler(),
		c.CreateRetryOutboxMessageCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateListOrdersQueryHandler(),
		c.CreateListOutboxMessagesQueryHandler(),
	)
}

// CreateJobManager builds the outbox jobs. waker may be nil.
func (c *CompositionRoot) CreateJobManager(waker jobs.Waker) (*jobs.JobManager, error) {
	processor := c.CreateProcessOutboxCommandHandler()

	relay, err := jobs.NewOutboxRelayJob(processor, jobs.OutboxJobConfig{
		Schedule:  c.configs.RelaySchedule,
		BatchSize: c.configs.OutboxBatchSize,
		Lease:     c.configs.OutboxLease,
	}, c.logger)
	if err != nil {
		return nil, fmt.Errorf("outbox relay job: %w", err)
	}

	reconciliation, err := jobs.NewReconciliationJob(processor, jobs.OutboxJobConfig{
		Schedule:  c.configs.ReconciliationSchedule,
		BatchSize: c.configs.OutboxBatchSize,
		Lease:     c.configs.OutboxLease,
	}, c.logger)
	if err != nil {
		return nil, fmt.Errorf("reconciliation job: %w", err)
	}

	return jobs.NewJobManager(relay, reconciliation, waker), nil
}

// Close releases broker connections.
func (c *CompositionRoot) Close() error {
	var errList []error
	for _, closer := range c.closers {
		errList = append(errList, closer.Close())
	}
	return errors.Join(errList...)
}

// LedgerCompositionRoot wires the delivery ledger service.
type LedgerCompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
}

func NewLedgerCompositionRoot(gormDB *gorm.DB) *LedgerCompositionRoot {
	return &LedgerCompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *LedgerCompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDeliveryCommandHandler(f)
}

func (c *LedgerCompositionRoot) CreateChangeDeliveryStatusCommandHandler() commands.ChangeDeliveryStatusCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeDeliveryStatusCommandHandler(f)
}

func (c *LedgerCompositionRoot) CreateFindDeliveriesQueryHandler() queries.FindDeliveriesQueryHandler {
	return queries.NewFindDeliveriesQueryHandler(deliveryrepo.NewGormDeliveryRepository(c.gormDB))
}

func (c *LedgerCompositionRoot) CreateGetDeliveryQueryHandler() queries.GetDeliveryQueryHandler {
	return queries.NewGetDeliveryQueryHandler(deliveryrepo.NewGormDeliveryRepository(c.gormDB))
}

func (c *LedgerCompositionRoot) CreateServer() *http.LedgerServer {
	return http.NewLedgerServer(
		c.CreateCreateDeliveryCommandHandler(),
		c.CreateChangeDeliveryStatusCommandHandler(),
		c.CreateFindDeliveriesQueryHandler(),
		c.CreateGetDeliveryQueryHandler(),
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}
