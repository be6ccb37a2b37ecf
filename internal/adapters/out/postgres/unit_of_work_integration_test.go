package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "foodorder/internal/adapters/out/postgres"
	"foodorder/internal/core/domain/model/delivery"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/outbox"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/logging"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises transactions, migrations and outbox
// notifications against a real Postgres.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	dsn       string
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)
	suite.dsn = dsn

	db, err := postgres_adapter.Open(ctx, postgres_adapter.Config{DSN: dsn, MaxOpenConns: 5})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(ctx, db, postgres_adapter.OrderSchema))
	suite.Require().NoError(postgres_adapter.Migrate(ctx, db, postgres_adapter.LedgerSchema))
	// Migrations are repeatable.
	suite.Require().NoError(postgres_adapter.Migrate(ctx, db, postgres_adapter.OrderSchema))

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE order_items, orders, outbox_messages, deliveries RESTART IDENTITY").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "factory should create separate instances")
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.OutboxRepository())
	suite.NotNil(uow1.DeliveryRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "nested Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_OrderAndOutboxCommitTogether() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()
	o := createTestOrder(suite)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	m := createTestMessage(suite, o.ID())
	suite.Require().NoError(uow.OutboxRepository().Add(ctx, m))

	// Visible inside the transaction.
	_, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Commit(ctx))

	fresh := suite.factory.Create()
	_, err = fresh.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	_, err = fresh.OutboxRepository().Get(ctx, m.ID())
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsEverything() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()
	o := createTestOrder(suite)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	m := createTestMessage(suite, o.ID())
	suite.Require().NoError(uow.OutboxRepository().Add(ctx, m))
	suite.Require().NoError(uow.Rollback(ctx))

	fresh := suite.factory.Create()
	_, err := fresh.OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = fresh.OutboxRepository().Get(ctx, m.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TranslatedDuplicateIsConflict() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()
	price, err := kernel.MoneyFromFloat(10)
	suite.Require().NoError(err)

	first, err := delivery.NewDelivery(7, 42, price, kernel.Address{}, time.Now())
	suite.Require().NoError(err)
	second, err := delivery.NewDelivery(8, 42, price, kernel.Address{}, time.Now())
	suite.Require().NoError(err)

	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, first))
	err = uow.DeliveryRepository().Add(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOutboxListener_WakesOnInsertAndRearm() {
	ctx, cancel := context.WithCancel(suite.T().Context())
	defer cancel()

	listener, err := postgres_adapter.NewOutboxListener(suite.dsn, logging.Discard())
	suite.Require().NoError(err)
	defer func() { _ = listener.Close() }()

	wakes := make(chan struct{}, 8)
	go listener.Run(ctx, func() { wakes <- struct{}{} })

	uow := suite.factory.Create()
	o := createTestOrder(suite)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	m := createTestMessage(suite, o.ID())
	suite.Require().NoError(uow.OutboxRepository().Add(ctx, m))
	suite.awaitWake(wakes)

	m.MarkFailed(errs.NewDownstreamUnavailableError("ledger"), time.Now())
	suite.Require().NoError(uow.OutboxRepository().Update(ctx, m))
	suite.Require().NoError(m.Rearm(time.Now()))
	suite.Require().NoError(uow.OutboxRepository().Update(ctx, m))
	suite.awaitWake(wakes)
}

func (suite *UnitOfWorkIntegrationTestSuite) awaitWake(wakes <-chan struct{}) {
	select {
	case <-wakes:
	case <-time.After(5 * time.Second):
		suite.Fail("no outbox notification received")
	}
}

func createTestOrder(suite *UnitOfWorkIntegrationTestSuite) *order.Order {
	price, err := kernel.MoneyFromFloat(1200)
	suite.Require().NoError(err)
	o, err := order.NewOrder(1, 5, order.Pending, price, []kernel.ID{10, 11}, kernel.Address{}, time.Now())
	suite.Require().NoError(err)
	return o
}

func createTestMessage(suite *UnitOfWorkIntegrationTestSuite, orderID kernel.ID) *outbox.Message {
	m, err := outbox.NewMessage(orderID, outbox.KindNotifyRestaurant, outbox.NotifyRestaurantPayload{
		OrderID:      orderID,
		RestaurantID: 5,
		Message:      "New order received",
	}, time.Now(), 0)
	suite.Require().NoError(err)
	return m
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
