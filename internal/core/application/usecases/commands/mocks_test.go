package commands_test

import (
	"context"
	"time"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/domain/model/delivery"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/outbox"
	"foodorder/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetUnscoped(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) ListByRestaurant(ctx context.Context, id kernel.ID) ([]*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).([]*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) ListByCustomer(ctx context.Context, id kernel.ID) ([]*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).([]*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, messages ...*outbox.Message) error {
	args := m.Called(ctx, messages)
	return args.Error(0)
}

func (m *MockOutboxRepository) Update(ctx context.Context, msg *outbox.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockOutboxRepository) Get(ctx context.Context, id kernel.UUID) (*outbox.Message, error) {
	args := m.Called(ctx, id)
	msg, _ := args.Get(0).(*outbox.Message)
	return msg, args.Error(1)
}

func (m *MockOutboxRepository) ClaimDue(
	ctx context.Context,
	kinds []outbox.Kind,
	now time.Time,
	limit int,
) ([]*outbox.Message, error) {
	args := m.Called(ctx, kinds, now, limit)
	msgs, _ := args.Get(0).([]*outbox.Message)
	return msgs, args.Error(1)
}

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.ID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*delivery.Delivery)
	return d, args.Error(1)
}

func (m *MockDeliveryRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*delivery.Delivery)
	return d, args.Error(1)
}

func (m *MockDeliveryRepository) FindByOrder(ctx context.Context, id kernel.ID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*delivery.Delivery)
	return d, args.Error(1)
}

func (m *MockDeliveryRepository) Find(ctx context.Context, f ports.DeliveryFilter) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, f)
	d, _ := args.Get(0).([]*delivery.Delivery)
	return d, args.Error(1)
}

// MockUoW implements every unit of work flavour the handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockMessageRunner struct{ mock.Mock }

func (m *MockMessageRunner) Run(ctx context.Context, msg *outbox.Message, redelivery bool) error {
	args := m.Called(ctx, msg, redelivery)
	return args.Error(0)
}

type MockExecutor struct{ mock.Mock }

func (m *MockExecutor) Execute(ctx context.Context, msg *outbox.Message, redelivery bool) error {
	args := m.Called(ctx, msg, redelivery)
	return args.Error(0)
}

type MockLedger struct{ mock.Mock }

func (m *MockLedger) CreateDelivery(ctx context.Context, req ports.NewLedgerDelivery) (ports.LedgerDelivery, error) {
	args := m.Called(ctx, req)
	d, _ := args.Get(0).(ports.LedgerDelivery)
	return d, args.Error(1)
}

func (m *MockLedger) DeactivateDelivery(ctx context.Context, id kernel.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLedger) AdvanceDelivery(ctx context.Context, id kernel.ID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockLedger) FindActiveByCourier(ctx context.Context, courierID kernel.ID) ([]ports.LedgerDelivery, error) {
	args := m.Called(ctx, courierID)
	d, _ := args.Get(0).([]ports.LedgerDelivery)
	return d, args.Error(1)
}

func (m *MockLedger) FindByOrder(ctx context.Context, orderID kernel.ID) (ports.LedgerDelivery, error) {
	args := m.Called(ctx, orderID)
	d, _ := args.Get(0).(ports.LedgerDelivery)
	return d, args.Error(1)
}

type MockDirectory struct{ mock.Mock }

func (m *MockDirectory) GetRestaurant(ctx context.Context, id kernel.ID) (ports.Restaurant, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(ports.Restaurant)
	return r, args.Error(1)
}

func (m *MockDirectory) GetItems(ctx context.Context, ids []kernel.ID) ([]ports.Item, error) {
	args := m.Called(ctx, ids)
	items, _ := args.Get(0).([]ports.Item)
	return items, args.Error(1)
}

func (m *MockDirectory) GetCustomer(ctx context.Context, id kernel.ID) (ports.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(ports.Customer)
	return c, args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) NotifyRestaurant(ctx context.Context, restaurantID, recipientID kernel.ID, message string) error {
	args := m.Called(ctx, restaurantID, recipientID, message)
	return args.Error(0)
}

func (m *MockNotifier) NotifyUser(ctx context.Context, userID kernel.ID, message string) error {
	args := m.Called(ctx, userID, message)
	return args.Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, event outbox.OrderEventPayload) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
