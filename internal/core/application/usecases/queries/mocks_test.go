package queries_test

import (
	"context"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderReader) GetUnscoped(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderReader) ListByRestaurant(ctx context.Context, id kernel.ID) ([]*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).([]*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderReader) ListByCustomer(ctx context.Context, id kernel.ID) ([]*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).([]*order.Order)
	return o, args.Error(1)
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

// MockLedger only answers FindByOrder; enrichment uses nothing else.
type MockLedger struct {
	ports.Ledger
	mock.Mock
}

func (m *MockLedger) FindByOrder(ctx context.Context, orderID kernel.ID) (ports.LedgerDelivery, error) {
	args := m.Called(ctx, orderID)
	d, _ := args.Get(0).(ports.LedgerDelivery)
	return d, args.Error(1)
}
