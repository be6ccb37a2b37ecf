package services_test

import (
	"testing"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/outbox"
	"foodorder/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func persistedOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	price, err := kernel.MoneyFromFloat(1200)
	require.NoError(t, err)
	addr, err := kernel.NewAddress("1 Main St")
	require.NoError(t, err)
	o, err := order.RestoreOrder(42, 1, 5, status, price, []kernel.ID{10, 11}, addr, now, nil)
	require.NoError(t, err)
	return o
}

func kinds(messages []*outbox.Message) []outbox.Kind {
	out := make([]outbox.Kind, 0, len(messages))
	for _, m := range messages {
		out = append(out, m.Kind())
	}
	return out
}

func TestSideEffectPlanner_PlanPlacement(t *testing.T) {
	planner := services.NewSideEffectPlanner(30 * time.Second)
	o := persistedOrder(t, order.Pending)

	messages, err := planner.PlanPlacement(o, now)
	require.NoError(t, err)
	assert.Equal(t, []outbox.Kind{outbox.KindNotifyRestaurant, outbox.KindPublishEvent}, kinds(messages))

	var notify outbox.NotifyRestaurantPayload
	require.NoError(t, messages[0].Decode(&notify))
	assert.Equal(t, kernel.ID(5), notify.RestaurantID)
	assert.Equal(t, now, messages[0].NextAttemptAt())

	var evt outbox.OrderEventPayload
	require.NoError(t, messages[1].Decode(&evt))
	assert.Equal(t, outbox.EventOrderCreated, evt.Type)
	assert.Equal(t, "pending", evt.Status)
	assert.Empty(t, evt.PreviousStatus)
}

func TestSideEffectPlanner_PlanPlacement_UnpersistedOrder(t *testing.T) {
	planner := services.NewSideEffectPlanner(0)
	o, err := order.NewOrder(1, 5, order.Pending, kernel.Money{}, []kernel.ID{1}, kernel.Address{}, now)
	require.NoError(t, err)

	_, err = planner.PlanPlacement(o, now)
	require.ErrorIs(t, err, services.ErrOrderNotPersisted)
}

func TestSideEffectPlanner_PlanTransition(t *testing.T) {
	planner := services.NewSideEffectPlanner(30 * time.Second)

	t.Run("waiting for pickup with courier creates a delivery", func(t *testing.T) {
		o := persistedOrder(t, order.WaitingForPickup)

		messages, err := planner.PlanTransition(o, services.TransitionRequest{
			Previous:  order.Confirmed,
			Requested: order.WaitingForPickup,
			CourierID: 7,
		}, now)
		require.NoError(t, err)
		assert.Equal(t,
			[]outbox.Kind{outbox.KindCreateDelivery, outbox.KindNotifyCustomer, outbox.KindPublishEvent},
			kinds(messages),
		)

		var p outbox.CreateDeliveryPayload
		require.NoError(t, messages[0].Decode(&p))
		assert.Equal(t, kernel.ID(7), p.CourierID)
		assert.Equal(t, kernel.ID(42), p.OrderID)
		assert.Equal(t, "1200.00", p.TotalPrice)
		require.NotNil(t, p.Address)
		assert.Equal(t, "1 Main St", *p.Address)
		assert.Equal(t, now.Add(30*time.Second), messages[0].NextAttemptAt())

		var evt outbox.OrderEventPayload
		require.NoError(t, messages[2].Decode(&evt))
		assert.Equal(t, "confirmed", evt.PreviousStatus)
		assert.Equal(t, "waiting_for_pickup", evt.Status)
	})

	t.Run("waiting for pickup without courier only notifies", func(t *testing.T) {
		o := persistedOrder(t, order.WaitingForPickup)

		messages, err := planner.PlanTransition(o, services.TransitionRequest{
			Previous:  order.Confirmed,
			Requested: order.WaitingForPickup,
		}, now)
		require.NoError(t, err)
		assert.Equal(t, []outbox.Kind{outbox.KindNotifyCustomer, outbox.KindPublishEvent}, kinds(messages))
	})

	t.Run("repeated waiting for pickup with courier still requests a delivery", func(t *testing.T) {
		o := persistedOrder(t, order.WaitingForPickup)

		messages, err := planner.PlanTransition(o, services.TransitionRequest{
			Previous:  order.WaitingForPickup,
			Requested: order.WaitingForPickup,
			CourierID: 7,
		}, now)
		require.NoError(t, err)
		assert.Equal(t, []outbox.Kind{outbox.KindCreateDelivery}, kinds(messages))
	})

	t.Run("cancel with courier deactivates the delivery", func(t *testing.T) {
		o := persistedOrder(t, order.Cancelled)

		messages, err := planner.PlanTransition(o, services.TransitionRequest{
			Previous:  order.WaitingForPickup,
			Requested: order.Cancelled,
			CourierID: 7,
		}, now)
		require.NoError(t, err)
		assert.Equal(t,
			[]outbox.Kind{outbox.KindCancelDelivery, outbox.KindNotifyCustomer, outbox.KindPublishEvent},
			kinds(messages),
		)
	})

	t.Run("pickup advances the delivery", func(t *testing.T) {
		o := persistedOrder(t, order.ProductPickedUp)

		messages, err := planner.PlanTransition(o, services.TransitionRequest{
			Previous:  order.WaitingForPickup,
			Requested: order.ProductPickedUp,
		}, now)
		require.NoError(t, err)
		require.Equal(t,
			[]outbox.Kind{outbox.KindAdvanceDelivery, outbox.KindNotifyCustomer, outbox.KindPublishEvent},
			kinds(messages),
		)

		var p outbox.AdvanceDeliveryPayload
		require.NoError(t, messages[0].Decode(&p))
		assert.Equal(t, "picked_up", p.Status)
	})

	t.Run("price only change produces nothing", func(t *testing.T) {
		o := persistedOrder(t, order.Confirmed)

		messages, err := planner.PlanTransition(o, services.TransitionRequest{Previous: order.Confirmed}, now)
		require.NoError(t, err)
		assert.Empty(t, messages)
	})
}
