package commands_test

import (
	"log/slog"
	"testing"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/outbox"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/pkg/logging"

	"github.com/stretchr/testify/require"
)

var planner = services.NewSideEffectPlanner(30 * time.Second)

func discardLogger() *slog.Logger {
	return logging.Discard()
}

func persistedOrder(t *testing.T, id kernel.ID, status order.Status) *order.Order {
	t.Helper()
	price, err := kernel.MoneyFromFloat(1200)
	require.NoError(t, err)
	o, err := order.RestoreOrder(id, 1, 5, status, price, []kernel.ID{10, 11}, kernel.Address{}, time.Now(), nil)
	require.NoError(t, err)
	return o
}

func newMessage(t *testing.T, kind outbox.Kind, payload any) *outbox.Message {
	t.Helper()
	m, err := outbox.NewMessage(42, kind, payload, time.Now(), 0)
	require.NoError(t, err)
	return m
}

func kindsOf(messages []*outbox.Message) []outbox.Kind {
	out := make([]outbox.Kind, 0, len(messages))
	for _, m := range messages {
		out = append(out, m.Kind())
	}
	return out
}

func statusPtr(s order.Status) *order.Status { return &s }

func idPtr(id kernel.ID) *kernel.ID { return &id }
