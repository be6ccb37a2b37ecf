package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"foodorder/internal/core/domain/model/outbox"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockChannel struct{ mock.Mock }

func (m *mockChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	return m.Called(name, kind, durable, autoDelete, internal, noWait, args).Error(0)
}

func (m *mockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return m.Called(ctx, exchange, key, mandatory, immediate, msg).Error(0)
}

func (m *mockChannel) Close() error {
	return m.Called().Error(0)
}

type mockWriter struct{ mock.Mock }

func (m *mockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	return m.Called(ctx, msgs).Error(0)
}

func (m *mockWriter) Close() error {
	return m.Called().Error(0)
}

func statusChanged() outbox.OrderEventPayload {
	return outbox.OrderEventPayload{
		Type:           outbox.EventOrderStatusChanged,
		OrderID:        42,
		CustomerID:     1,
		RestaurantID:   5,
		Status:         "waiting_for_pickup",
		PreviousStatus: "confirmed",
		TotalPrice:     "1200.00",
		OccurredAt:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestRabbitMQPublisher_PublishesPersistentJSONToTopic(t *testing.T) {
	ctx := t.Context()
	ch := new(mockChannel)
	ch.On("ExchangeDeclare", OrdersExchange, "topic", true, false, false, false, amqp.Table(nil)).Return(nil).Once()

	var published amqp.Publishing
	ch.On("PublishWithContext", ctx, OrdersExchange, "order.waiting_for_pickup", false, false, mock.Anything).
		Run(func(args mock.Arguments) { published = args.Get(5).(amqp.Publishing) }).
		Return(nil).Once()

	p, err := newRabbitMQPublisher(ch)
	require.NoError(t, err)
	require.NoError(t, p.Publish(ctx, statusChanged()))

	assert.Equal(t, amqp.Persistent, published.DeliveryMode)
	assert.Equal(t, "application/json", published.ContentType)
	assert.Equal(t, outbox.EventOrderStatusChanged, published.Type)

	var decoded outbox.OrderEventPayload
	require.NoError(t, json.Unmarshal(published.Body, &decoded))
	assert.Equal(t, statusChanged(), decoded)
	ch.AssertExpectations(t)
}

func TestRabbitMQPublisher_DeclareFailure_ClosesChannel(t *testing.T) {
	ch := new(mockChannel)
	ch.On("ExchangeDeclare", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("access refused")).Once()
	ch.On("Close").Return(nil).Once()

	_, err := newRabbitMQPublisher(ch)

	require.Error(t, err)
	ch.AssertExpectations(t)
}

func TestKafkaPublisher_KeysByOrderID(t *testing.T) {
	ctx := t.Context()
	w := new(mockWriter)
	var written []kafka.Message
	w.On("WriteMessages", ctx, mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(1).([]kafka.Message) }).
		Return(nil).Once()

	p := &KafkaPublisher{writer: w}
	require.NoError(t, p.Publish(ctx, statusChanged()))

	require.Len(t, written, 1)
	assert.Equal(t, []byte("42"), written[0].Key)
	assert.Equal(t, statusChanged().OccurredAt, written[0].Time)
	assert.Equal(t, []kafka.Header{{Key: "type", Value: []byte(outbox.EventOrderStatusChanged)}}, written[0].Headers)
	w.AssertExpectations(t)
}

func TestKafkaPublisher_WriteFailure(t *testing.T) {
	w := new(mockWriter)
	w.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("leader not available"))

	err := (&KafkaPublisher{writer: w}).Publish(t.Context(), statusChanged())
	require.ErrorContains(t, err, "leader not available")
}

func TestLogPublisher_LogsEvent(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, p.Publish(t.Context(), statusChanged()))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "order event", entry["msg"])
	assert.Equal(t, "order.waiting_for_pickup", entry["routing_key"])
	assert.Equal(t, "event_publisher", entry["component"])
}

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, SplitBrokers(" kafka-1:9092, ,kafka-2:9092"))
	assert.Empty(t, SplitBrokers(""))
}
