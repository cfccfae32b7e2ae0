package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/model"
	"github.com/helcv/Valcon-Internship-Library-Project/pkg/circuit_breaker"
	"github.com/helcv/Valcon-Internship-Library-Project/pkg/kafka"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEvent() model.RentEvent {
	return model.RentEvent{
		Type:       model.RentEventRented,
		RentID:     uuid.New(),
		BookID:     uuid.New(),
		UserID:     "u1",
		OccurredAt: time.Date(2024, time.May, 21, 12, 0, 0, 0, time.UTC),
	}
}

func TestPublisher_Publish(t *testing.T) {
	t.Parallel()
	event := newEvent()

	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		require.Equal(t, kafka.RentalsTopic, msg.Topic)

		key, err := msg.Key.Encode()
		require.NoError(t, err)
		require.Equal(t, event.BookID.String(), string(key))

		value, err := msg.Value.Encode()
		require.NoError(t, err)
		var got model.RentEvent
		require.NoError(t, json.Unmarshal(value, &got))
		require.Equal(t, event, got)
		return nil
	})

	cb := circuit_breaker.New(circuit_breaker.Config{RecordLength: 4, Timeout: time.Minute, Percentile: 0.5, RecoveryRequests: 1})
	p := NewPublisher(kafka.NewEnqueuer(producer), cb, zap.NewNop())
	require.NoError(t, p.Publish(context.Background(), event))
	require.NoError(t, producer.Close())
}

func TestPublisher_BreakerOpens(t *testing.T) {
	t.Parallel()

	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	cb := circuit_breaker.New(circuit_breaker.Config{RecordLength: 2, Timeout: time.Minute, Percentile: 1, RecoveryRequests: 1})
	p := NewPublisher(kafka.NewEnqueuer(producer), cb, zap.NewNop())

	require.ErrorIs(t, p.Publish(context.Background(), newEvent()), sarama.ErrOutOfBrokers)
	require.ErrorIs(t, p.Publish(context.Background(), newEvent()), sarama.ErrOutOfBrokers)
	require.Equal(t, circuit_breaker.Open, cb.State())

	// no further sends reach the producer
	require.ErrorIs(t, p.Publish(context.Background(), newEvent()), circuit_breaker.ErrOpenCB)
	require.NoError(t, producer.Close())
}

func TestPublisher_CanceledContext(t *testing.T) {
	t.Parallel()
	producer := mocks.NewSyncProducer(t, nil)
	p := NewPublisher(kafka.NewEnqueuer(producer), circuit_breaker.New(circuit_breaker.Config{RecordLength: 1}), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, p.Publish(ctx, newEvent()), context.Canceled)
	require.NoError(t, producer.Close())
}

func TestNopPublisher(t *testing.T) {
	t.Parallel()
	require.NoError(t, NewNopPublisher(zap.NewNop()).Publish(context.Background(), newEvent()))
}
