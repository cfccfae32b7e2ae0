package kafka

import (
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/require"
)

func TestEnqueuer_Enqueue(t *testing.T) {
	t.Parallel()
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		require.Equal(t, RentalsTopic, msg.Topic)
		key, err := msg.Key.Encode()
		require.NoError(t, err)
		require.Equal(t, "k1", string(key))
		value, err := msg.Value.Encode()
		require.NoError(t, err)
		require.JSONEq(t, `{"a":1}`, string(value))
		return nil
	})
	producer.ExpectSendMessageAndFail(sarama.ErrNotLeaderForPartition)

	q := NewEnqueuer(producer)
	require.NoError(t, q.Enqueue(RentalsTopic, "k1", map[string]int{"a": 1}))
	require.ErrorIs(t, q.Enqueue(RentalsTopic, "k2", map[string]int{"a": 2}), sarama.ErrNotLeaderForPartition)
	require.NoError(t, producer.Close())
}

func TestEnqueuer_Unmarshalable(t *testing.T) {
	t.Parallel()
	producer := mocks.NewSyncProducer(t, nil)
	q := NewEnqueuer(producer)
	require.Error(t, q.Enqueue(RentalsTopic, "k", make(chan int)))
	require.NoError(t, producer.Close())
}
