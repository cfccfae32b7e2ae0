package kafka

import (
	"encoding/json"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

const (
	RentalsTopic = "library.rentals"
)

type Config struct {
	Addrs   []string `yaml:"addrs" envconfig:"KAFKA_ADDRS" default:"localhost:9092"`
	Enabled bool     `yaml:"enabled" envconfig:"KAFKA_ENABLED" default:"false"`
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

// CreateTopics creates missing topics with a single partition.
func CreateTopics(cfg Config, topics ...string) error {
	admin, err := sarama.NewClusterAdmin(cfg.Addrs, sarama.NewConfig())
	if err != nil {
		return errors.Wrap(err, "sarama.NewClusterAdmin")
	}
	defer admin.Close()

	existing, err := admin.ListTopics()
	if err != nil {
		return errors.Wrap(err, "list topics")
	}
	for _, topic := range topics {
		if _, ok := existing[topic]; ok {
			continue
		}
		detail := &sarama.TopicDetail{NumPartitions: 1, ReplicationFactor: 1}
		if err := admin.CreateTopic(topic, detail, false); err != nil {
			return errors.Wrapf(err, "create topic %s", topic)
		}
	}
	return nil
}

type Enqueuer interface {
	Enqueue(topic, key string, v any) error
}

func NewEnqueuer(producer sarama.SyncProducer) Enqueuer {
	return &enqueuerImpl{
		producer: producer,
	}
}

type enqueuerImpl struct {
	producer sarama.SyncProducer
}

func (q *enqueuerImpl) Enqueue(topic, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(data),
	}
	if _, _, err = q.producer.SendMessage(msg); err != nil {
		return err
	}
	return nil
}
