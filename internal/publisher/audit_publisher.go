package publisher

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/rs/zerolog/log"

	"github.com/mskard-business-solutions/gogreen-backend/internal/models"
)

// AuditPublisher mirrors audit entries onto a Kafka topic so downstream
// consumers (compliance tooling, SIEM) get them without polling the database.
type AuditPublisher struct {
	producer *kafka.Producer
	topic    string
}

// NewAuditPublisher connects a producer to the given brokers.
func NewAuditPublisher(bootstrapServers, topic string) (*AuditPublisher, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{"bootstrap.servers": bootstrapServers})
	if err != nil {
		return nil, fmt.Errorf("creating kafka producer: %w", err)
	}

	log.Info().Str("topic", topic).Msg("✅ Audit Kafka producer ready")

	return &AuditPublisher{producer: p, topic: topic}, nil
}

// Publish sends one audit event and waits for broker acknowledgement.
func (p *AuditPublisher) Publish(event models.AuditEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling audit event: %w", err)
	}

	var key []byte
	if event.EntityID != nil {
		key = []byte(event.EntityType + "-" + strconv.Itoa(*event.EntityID))
	} else {
		key = []byte(event.EntityType)
	}

	deliveryChan := make(chan kafka.Event, 1)
	defer close(deliveryChan)

	if err := p.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &p.topic, Partition: kafka.PartitionAny},
		Key:            key,
		Value:          payload,
	}, deliveryChan); err != nil {
		return fmt.Errorf("producing message: %w", err)
	}

	select {
	case e := <-deliveryChan:
		msg, ok := e.(*kafka.Message)
		if !ok {
			return fmt.Errorf("unexpected event type: %T", e)
		}
		if msg.TopicPartition.Error != nil {
			return fmt.Errorf("delivery failed: %w", msg.TopicPartition.Error)
		}
		return nil
	case <-time.After(10 * time.Second):
		return fmt.Errorf("delivery timeout")
	}
}

// Close flushes outstanding messages and releases the producer.
func (p *AuditPublisher) Close() {
	log.Info().Msg("Closing audit Kafka producer...")
	p.producer.Flush(15 * 1000)
	p.producer.Close()
}
