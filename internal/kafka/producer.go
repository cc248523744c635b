package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Dhoini/olio-backoffice/internal/domain"
	"github.com/Dhoini/olio-backoffice/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Топики событий приема заявок
const (
	TopicOrderReceived   = "olio.orders.received"
	TopicMessageReceived = "olio.messages.received"
)

// IntakeEvent тело события о новой заявке
type IntakeEvent struct {
	Type      string          `json:"type"`
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// Publisher публикует события о принятых заказах и сообщениях
type Publisher interface {
	PublishOrderReceived(ctx context.Context, order domain.Order) error
	PublishMessageReceived(ctx context.Context, message domain.Message) error
	Close() error
}

// messageWriter часть kafka.Writer, нужная продюсеру
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// kafkaProducer реализует Publisher, используя segmentio/kafka-go.
type kafkaProducer struct {
	writer messageWriter
	log    *logger.Logger
	now    func() time.Time
}

// NewKafkaProducer создает и настраивает новый продюсер Kafka.
func NewKafkaProducer(brokers []string, log *logger.Logger) (Publisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are not configured")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}

	log.Infow("Kafka producer initialized", "brokers", brokers)
	return newProducer(writer, log), nil
}

func newProducer(writer messageWriter, log *logger.Logger) *kafkaProducer {
	return &kafkaProducer{writer: writer, log: log, now: time.Now}
}

// PublishOrderReceived публикует событие о новом заказе
func (k *kafkaProducer) PublishOrderReceived(ctx context.Context, order domain.Order) error {
	return k.publish(ctx, TopicOrderReceived, "order.received", order.ID.String(), order.CustomerEmail, order)
}

// PublishMessageReceived публикует событие о новом сообщении
func (k *kafkaProducer) PublishMessageReceived(ctx context.Context, message domain.Message) error {
	return k.publish(ctx, TopicMessageReceived, "message.received", message.ID.String(), message.Email, message)
}

// Ключ сообщения: email клиента, все события одного клиента попадают в одну партицию.
func (k *kafkaProducer) publish(ctx context.Context, topic, eventType, id, email string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("kafka: failed to marshal payload: %w", err)
	}

	value, err := json.Marshal(IntakeEvent{
		Type:      eventType,
		ID:        id,
		Email:     email,
		Payload:   body,
		Timestamp: k.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("kafka: failed to marshal event: %w", err)
	}

	writeCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	err = k.writer.WriteMessages(writeCtx, kafka.Message{
		Topic: topic,
		Key:   []byte(email),
		Value: value,
		Time:  k.now(),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			k.log.Errorw("Kafka write timeout exceeded", "error", err, "topic", topic, "id", id)
			return fmt.Errorf("kafka: write timeout: %w", err)
		}
		k.log.Errorw("Failed to write message to Kafka", "error", err, "topic", topic, "id", id)
		return fmt.Errorf("kafka: failed to write message: %w", err)
	}

	k.log.Debugw("Published intake event", "topic", topic, "id", id)
	return nil
}

// Close закрывает соединение Kafka Writer.
func (k *kafkaProducer) Close() error {
	if err := k.writer.Close(); err != nil {
		k.log.Errorw("Failed to close Kafka writer", "error", err)
		return fmt.Errorf("kafka: failed to close writer: %w", err)
	}
	k.log.Infow("Kafka producer closed")
	return nil
}
