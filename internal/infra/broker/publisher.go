package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
)

// ErrPublish возвращается, когда событие не удалось отправить
var ErrPublish = errors.New("broker: publish failed")

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// messageWriter часть kafka.Writer, которая нужна издателю
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher публикует доменные события в Kafka
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	logger Logger
}

// NewKafkaPublisher создает издателя для топика topic
func NewKafkaPublisher(brokers []string, topic string, writeTimeout time.Duration, logger Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: writeTimeout,
		},
		topic:  topic,
		logger: logger,
	}
}

// PublishBookingCreated отправляет событие booking.created
// Ключ сообщения - ID бронирования, чтобы события одного бронирования шли в одну партицию
func (p *KafkaPublisher) PublishBookingCreated(ctx context.Context, event *domain.BookingCreatedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: PublishBookingCreated - encode event: %v", ErrPublish, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.BookingID),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(domain.EventBookingCreated)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: PublishBookingCreated - write topic=%s: %v", ErrPublish, p.topic, err)
	}

	p.logger.Info("Event published: type=%s, booking_id=%s, topic=%s", domain.EventBookingCreated, event.BookingID, p.topic)
	return nil
}

// Close закрывает writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher используется, когда Kafka отключена
type NopPublisher struct{}

// PublishBookingCreated ничего не делает
func (NopPublisher) PublishBookingCreated(context.Context, *domain.BookingCreatedEvent) error {
	return nil
}

// Close ничего не делает
func (NopPublisher) Close() error { return nil }
