// Package kafka publishes order integration events to Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"takeout/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

const headerEventType = "event-type"

// MessageWriter is the part of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ParseBrokers splits a comma separated broker list, skipping blanks.
func ParseBrokers(csv string) []string {
	brokers := []string{}
	for _, b := range strings.Split(csv, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// NewWriter hashes on the message key so events of one order keep their order.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
}

// Publisher implements ports.EventPublisher.
type Publisher struct {
	writer MessageWriter
}

func NewPublisher(writer MessageWriter) (*Publisher, error) {
	if writer == nil {
		return nil, errors.New("kafka writer is required")
	}
	return &Publisher{writer: writer}, nil
}

func (p *Publisher) PublishOrderDispatched(ctx context.Context, event ports.OrderDispatched) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:     []byte(strconv.FormatInt(event.OrderID, 10)),
		Value:   data,
		Time:    event.DispatchedAt.UTC(),
		Headers: []kafka.Header{{Key: headerEventType, Value: []byte("order.dispatched")}},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish order %d dispatched: %w", event.OrderID, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
