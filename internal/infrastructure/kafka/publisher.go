package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/brightlms/commission-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

type EventType string

const (
	EventAttributionRecorded EventType = "attribution.recorded"
	EventPayoutPaid          EventType = "payout.paid"
)

type Envelope struct {
	Type       EventType   `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

type CommissionEventPublisher struct {
	writer *kafka.Writer
}

func NewCommissionEventPublisher(brokers []string, topic string) *CommissionEventPublisher {
	return &CommissionEventPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *CommissionEventPublisher) PublishAttributionRecorded(ctx context.Context, event domain.AttributionRecordedEvent) error {
	return p.publish(ctx, EventAttributionRecorded, event.OrderID, event)
}

func (p *CommissionEventPublisher) PublishPayoutPaid(ctx context.Context, event domain.PayoutPaidEvent) error {
	return p.publish(ctx, EventPayoutPaid, event.PayoutID, event)
}

func (p *CommissionEventPublisher) publish(ctx context.Context, eventType EventType, key string, payload interface{}) error {
	msg, err := json.Marshal(Envelope{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: msg,
		Time:  time.Now(),
	})
}

func (p *CommissionEventPublisher) Close() error {
	return p.writer.Close()
}

// NopEventPublisher is used when event publishing is disabled in config.
type NopEventPublisher struct{}

func (NopEventPublisher) PublishAttributionRecorded(context.Context, domain.AttributionRecordedEvent) error {
	return nil
}

func (NopEventPublisher) PublishPayoutPaid(context.Context, domain.PayoutPaidEvent) error {
	return nil
}
