// Package events publishes completed-sale receipts to Kafka so back-office
// consumers (reporting, accounting exports) can react without polling the
// sales service.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/segmentio/kafka-go"

	"github.com/imanol-10/kmanager/internal/domain"
)

const saleCompletedEvent = "sale.completed"

type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(topic string, brokers ...string) *Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: w}
}

// PublishReceipt emits one sale.completed event keyed by receipt id so all
// events for a receipt land in the same partition.
func (p *Publisher) PublishReceipt(ctx context.Context, receipt *domain.SaleReceipt) error {
	payload, err := json.Marshal(receipt)
	if err != nil {
		return fmt.Errorf("marshal receipt: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(receipt.ID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(saleCompletedEvent)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish receipt %d: %w", receipt.ID, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
