package producer

import (
	"context"
	"encoding/json"

	"go-fieldtrack/internal/events"
	"go-fieldtrack/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafkago.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type publisher struct {
	writer MessageWriter
}

func NewPublisher(writer MessageWriter) events.Publisher {
	return &publisher{writer: writer}
}

func (p *publisher) Publish(ctx context.Context, event events.Message) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}

	headers := []kafkago.Header{
		{Key: "event_type", Value: []byte(event.EventType)},
		{Key: "aggregate_type", Value: []byte(event.AggregateType)},
	}
	if rid := contextutil.GetRequestID(ctx); rid != "" {
		headers = append(headers, kafkago.Header{Key: "request_id", Value: []byte(rid)})
	}

	msg := kafkago.Message{
		Topic:   event.Topic,
		Key:     []byte(event.Key),
		Value:   payload,
		Headers: headers,
	}

	return p.writer.WriteMessages(ctx, msg)
}
