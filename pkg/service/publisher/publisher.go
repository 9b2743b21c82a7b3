package publisher

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/segmentio/kafka-go"

	"github.com/argus-sec/argus/pkg/domain/interfaces"
	"github.com/argus-sec/argus/pkg/domain/model"
)

// DefaultTopic is the report lifecycle event topic
const DefaultTopic = "argus.report-events"

// Kafka publishes report lifecycle events to a Kafka topic. Messages are
// keyed by report ID so events for one report stay ordered.
type Kafka struct {
	writer *kafka.Writer
}

var _ interfaces.EventPublisher = &Kafka{}

func New(brokers []string, topic string) (*Kafka, error) {
	if len(brokers) == 0 {
		return nil, goerr.New("at least one Kafka broker is required")
	}
	if topic == "" {
		topic = DefaultTopic
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}

	return &Kafka{writer: writer}, nil
}

func (p *Kafka) Publish(ctx context.Context, event *model.ReportEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal report event", goerr.V("type", event.Type))
	}

	msg := kafka.Message{
		Key:   []byte(event.ReportID.String()),
		Value: value,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return goerr.Wrap(err, "failed to publish report event",
			goerr.V("type", event.Type),
			goerr.V("report_id", event.ReportID),
		)
	}

	return nil
}

func (p *Kafka) Close() error {
	return p.writer.Close()
}
