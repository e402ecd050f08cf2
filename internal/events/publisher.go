package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/roundtracker/internal/telemetry/metrics"
	"github.com/2beens/roundtracker/internal/telemetry/tracing"

	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=publisher_mocks_test.go -package=events

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer         messageWriter
	metricsManager *metrics.Manager
}

func NewKafkaPublisher(brokers []string, topic string, metricsManager *metrics.Manager) *KafkaPublisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		Compression:            kafka.Snappy,
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}, metricsManager)
}

func newKafkaPublisher(writer messageWriter, metricsManager *metrics.Manager) *KafkaPublisher {
	return &KafkaPublisher{
		writer:         writer,
		metricsManager: metricsManager,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, evs ...Event) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "events.kafka.publish")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("events", len(evs)))

	if len(evs) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(evs))
	for _, ev := range evs {
		value, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", ev.ID, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(ev.UserKey),
			Value: value,
			Time:  ev.OccurredAt,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(ev.Type)},
				{Key: "event_id", Value: []byte(ev.ID)},
			},
		})
	}

	err = p.writer.WriteMessages(ctx, msgs...)
	status := "ok"
	if err != nil {
		status = "failed"
	}
	if p.metricsManager != nil {
		for _, ev := range evs {
			p.metricsManager.CounterPublishedEvents.WithLabelValues(string(ev.Type), status).Inc()
		}
	}
	if err != nil {
		return fmt.Errorf("write %d messages: %w", len(msgs), err)
	}

	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher only logs, used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(_ context.Context, evs ...Event) error {
	for _, ev := range evs {
		log.Debugf("event [%s] for round %d not published, no broker configured", ev.Type, ev.Round)
	}
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
