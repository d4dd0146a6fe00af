package notify

import (
	"context"
	"encoding/json"

	"github.com/folioworks/folio-api/internal/config"
	"github.com/folioworks/folio-api/internal/contact"
	"github.com/folioworks/folio-api/pkg/apperror"
	"github.com/segmentio/kafka-go"
)

const leadEventsName = "kafka"

// EventLeadCreated is the type of every message on the lead topic.
const EventLeadCreated = "lead.created"

// MessageWriter is the subset of *kafka.Writer used here.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// LeadEvents publishes a lead.created event per lead.
type LeadEvents struct {
	writer MessageWriter
}

// NewLeadEvents returns a channel writing to cfg.LeadTopic. With no brokers
// configured the channel is disabled.
func NewLeadEvents(cfg config.KafkaConfig) *LeadEvents {
	if len(cfg.Brokers) == 0 {
		return &LeadEvents{}
	}
	return &LeadEvents{writer: &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.LeadTopic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}}
}

// NewLeadEventsWithWriter is used by tests to inject a writer.
func NewLeadEventsWithWriter(w MessageWriter) *LeadEvents {
	return &LeadEvents{writer: w}
}

func (k *LeadEvents) Name() string  { return leadEventsName }
func (k *LeadEvents) Enabled() bool { return k.writer != nil }

type LeadEvent struct {
	Type string       `json:"type"`
	Lead contact.Lead `json:"lead"`
}

func (k *LeadEvents) Send(ctx context.Context, l contact.Lead) error {
	b, err := json.Marshal(LeadEvent{Type: EventLeadCreated, Lead: l})
	if err != nil {
		return apperror.NewNotifier(leadEventsName, err)
	}
	key := l.ID
	if key == "" {
		key = l.Email
	}
	if err := k.writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: b}); err != nil {
		return apperror.NewNotifier(leadEventsName, err)
	}
	return nil
}

func (k *LeadEvents) Close() error {
	if k.writer == nil {
		return nil
	}
	return k.writer.Close()
}
