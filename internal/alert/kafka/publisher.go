// Package kafka publishes alerts to a Kafka topic with franz-go.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"safeher/internal/alert"
	"safeher/pkg/requestcontext"
)

// Producer is the subset of *kgo.Client the publisher uses.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Publisher writes each alert as one record keyed by username, so a user's
// alerts stay ordered within a partition.
type Publisher struct {
	producer Producer
	topic    string
	attempts uint
	delay    time.Duration
	logger   *slog.Logger
}

type Option func(*Publisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithRetry sets the attempt count and initial backoff for a publish.
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(p *Publisher) {
		p.attempts = max(attempts, 1)
		p.delay = delay
	}
}

func New(producer Producer, topic string, opts ...Option) (*Publisher, error) {
	if producer == nil {
		return nil, errors.New("kafka producer is required")
	}
	if topic == "" {
		return nil, errors.New("kafka topic is required")
	}
	p := &Publisher{
		producer: producer,
		topic:    topic,
		attempts: 3,
		delay:    200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p, nil
}

func (p *Publisher) Publish(ctx context.Context, a alert.Alert) error {
	payload, err := a.Encode()
	if err != nil {
		return fmt.Errorf("encode alert: %w", err)
	}
	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(a.Username),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: "kind", Value: []byte(a.Kind)},
			{Key: "request_id", Value: []byte(requestcontext.RequestID(ctx))},
		},
	}

	return retry.Do(
		func() error {
			return p.producer.ProduceSync(ctx, record).FirstErr()
		},
		retry.Context(ctx),
		retry.Attempts(p.attempts),
		retry.Delay(p.delay),
		retry.MaxDelay(2*time.Second),
		retry.DelayType(retry.FullJitterBackoffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			p.logger.WarnContext(ctx, "alert publish failed, retrying",
				"request_id", requestcontext.RequestID(ctx),
				"alert_id", a.ID,
				"attempt", n+1,
				"error", err,
			)
		}),
	)
}

// NewClient builds a franz-go client for the given brokers.
func NewClient(brokers []string, clientID, topic string) (*kgo.Client, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ClientID(clientID),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerLinger(0),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return client, nil
}

// EnsureTopic creates topic with broker defaults when it does not exist.
func EnsureTopic(ctx context.Context, client *kgo.Client, topic string) error {
	adm := kadm.NewClient(client)
	resp, err := adm.CreateTopics(ctx, -1, -1, nil, topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	for _, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}
