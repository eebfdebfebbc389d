package kafka

import (
	"context"
	"crypto/tls"
	"fmt"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
)

// Message represents a Kafka message.
type Message struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// Producer publishes messages through one lazily created writer per topic.
type Producer struct {
	mu        sync.Mutex
	writers   map[string]*kafkago.Writer
	brokers   []string
	transport kafkago.RoundTripper
}

// NewProducer creates a Producer. It fails only when SASL is enabled with an
// unsupported mechanism or unusable SCRAM credentials.
func NewProducer(cfg Config) (*Producer, error) {
	transport, err := newTransport(cfg)
	if err != nil {
		return nil, err
	}
	return &Producer{
		writers:   make(map[string]*kafkago.Writer),
		brokers:   cfg.Brokers,
		transport: transport,
	}, nil
}

// Publish sends messages to topic in one batch.
func (p *Producer) Publish(ctx context.Context, topic string, messages ...Message) error {
	if len(messages) == 0 {
		return nil
	}
	w := p.writer(topic)

	batch := make([]kafkago.Message, 0, len(messages))
	for _, msg := range messages {
		km := kafkago.Message{Key: msg.Key, Value: msg.Value}
		for k, v := range msg.Headers {
			km.Headers = append(km.Headers, kafkago.Header{Key: k, Value: []byte(v)})
		}
		batch = append(batch, km)
	}

	if err := w.WriteMessages(ctx, batch...); err != nil {
		return fmt.Errorf("kafka publish to %s: %w", topic, err)
	}
	return nil
}

// Close closes every writer. The first error is returned.
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, w := range p.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing writer for topic %s: %w", topic, err)
		}
	}
	p.writers = make(map[string]*kafkago.Writer)
	return firstErr
}

func (p *Producer) writer(topic string) *kafkago.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w, ok := p.writers[topic]; ok {
		return w
	}
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(p.brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafkago.RequireAll,
		Transport:    p.transport,
	}
	p.writers[topic] = w
	return w
}

// newTransport returns nil (the kafka-go default transport) unless TLS or
// SASL is configured.
func newTransport(cfg Config) (kafkago.RoundTripper, error) {
	if !cfg.TLS && !cfg.SASLEnabled {
		return nil, nil
	}
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "offer-engine"
	}
	t := &kafkago.Transport{ClientID: clientID}
	if cfg.TLS {
		t.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	if cfg.SASLEnabled {
		m, err := saslMechanism(cfg)
		if err != nil {
			return nil, err
		}
		t.SASL = m
	}
	return t, nil
}

func saslMechanism(cfg Config) (sasl.Mechanism, error) {
	switch cfg.SASLMechanism {
	case "PLAIN", "":
		return &plain.Mechanism{Username: cfg.SASLUsername, Password: cfg.SASLPassword}, nil
	case "SCRAM-SHA-256":
		return scram.Mechanism(scram.SHA256, cfg.SASLUsername, cfg.SASLPassword)
	case "SCRAM-SHA-512":
		return scram.Mechanism(scram.SHA512, cfg.SASLUsername, cfg.SASLPassword)
	default:
		return nil, fmt.Errorf("kafka: unsupported SASL mechanism %q", cfg.SASLMechanism)
	}
}
