package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// Event subjects published to the ELEARNING_EVENTS stream.
const (
	SubjectTenantCreated  = "elearning.tenant.created"
	SubjectUserRegistered = "elearning.user.registered"
	SubjectMediaUploaded  = "elearning.media.uploaded"
	SubjectMediaDeleted   = "elearning.media.deleted"
)

const (
	streamName     = "ELEARNING_EVENTS"
	publishRetries = 3
)

type TenantCreatedEvent struct {
	TenantID    string    `json:"tenant_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	AdminUserID string    `json:"admin_user_id"`
	Timestamp   time.Time `json:"timestamp"`
}

type UserRegisteredEvent struct {
	UserID    string    `json:"user_id"`
	TenantID  string    `json:"tenant_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Timestamp time.Time `json:"timestamp"`
}

type MediaEvent struct {
	MediaID   string    `json:"media_id"`
	TenantID  string    `json:"tenant_id"`
	Kind      string    `json:"kind"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher publishes domain events to NATS JetStream. A nil *Publisher
// is safe to use; every publish becomes a no-op so the service can run
// without a broker.
type Publisher struct {
	conn   *nats.Conn
	js     nats.JetStreamContext
	logger *logrus.Logger
}

// NewPublisher connects to NATS and ensures the event stream exists.
func NewPublisher(url string, logger *logrus.Logger) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(10),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.WithError(err).Warn("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.WithField("url", nc.ConnectedUrl()).Info("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	if _, err := js.StreamInfo(streamName); err != nil {
		_, err = js.AddStream(&nats.StreamConfig{
			Name:      streamName,
			Subjects:  []string{"elearning.>"},
			Retention: nats.LimitsPolicy,
			MaxAge:    7 * 24 * time.Hour,
			Storage:   nats.FileStorage,
		})
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to create stream: %w", err)
		}
	}

	return &Publisher{conn: conn, js: js, logger: logger}, nil
}

// Close drains the connection.
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	p.conn.Close()
}

func (p *Publisher) PublishTenantCreated(event TenantCreatedEvent) {
	event.Timestamp = time.Now()
	p.publish(SubjectTenantCreated, event)
}

func (p *Publisher) PublishUserRegistered(event UserRegisteredEvent) {
	event.Timestamp = time.Now()
	p.publish(SubjectUserRegistered, event)
}

func (p *Publisher) PublishMediaUploaded(event MediaEvent) {
	event.Timestamp = time.Now()
	p.publish(SubjectMediaUploaded, event)
}

func (p *Publisher) PublishMediaDeleted(event MediaEvent) {
	event.Timestamp = time.Now()
	p.publish(SubjectMediaDeleted, event)
}

// publish serializes and publishes with bounded retry. Event loss is
// logged, never surfaced to the request path.
func (p *Publisher) publish(subject string, event interface{}) {
	if p == nil || p.js == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.WithError(err).WithField("subject", subject).Error("Failed to marshal event")
		return
	}

	var lastErr error
	for attempt := 1; attempt <= publishRetries; attempt++ {
		if _, lastErr = p.js.Publish(subject, data); lastErr == nil {
			p.logger.WithField("subject", subject).Debug("Event published")
			return
		}
		time.Sleep(time.Duration(attempt) * 100 * time.Millisecond)
	}

	p.logger.WithError(lastErr).WithField("subject", subject).Error("Failed to publish event after retries")
}
