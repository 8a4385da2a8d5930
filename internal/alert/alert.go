// Package alert defines safety alerts and the port used to fan them out to
// responders.
package alert

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"safeher/pkg/requestcontext"
)

type Kind string

const (
	KindSOS       Kind = "sos"
	KindDeviation Kind = "deviation"
)

// Alert is one notification for a user's responders.
type Alert struct {
	ID         uuid.UUID `json:"id"`
	Kind       Kind      `json:"kind"`
	Username   string    `json:"username"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Lat        *float64  `json:"lat,omitempty"`
	Lng        *float64  `json:"lng,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Encode renders the alert as its JSON wire form.
func (a Alert) Encode() ([]byte, error) {
	return json.Marshal(a)
}

// Publisher delivers alerts. Publish returns once the alert is durably
// accepted or has definitively failed.
type Publisher interface {
	Publish(ctx context.Context, a Alert) error
}

// LogPublisher writes alerts to the log. Used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, a Alert) error {
	p.logger.WarnContext(ctx, "safety alert",
		"request_id", requestcontext.RequestID(ctx),
		"alert_id", a.ID,
		"kind", a.Kind,
		"username", a.Username,
		"title", a.Title,
		"body", a.Body,
	)
	return nil
}
