package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/muhammadolammi/skillscan/internal/analysis"
)

const (
	BackendRabbitMQ = "rabbitmq"
	BackendValkey   = "valkey"
)

var ErrClosed = errors.New("queue: consumer closed")

// Consumer hands out session messages one at a time.
type Consumer interface {
	Next(ctx context.Context) ([]byte, error)
	Close() error
}

// SessionUpdate is pushed to the front end whenever a session changes state.
type SessionUpdate struct {
	SessionID string             `json:"session_id"`
	Status    string             `json:"status"`
	Level     string             `json:"level"`
	Message   string             `json:"message"`
	Sections  []analysis.Section `json:"sections,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}

func routingKey(sessionID string) string {
	return fmt.Sprintf("session.%s", sessionID)
}
