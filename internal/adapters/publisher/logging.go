package publisher

import (
	"context"
	"fmt"

	"github.com/tarwn/consuming-logs/internal/application/common"
	"github.com/tarwn/consuming-logs/internal/domain/events"
)

// LoggingPublisher writes each event to the context logger
type LoggingPublisher struct {
	level string
}

// NewLoggingPublisher logs events at level, "DEBUG" when empty
func NewLoggingPublisher(level string) *LoggingPublisher {
	if level == "" {
		level = "DEBUG"
	}
	return &LoggingPublisher{level: level}
}

// Publish implements events.Publisher
func (p *LoggingPublisher) Publish(ctx context.Context, evts ...events.Event) error {
	logger := common.LoggerFromContext(ctx)
	for _, e := range evts {
		body, err := events.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", e.EventType(), err)
		}
		logger.Log(p.level, fmt.Sprintf("[Events] %s", e.EventType()), map[string]interface{}{
			"event_id":   e.EventID(),
			"event_type": e.EventType().String(),
			"payload":    string(body),
		})
	}
	return nil
}
