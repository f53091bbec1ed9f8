// Package notify provides log-backed implementations of the outbound
// notification ports. Audit events and capacity warnings are emitted as
// structured log records; both sinks are fire-and-forget so a logging
// failure can never affect a committed booking.
package notify

import (
	"context"
	"log/slog"

	"tourops/internal/core/ports"
)

// LogChangePublisher writes the audit trail of business mutations to a
// structured logger.
type LogChangePublisher struct {
	logger *slog.Logger
}

// NewLogChangePublisher creates a publisher writing audit events to the given logger.
func NewLogChangePublisher(logger *slog.Logger) *LogChangePublisher {
	return &LogChangePublisher{
		logger: logger.With("component", "audit"),
	}
}

// Publish records one business mutation as a structured log entry.
func (p *LogChangePublisher) Publish(ctx context.Context, event ports.ChangeEvent) {
	p.logger.InfoContext(ctx, "entity changed",
		"entity_type", event.EntityType,
		"entity_id", event.EntityID.String(),
		"action", event.Action,
		"old_values", event.OldValues,
		"new_values", event.NewValues,
		"actor_id", event.ActorID,
		"occurred_at", event.OccurredAt,
	)
}
