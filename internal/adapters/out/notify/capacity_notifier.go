package notify

import (
	"context"
	"log/slog"

	"tourops/internal/core/domain/model/kernel"
)

// LogCapacityNotifier emits capacity warnings as structured log records.
// Warnings are informational only; the bookings that trigger them have
// already been admitted and committed.
type LogCapacityNotifier struct {
	logger *slog.Logger
}

// NewLogCapacityNotifier creates a notifier writing warnings to the given logger.
func NewLogCapacityNotifier(logger *slog.Logger) *LogCapacityNotifier {
	return &LogCapacityNotifier{
		logger: logger.With("component", "capacity"),
	}
}

// NotifyCapacityWarning logs that a departure crossed the occupancy warning threshold.
func (n *LogCapacityNotifier) NotifyCapacityWarning(ctx context.Context, departureID kernel.UUID, occupancy, capacity int) {
	n.logger.WarnContext(ctx, "departure approaching capacity",
		"departure_id", departureID.String(),
		"occupancy", occupancy,
		"capacity", capacity,
	)
}
