package ports

import (
	"context"
	"time"

	"tourops/internal/core/domain/model/kernel"
)

// ChangeEvent is the audit record of one business mutation: which entity
// changed, which fields moved from what to what, and who did it.
type ChangeEvent struct {
	EntityType string
	EntityID   kernel.UUID
	Action     string
	OldValues  map[string]any
	NewValues  map[string]any
	ActorID    string
	OccurredAt time.Time
}

// ChangePublisher records business mutations for the audit trail.
// Publishing happens after the owning transaction commits; a failed publish
// must not roll the mutation back.
type ChangePublisher interface {
	Publish(ctx context.Context, event ChangeEvent)
}

// CapacityNotifier receives informational capacity warnings when a booking
// pushes a departure's occupancy across the warning threshold. Notification
// failures never affect the booking.
type CapacityNotifier interface {
	NotifyCapacityWarning(ctx context.Context, departureID kernel.UUID, occupancy, capacity int)
}
