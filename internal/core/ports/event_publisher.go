package ports

import (
	"context"

	"parcels/internal/core/domain/events"
)

// EventPublisher delivers domain events to external collaborators
// (notification, receipt rendering, broadcast). Implementations must be
// asynchronous: Publish is called strictly after the unit of work commits
// and must never block the caller on downstream I/O. Delivery is
// at-least-once.
type EventPublisher interface {
	Publish(ctx context.Context, domainEvents ...events.DomainEvent)
}
