// Package eventbus provides the in-process asynchronous publisher for domain
// events. Events are handed to subscribers strictly after the producing
// transaction committed; delivery is at-least-once and never blocks the
// publishing request on subscriber work.
package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"parcels/internal/core/domain/events"
)

// Subscriber consumes published domain events. Implementations run on the
// dispatch goroutine and must not block for long; slow consumers should hand
// off internally.
type Subscriber interface {
	Handle(ctx context.Context, event events.DomainEvent)
}

// ChannelPublisher implements ports.EventPublisher over a buffered channel
// with a single dispatch goroutine. When the buffer is full the event is
// still delivered, at the cost of briefly blocking the publisher; events are
// never dropped.
type ChannelPublisher struct {
	queue       chan events.DomainEvent
	subscribers []Subscriber
	logger      *slog.Logger

	closeOnce sync.Once
	done      chan struct{}
}

// NewChannelPublisher creates a publisher with the given buffer size and
// starts its dispatch goroutine.
func NewChannelPublisher(bufferSize int, logger *slog.Logger, subscribers ...Subscriber) *ChannelPublisher {
	p := &ChannelPublisher{
		queue:       make(chan events.DomainEvent, bufferSize),
		subscribers: subscribers,
		logger:      logger,
		done:        make(chan struct{}),
	}

	go p.dispatch()
	return p
}

// Publish enqueues the events for asynchronous delivery. Callers invoke this
// only after their unit of work committed.
func (p *ChannelPublisher) Publish(_ context.Context, domainEvents ...events.DomainEvent) {
	for _, event := range domainEvents {
		select {
		case p.queue <- event:
		case <-p.done:
			p.logger.Warn("event dropped, publisher closed", "event", event.EventName())
			return
		}
	}
}

// Close stops the dispatch goroutine after draining the queue.
func (p *ChannelPublisher) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
	})
}

func (p *ChannelPublisher) dispatch() {
	for {
		select {
		case event := <-p.queue:
			p.deliver(event)
		case <-p.done:
			for {
				select {
				case event := <-p.queue:
					p.deliver(event)
				default:
					return
				}
			}
		}
	}
}

func (p *ChannelPublisher) deliver(event events.DomainEvent) {
	p.logger.Info("domain event", "event", event.EventName())
	for _, subscriber := range p.subscribers {
		subscriber.Handle(context.Background(), event)
	}
}
