// Package events provides an in-process bus for post-commit side effects.
// The job mutation commits first; notification and email work is consumed
// asynchronously by subscribed handlers, and a failing handler is logged
// and swallowed so it can never affect the committed state change.
package events

import (
	"context"
	"sync"

	"github.com/fixflow/fixflow/internal/logger"
	"github.com/fixflow/fixflow/internal/status"
)

// EventType represents the type of job lifecycle event
type EventType string

const (
	// EventJobStatusChanged is emitted when a job's status actually changes
	EventJobStatusChanged EventType = "job_status_changed"
	// EventJobCompleted is emitted when a job enters the completed status
	EventJobCompleted EventType = "job_completed"
	// EventJobReadyForPickup is emitted when a job enters ready_for_pickup
	EventJobReadyForPickup EventType = "job_ready_for_pickup"
	// EventJobAssigned is emitted when an unassigned job gains an assignee
	EventJobAssigned EventType = "job_assigned"
	// EventJobReassigned is emitted when a job moves between assignees
	EventJobReassigned EventType = "job_reassigned"

	// eventChannelSize is the buffer size for the event channel
	eventChannelSize = 100
)

// Event represents one job lifecycle event
type Event struct {
	Type       EventType
	BusinessID uint
	JobID      uint
	JobCode    string
	CustomerID uint
	From       status.Status
	To         status.Status
	AssignedTo uint
	PrevUserID uint
}

// Handler is a function that handles an event
type Handler func(context.Context, Event) error

// Bus dispatches events to subscribed handlers. Construct one per process
// (or per test) with NewBus and pump it with Start.
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
	ch       chan Event
}

// NewBus creates an event bus with a buffered channel
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
		ch:       make(chan Event, eventChannelSize),
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	logger.Debugf("Registered handler for event type: %s", eventType)
}

// Publish sends an event to be processed
func (b *Bus) Publish(event Event) {
	b.ch <- event
	logger.Debugf("Published event %s for job %d", event.Type, event.JobID)
}

// Start starts the event processing loop
func (b *Bus) Start(ctx context.Context) {
	go b.processEvents(ctx)
	logger.Info("Started event processing loop")
}

func (b *Bus) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping event processing loop")
			return
		case event := <-b.ch:
			b.mu.RLock()
			eventHandlers := b.handlers[event.Type]
			b.mu.RUnlock()

			for _, handler := range eventHandlers {
				go func(h Handler, e Event) {
					if err := h(ctx, e); err != nil {
						logger.Errorf("Failed to handle event %s for job %d: %v", e.Type, e.JobID, err)
					}
				}(handler, event)
			}
		}
	}
}
