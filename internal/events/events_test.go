package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fixflow/fixflow/internal/status"
)

func TestEventBus(t *testing.T) {
	t.Run("Subscribe and Publish", func(t *testing.T) {
		bus := NewBus()

		var wg sync.WaitGroup
		wg.Add(1)

		var mu sync.Mutex
		var received Event
		bus.Subscribe(EventJobStatusChanged, func(_ context.Context, event Event) error {
			mu.Lock()
			received = event
			mu.Unlock()
			wg.Done()
			return nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		bus.Start(ctx)

		sent := Event{
			Type:       EventJobStatusChanged,
			BusinessID: 1,
			JobID:      42,
			JobCode:    "JOB-0042",
			From:       status.WaitingAssessment,
			To:         status.InProgress,
		}
		bus.Publish(sent)

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for event handler")
		}

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, sent, received)
	})

	t.Run("Multiple handlers all receive the event", func(t *testing.T) {
		bus := NewBus()

		var wg sync.WaitGroup
		wg.Add(2)

		var mu sync.Mutex
		calls := 0
		handler := func(_ context.Context, _ Event) error {
			mu.Lock()
			calls++
			mu.Unlock()
			wg.Done()
			return nil
		}
		bus.Subscribe(EventJobCompleted, handler)
		bus.Subscribe(EventJobCompleted, handler)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		bus.Start(ctx)

		bus.Publish(Event{Type: EventJobCompleted, JobID: 7})

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for event handlers")
		}

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 2, calls)
	})

	t.Run("Failing handler does not block other handlers", func(t *testing.T) {
		bus := NewBus()

		var wg sync.WaitGroup
		wg.Add(1)

		bus.Subscribe(EventJobReadyForPickup, func(_ context.Context, _ Event) error {
			return errors.New("smtp unreachable")
		})
		bus.Subscribe(EventJobReadyForPickup, func(_ context.Context, _ Event) error {
			wg.Done()
			return nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		bus.Start(ctx)

		bus.Publish(Event{Type: EventJobReadyForPickup, JobID: 9})

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for surviving handler")
		}
	})
}
