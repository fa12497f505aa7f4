package event_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sandesh/prepquiz/internal/event"
)

func TestBus_PublishReachesAllSubscribers(t *testing.T) {
	bus := event.NewBus()

	var a, b []event.Event
	bus.Subscribe(func(ev event.Event) { a = append(a, ev) })
	bus.Subscribe(func(ev event.Event) { b = append(b, ev) })

	bus.Publish(event.Event{Type: event.TypeUsageChanged})

	assert.Len(t, a, 1)
	assert.Len(t, b, 1)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := event.NewBus()

	var got []event.Event
	unsubscribe := bus.Subscribe(func(ev event.Event) { got = append(got, ev) })

	bus.Publish(event.Event{Type: event.TypeSessionChanged})
	unsubscribe()
	bus.Publish(event.Event{Type: event.TypeSessionChanged})

	assert.Len(t, got, 1)

	// Unsubscribing twice is harmless.
	unsubscribe()
}

func TestBus_PublishWithoutSubscribers(t *testing.T) {
	bus := event.NewBus()
	bus.Publish(event.Event{Type: event.TypeUsageChanged})
}
