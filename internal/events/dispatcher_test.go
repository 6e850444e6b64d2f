package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherPublishSubscribe(t *testing.T) {
	d := NewInMemoryDispatcher()

	var received []Event
	d.Subscribe(EventReportCreated, func(_ context.Context, e Event) error {
		received = append(received, e)
		return nil
	})

	err := d.Publish(context.Background(), Event{ID: "e1", Type: EventReportCreated})
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "e1", received[0].ID)

	// events without subscribers are dropped silently
	err = d.Publish(context.Background(), Event{ID: "e2", Type: EventAdvisoryIssued})
	require.NoError(t, err)
	assert.Len(t, received, 1)
}

func TestDispatcherContinuesPastFailingHandler(t *testing.T) {
	d := NewInMemoryDispatcher()

	calls := 0
	d.Subscribe(EventAdvisoryIssued, func(context.Context, Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventAdvisoryIssued, func(context.Context, Event) error {
		calls++
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventAdvisoryIssued}))
	assert.Equal(t, 1, calls)
}
