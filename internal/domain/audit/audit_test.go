package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	events  []Event
	filter  Filter
	failing bool
}

func (m *memoryStore) InsertEvent(_ context.Context, evt Event) error {
	if m.failing {
		return errors.New("db down")
	}
	m.events = append(m.events, evt)
	return nil
}

func (m *memoryStore) ListEvents(_ context.Context, f Filter) ([]Event, error) {
	m.filter = f
	return m.events, nil
}

type countingPublisher struct {
	published []string
	closed    bool
}

func (p *countingPublisher) Publish(_ context.Context, eventType, _ string, _ any) error {
	p.published = append(p.published, eventType)
	return nil
}

func (p *countingPublisher) Close() error {
	p.closed = true
	return nil
}

func TestTrailRecordsAndForwards(t *testing.T) {
	store := &memoryStore{}
	next := &countingPublisher{}
	trail := NewTrail(store, next, nil)
	trail.now = func() time.Time { return time.Date(2025, 3, 31, 18, 0, 0, 0, time.UTC) }

	err := trail.Publish(context.Background(), "leave.status_changed", "e7", map[string]string{"status": "Approved"})
	require.NoError(t, err)

	require.Len(t, store.events, 1)
	evt := store.events[0]
	assert.Equal(t, "leave.status_changed", evt.EventType)
	assert.Equal(t, "e7", evt.EmployeeID)
	assert.JSONEq(t, `{"status":"Approved"}`, string(evt.Payload))
	assert.NotEmpty(t, evt.ID)
	assert.Equal(t, []string{"leave.status_changed"}, next.published)

	require.NoError(t, trail.Close())
	assert.True(t, next.closed)
}

func TestTrailStillPublishesWhenStoreFails(t *testing.T) {
	next := &countingPublisher{}
	trail := NewTrail(&memoryStore{failing: true}, next, nil)

	require.NoError(t, trail.Publish(context.Background(), "payslip.generated", "e1", nil))
	assert.Equal(t, []string{"payslip.generated"}, next.published)
}

func TestEventsClampsPaging(t *testing.T) {
	store := &memoryStore{}
	trail := NewTrail(store, &countingPublisher{}, nil)

	events, err := trail.Events(context.Background(), Filter{Limit: 5000, Offset: -3})
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.NotNil(t, events)
	assert.Equal(t, maxLimit, store.filter.Limit)
	assert.Equal(t, 0, store.filter.Offset)

	_, err = trail.Events(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Equal(t, defaultLimit, store.filter.Limit)
}
