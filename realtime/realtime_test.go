package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, sub *Subscriber) Event {
	t.Helper()
	select {
	case e, ok := <-sub.Events():
		require.True(t, ok, "subscriber channel closed")
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestHubRoomsAreScopedByRestaurant(t *testing.T) {
	hub := NewHub()
	a := hub.Subscribe(1)
	b := hub.Subscribe(2)
	defer hub.Unsubscribe(a)
	defer hub.Unsubscribe(b)

	n := hub.Broadcast(Event{Type: "order:new", RestaurantID: 1})
	assert.Equal(t, 1, n)

	e := receive(t, a)
	assert.Equal(t, "order:new", e.Type)

	select {
	case <-b.Events():
		t.Fatal("restaurant 2 received an event for restaurant 1")
	default:
	}
}

func TestHubDropsWhenSubscriberIsFull(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(1)
	defer hub.Unsubscribe(sub)

	for i := 0; i < subscriberBuffer; i++ {
		require.Equal(t, 1, hub.Broadcast(Event{RestaurantID: 1}))
	}
	assert.Equal(t, 0, hub.Broadcast(Event{RestaurantID: 1}))
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(3)
	assert.Equal(t, 1, hub.RoomSize(3))

	hub.Unsubscribe(sub)
	hub.Unsubscribe(sub)
	assert.Equal(t, 0, hub.RoomSize(3))

	_, ok := <-sub.Events()
	assert.False(t, ok)
}

func TestNoSubscriberMeansNoReplay(t *testing.T) {
	hub := NewHub()
	hub.Broadcast(Event{Type: "order:new", RestaurantID: 9})

	sub := hub.Subscribe(9)
	defer hub.Unsubscribe(sub)
	select {
	case <-sub.Events():
		t.Fatal("late subscriber received an old event")
	default:
	}
}

type failingPublisher struct{ err error }

func (f failingPublisher) Publish(context.Context, Event) error { return f.err }

func TestMultiPublisherJoinsErrors(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(1)
	defer hub.Unsubscribe(sub)

	boom := errors.New("boom")
	m := MultiPublisher{failingPublisher{err: boom}, LocalPublisher{Hub: hub}}

	err := m.Publish(context.Background(), Event{Type: "order:update", RestaurantID: 1})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "order:update", receive(t, sub).Type)
}

func TestEmitUsesConfiguredPublisher(t *testing.T) {
	hub := NewHub()
	SetPublisher(LocalPublisher{Hub: hub})
	defer SetPublisher(LocalPublisher{Hub: DefaultHub})

	sub := hub.Subscribe(5)
	defer hub.Unsubscribe(sub)

	Emit(5, "staff:clock_in", map[string]any{"staffId": 3})
	e := receive(t, sub)
	assert.Equal(t, "staff:clock_in", e.Type)
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.Timestamp.IsZero())
}

func TestRedisBridgeFansOutToHub(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	hub := NewHub()
	sub := hub.Subscribe(42)
	defer hub.Unsubscribe(sub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bridge := &Bridge{Client: client, Hub: hub}
	done := make(chan error, 1)
	go func() { done <- bridge.Run(ctx) }()

	pub := RedisPublisher{Client: client}
	require.Eventually(t, func() bool {
		return mr.PubSubNumPat() == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, pub.Publish(ctx, Event{ID: "e1", Type: "order:new", RestaurantID: 42, Data: map[string]any{"orderNumber": "ORD-42-20260302-0001"}}))

	e := receive(t, sub)
	assert.Equal(t, "e1", e.ID)
	assert.Equal(t, uint(42), e.RestaurantID)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("bridge did not stop")
	}
}

type recordingWriter struct {
	msgs []kafka.Message
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func TestKafkaPublisherKeepsOrderEventsOnly(t *testing.T) {
	w := &recordingWriter{}
	p := KafkaPublisher{Writer: w}

	require.NoError(t, p.Publish(context.Background(), Event{Type: "order:new", RestaurantID: 7}))
	require.NoError(t, p.Publish(context.Background(), Event{Type: "kitchen:order_ready", RestaurantID: 7}))
	require.NoError(t, p.Publish(context.Background(), Event{Type: "staff:clock_in", RestaurantID: 7}))

	require.Len(t, w.msgs, 2)
	assert.Equal(t, "7", string(w.msgs[0].Key))

	var e Event
	require.NoError(t, json.Unmarshal(w.msgs[1].Value, &e))
	assert.Equal(t, "kitchen:order_ready", e.Type)
}
