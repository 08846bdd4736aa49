package notification

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachableRelay points at a port nothing listens on.
func unreachableRelay(t *testing.T, hub *Hub) *RedisRelay {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	r := NewRedisRelay(client, "test:notifications", hub)
	r.minBackoff = 5 * time.Millisecond
	r.maxBackoff = 20 * time.Millisecond
	return r
}

func TestRedisRelay_PublishesLocallyWhileUnsubscribed(t *testing.T) {
	hub := NewHub(nil)
	sub := hub.Subscribe(7)
	defer hub.Unsubscribe(sub)
	r := unreachableRelay(t, hub)

	require.False(t, r.Subscribed())
	r.Publish(context.Background(), 7, Event{Type: EventNotificationCreated})

	select {
	case ev := <-sub.C:
		assert.Equal(t, EventNotificationCreated, ev.Type)
	case <-time.After(time.Second):
		t.Fatal("event not delivered locally")
	}
}

func TestRedisRelay_RunKeepsRetryingUntilCancelled(t *testing.T) {
	hub := NewHub(nil)
	sub := hub.Subscribe(8)
	defer hub.Unsubscribe(sub)
	r := unreachableRelay(t, hub)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	select {
	case err := <-done:
		t.Fatalf("Run returned while ctx was live: %v", err)
	default:
	}
	assert.False(t, r.Subscribed())

	r.Publish(context.Background(), 8, Event{Type: EventNotificationCreated})
	select {
	case <-sub.C:
	case <-time.After(time.Second):
		t.Fatal("event lost while relay was reconnecting")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestRedisRelay_Backoff(t *testing.T) {
	r := NewRedisRelay(nil, "c", NewHub(nil))

	assert.Equal(t, relayMinBackoff, r.backoff(1))
	assert.Equal(t, 2*relayMinBackoff, r.backoff(2))
	assert.Equal(t, 8*relayMinBackoff, r.backoff(4))
	assert.Equal(t, relayMaxBackoff, r.backoff(50))
}
