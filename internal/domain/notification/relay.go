package notification

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type envelope struct {
	RecipientID int64 `json:"recipient_id"`
	Event       Event `json:"event"`
}

const (
	relayMinBackoff = 500 * time.Millisecond
	relayMaxBackoff = 30 * time.Second
)

// RedisRelay spreads events across API instances. Publish goes to a Redis
// channel; Run feeds every message on that channel into the local hub.
// While this instance is not subscribed, Publish delivers to the local hub.
type RedisRelay struct {
	client  *redis.Client
	channel string
	hub     *Hub

	subscribed atomic.Bool
	minBackoff time.Duration
	maxBackoff time.Duration
}

func NewRedisRelay(client *redis.Client, channel string, hub *Hub) *RedisRelay {
	return &RedisRelay{
		client:     client,
		channel:    channel,
		hub:        hub,
		minBackoff: relayMinBackoff,
		maxBackoff: relayMaxBackoff,
	}
}

// Subscribed reports whether Run currently holds a live subscription.
func (r *RedisRelay) Subscribed() bool {
	return r.subscribed.Load()
}

func (r *RedisRelay) Publish(ctx context.Context, recipientID int64, ev Event) {
	if !r.subscribed.Load() {
		r.hub.Publish(ctx, recipientID, ev)
		return
	}

	data, err := encodeEnvelope(recipientID, ev)
	if err == nil {
		err = r.client.Publish(ctx, r.channel, data).Err()
	}
	if err != nil {
		log.Warn().Err(err).Int64("recipient_id", recipientID).Msg("redis publish failed, delivering locally")
		r.hub.Publish(ctx, recipientID, ev)
	}
}

// Run keeps a subscription open until ctx is cancelled, resubscribing with
// exponential backoff whenever Redis drops it.
func (r *RedisRelay) Run(ctx context.Context) error {
	attempt := 0
	for {
		subscribed, err := r.consume(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if subscribed {
			attempt = 0
		}
		attempt++
		delay := r.backoff(attempt)
		log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", delay).Msg("notification relay disconnected")

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil
		case <-t.C:
		}
	}
}

// consume reports whether the subscription was established before it ended.
func (r *RedisRelay) consume(ctx context.Context) (bool, error) {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return false, err
	}
	r.subscribed.Store(true)
	defer r.subscribed.Store(false)
	log.Info().Str("channel", r.channel).Msg("notification relay subscribed")

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return true, ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return true, errors.New("redis subscription closed")
			}
			recipientID, ev, err := decodeEnvelope([]byte(msg.Payload))
			if err != nil {
				log.Warn().Err(err).Msg("dropping malformed relay message")
				continue
			}
			r.hub.Publish(ctx, recipientID, ev)
		}
	}
}

func (r *RedisRelay) backoff(attempt int) time.Duration {
	d := r.minBackoff
	for i := 1; i < attempt && d < r.maxBackoff; i++ {
		d *= 2
	}
	return min(d, r.maxBackoff)
}

func encodeEnvelope(recipientID int64, ev Event) ([]byte, error) {
	return json.Marshal(envelope{RecipientID: recipientID, Event: ev})
}

func decodeEnvelope(data []byte) (int64, Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return 0, Event{}, err
	}
	if env.RecipientID <= 0 {
		return 0, Event{}, errors.New("missing recipient id")
	}
	return env.RecipientID, env.Event, nil
}
