package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"restaurant_manager/logger"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "restaurant:"

func Channel(restaurantID uint) string {
	return fmt.Sprintf("%s%d", channelPrefix, restaurantID)
}

func NewRedisClient(addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

// RedisPublisher sends events to the per-restaurant Redis channel so every instance can fan them out.
type RedisPublisher struct {
	Client *redis.Client
}

func (p RedisPublisher) Publish(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", e.Type, err)
	}
	if err := p.Client.Publish(ctx, Channel(e.RestaurantID), payload).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", e.Type, err)
	}
	return nil
}

// Bridge relays events from Redis into the local hub.
type Bridge struct {
	Client *redis.Client
	Hub    *Hub
}

// Run blocks until ctx is cancelled or the subscription closes.
func (b *Bridge) Run(ctx context.Context) error {
	log := logger.WithComponent("realtime-bridge")

	pubsub := b.Client.PSubscribe(ctx, channelPrefix+"*")
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("psubscribe: %w", err)
	}
	log.Info().Msg("listening for restaurant events")

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			e, err := decodeMessage(msg)
			if err != nil {
				log.Warn().Err(err).Str("channel", msg.Channel).Msg("dropping malformed event")
				continue
			}
			b.Hub.Broadcast(e)
		}
	}
}

func decodeMessage(msg *redis.Message) (Event, error) {
	var e Event
	if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
		return Event{}, err
	}
	id, err := strconv.ParseUint(strings.TrimPrefix(msg.Channel, channelPrefix), 10, 64)
	if err != nil {
		return Event{}, fmt.Errorf("channel %q: %w", msg.Channel, err)
	}
	// the channel is authoritative for the room
	e.RestaurantID = uint(id)
	return e, nil
}
