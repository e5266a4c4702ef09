package realtime

import (
	"context"
	"errors"
	"sync"
	"time"

	"restaurant_manager/logger"
	"restaurant_manager/metrics"

	"github.com/google/uuid"
)

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// LocalPublisher fans out to the in-process hub only.
type LocalPublisher struct {
	Hub *Hub
}

func (p LocalPublisher) Publish(_ context.Context, e Event) error {
	p.Hub.Broadcast(e)
	return nil
}

// MultiPublisher publishes to every publisher and joins their errors.
type MultiPublisher []Publisher

func (m MultiPublisher) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var (
	DefaultHub = NewHub()

	mu        sync.RWMutex
	publisher Publisher = LocalPublisher{Hub: DefaultHub}
)

func SetPublisher(p Publisher) {
	mu.Lock()
	defer mu.Unlock()
	publisher = p
}

func CurrentPublisher() Publisher {
	mu.RLock()
	defer mu.RUnlock()
	return publisher
}

const publishTimeout = 3 * time.Second

// Emit publishes an event with the process publisher. Failures are logged, never returned.
func Emit(restaurantID uint, eventType string, data any) {
	e := Event{
		ID:           uuid.NewString(),
		Type:         eventType,
		RestaurantID: restaurantID,
		Data:         data,
		Timestamp:    time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := CurrentPublisher().Publish(ctx, e); err != nil {
		logger.WithComponent("realtime").Warn().Err(err).
			Str("event", eventType).Uint("restaurant_id", restaurantID).Msg("publish failed")
		return
	}
	metrics.RealtimeEventsPublishedTotal.WithLabelValues(eventType).Inc()
}
