package realtime

import (
	"sync"
	"time"

	"restaurant_manager/metrics"
)

// Event is a best-effort dashboard signal scoped to one restaurant.
type Event struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	RestaurantID uint      `json:"restaurantId"`
	Data         any       `json:"data"`
	Timestamp    time.Time `json:"timestamp"`
}

const subscriberBuffer = 64

// Subscriber receives events for a single restaurant room.
type Subscriber struct {
	restaurantID uint
	ch           chan Event
}

func (s *Subscriber) Events() <-chan Event {
	return s.ch
}

func (s *Subscriber) RestaurantID() uint {
	return s.restaurantID
}

// Hub keeps per-restaurant rooms of local subscribers. Events are never queued for absent subscribers.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uint]map[*Subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[uint]map[*Subscriber]struct{})}
}

func (h *Hub) Subscribe(restaurantID uint) *Subscriber {
	sub := &Subscriber{restaurantID: restaurantID, ch: make(chan Event, subscriberBuffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[restaurantID] == nil {
		h.rooms[restaurantID] = make(map[*Subscriber]struct{})
	}
	h.rooms[restaurantID][sub] = struct{}{}
	metrics.RealtimeSubscribers.Inc()
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[sub.restaurantID]
	if !ok {
		return
	}
	if _, ok := room[sub]; !ok {
		return
	}
	delete(room, sub)
	close(sub.ch)
	if len(room) == 0 {
		delete(h.rooms, sub.restaurantID)
	}
	metrics.RealtimeSubscribers.Dec()
}

// Broadcast delivers e to every subscriber of its room and returns how many received it.
// Slow subscribers with a full buffer miss the event.
func (h *Hub) Broadcast(e Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for sub := range h.rooms[e.RestaurantID] {
		select {
		case sub.ch <- e:
			delivered++
		default:
		}
	}
	return delivered
}

func (h *Hub) RoomSize(restaurantID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[restaurantID])
}
