package broadcast

import (
	"sync"

	"github.com/Peter3Khalil/DocTalker-Backend/pkg/model"
)

// Event is a single streamed assistant increment
type Event struct {
	ChatID  model.ChatID `json:"chatId"`
	Role    model.Role   `json:"role"`
	Content string       `json:"content"`
}

// Hub fans out events to the subscribers of one conversation. Channels
// are scoped per chat, so observers of one conversation never see
// another's streamed content. Delivery is best effort: Publish never
// blocks, an event is dropped for a subscriber whose buffer is full,
// and missed events are not replayed. The durable chat record is the
// source of truth, not the live feed.
type Hub struct {
	mu     sync.RWMutex
	chats  map[model.ChatID]map[chan Event]struct{}
	buffer int
}

type Option func(*Hub)

// WithBuffer sets the per-subscriber channel buffer size
func WithBuffer(n int) Option {
	return func(h *Hub) {
		h.buffer = n
	}
}

// NewHub creates a new broadcast hub
func NewHub(opts ...Option) *Hub {
	h := &Hub{
		chats:  make(map[model.ChatID]map[chan Event]struct{}),
		buffer: 16,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Subscribe registers a new observer of the given conversation. The
// returned cancel function must be called when the observer
// disconnects; it closes the channel.
func (h *Hub) Subscribe(chatID model.ChatID) (<-chan Event, func()) {
	ch := make(chan Event, h.buffer)

	h.mu.Lock()
	subscribers, ok := h.chats[chatID]
	if !ok {
		subscribers = make(map[chan Event]struct{})
		h.chats[chatID] = subscribers
	}
	subscribers[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := subscribers[ch]; !ok {
			// Already cancelled. The registry entry may belong to a
			// newer subscriber set by now and must not be touched.
			return
		}
		delete(subscribers, ch)
		close(ch)
		if len(subscribers) == 0 {
			delete(h.chats, chatID)
		}
	}

	return ch, cancel
}

// Publish delivers the event to the subscribers of its conversation
// without blocking the caller.
func (h *Hub) Publish(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.chats[ev.ChatID] {
		select {
		case ch <- ev:
		default:
			// Slow subscriber, drop the event for it
		}
	}
}

// Len returns the number of subscribers of the given conversation
func (h *Hub) Len(chatID model.ChatID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.chats[chatID])
}
