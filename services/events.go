// services/events.go - In-process award event bus
package services

import (
	"sync"

	"github.com/google/uuid"
)

const (
	EventAchievementAwarded   = "achievement_awarded"
	EventCertificationAwarded = "certification_awarded"
	EventRewardClaimed        = "reward_claimed"
)

// Event is published after a successful award or claim commits.
type Event struct {
	Type    string `json:"type"`
	Account uint64 `json:"account"`
	ID      uint64 `json:"id"`
	Amount  uint64 `json:"amount,omitempty"`
	Height  uint64 `json:"height"`
}

// EventBus fans events out to websocket subscribers. Publishing never
// blocks: a subscriber that falls behind its buffer misses events.
type EventBus struct {
	mu   sync.RWMutex
	subs map[string]chan Event
}

func NewEventBus() *EventBus {
	return &EventBus{subs: make(map[string]chan Event)}
}

// Subscribe registers a new subscriber and returns its id and channel.
func (b *EventBus) Subscribe() (string, <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.New().String()
	ch := make(chan Event, 16)
	b.subs[id] = ch
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *EventBus) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// Publish delivers the event to every subscriber that has buffer room.
func (b *EventBus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
