// services/events_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBusPublish(t *testing.T) {
	bus := NewEventBus()

	id1, ch1 := bus.Subscribe()
	id2, ch2 := bus.Subscribe()
	assert.NotEqual(t, id1, id2)

	bus.Publish(Event{Type: EventRewardClaimed, Account: 7, ID: 1, Amount: 2000, Height: 4})

	for _, ch := range []<-chan Event{ch1, ch2} {
		select {
		case event := <-ch:
			assert.Equal(t, EventRewardClaimed, event.Type)
			assert.Equal(t, uint64(7), event.Account)
		default:
			t.Fatal("expected buffered event")
		}
	}

	bus.Unsubscribe(id1)
	_, open := <-ch1
	assert.False(t, open)

	// Publishing after an unsubscribe only reaches remaining subscribers
	bus.Publish(Event{Type: EventAchievementAwarded})
	select {
	case event := <-ch2:
		assert.Equal(t, EventAchievementAwarded, event.Type)
	default:
		t.Fatal("expected buffered event")
	}
}

func TestEventBusDropsWhenFull(t *testing.T) {
	bus := NewEventBus()
	_, ch := bus.Subscribe()

	for i := 0; i < 32; i++ {
		bus.Publish(Event{Type: EventAchievementAwarded, Height: uint64(i)})
	}

	// Buffer holds 16; the rest were dropped rather than blocking
	count := 0
	for {
		select {
		case <-ch:
			count++
			continue
		default:
		}
		break
	}
	assert.Equal(t, 16, count)
}

func TestAwardPublishesEvent(t *testing.T) {
	r := newTestRegistry(t)
	registerTestIssuer(t, r)
	id := createTestAchievement(t, r, 2000)

	_, ch := r.events.Subscribe()

	require.NoError(t, r.AwardAchievement(testIssuer, testAccount, id))

	select {
	case event := <-ch:
		assert.Equal(t, EventAchievementAwarded, event.Type)
		assert.Equal(t, testAccount, event.Account)
		assert.Equal(t, id, event.ID)
		assert.Equal(t, uint64(2000), event.Amount)
	default:
		t.Fatal("expected award event")
	}

	// Failed awards publish nothing
	err := r.AwardAchievement(testIssuer, testAccount, id)
	require.ErrorIs(t, err, ErrInvalidInput)
	select {
	case <-ch:
		t.Fatal("unexpected event for failed award")
	default:
	}
}
