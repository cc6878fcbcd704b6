package sse

import (
	"context"
	"log/slog"
	"time"

	"github.com/osse101/ChronoFarm_Go/internal/event"
	"github.com/osse101/ChronoFarm_Go/internal/store"
)

// Bridge forwards bus events and store changes to the hub
type Bridge struct {
	hub *Hub
}

// NewBridge creates a bridge for hub
func NewBridge(hub *Hub) *Bridge {
	return &Bridge{hub: hub}
}

// Register forwards every bus topic at observer priority, after game logic
// has reacted
func (b *Bridge) Register(bus *event.Bus) event.ListenerID {
	id := bus.On(event.PatternAll, b.forward, event.WithPriority(event.PriorityObserver))
	slog.Info(LogMsgBridgeRegistered, "topics", len(event.AllTopics))
	return id
}

func (b *Bridge) forward(_ context.Context, ev event.Event) error {
	b.hub.Send(Event{
		ID:        ev.ID,
		Type:      string(ev.Topic),
		Timestamp: ev.Timestamp.UnixMilli(),
		Payload:   ev.Payload,
	})
	return nil
}

// WatchStore streams changes under each state root as "state:<root>" with
// the new value of the root
func (b *Bridge) WatchStore(s *store.Store) ([]store.SubscriptionID, error) {
	ids := make([]store.SubscriptionID, 0, len(StateRoots))
	for _, root := range StateRoots {
		root := root
		id, err := s.Subscribe(root, func(_, _ any, _ string) {
			b.hub.Send(Event{
				Type:      StateEventPrefix + root,
				Timestamp: time.Now().UnixMilli(),
				Payload:   s.Get(root, nil),
			})
		}, store.SubscribeOptions{})
		if err != nil {
			for _, done := range ids {
				s.Unsubscribe(done)
			}
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
