package bootstrap

import (
	"log/slog"

	"github.com/osse101/ChronoFarm_Go/internal/event"
	"github.com/osse101/ChronoFarm_Go/internal/metrics"
	"github.com/osse101/ChronoFarm_Go/internal/notify"
	"github.com/osse101/ChronoFarm_Go/internal/sse"
	"github.com/osse101/ChronoFarm_Go/internal/store"
)

// EventHandlerDependencies holds what the observer listeners attach to
type EventHandlerDependencies struct {
	EventBus *event.Bus
	Store    *store.Store
	Hub      *sse.Hub
}

// RegisterEventHandlers attaches the observers that sit outside the game
// session: toast notifications, event metrics and the event stream bridge.
// It returns the listener ids so they can be removed on shutdown.
func RegisterEventHandlers(deps EventHandlerDependencies) ([]event.ListenerID, []store.SubscriptionID, error) {
	var ids []event.ListenerID

	ids = append(ids, notify.New(deps.EventBus).Register(deps.EventBus)...)
	slog.Info(LogMsgNotifierRegistered)

	ids = append(ids, metrics.NewEventMetricsCollector().Register(deps.EventBus))
	slog.Info(LogMsgMetricsCollectorRegistered)

	bridge := sse.NewBridge(deps.Hub)
	ids = append(ids, bridge.Register(deps.EventBus))
	subs, err := bridge.WatchStore(deps.Store)
	if err != nil {
		return ids, nil, err
	}
	slog.Info(LogMsgEventStreamRegistered, "state_roots", sse.StateRoots)

	return ids, subs, nil
}
