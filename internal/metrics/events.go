package metrics

import (
	"context"
	"log/slog"

	"github.com/osse101/ChronoFarm_Go/internal/event"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every topic at observer priority
func (e *EventMetricsCollector) Register(bus *event.Bus) event.ListenerID {
	id := bus.On(event.PatternAll, e.HandleEvent, event.WithPriority(event.PriorityObserver))
	slog.Debug(LogMsgCollectorRegistered)
	return id
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(_ context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Topic)).Inc()

	switch p := evt.Payload.(type) {
	case event.PlantPlanted:
		PlantsPlanted.WithLabelValues(p.Species).Inc()
	case event.PlantHarvested:
		PlantsHarvested.WithLabelValues(p.Plant.Type).Inc()
	case event.PlantError:
		PlantErrors.WithLabelValues(p.Action, p.Reason).Inc()
	case event.TravelSuccess:
		Travels.WithLabelValues(p.To, OutcomeSuccess).Inc()
	case event.TravelFailed:
		Travels.WithLabelValues(p.To, p.Reason).Inc()
	case event.EraUnlocked:
		ErasUnlocked.WithLabelValues(p.EraID).Inc()
	case event.AchievementUnlocked:
		AchievementsUnlocked.WithLabelValues(p.AchievementID).Inc()
	case event.GameSaved:
		Saves.Inc()
	case event.GameLoaded:
		Loads.WithLabelValues(p.Source).Inc()
	}
	return nil
}

// FailureCounter is an event.FailureSink counting listener failures by topic
type FailureCounter struct{}

// Record implements event.FailureSink
func (FailureCounter) Record(ev event.Event, _ event.ListenerID, _ error) error {
	ListenerFailures.WithLabelValues(string(ev.Topic)).Inc()
	return nil
}
