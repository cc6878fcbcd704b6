// Package notify turns game events into user-facing toast notifications
package notify

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/ChronoFarm_Go/internal/domain"
	"github.com/osse101/ChronoFarm_Go/internal/event"
	"github.com/osse101/ChronoFarm_Go/internal/save"
)

// Toast levels
const (
	LevelInfo    = "info"
	LevelSuccess = "success"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Notifier emits a toast for each user-visible failure and unlock
type Notifier struct {
	pub   event.Publisher
	title cases.Caser
}

// New creates a notifier that publishes toasts on pub
func New(pub event.Publisher) *Notifier {
	return &Notifier{pub: pub, title: cases.Title(language.English)}
}

// Register subscribes to the source topics at observer priority
func (n *Notifier) Register(bus *event.Bus) []event.ListenerID {
	topics := []event.Topic{
		event.TopicPlantError,
		event.TopicTravelFailed,
		event.TopicTravelCooldownReady,
		event.TopicEraUnlocked,
		event.TopicAchievementUnlocked,
		event.TopicPlayerLevelUp,
		event.TopicGameLoaded,
	}
	ids := make([]event.ListenerID, 0, len(topics))
	for _, topic := range topics {
		ids = append(ids, bus.On(string(topic), n.Handle, event.WithPriority(event.PriorityObserver)))
	}
	return ids
}

// Handle publishes the toast for ev, if it has one
func (n *Notifier) Handle(ctx context.Context, ev event.Event) error {
	if toast, ok := n.ToastFor(ev.Payload); ok {
		n.pub.Emit(ctx, toast)
	}
	return nil
}

// ToastFor renders the toast for a payload
func (n *Notifier) ToastFor(p event.Payload) (event.Toast, bool) {
	switch p := p.(type) {
	case event.PlantError:
		return event.Toast{
			Level:   LevelWarning,
			Title:   fmt.Sprintf("Cannot %s plot %d", p.Action, p.PlotID),
			Message: n.reason(p.Reason, p.Message),
		}, true

	case event.TravelFailed:
		msg := n.reason(p.Reason, p.Message)
		if p.Requirement != nil {
			if req, err := p.Requirement.Requirement(); err == nil {
				msg = "Requires: " + req.Describe()
			}
		}
		if p.RemainingMs > 0 {
			msg = fmt.Sprintf("Time machine recharging, %ds left", (p.RemainingMs+999)/1000)
		}
		return event.Toast{
			Level:   LevelWarning,
			Title:   "Cannot travel to " + n.Name(p.To),
			Message: msg,
		}, true

	case event.TravelCooldownReady:
		return event.Toast{Level: LevelInfo, Title: "Time machine ready", Message: "You can travel again"}, true

	case event.EraUnlocked:
		return event.Toast{Level: LevelSuccess, Title: "Era unlocked", Message: n.nameOr(p.Name, p.EraID)}, true

	case event.AchievementUnlocked:
		return event.Toast{
			Level:   LevelSuccess,
			Title:   "Achievement: " + n.nameOr(p.Name, p.AchievementID),
			Message: n.reward(p.Reward),
		}, true

	case event.PlayerLevelUp:
		return event.Toast{Level: LevelSuccess, Title: "Level up", Message: fmt.Sprintf("You reached level %d", p.NewLevel)}, true

	case event.GameLoaded:
		// loads from the primary slot are silent
		switch p.Source {
		case save.SourceBackup:
			return event.Toast{Level: LevelWarning, Title: "Save restored from backup", Message: "The latest save could not be read"}, true
		case save.SourceDefault:
			return event.Toast{Level: LevelInfo, Title: "New game started", Message: "No usable save was found"}, true
		}
	}
	return event.Toast{}, false
}

// Name title-cases a catalog id, "prehistoric-moss" becomes "Prehistoric Moss"
func (n *Notifier) Name(id string) string {
	return n.title.String(strings.ReplaceAll(id, "-", " "))
}

func (n *Notifier) nameOr(name, id string) string {
	if name != "" {
		return name
	}
	return n.Name(id)
}

func (n *Notifier) reason(code, fallback string) string {
	switch code {
	case domain.ReasonPlotOccupied:
		return "That plot is already planted"
	case domain.ReasonNoPlant:
		return "There is nothing planted there"
	case domain.ReasonNotReady:
		return "The plant is still growing"
	case domain.ReasonNoSeeds:
		return "You are out of seeds"
	case domain.ReasonInsufficient:
		return "Not enough resources"
	case domain.ReasonAlreadyTraveling:
		return "Already traveling"
	case domain.ReasonSameEra:
		return "You are already there"
	}
	return fallback
}

func (n *Notifier) reward(r domain.Reward) string {
	parts := make([]string, 0, len(r.Resources)+1)
	for _, id := range slices.Sorted(maps.Keys(r.Resources)) {
		parts = append(parts, fmt.Sprintf("+%d %s", r.Resources[id], n.Name(id)))
	}
	if r.Experience > 0 {
		parts = append(parts, fmt.Sprintf("+%d XP", r.Experience))
	}
	return strings.Join(parts, ", ")
}
