package timetravel

import (
	"fmt"
	"time"

	"github.com/osse101/ChronoFarm_Go/internal/domain"
)

// CooldownError is returned while the travel cooldown is running
type CooldownError struct {
	Remaining time.Duration
}

func (e CooldownError) Error() string {
	minutes := int(e.Remaining.Minutes())
	seconds := int(e.Remaining.Seconds()) % 60

	if minutes > 0 {
		return fmt.Sprintf("%s: %dm %ds remaining", domain.ErrMsgTravelOnCooldown, minutes, seconds)
	}
	return fmt.Sprintf("%s: %ds remaining", domain.ErrMsgTravelOnCooldown, seconds)
}

// Is lets errors.Is match both CooldownError and domain.ErrTravelOnCooldown
func (e CooldownError) Is(target error) bool {
	if target == domain.ErrTravelOnCooldown {
		return true
	}
	_, ok := target.(CooldownError)
	return ok
}

// LockedError is returned when the target era has not been unlocked yet
type LockedError struct {
	EraID       string
	Requirement domain.Requirement
}

func (e LockedError) Error() string {
	return fmt.Sprintf("%s: %s requires: %s", domain.ErrMsgEraLocked, e.EraID, e.Requirement.Describe())
}

// Unwrap exposes domain.ErrEraLocked
func (e LockedError) Unwrap() error {
	return domain.ErrEraLocked
}
