// Package domain defines the core types and interfaces for the rice cooker.
// All other packages depend on domain; domain depends on nothing.
package domain

import (
	"fmt"
	"strconv"
	"time"
)

// Phase is where the appliance is in its cook cycle.
type Phase int

const (
	// PhaseIdle means no cycle is running.
	PhaseIdle Phase = iota
	// PhaseCooking means a cycle is running and the countdown is ticking.
	PhaseCooking
	// PhaseWarming is the post-cook hold entered when a cycle with keep warm
	// on comes to an end.
	PhaseWarming
)

// String returns a human-readable phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCooking:
		return "cooking"
	case PhaseWarming:
		return "warming"
	default:
		return "unknown"
	}
}

// PhaseFromString converts a phase name back to a Phase.
// Returns PhaseIdle for unrecognized names.
func PhaseFromString(name string) Phase {
	switch name {
	case "cooking":
		return PhaseCooking
	case "warming":
		return PhaseWarming
	default:
		return PhaseIdle
	}
}

// CookerState holds the settings and ingredient levels that exist
// independently of any cook cycle.
type CookerState struct {
	PoweredOn        bool
	Temperature      float64 // 0 until set
	CookingMinutes   int
	RemainingMinutes int
	RiceCups         int
	WaterCups        int
}

// Cycle is a running cook cycle. Steam and keep warm only exist inside one,
// so neither can be on while the cooker is idle.
type Cycle struct {
	ID        uint64
	StartedAt time.Time
	Steam     bool
	Warm      bool
}

// Snapshot is a point-in-time copy of everything the cooker knows.
type Snapshot struct {
	CookerState
	Phase              Phase
	SteamCooking       bool
	KeepWarm           bool
	DisplayTemperature float64 // Temperature, or the default when unset
	CookStartedAt      time.Time
}

// Cooking reports whether a cook cycle is running.
func (s Snapshot) Cooking() bool {
	return s.Phase == PhaseCooking
}

// Lines renders the status report shown to the operator.
func (s Snapshot) Lines() []string {
	return []string{
		"Rice Cooker Status:",
		fmt.Sprintf("  Plugged In: %t", s.PoweredOn),
		fmt.Sprintf("  Cooking: %t", s.Cooking()),
		fmt.Sprintf("  Steam Cooking: %t", s.SteamCooking),
		fmt.Sprintf("  Keep Warm: %t", s.KeepWarm),
		fmt.Sprintf("  Temperature: %s°C", FormatCelsius(s.DisplayTemperature)),
		fmt.Sprintf("  Rice Quantity: %d cups", s.RiceCups),
		fmt.Sprintf("  Water Quantity: %d cups", s.WaterCups),
	}
}

// Countdown is the answer to "how long is left".
type Countdown struct {
	Minutes int
	Cooking bool
}

// Lines renders the countdown. Nothing is shown unless a cycle is running
// with time left on it.
func (c Countdown) Lines() []string {
	if !c.Cooking || c.Minutes <= 0 {
		return nil
	}
	return []string{RemainingLine(c.Minutes)}
}

// RemainingLine is the message used for every remaining-time report.
func RemainingLine(minutes int) string {
	return fmt.Sprintf("Cooking time remaining: %d minutes.", minutes)
}

// FormatCelsius prints a temperature without trailing zeros (60, 62.5).
func FormatCelsius(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}
