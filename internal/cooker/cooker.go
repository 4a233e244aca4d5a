// Package cooker implements the rice cooker state machine. Every operation
// checks its guard first and either applies the whole change or returns a
// *domain.PreconditionError leaving the state as it was.
package cooker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hammamikhairi/ricecooker/internal/domain"
	"github.com/hammamikhairi/ricecooker/internal/logger"
	"github.com/hammamikhairi/ricecooker/internal/timer"
)

// Temperature limits. They are fixed properties of the appliance.
const (
	DefaultTemperature = 74.0 // reported while no temperature is set
	MinTemperature     = 55.0 // lowest temperature SetTemperature accepts
)

// Operator messages.
const (
	msgPluggedIn      = "Rice cooker is plugged in."
	msgUnplugged      = "Rice cooker is unplugged."
	msgCookingStarted = "Cooking started."
	msgCookingStopped = "Cooking stopped."
	msgSteamStarted   = "Steam cooking started."
	msgSteamStopped   = "Steam cooking stopped."
	msgKeepWarmOn     = "Keep warm function activated."
	msgCleaning       = "Cleaning the rice cooker."
	errAddRice        = "Error adding rice. Please make sure the cooker is not cooking and provide a valid quantity (greater than 0)."
	errAddWater       = "Error adding water. Please provide a valid quantity (greater than 0)."
	errStartCooking   = "Error starting cooking. Please check if the cooker is plugged in, rice and water are added, and cooking is not already in progress."
	errStopCooking    = "Error stopping cooking. Cooking is not in progress."
	errStartSteam     = "Error starting steam cooking. Please check if the cooker is plugged in, cooking is in progress, and steam cooking is not already in progress."
	errStopSteam      = "Error stopping steam cooking. Steam cooking is not in progress."
	errKeepWarm       = "Error activating keep warm function. Please check if the cooker is plugged in, cooking is in progress, and keep warm function is not already activated."
	errRemainingTime  = "Error displaying remaining time. Cooking or keep warm function must be in progress."
	errTempNotPowered = "Error setting temperature. Please check if the cooker is plugged in."
	errTempTooLowFmt  = "Error setting temperature. Temperature must be greater than or equal to %s°C."
	errSetCookingTime = "Error setting cooking time. Please check if the cooker is plugged in, not cooking, and provide a valid time."
	errClean          = "Error cleaning. Please make sure the cooker is not cooking and it is unplugged before cleaning."
)

// Option configures the cooker.
type Option func(*Cooker)

// WithClock sets the clock used to time cook cycles.
func WithClock(clock domain.Clock) Option {
	return func(c *Cooker) {
		c.clock = clock
	}
}

// WithTickInterval sets how often a running cycle recomputes its remaining time.
func WithTickInterval(d time.Duration) Option {
	return func(c *Cooker) {
		if d > 0 {
			c.tickInterval = d
		}
	}
}

// Cooker owns the appliance state. Operator calls and the background
// countdown are serialized by mu. notifyMu is held by a tick until its
// notifications are delivered; operations that can end a cycle take it
// before mu, never while holding mu.
type Cooker struct {
	notifier     domain.Notifier
	log          *logger.Logger
	clock        domain.Clock
	tickInterval time.Duration

	notifyMu  sync.Mutex
	mu        sync.Mutex
	state     domain.CookerState
	phase     *phaseMachine
	cycle     *domain.Cycle // nil unless cooking
	countdown *timer.Countdown
	lastCycle uint64
}

// New creates an unplugged, empty cooker.
func New(notifier domain.Notifier, log *logger.Logger, opts ...Option) *Cooker {
	c := &Cooker{
		notifier:     notifier,
		log:          log,
		clock:        domain.SystemClock,
		tickInterval: timer.DefaultTickInterval,
		phase:        newPhaseMachine(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PlugIn powers the cooker. Always succeeds.
func (c *Cooker) PlugIn(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.PoweredOn = true
	c.log.Info("plugged in")
	return []string{msgPluggedIn}, nil
}

// Unplug cuts power. Always succeeds. A running cycle is not stopped and
// its countdown keeps going.
func (c *Cooker) Unplug(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.PoweredOn = false
	if c.cycle != nil {
		c.log.Warn("unplugged during cycle %d; cycle keeps running", c.cycle.ID)
	} else {
		c.log.Info("unplugged")
	}
	return []string{msgUnplugged}, nil
}

// AddRice adds cups of rice. Refused while cooking or for cups <= 0.
func (c *Cooker) AddRice(ctx context.Context, cups int) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var causes []error
	if c.cycle != nil {
		causes = append(causes, domain.ErrAlreadyCooking)
	}
	if cups <= 0 {
		causes = append(causes, domain.ErrInvalidQuantity)
	}
	if len(causes) > 0 {
		return nil, c.reject("add_rice", errAddRice, causes...)
	}

	c.state.RiceCups += cups
	c.log.Debug("rice now %d cups", c.state.RiceCups)
	return []string{fmt.Sprintf("Added %d cups of rice to the cooker.", cups)}, nil
}

// AddWater adds cups of water. Allowed in any phase; refused for cups <= 0.
func (c *Cooker) AddWater(ctx context.Context, cups int) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cups <= 0 {
		return nil, c.reject("add_water", errAddWater, domain.ErrInvalidQuantity)
	}

	c.state.WaterCups += cups
	c.log.Debug("water now %d cups", c.state.WaterCups)
	return []string{fmt.Sprintf("Added %d cups of water to the cooker.", cups)}, nil
}

// CheckStartCooking reports whether StartCooking would be accepted right
// now. The console uses it to skip the duration prompt when it would not be.
func (c *Cooker) CheckStartCooking() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startGuardLocked()
}

func (c *Cooker) startGuardLocked() error {
	var causes []error
	if !c.state.PoweredOn {
		causes = append(causes, domain.ErrNotPowered)
	}
	if c.state.RiceCups <= 0 {
		causes = append(causes, domain.ErrNoRice)
	}
	if c.state.WaterCups <= 0 {
		causes = append(causes, domain.ErrNoWater)
	}
	if c.cycle != nil {
		causes = append(causes, domain.ErrAlreadyCooking)
	}
	if len(causes) > 0 {
		return c.reject("start_cooking", errStartCooking, causes...)
	}
	return nil
}

// StartCooking begins a cycle of the given length and starts the countdown.
// The countdown lives until the cycle ends or ctx is cancelled.
func (c *Cooker) StartCooking(ctx context.Context, minutes int) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.startGuardLocked(); err != nil {
		return nil, err
	}
	// Keep warm, once armed, stays armed: a cycle started from the warming
	// hold inherits it.
	warm := c.phase.is(domain.PhaseWarming)
	if err := c.phase.fire(ctx, eventStart); err != nil {
		return nil, fmt.Errorf("entering cooking phase: %w", err)
	}

	c.lastCycle++
	c.cycle = &domain.Cycle{ID: c.lastCycle, StartedAt: c.clock.Now(), Warm: warm}
	c.state.CookingMinutes = minutes
	c.state.RemainingMinutes = max(minutes, 0)

	id := c.cycle.ID
	c.countdown = timer.New(c.log, timer.WithTickInterval(c.tickInterval))
	c.countdown.Start(ctx, func(ctx context.Context) bool {
		return c.tick(ctx, id)
	})

	c.log.Info("cycle %d started (%d minutes, rice=%d, water=%d)", id, minutes, c.state.RiceCups, c.state.WaterCups)

	lines := []string{msgCookingStarted}
	if c.state.RemainingMinutes > 0 {
		lines = append(lines, domain.RemainingLine(c.state.RemainingMinutes))
	}
	return lines, nil
}

// StopCooking ends the running cycle and cancels its countdown.
func (c *Cooker) StopCooking(ctx context.Context) ([]string, error) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cycle == nil {
		return nil, c.reject("stop_cooking", errStopCooking, domain.ErrNotCooking)
	}
	if err := c.stopLocked(ctx); err != nil {
		return nil, err
	}
	return []string{msgCookingStopped}, nil
}

// StartSteamCooking switches the running cycle to steam.
func (c *Cooker) StartSteamCooking(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var causes []error
	if !c.state.PoweredOn {
		causes = append(causes, domain.ErrNotPowered)
	}
	if c.cycle == nil {
		causes = append(causes, domain.ErrNotCooking)
	} else if c.cycle.Steam {
		causes = append(causes, domain.ErrSteamActive)
	}
	if len(causes) > 0 {
		return nil, c.reject("start_steam", errStartSteam, causes...)
	}

	c.cycle.Steam = true
	c.log.Debug("cycle %d: steam on", c.cycle.ID)
	return []string{msgSteamStarted}, nil
}

// StopSteamCooking turns steam off again.
func (c *Cooker) StopSteamCooking(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cycle == nil || !c.cycle.Steam {
		return nil, c.reject("stop_steam", errStopSteam, domain.ErrSteamInactive)
	}

	c.cycle.Steam = false
	c.log.Debug("cycle %d: steam off", c.cycle.ID)
	return []string{msgSteamStopped}, nil
}

// KeepWarm arms the post-cook hold for the running cycle.
func (c *Cooker) KeepWarm(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var causes []error
	if !c.state.PoweredOn {
		causes = append(causes, domain.ErrNotPowered)
	}
	if c.cycle == nil {
		causes = append(causes, domain.ErrNotCooking)
	} else if c.cycle.Warm {
		causes = append(causes, domain.ErrWarmActive)
	}
	if len(causes) > 0 {
		return nil, c.reject("keep_warm", errKeepWarm, causes...)
	}

	c.cycle.Warm = true
	c.log.Debug("cycle %d: keep warm on", c.cycle.ID)
	return []string{msgKeepWarmOn}, nil
}

// RemainingTime reports how many minutes the running cycle has left.
// Allowed while cooking or warming; it never changes state.
func (c *Cooker) RemainingTime() (domain.Countdown, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cycle == nil && !c.phase.is(domain.PhaseWarming) {
		return domain.Countdown{}, c.reject("remaining_time", errRemainingTime, domain.ErrNotCooking)
	}
	return domain.Countdown{
		Minutes: c.remainingLocked(c.clock.Now()),
		Cooking: c.cycle != nil,
	}, nil
}

// SetTemperature sets the target temperature. Needs power, and t must be at
// least the minimum; each failure has its own message.
func (c *Cooker) SetTemperature(ctx context.Context, t float64) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.PoweredOn {
		return nil, c.reject("set_temperature", errTempNotPowered, domain.ErrNotPowered)
	}
	if t < MinTemperature {
		msg := fmt.Sprintf(errTempTooLowFmt, domain.FormatCelsius(MinTemperature))
		return nil, c.reject("set_temperature", msg, domain.ErrTemperatureTooLow)
	}

	c.state.Temperature = t
	return []string{fmt.Sprintf("Temperature set to %s°C.", domain.FormatCelsius(t))}, nil
}

// SetCookingTime changes the cycle length. Cooking is not required; when a
// cycle is running its remaining time is recomputed at once and the cycle
// ends if nothing is left.
func (c *Cooker) SetCookingTime(ctx context.Context, minutes int) ([]string, error) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()

	var causes []error
	if !c.state.PoweredOn {
		causes = append(causes, domain.ErrNotPowered)
	}
	if minutes <= 0 {
		causes = append(causes, domain.ErrInvalidDuration)
	}
	if len(causes) > 0 {
		return nil, c.reject("set_cooking_time", errSetCookingTime, causes...)
	}

	c.state.CookingMinutes = minutes
	lines := []string{fmt.Sprintf("Cooking time set to %d minutes.", minutes)}

	if c.cycle == nil {
		return lines, nil
	}

	more, stopped, err := c.refreshLocked(ctx)
	if err != nil {
		return nil, err
	}
	if stopped {
		c.log.Info("cycle ended by new cooking time of %d minutes", minutes)
	}
	return append(lines, more...), nil
}

// Clean succeeds only on an unplugged, idle cooker. It changes nothing.
func (c *Cooker) Clean(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var causes []error
	if c.cycle != nil {
		causes = append(causes, domain.ErrAlreadyCooking)
	}
	if c.state.PoweredOn {
		causes = append(causes, domain.ErrStillPowered)
	}
	if len(causes) > 0 {
		return nil, c.reject("clean", errClean, causes...)
	}
	return []string{msgCleaning}, nil
}

// Status returns a snapshot of the cooker. It never changes state; the
// remaining time is computed from the clock rather than read back.
func (c *Cooker) Status() domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := domain.Snapshot{
		CookerState:        c.state,
		Phase:              c.phase.current(),
		DisplayTemperature: c.state.Temperature,
		KeepWarm:           c.phase.is(domain.PhaseWarming),
	}
	snap.RemainingMinutes = c.remainingLocked(c.clock.Now())
	if snap.Temperature == 0 {
		snap.DisplayTemperature = DefaultTemperature
	}
	if c.cycle != nil {
		snap.SteamCooking = c.cycle.Steam
		snap.KeepWarm = c.cycle.Warm
		snap.CookStartedAt = c.cycle.StartedAt
	}
	return snap
}

// tick is the countdown callback for cycle id. Ticks belonging to a cycle
// that has already ended are ignored. A stop requested while a tick is
// reporting waits for the report, so "Cooking stopped." always comes last.
func (c *Cooker) tick(ctx context.Context, id uint64) bool {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	if c.cycle == nil || c.cycle.ID != id {
		c.mu.Unlock()
		return false
	}
	lines, stopped, err := c.refreshLocked(ctx)
	c.mu.Unlock()

	if err != nil {
		c.log.Error("countdown: cycle %d: %v", id, err)
		return false
	}

	for _, line := range lines {
		notify := c.notifier.Notify
		if stopped {
			notify = c.notifier.NotifyUrgent
		}
		if err := notify(ctx, line); err != nil {
			c.log.Error("countdown: notifying: %v", err)
		}
	}
	return !stopped
}

// refreshLocked recomputes the remaining time of the running cycle and ends
// the cycle when it reaches zero.
func (c *Cooker) refreshLocked(ctx context.Context) ([]string, bool, error) {
	left := c.remainingLocked(c.clock.Now())
	c.state.RemainingMinutes = left
	if left > 0 {
		return []string{domain.RemainingLine(left)}, false, nil
	}

	c.log.Info("cycle %d: time is up", c.cycle.ID)
	if err := c.stopLocked(ctx); err != nil {
		return nil, false, err
	}
	return []string{msgCookingStopped}, true, nil
}

// stopLocked ends the running cycle. A cycle with keep warm on moves to the
// warming hold instead of idle.
func (c *Cooker) stopLocked(ctx context.Context) error {
	event := eventFinish
	if c.cycle.Warm {
		event = eventHold
	}
	if err := c.phase.fire(ctx, event); err != nil {
		return fmt.Errorf("leaving cooking phase: %w", err)
	}

	if c.countdown != nil {
		c.countdown.Stop()
		c.countdown = nil
	}

	c.log.Info("cycle %d stopped (next phase: %s)", c.cycle.ID, c.phase.current())
	c.cycle = nil
	c.state.RemainingMinutes = 0
	return nil
}

func (c *Cooker) remainingLocked(now time.Time) int {
	if c.cycle == nil {
		return 0
	}
	return timer.RemainingMinutes(c.state.CookingMinutes, c.cycle.StartedAt, now)
}

func (c *Cooker) reject(op, message string, causes ...error) error {
	c.log.Debug("%s refused: %v", op, causes)
	return domain.NewPreconditionError(op, message, causes...)
}
