package cooker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/ricecooker/internal/domain"
	"github.com/hammamikhairi/ricecooker/internal/logger"
)

// fakeClock is a clock the test moves by hand.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// mockNotifier collects notifications for testing.
type mockNotifier struct {
	mu       sync.Mutex
	messages []string
	urgent   []string
}

func (m *mockNotifier) Notify(_ context.Context, msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return nil
}

func (m *mockNotifier) NotifyUrgent(_ context.Context, msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.urgent = append(m.urgent, msg)
	return nil
}

func (m *mockNotifier) urgentMessages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.urgent...)
}

type fixture struct {
	cooker   *Cooker
	clock    *fakeClock
	notifier *mockNotifier
	ctx      context.Context
}

// setupCooker builds a cooker whose background countdown never fires on its
// own; tests drive time with the fake clock and call tick directly.
func setupCooker(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	clock := newFakeClock()
	notifier := &mockNotifier{}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	opts = append([]Option{WithClock(clock), WithTickInterval(time.Hour)}, opts...)
	return &fixture{
		cooker:   New(notifier, log, opts...),
		clock:    clock,
		notifier: notifier,
		ctx:      ctx,
	}
}

// ready plugs in and loads rice and water.
func (f *fixture) ready(t *testing.T) {
	t.Helper()
	_, err := f.cooker.PlugIn(f.ctx)
	require.NoError(t, err)
	_, err = f.cooker.AddRice(f.ctx, 2)
	require.NoError(t, err)
	_, err = f.cooker.AddWater(f.ctx, 3)
	require.NoError(t, err)
}

func (f *fixture) start(t *testing.T, minutes int) {
	t.Helper()
	f.ready(t)
	_, err := f.cooker.StartCooking(f.ctx, minutes)
	require.NoError(t, err)
}

// tickNow runs one countdown tick for the current cycle.
func (f *fixture) tickNow() bool {
	f.cooker.mu.Lock()
	var id uint64
	if f.cooker.cycle != nil {
		id = f.cooker.cycle.ID
	}
	f.cooker.mu.Unlock()
	return f.cooker.tick(f.ctx, id)
}

func requirePrecondition(t *testing.T, err error, causes ...error) {
	t.Helper()
	require.Error(t, err)
	var pe *domain.PreconditionError
	require.True(t, errors.As(err, &pe), "expected *PreconditionError, got %T", err)
	for _, cause := range causes {
		assert.ErrorIs(t, err, cause)
	}
}

func TestPlugInUnplug(t *testing.T) {
	f := setupCooker(t)

	lines, err := f.cooker.PlugIn(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rice cooker is plugged in."}, lines)
	assert.True(t, f.cooker.Status().PoweredOn)

	lines, err = f.cooker.Unplug(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rice cooker is unplugged."}, lines)
	assert.False(t, f.cooker.Status().PoweredOn)
}

func TestAddQuantityRejectsNonPositive(t *testing.T) {
	for _, qty := range []int{0, -1, -20} {
		f := setupCooker(t)
		_, err := f.cooker.AddRice(f.ctx, 1)
		require.NoError(t, err)
		_, err = f.cooker.AddWater(f.ctx, 1)
		require.NoError(t, err)

		_, err = f.cooker.AddRice(f.ctx, qty)
		requirePrecondition(t, err, domain.ErrInvalidQuantity)
		_, err = f.cooker.AddWater(f.ctx, qty)
		requirePrecondition(t, err, domain.ErrInvalidQuantity)

		s := f.cooker.Status()
		assert.Equal(t, 1, s.RiceCups, "qty=%d", qty)
		assert.Equal(t, 1, s.WaterCups, "qty=%d", qty)
	}
}

func TestAddQuantitiesAccumulate(t *testing.T) {
	f := setupCooker(t)

	lines, err := f.cooker.AddRice(f.ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Added 2 cups of rice to the cooker."}, lines)
	_, err = f.cooker.AddRice(f.ctx, 1)
	require.NoError(t, err)

	lines, err = f.cooker.AddWater(f.ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Added 3 cups of water to the cooker."}, lines)

	s := f.cooker.Status()
	assert.Equal(t, 3, s.RiceCups)
	assert.Equal(t, 3, s.WaterCups)
}

func TestAddRiceWhileCooking(t *testing.T) {
	f := setupCooker(t)
	f.start(t, 20)

	for _, qty := range []int{2, 0, -1} {
		_, err := f.cooker.AddRice(f.ctx, qty)
		requirePrecondition(t, err, domain.ErrAlreadyCooking)
		assert.Equal(t, 2, f.cooker.Status().RiceCups)
	}

	// Water has no cooking guard.
	_, err := f.cooker.AddWater(f.ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, f.cooker.Status().WaterCups)
}

func TestStartCookingGuard(t *testing.T) {
	tests := []struct {
		name    string
		powered bool
		rice    int
		water   int
		causes  []error
	}{
		{"ready", true, 1, 1, nil},
		{"unplugged", false, 1, 1, []error{domain.ErrNotPowered}},
		{"no rice", true, 0, 1, []error{domain.ErrNoRice}},
		{"no water", true, 1, 0, []error{domain.ErrNoWater}},
		{"nothing", false, 0, 0, []error{domain.ErrNotPowered, domain.ErrNoRice, domain.ErrNoWater}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupCooker(t)
			if tt.powered {
				f.cooker.PlugIn(f.ctx)
			}
			if tt.rice > 0 {
				f.cooker.AddRice(f.ctx, tt.rice)
			}
			if tt.water > 0 {
				f.cooker.AddWater(f.ctx, tt.water)
			}

			checkErr := f.cooker.CheckStartCooking()
			_, err := f.cooker.StartCooking(f.ctx, 10)
			if tt.causes == nil {
				require.NoError(t, checkErr)
				require.NoError(t, err)
				assert.True(t, f.cooker.Status().Cooking())
				return
			}
			requirePrecondition(t, checkErr, tt.causes...)
			requirePrecondition(t, err, tt.causes...)
			assert.False(t, f.cooker.Status().Cooking())
		})
	}
}

func TestStartCookingWhileCooking(t *testing.T) {
	f := setupCooker(t)
	f.start(t, 20)
	f.clock.Advance(5 * time.Minute)

	_, err := f.cooker.StartCooking(f.ctx, 40)
	requirePrecondition(t, err, domain.ErrAlreadyCooking)

	s := f.cooker.Status()
	assert.Equal(t, 20, s.CookingMinutes)
	assert.Equal(t, 15, s.RemainingMinutes)
}

func TestStartCookingSetsCountdown(t *testing.T) {
	f := setupCooker(t)
	f.ready(t)

	lines, err := f.cooker.StartCooking(f.ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cooking started.", "Cooking time remaining: 20 minutes."}, lines)

	s := f.cooker.Status()
	assert.Equal(t, domain.PhaseCooking, s.Phase)
	assert.Equal(t, 20, s.CookingMinutes)
	assert.Equal(t, 20, s.RemainingMinutes)
	assert.Equal(t, f.clock.Now(), s.CookStartedAt)
	assert.NotNil(t, f.cooker.countdown)
	assert.True(t, f.cooker.countdown.Running())
}

func TestStopCookingTwice(t *testing.T) {
	f := setupCooker(t)
	f.start(t, 20)
	countdown := f.cooker.countdown

	lines, err := f.cooker.StopCooking(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cooking stopped."}, lines)
	assert.False(t, countdown.Running(), "countdown still running after stop")

	s := f.cooker.Status()
	assert.Equal(t, domain.PhaseIdle, s.Phase)
	assert.Zero(t, s.RemainingMinutes)

	_, err = f.cooker.StopCooking(f.ctx)
	requirePrecondition(t, err, domain.ErrNotCooking)
}

func TestCountdownIsMonotonic(t *testing.T) {
	const duration = 20
	f := setupCooker(t)
	f.start(t, duration)

	for elapsed := 0; elapsed < duration; elapsed++ {
		s := f.cooker.Status()
		require.True(t, s.Cooking(), "stopped early at %d", elapsed)
		assert.Equal(t, duration-elapsed, s.RemainingMinutes)

		require.True(t, f.tickNow(), "tick ended the cycle at %d", elapsed)
		f.clock.Advance(time.Minute)
	}

	// E == D: the next tick ends it.
	assert.False(t, f.tickNow())
	s := f.cooker.Status()
	assert.False(t, s.Cooking())
	assert.Zero(t, s.RemainingMinutes)
}

func TestElapsedBeyondDurationAutoStops(t *testing.T) {
	f := setupCooker(t)
	f.start(t, 10)

	f.clock.Advance(25 * time.Minute)
	assert.Zero(t, f.cooker.Status().RemainingMinutes)

	assert.False(t, f.tickNow())
	s := f.cooker.Status()
	assert.Equal(t, domain.PhaseIdle, s.Phase)
	assert.Zero(t, s.RemainingMinutes)
	assert.Equal(t, []string{"Cooking stopped."}, f.notifier.urgentMessages())
}

func TestTickReportsRemaining(t *testing.T) {
	f := setupCooker(t)
	f.start(t, 10)

	f.clock.Advance(3*time.Minute + 30*time.Second)
	require.True(t, f.tickNow())

	f.notifier.mu.Lock()
	defer f.notifier.mu.Unlock()
	assert.Equal(t, []string{"Cooking time remaining: 7 minutes."}, f.notifier.messages)
	assert.Empty(t, f.notifier.urgent)
}

func TestTickIgnoresStaleCycle(t *testing.T) {
	f := setupCooker(t)
	f.start(t, 10)

	f.cooker.mu.Lock()
	oldID := f.cooker.cycle.ID
	f.cooker.mu.Unlock()

	_, err := f.cooker.StopCooking(f.ctx)
	require.NoError(t, err)
	_, err = f.cooker.StartCooking(f.ctx, 10)
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	assert.False(t, f.cooker.tick(f.ctx, oldID))
	assert.True(t, f.cooker.Status().Cooking(), "stale tick stopped the new cycle")
}

// eventLog records notifications and operator results in the order they
// happened.
type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (e *eventLog) add(s string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, s)
}

func (e *eventLog) all() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.events...)
}

// gatedNotifier holds every notification until release is closed.
type gatedNotifier struct {
	entered chan struct{}
	release chan struct{}
	log     *eventLog
}

func (g *gatedNotifier) Notify(_ context.Context, msg string) error {
	select {
	case g.entered <- struct{}{}:
	default:
	}
	<-g.release
	g.log.add(msg)
	return nil
}

func (g *gatedNotifier) NotifyUrgent(ctx context.Context, msg string) error {
	return g.Notify(ctx, msg)
}

func TestStopWaitsForTickReport(t *testing.T) {
	events := &eventLog{}
	notifier := &gatedNotifier{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
		log:     events,
	}
	clock := newFakeClock()
	ck := New(notifier, logger.New(logger.LevelOff, nil), WithClock(clock), WithTickInterval(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ck.PlugIn(ctx)
	ck.AddRice(ctx, 2)
	ck.AddWater(ctx, 3)
	_, err := ck.StartCooking(ctx, 20)
	require.NoError(t, err)

	ck.mu.Lock()
	id := ck.cycle.ID
	ck.mu.Unlock()

	clock.Advance(5 * time.Minute)
	go ck.tick(ctx, id)

	select {
	case <-notifier.entered:
	case <-time.After(time.Second):
		t.Fatal("tick never reported")
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		lines, err := ck.StopCooking(ctx)
		if err == nil {
			events.add(lines[0])
		}
	}()

	assert.Never(t, func() bool {
		select {
		case <-stopped:
			return true
		default:
			return false
		}
	}, 50*time.Millisecond, 5*time.Millisecond, "stop returned while the tick was still reporting")

	close(notifier.release)
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("stop never returned")
	}

	assert.Equal(t, []string{"Cooking time remaining: 15 minutes.", "Cooking stopped."}, events.all())
}

func TestBackgroundCountdownAutoStops(t *testing.T) {
	f := setupCooker(t, WithTickInterval(5*time.Millisecond))
	f.start(t, 20)

	// Simulate the full 20 minutes passing.
	f.clock.Advance(20 * time.Minute)

	require.Eventually(t, func() bool {
		return !f.cooker.Status().Cooking()
	}, time.Second, 5*time.Millisecond)

	s := f.cooker.Status()
	assert.Zero(t, s.RemainingMinutes)
	assert.Equal(t, domain.PhaseIdle, s.Phase)
	assert.Contains(t, f.notifier.urgentMessages(), "Cooking stopped.")
}

func TestFullCookScenario(t *testing.T) {
	f := setupCooker(t)

	_, err := f.cooker.PlugIn(f.ctx)
	require.NoError(t, err)
	_, err = f.cooker.AddRice(f.ctx, 2)
	require.NoError(t, err)
	_, err = f.cooker.AddWater(f.ctx, 3)
	require.NoError(t, err)
	_, err = f.cooker.StartCooking(f.ctx, 20)
	require.NoError(t, err)

	f.clock.Advance(20 * time.Minute)
	f.tickNow()

	s := f.cooker.Status()
	assert.Zero(t, s.RemainingMinutes)
	assert.False(t, s.Cooking())
}

func TestStartCookingWithoutRice(t *testing.T) {
	f := setupCooker(t)
	f.cooker.PlugIn(f.ctx)

	_, err := f.cooker.StartCooking(f.ctx, 10)
	requirePrecondition(t, err, domain.ErrNoRice)
	assert.False(t, f.cooker.Status().Cooking())
}

func TestSetTemperature(t *testing.T) {
	t.Run("unplugged", func(t *testing.T) {
		f := setupCooker(t)
		_, err := f.cooker.SetTemperature(f.ctx, 60)
		requirePrecondition(t, err, domain.ErrNotPowered)
		assert.Equal(t, "Error setting temperature. Please check if the cooker is plugged in.", err.Error())
		assert.Zero(t, f.cooker.Status().Temperature)
	})

	for _, temp := range []float64{54.9, 20, 0, -5} {
		for _, powered := range []bool{true, false} {
			f := setupCooker(t)
			if powered {
				f.cooker.PlugIn(f.ctx)
			}
			_, err := f.cooker.SetTemperature(f.ctx, temp)
			require.Error(t, err, "temp=%v powered=%v", temp, powered)
			assert.Zero(t, f.cooker.Status().Temperature)
			if powered {
				assert.ErrorIs(t, err, domain.ErrTemperatureTooLow)
				assert.Equal(t, "Error setting temperature. Temperature must be greater than or equal to 55°C.", err.Error())
			}
		}
	}

	t.Run("accepted", func(t *testing.T) {
		f := setupCooker(t)
		f.cooker.PlugIn(f.ctx)

		lines, err := f.cooker.SetTemperature(f.ctx, 55)
		require.NoError(t, err)
		assert.Equal(t, []string{"Temperature set to 55°C."}, lines)

		lines, err = f.cooker.SetTemperature(f.ctx, 62.5)
		require.NoError(t, err)
		assert.Equal(t, []string{"Temperature set to 62.5°C."}, lines)
		assert.Equal(t, 62.5, f.cooker.Status().Temperature)
	})
}

func TestStatusIsPure(t *testing.T) {
	f := setupCooker(t)

	s1 := f.cooker.Status()
	assert.Zero(t, s1.Temperature)
	assert.Equal(t, 74.0, s1.DisplayTemperature)
	assert.Contains(t, s1.Lines(), "  Temperature: 74°C")

	s2 := f.cooker.Status()
	assert.Equal(t, s1, s2)

	f.start(t, 20)
	f.clock.Advance(30 * time.Minute)

	// Past the end, but Status must not end the cycle itself.
	s3 := f.cooker.Status()
	assert.True(t, s3.Cooking())
	assert.Zero(t, s3.RemainingMinutes)
	assert.True(t, f.cooker.Status().Cooking())
}

func TestStatusLines(t *testing.T) {
	f := setupCooker(t)
	f.start(t, 20)
	f.cooker.StartSteamCooking(f.ctx)

	want := []string{
		"Rice Cooker Status:",
		"  Plugged In: true",
		"  Cooking: true",
		"  Steam Cooking: true",
		"  Keep Warm: false",
		"  Temperature: 74°C",
		"  Rice Quantity: 2 cups",
		"  Water Quantity: 3 cups",
	}
	assert.Equal(t, want, f.cooker.Status().Lines())
}

func TestSteamCooking(t *testing.T) {
	f := setupCooker(t)

	f.cooker.PlugIn(f.ctx)
	_, err := f.cooker.StartSteamCooking(f.ctx)
	requirePrecondition(t, err, domain.ErrNotCooking)

	_, err = f.cooker.StopSteamCooking(f.ctx)
	requirePrecondition(t, err, domain.ErrSteamInactive)

	f.start(t, 20)
	lines, err := f.cooker.StartSteamCooking(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Steam cooking started."}, lines)
	assert.True(t, f.cooker.Status().SteamCooking)

	_, err = f.cooker.StartSteamCooking(f.ctx)
	requirePrecondition(t, err, domain.ErrSteamActive)

	lines, err = f.cooker.StopSteamCooking(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Steam cooking stopped."}, lines)
	assert.False(t, f.cooker.Status().SteamCooking)
}

func TestSteamEndsWithCycle(t *testing.T) {
	f := setupCooker(t)
	f.start(t, 20)
	f.cooker.StartSteamCooking(f.ctx)

	_, err := f.cooker.StopCooking(f.ctx)
	require.NoError(t, err)

	s := f.cooker.Status()
	assert.False(t, s.SteamCooking)
	_, err = f.cooker.StopSteamCooking(f.ctx)
	requirePrecondition(t, err, domain.ErrSteamInactive)
}

func TestSteamNeedsPower(t *testing.T) {
	f := setupCooker(t)
	f.start(t, 20)
	f.cooker.Unplug(f.ctx)

	_, err := f.cooker.StartSteamCooking(f.ctx)
	requirePrecondition(t, err, domain.ErrNotPowered)
	assert.False(t, f.cooker.Status().SteamCooking)
}

func TestKeepWarmHold(t *testing.T) {
	f := setupCooker(t)
	f.cooker.PlugIn(f.ctx)

	_, err := f.cooker.KeepWarm(f.ctx)
	requirePrecondition(t, err, domain.ErrNotCooking)

	f.start(t, 20)
	lines, err := f.cooker.KeepWarm(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Keep warm function activated."}, lines)

	_, err = f.cooker.KeepWarm(f.ctx)
	requirePrecondition(t, err, domain.ErrWarmActive)

	f.clock.Advance(20 * time.Minute)
	f.tickNow()

	s := f.cooker.Status()
	assert.Equal(t, domain.PhaseWarming, s.Phase)
	assert.False(t, s.Cooking())
	assert.True(t, s.KeepWarm)

	// Remaining time is still available while warming, with nothing to show.
	cd, err := f.cooker.RemainingTime()
	require.NoError(t, err)
	assert.Zero(t, cd.Minutes)
	assert.False(t, cd.Cooking)
	assert.Empty(t, cd.Lines())

	// Keep warm cannot be re-armed outside a cycle.
	_, err = f.cooker.KeepWarm(f.ctx)
	requirePrecondition(t, err, domain.ErrNotCooking)

	// A new cycle leaves the hold but keep warm stays armed.
	_, err = f.cooker.StartCooking(f.ctx, 5)
	require.NoError(t, err)
	s = f.cooker.Status()
	assert.Equal(t, domain.PhaseCooking, s.Phase)
	assert.True(t, s.KeepWarm)
	assert.Contains(t, s.Lines(), "  Keep Warm: true")

	_, err = f.cooker.KeepWarm(f.ctx)
	requirePrecondition(t, err, domain.ErrWarmActive)

	// And the second cycle ends in the hold again.
	_, err = f.cooker.StopCooking(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseWarming, f.cooker.Status().Phase)
}

func TestKeepWarmOffCycleEndsIdle(t *testing.T) {
	f := setupCooker(t)
	f.start(t, 20)

	_, err := f.cooker.StopCooking(f.ctx)
	require.NoError(t, err)

	s := f.cooker.Status()
	assert.Equal(t, domain.PhaseIdle, s.Phase)
	assert.False(t, s.KeepWarm)

	_, err = f.cooker.StartCooking(f.ctx, 5)
	require.NoError(t, err)
	assert.False(t, f.cooker.Status().KeepWarm)
}

func TestRemainingTime(t *testing.T) {
	f := setupCooker(t)

	_, err := f.cooker.RemainingTime()
	requirePrecondition(t, err, domain.ErrNotCooking)

	f.start(t, 15)
	f.clock.Advance(4 * time.Minute)

	cd, err := f.cooker.RemainingTime()
	require.NoError(t, err)
	assert.Equal(t, 11, cd.Minutes)
	assert.True(t, cd.Cooking)
	assert.Equal(t, []string{"Cooking time remaining: 11 minutes."}, cd.Lines())
}

func TestSetCookingTime(t *testing.T) {
	t.Run("guards", func(t *testing.T) {
		f := setupCooker(t)
		_, err := f.cooker.SetCookingTime(f.ctx, 10)
		requirePrecondition(t, err, domain.ErrNotPowered)

		f.cooker.PlugIn(f.ctx)
		_, err = f.cooker.SetCookingTime(f.ctx, 0)
		requirePrecondition(t, err, domain.ErrInvalidDuration)
		assert.Zero(t, f.cooker.Status().CookingMinutes)
	})

	t.Run("idle does not need cooking", func(t *testing.T) {
		f := setupCooker(t)
		f.cooker.PlugIn(f.ctx)

		lines, err := f.cooker.SetCookingTime(f.ctx, 30)
		require.NoError(t, err)
		assert.Equal(t, []string{"Cooking time set to 30 minutes."}, lines)

		s := f.cooker.Status()
		assert.Equal(t, 30, s.CookingMinutes)
		assert.False(t, s.Cooking())
		assert.Zero(t, s.RemainingMinutes)
	})

	t.Run("extends running cycle", func(t *testing.T) {
		f := setupCooker(t)
		f.start(t, 10)
		f.clock.Advance(8 * time.Minute)

		lines, err := f.cooker.SetCookingTime(f.ctx, 25)
		require.NoError(t, err)
		assert.Equal(t, []string{"Cooking time set to 25 minutes.", "Cooking time remaining: 17 minutes."}, lines)
		assert.Equal(t, 17, f.cooker.Status().RemainingMinutes)
	})

	t.Run("shortening past elapsed stops", func(t *testing.T) {
		f := setupCooker(t)
		f.start(t, 30)
		countdown := f.cooker.countdown
		f.clock.Advance(12 * time.Minute)

		lines, err := f.cooker.SetCookingTime(f.ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"Cooking time set to 10 minutes.", "Cooking stopped."}, lines)
		assert.False(t, f.cooker.Status().Cooking())
		assert.False(t, countdown.Running())
	})
}

func TestClean(t *testing.T) {
	f := setupCooker(t)

	lines, err := f.cooker.Clean(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cleaning the rice cooker."}, lines)

	f.cooker.PlugIn(f.ctx)
	_, err = f.cooker.Clean(f.ctx)
	requirePrecondition(t, err, domain.ErrStillPowered)

	f.start(t, 10)
	f.cooker.Unplug(f.ctx)
	_, err = f.cooker.Clean(f.ctx)
	requirePrecondition(t, err, domain.ErrAlreadyCooking)
}

func TestUnplugMidCookKeepsCycle(t *testing.T) {
	f := setupCooker(t)
	f.start(t, 10)

	_, err := f.cooker.Unplug(f.ctx)
	require.NoError(t, err)

	s := f.cooker.Status()
	assert.False(t, s.PoweredOn)
	assert.True(t, s.Cooking())
	assert.True(t, f.cooker.countdown.Running())

	f.clock.Advance(10 * time.Minute)
	f.tickNow()
	assert.False(t, f.cooker.Status().Cooking())
}
