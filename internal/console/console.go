package console

import (
	"context"

	"github.com/hammamikhairi/ricecooker/internal/domain"
	"github.com/hammamikhairi/ricecooker/internal/logger"
)

// Appliance is the cooker as seen from the console.
type Appliance interface {
	PlugIn(ctx context.Context) ([]string, error)
	Unplug(ctx context.Context) ([]string, error)
	AddRice(ctx context.Context, cups int) ([]string, error)
	AddWater(ctx context.Context, cups int) ([]string, error)
	CheckStartCooking() error
	StartCooking(ctx context.Context, minutes int) ([]string, error)
	StopCooking(ctx context.Context) ([]string, error)
	StartSteamCooking(ctx context.Context) ([]string, error)
	StopSteamCooking(ctx context.Context) ([]string, error)
	KeepWarm(ctx context.Context) ([]string, error)
	RemainingTime() (domain.Countdown, error)
	SetTemperature(ctx context.Context, t float64) ([]string, error)
	SetCookingTime(ctx context.Context, minutes int) ([]string, error)
	Clean(ctx context.Context) ([]string, error)
	Status() domain.Snapshot
}

// Printer shows console output. Chat is normal output, Urgent is for errors
// and alerts, Hint is for menus and prompts.
type Printer interface {
	PrintChat(text string)
	PrintUrgent(text string)
	PrintHint(text string)
}

// Console runs the menu dialogue. Input arrives one line at a time through
// Handle; a selected action that needs a number waits for the next line.
// Handle is not safe for concurrent use.
type Console struct {
	appliance Appliance
	out       Printer
	log       *logger.Logger
	pending   *MenuEntry // action waiting for its argument
}

// New creates a console driving appliance and printing to out.
func New(appliance Appliance, out Printer, log *logger.Logger) *Console {
	return &Console{
		appliance: appliance,
		out:       out,
		log:       log,
	}
}

// Start prints the welcome line and the first menu.
func (c *Console) Start() {
	c.out.PrintChat(LineWelcome)
	c.showMenu()
}

// Awaiting returns the action waiting for an argument, if any.
func (c *Console) Awaiting() (domain.Action, bool) {
	if c.pending == nil {
		return domain.ActionUnknown, false
	}
	return c.pending.Action, true
}

// Handle processes one line of operator input. It returns true once the
// operator has chosen Exit.
func (c *Console) Handle(ctx context.Context, input string) bool {
	if c.pending != nil {
		c.handleArgument(ctx, input)
		return false
	}

	action, err := ParseSelection(input)
	if err != nil {
		c.log.Debug("console: %v", err)
		c.out.PrintChat(LineInvalidOption)
		c.showMenu()
		return false
	}

	c.log.Debug("console: selected %s", action)

	if action == domain.ActionExit {
		c.out.PrintChat(LineGoodbye)
		return true
	}

	entry, _ := Entry(action)
	if entry.Arg == ArgNone {
		c.run(ctx, action, 0, 0)
		c.showMenu()
		return false
	}

	// Starting is checked before asking how long, so a cooker that cannot
	// start never prompts for a time.
	if action == domain.ActionStartCooking {
		if err := c.appliance.CheckStartCooking(); err != nil {
			c.printError(err)
			c.showMenu()
			return false
		}
	}

	c.pending = &entry
	c.out.PrintHint(entry.Prompt)
	return false
}

// handleArgument parses the number the pending action asked for. A bad
// number re-prompts; the action stays pending.
func (c *Console) handleArgument(ctx context.Context, input string) {
	entry := *c.pending

	var (
		n   int
		f   float64
		err error
	)
	switch entry.Arg {
	case ArgInt:
		n, err = ParseInt(input)
	case ArgFloat:
		f, err = ParseFloat(input)
	}
	if err != nil {
		c.log.Debug("console: %s: %v", entry.Action, err)
		if entry.Arg == ArgFloat {
			c.out.PrintHint(LineInvalidFloat)
		} else {
			c.out.PrintHint(LineInvalidInt)
		}
		c.out.PrintHint(entry.Prompt)
		return
	}

	c.pending = nil
	c.run(ctx, entry.Action, n, f)
	c.showMenu()
}

// run performs one action on the appliance and prints what it reports.
func (c *Console) run(ctx context.Context, action domain.Action, n int, f float64) {
	var (
		lines []string
		err   error
	)

	switch action {
	case domain.ActionPlugIn:
		lines, err = c.appliance.PlugIn(ctx)
	case domain.ActionUnplug:
		lines, err = c.appliance.Unplug(ctx)
	case domain.ActionAddRice:
		lines, err = c.appliance.AddRice(ctx, n)
	case domain.ActionAddWater:
		lines, err = c.appliance.AddWater(ctx, n)
	case domain.ActionStartCooking:
		lines, err = c.appliance.StartCooking(ctx, n)
	case domain.ActionStopCooking:
		lines, err = c.appliance.StopCooking(ctx)
	case domain.ActionStartSteam:
		lines, err = c.appliance.StartSteamCooking(ctx)
	case domain.ActionStopSteam:
		lines, err = c.appliance.StopSteamCooking(ctx)
	case domain.ActionKeepWarm:
		lines, err = c.appliance.KeepWarm(ctx)
	case domain.ActionRemainingTime:
		var cd domain.Countdown
		cd, err = c.appliance.RemainingTime()
		lines = cd.Lines()
	case domain.ActionSetTemperature:
		lines, err = c.appliance.SetTemperature(ctx, f)
	case domain.ActionSetCookingTime:
		lines, err = c.appliance.SetCookingTime(ctx, n)
	case domain.ActionClean:
		lines, err = c.appliance.Clean(ctx)
	case domain.ActionStatus:
		lines = c.appliance.Status().Lines()
	default:
		c.log.Warn("console: no handler for %s", action)
		return
	}

	if err != nil {
		c.printError(err)
		return
	}
	for _, line := range lines {
		c.out.PrintChat(line)
	}
}

func (c *Console) printError(err error) {
	c.out.PrintUrgent(ErrorPrefix + err.Error())
}

func (c *Console) showMenu() {
	for _, line := range MenuLines() {
		c.out.PrintHint(line)
	}
	c.out.PrintHint(LineSelectPrompt)
}
