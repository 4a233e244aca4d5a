// Package console is the operator side of the cooker: it renders the menu,
// turns typed lines into actions and arguments, and prints the results.
package console

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hammamikhairi/ricecooker/internal/domain"
)

// ErrInvalidSelection is returned for menu input outside 1-15 or not a number.
var ErrInvalidSelection = errors.New("invalid menu selection")

// ErrInvalidNumber is returned when an argument prompt gets something that
// does not parse as the number it asked for.
var ErrInvalidNumber = errors.New("invalid number")

// ArgKind says what, if anything, an action asks for after it is picked.
type ArgKind int

const (
	ArgNone ArgKind = iota
	ArgInt
	ArgFloat
)

// MenuEntry describes one numbered menu line.
type MenuEntry struct {
	Action domain.Action
	Label  string
	Arg    ArgKind
	Prompt string
}

// Menu lists the actions in menu order.
var Menu = []MenuEntry{
	{domain.ActionPlugIn, "Plug In", ArgNone, ""},
	{domain.ActionUnplug, "Unplug", ArgNone, ""},
	{domain.ActionAddRice, "Add Rice", ArgInt, "Enter the quantity of rice (in cups): "},
	{domain.ActionAddWater, "Add Water", ArgInt, "Enter the quantity of water (in cups): "},
	{domain.ActionStartCooking, "Start Cooking", ArgInt, "Enter the cooking time (in minutes): "},
	{domain.ActionStopCooking, "Stop Cooking", ArgNone, ""},
	{domain.ActionStartSteam, "Start Steam Cooking", ArgNone, ""},
	{domain.ActionStopSteam, "Stop Steam Cooking", ArgNone, ""},
	{domain.ActionKeepWarm, "Keep Warm", ArgNone, ""},
	{domain.ActionRemainingTime, "Display Remaining Time", ArgNone, ""},
	{domain.ActionSetTemperature, "Set Temperature", ArgFloat, "Enter the temperature (in Celsius): "},
	{domain.ActionSetCookingTime, "Set Cooking Time", ArgInt, "Enter the cooking time (in minutes): "},
	{domain.ActionClean, "Clean", ArgNone, ""},
	{domain.ActionStatus, "Display Status", ArgNone, ""},
	{domain.ActionExit, "Exit", ArgNone, ""},
}

// Fixed console lines.
const (
	LineWelcome       = "Welcome to the Rice Cooker Management Program!"
	LineGoodbye       = "Goodbye!"
	LineSelectPrompt  = "Enter the option number: "
	LineInvalidOption = "Invalid option. Please choose a number between 1 and 15."
	LineInvalidInt    = "Please enter a whole number."
	LineInvalidFloat  = "Please enter a number."
	ErrorPrefix       = "Error: "
)

// MenuLines renders the menu.
func MenuLines() []string {
	lines := make([]string, 0, len(Menu)+1)
	lines = append(lines, "Menu:")
	for _, e := range Menu {
		lines = append(lines, fmt.Sprintf("%d. %s", int(e.Action), e.Label))
	}
	return lines
}

// Entry returns the menu entry for a.
func Entry(a domain.Action) (MenuEntry, bool) {
	if !a.Valid() {
		return MenuEntry{}, false
	}
	return Menu[int(a)-1], true
}

// ParseSelection turns a typed menu number into an action.
func ParseSelection(input string) (domain.Action, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return domain.ActionUnknown, fmt.Errorf("%w: %q", ErrInvalidSelection, input)
	}
	a := domain.Action(n)
	if !a.Valid() {
		return domain.ActionUnknown, fmt.Errorf("%w: %d", ErrInvalidSelection, n)
	}
	return a, nil
}

// ParseInt reads a whole-number argument. "2.5" is rejected.
func ParseInt(input string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, input)
	}
	return n, nil
}

// ParseFloat reads a decimal argument.
func ParseFloat(input string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, input)
	}
	return f, nil
}
