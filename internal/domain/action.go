package domain

// Action is one entry of the operator menu. Values match the menu numbers.
type Action int

const (
	ActionUnknown Action = iota
	ActionPlugIn
	ActionUnplug
	ActionAddRice
	ActionAddWater
	ActionStartCooking
	ActionStopCooking
	ActionStartSteam
	ActionStopSteam
	ActionKeepWarm
	ActionRemainingTime
	ActionSetTemperature
	ActionSetCookingTime
	ActionClean
	ActionStatus
	ActionExit
)

// FirstAction and LastAction bound the valid menu numbers.
const (
	FirstAction = ActionPlugIn
	LastAction  = ActionExit
)

// String returns a human-readable action name.
func (a Action) String() string {
	switch a {
	case ActionPlugIn:
		return "plug_in"
	case ActionUnplug:
		return "unplug"
	case ActionAddRice:
		return "add_rice"
	case ActionAddWater:
		return "add_water"
	case ActionStartCooking:
		return "start_cooking"
	case ActionStopCooking:
		return "stop_cooking"
	case ActionStartSteam:
		return "start_steam"
	case ActionStopSteam:
		return "stop_steam"
	case ActionKeepWarm:
		return "keep_warm"
	case ActionRemainingTime:
		return "remaining_time"
	case ActionSetTemperature:
		return "set_temperature"
	case ActionSetCookingTime:
		return "set_cooking_time"
	case ActionClean:
		return "clean"
	case ActionStatus:
		return "status"
	case ActionExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Valid reports whether a is one of the menu entries.
func (a Action) Valid() bool {
	return a >= FirstAction && a <= LastAction
}
