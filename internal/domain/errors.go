package domain

import "errors"

// Sentinel causes behind a rejected operation. A PreconditionError lists
// every one that applied, so callers can match them with errors.Is.
var (
	ErrNotPowered        = errors.New("cooker is not plugged in")
	ErrStillPowered      = errors.New("cooker is still plugged in")
	ErrAlreadyCooking    = errors.New("cooking is already in progress")
	ErrNotCooking        = errors.New("cooking is not in progress")
	ErrNoRice            = errors.New("no rice in the cooker")
	ErrNoWater           = errors.New("no water in the cooker")
	ErrInvalidQuantity   = errors.New("quantity must be greater than 0")
	ErrInvalidDuration   = errors.New("time must be greater than 0")
	ErrTemperatureTooLow = errors.New("temperature below minimum")
	ErrSteamActive       = errors.New("steam cooking is already in progress")
	ErrSteamInactive     = errors.New("steam cooking is not in progress")
	ErrWarmActive        = errors.New("keep warm is already activated")
)

// PreconditionError reports an operation refused by its guard. The state is
// left untouched. Error returns the operator-facing message.
type PreconditionError struct {
	Op      string
	Message string
	Causes  []error
}

// NewPreconditionError builds a PreconditionError for op.
func NewPreconditionError(op, message string, causes ...error) *PreconditionError {
	return &PreconditionError{Op: op, Message: message, Causes: causes}
}

func (e *PreconditionError) Error() string {
	return e.Message
}

// Unwrap exposes the sentinel causes to errors.Is.
func (e *PreconditionError) Unwrap() []error {
	return e.Causes
}
