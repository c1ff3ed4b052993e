package contract

import "errors"

var (
	ErrUnknownTask       = errors.New("unknown task")
	ErrNothingRemembered = errors.New("nothing remembered")
	ErrMissingAbility    = errors.New("missing ability")
	ErrNotInteraction    = errors.New("resolved activity is not an interaction")
	ErrInvalidTask       = errors.New("invalid task definition")
	ErrTooManyValues     = errors.New("too many values for task")
	ErrDuplicateHandler  = errors.New("duplicate task handler")
	ErrUnexpectedAnswer  = errors.New("unexpected answer type")
)
