package errorvalues

import (
	"errors"
	"fmt"
)

// Categories. Callers match on these with errors.Is.
var (
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidInput   = errors.New("invalid input")
	ErrConflict       = errors.New("conflict")
	ErrStorage        = errors.New("storage error")
	ErrConditionParse = errors.New("badge condition parse error")
)

var (
	ErrUserNotFound         = fmt.Errorf("user doesn't exist: %w", ErrNotFound)
	ErrTemplateNotFound     = fmt.Errorf("mission template doesn't exist: %w", ErrNotFound)
	ErrSubscriptionNotFound = fmt.Errorf("subscription doesn't exist: %w", ErrNotFound)
	ErrWrongOwner           = fmt.Errorf("subscription has different owner: %w", ErrForbidden)
	ErrSubscriptionExists   = fmt.Errorf("user already has this mission: %w", ErrConflict)
	ErrUserExists           = fmt.Errorf("such user already exists: %w", ErrConflict)
	ErrInvalidSchedule      = fmt.Errorf("invalid recurrence schedule: %w", ErrInvalidInput)
)
