package trigger

import "errors"

var (
	// ErrNoPolicy is returned when an evaluator is created without a policy.
	ErrNoPolicy = errors.New("trigger: policy is required")

	// ErrAmbiguousPolicy is returned by Spec.Policy when more than one schedule is given.
	ErrAmbiguousPolicy = errors.New("trigger: exactly one schedule must be given")

	// ErrNoHandler is returned when Run is called with a nil handler.
	ErrNoHandler = errors.New("trigger: handler is required")

	// ErrInvalidInterval indicates the interval is not a positive number of seconds.
	ErrInvalidInterval = errors.New("trigger: interval must be a positive number of seconds")

	// ErrInvalidTime indicates the date/time pair does not parse into a calendar instant.
	ErrInvalidTime = errors.New("trigger: invalid date or time")

	// ErrInvalidCron indicates the recurring schedule expression is invalid.
	ErrInvalidCron = errors.New("trigger: invalid schedule")
)
