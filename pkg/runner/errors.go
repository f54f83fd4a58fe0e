package runner

import "errors"

// ErrTooManyRejects is returned when the local-rejection budget is exhausted
// while generating a value. It surfaces as a generation failure to the caller;
// individual rejections below the budget are retried silently.
var ErrTooManyRejects = errors.New("too many local rejects")

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid runner config")
