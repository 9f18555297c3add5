package attendance

import "errors"

var (
	ErrOpenSessionExists = errors.New("an open session already exists for this employee")
	ErrNoOpenSession     = errors.New("no open session exists for this employee")
	ErrInvalidTimestamp  = errors.New("invalid clock timestamp")
	ErrInvalidRange      = errors.New("invalid date range")
)
