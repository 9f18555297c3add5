package leave

import "errors"

var (
	ErrRequestNotFound    = errors.New("leave request not found")
	ErrOverlappingLeave   = errors.New("leave request overlaps an existing request")
	ErrAlreadyProcessed   = errors.New("leave request already processed")
	ErrNotApproved        = errors.New("leave request is not approved")
	ErrCancelWindowClosed = errors.New("cancellation window for this leave has closed")
	ErrNotRequestOwner    = errors.New("leave request belongs to another employee")
	ErrInvalidType        = errors.New("unknown leave type")
	ErrInvalidDates       = errors.New("leave end date must be after start date")
)
