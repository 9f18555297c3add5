package payroll

import "errors"

var (
	ErrStatementNotFound = errors.New("salary statement not found")
	ErrNoPlanForPeriod   = errors.New("no compensation plan resolvable for any day in the period")
	ErrInvalidMonth      = errors.New("invalid month, expected YYYY-MM")
	ErrUnknownEmployee   = errors.New("unknown employee")
)
