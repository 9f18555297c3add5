package compensation

import "errors"

var (
	ErrNoPlanEffective = errors.New("no compensation plan effective at this date")
	ErrInvalidPlan     = errors.New("invalid compensation plan")
)
