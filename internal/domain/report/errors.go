package report

import "errors"

var (
	ErrReportNotFound  = errors.New("report not found")
	ErrInvalidCategory = errors.New("unknown report category")
	ErrInvalidFilter   = errors.New("report filter must select employees, a department, or all")
	ErrInvalidRange    = errors.New("report range is invalid")
	ErrEmptyBatch      = errors.New("report filter matched no employees")
)
