package summary

import "errors"

var (
	ErrMonthlySummaryNotFound = errors.New("monthly summary not found")
	ErrDuplicateNaturalKey    = errors.New("duplicate daily summary for the same date and employee")
)
