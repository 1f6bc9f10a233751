package employee

import (
	"time"
)

type Employee struct {
	ID               string
	EmployeeCode     string
	FullName         string
	HireDate         time.Time
	ResignationDate  *time.Time
	EmploymentStatus EmploymentStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

// HasLeft reports whether the employee is separated from the company.
func (e Employee) HasLeft() bool {
	return e.EmploymentStatus == EmploymentStatusTerminated || e.EmploymentStatus == EmploymentStatusResigned
}

// IsOutsideEmployment reports whether date falls before hire or after separation.
// Dates are compared at day granularity.
func (e Employee) IsOutsideEmployment(date time.Time) bool {
	day := truncateDay(date)
	if day.Before(truncateDay(e.HireDate)) {
		return true
	}
	if e.HasLeft() && e.ResignationDate != nil && day.After(truncateDay(*e.ResignationDate)) {
		return true
	}
	return false
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
