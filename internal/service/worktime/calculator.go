package worktime

import (
	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/worktime"
)

// Calculator evaluates work-time rules against a fixed policy.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	policy worktime.Policy
}

func NewCalculator(policy worktime.Policy) *Calculator {
	return &Calculator{policy: policy}
}

func (c *Calculator) Policy() worktime.Policy {
	return c.policy
}

func (c *Calculator) IsRecognizedWorkTime(t attendance.AttendanceType) bool {
	return t.RecognizedWorkTime
}

// IsMorningRecognized reports whether the type covers the start of the normal workday.
func (c *Calculator) IsMorningRecognized(t attendance.AttendanceType) bool {
	if !t.RecognizedWorkTime {
		return false
	}
	return t.StartWorkTime == nil || !t.StartWorkTime.After(c.policy.NormalStart)
}

// IsAfternoonRecognized reports whether the type covers the end of the normal workday.
func (c *Calculator) IsAfternoonRecognized(t attendance.AttendanceType) bool {
	if !t.RecognizedWorkTime {
		return false
	}
	return t.EndWorkTime == nil || !t.EndWorkTime.Before(c.policy.NormalEnd)
}

func (c *Calculator) IsFullDayRecognized(t attendance.AttendanceType) bool {
	return c.IsMorningRecognized(t) && c.IsAfternoonRecognized(t)
}

func (c *Calculator) HasMorningRecognized(records []attendance.UsedAttendance) bool {
	return c.any(records, c.IsMorningRecognized)
}

func (c *Calculator) HasAfternoonRecognized(records []attendance.UsedAttendance) bool {
	return c.any(records, c.IsAfternoonRecognized)
}

func (c *Calculator) HasFullDayRecognized(records []attendance.UsedAttendance) bool {
	return c.any(records, c.IsFullDayRecognized)
}

// RecognizedOnly keeps the records whose type counts as worked time.
func (c *Calculator) RecognizedOnly(records []attendance.UsedAttendance) []attendance.UsedAttendance {
	var out []attendance.UsedAttendance
	for _, r := range records {
		if r.Type != nil && c.IsRecognizedWorkTime(*r.Type) {
			out = append(out, r)
		}
	}
	return out
}

// IsLate compares the first event of the day with the normal start.
func (c *Calculator) IsLate(enter worktime.Clock, hasMorningRecognized, isHoliday, outOfEmployment bool) bool {
	if isHoliday || outOfEmployment || hasMorningRecognized {
		return false
	}
	return enter.After(c.policy.NormalStart)
}

// IsEarlyLeave compares the last event of the day with the normal end.
func (c *Calculator) IsEarlyLeave(leave worktime.Clock, hasAfternoonRecognized, isHoliday, outOfEmployment bool) bool {
	if isHoliday || outOfEmployment || hasAfternoonRecognized {
		return false
	}
	return leave.Before(c.policy.NormalEnd)
}

// DailyWorkTime applies the lunch and dinner deductions to a day that has both
// a raw enter and leave. base is the recorded work time plus attendance work time.
func (c *Calculator) DailyWorkTime(base int, realEnter, realLeave worktime.Clock) int {
	worked := base
	if !realEnter.After(c.policy.LunchStart) && !realLeave.Before(c.policy.LunchEnd) {
		worked -= c.policy.LunchDeductionMinutes
	}
	if base >= c.policy.DinnerThresholdMinutes {
		worked -= c.policy.DinnerDeductionMinutes
	}
	return worked
}

func (c *Calculator) any(records []attendance.UsedAttendance, pred func(attendance.AttendanceType) bool) bool {
	for _, r := range records {
		if r.Type != nil && pred(*r.Type) {
			return true
		}
	}
	return false
}
