package worktime

import (
	"github.com/cmlabs-hris/hris-attendance-engine/internal/pkg/validator"
)

// Policy holds the work-time boundaries and deductions used by the engines.
// It is read-only for the duration of a run.
type Policy struct {
	NormalStart Clock
	NormalEnd   Clock

	// Minutes counted as workable for every Monday-Friday of a month
	WorkableMinutesPerDay int

	LunchStart            Clock
	LunchEnd              Clock
	LunchDeductionMinutes int

	// Applied on top of the lunch deduction once a day's base work time reaches the threshold
	DinnerThresholdMinutes int
	DinnerDeductionMinutes int
}

const (
	DefaultNormalStart = "09:00:00"
	DefaultNormalEnd   = "18:00:00"
	DefaultLunchStart  = "12:00:00"
	DefaultLunchEnd    = "13:00:00"

	DefaultWorkableMinutesPerDay  = 480
	DefaultLunchDeductionMinutes  = 60
	DefaultDinnerThresholdMinutes = 780
	DefaultDinnerDeductionMinutes = 30
)

func DefaultPolicy() Policy {
	return Policy{
		NormalStart:            MustClock(DefaultNormalStart),
		NormalEnd:              MustClock(DefaultNormalEnd),
		WorkableMinutesPerDay:  DefaultWorkableMinutesPerDay,
		LunchStart:             MustClock(DefaultLunchStart),
		LunchEnd:               MustClock(DefaultLunchEnd),
		LunchDeductionMinutes:  DefaultLunchDeductionMinutes,
		DinnerThresholdMinutes: DefaultDinnerThresholdMinutes,
		DinnerDeductionMinutes: DefaultDinnerDeductionMinutes,
	}
}

func (p Policy) Validate() error {
	var errs validator.ValidationErrors

	if !p.NormalStart.Before(p.NormalEnd) {
		errs = append(errs, validator.ValidationError{
			Field:   "normal_start",
			Message: "normal start must be before normal end",
		})
	}
	if !p.LunchStart.Before(p.LunchEnd) {
		errs = append(errs, validator.ValidationError{
			Field:   "lunch_start",
			Message: "lunch start must be before lunch end",
		})
	}
	if p.WorkableMinutesPerDay <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "workable_minutes_per_day",
			Message: "workable minutes per day must be positive",
		})
	}
	if p.LunchDeductionMinutes < 0 || p.DinnerDeductionMinutes < 0 || p.DinnerThresholdMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "deductions",
			Message: "deductions and thresholds cannot be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
