package worktime

import (
	"testing"

	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/worktime"
	"github.com/stretchr/testify/assert"
)

func clockPtr(s string) *worktime.Clock {
	c := worktime.MustClock(s)
	return &c
}

var (
	fullDayLeave = attendance.AttendanceType{ID: "annual", Title: "Annual leave", WorkTimeMinutes: 480, RecognizedWorkTime: true}
	morningHalf  = attendance.AttendanceType{ID: "am-half", Title: "Morning half-day", WorkTimeMinutes: 240, RecognizedWorkTime: true, StartWorkTime: clockPtr("09:00"), EndWorkTime: clockPtr("13:00")}
	afternoonOff = attendance.AttendanceType{ID: "pm-half", Title: "Afternoon half-day", WorkTimeMinutes: 240, RecognizedWorkTime: true, StartWorkTime: clockPtr("14:00"), EndWorkTime: clockPtr("18:00")}
	unpaid       = attendance.AttendanceType{ID: "unpaid", Title: "Unpaid leave", RecognizedWorkTime: false}
)

func TestCalculator_Recognition(t *testing.T) {
	calc := NewCalculator(worktime.DefaultPolicy())

	cases := []struct {
		name                        string
		typ                         attendance.AttendanceType
		morning, afternoon, fullDay bool
	}{
		{"no window is full day", fullDayLeave, true, true, true},
		{"morning half", morningHalf, true, false, false},
		{"afternoon half", afternoonOff, false, true, false},
		{"not recognized", unpaid, false, false, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.morning, calc.IsMorningRecognized(c.typ))
			assert.Equal(t, c.afternoon, calc.IsAfternoonRecognized(c.typ))
			assert.Equal(t, c.fullDay, calc.IsFullDayRecognized(c.typ))
		})
	}
}

func TestCalculator_RecordSets(t *testing.T) {
	calc := NewCalculator(worktime.DefaultPolicy())
	records := []attendance.UsedAttendance{
		{AttendanceTypeID: "am-half", Type: &morningHalf},
		{AttendanceTypeID: "unpaid", Type: &unpaid},
	}

	assert.True(t, calc.HasMorningRecognized(records))
	assert.False(t, calc.HasAfternoonRecognized(records))
	assert.False(t, calc.HasFullDayRecognized(records))
	assert.Len(t, calc.RecognizedOnly(records), 1)
	assert.False(t, calc.HasMorningRecognized(nil))
}

func TestCalculator_IsLate(t *testing.T) {
	calc := NewCalculator(worktime.DefaultPolicy())

	assert.True(t, calc.IsLate(worktime.MustClock("09:05:00"), false, false, false))
	assert.False(t, calc.IsLate(worktime.MustClock("09:00:00"), false, false, false))
	assert.False(t, calc.IsLate(worktime.MustClock("10:00:00"), true, false, false), "morning recognized")
	assert.False(t, calc.IsLate(worktime.MustClock("10:00:00"), false, true, false), "holiday")
	assert.False(t, calc.IsLate(worktime.MustClock("10:00:00"), false, false, true), "outside employment")
}

func TestCalculator_IsEarlyLeave(t *testing.T) {
	calc := NewCalculator(worktime.DefaultPolicy())

	assert.True(t, calc.IsEarlyLeave(worktime.MustClock("17:59:59"), false, false, false))
	assert.False(t, calc.IsEarlyLeave(worktime.MustClock("18:00:00"), false, false, false))
	assert.False(t, calc.IsEarlyLeave(worktime.MustClock("15:00:00"), true, false, false), "afternoon recognized")
	assert.False(t, calc.IsEarlyLeave(worktime.MustClock("15:00:00"), false, true, false), "holiday")
	assert.False(t, calc.IsEarlyLeave(worktime.MustClock("15:00:00"), false, false, true), "outside employment")
}

func TestCalculator_ConfiguredBoundaries(t *testing.T) {
	policy := worktime.DefaultPolicy()
	policy.NormalStart = worktime.MustClock("08:00")
	calc := NewCalculator(policy)

	assert.True(t, calc.IsLate(worktime.MustClock("08:30"), false, false, false))
	assert.False(t, calc.IsMorningRecognized(morningHalf), "09:00 start no longer covers an 08:00 day")
}

func TestCalculator_DailyWorkTime(t *testing.T) {
	calc := NewCalculator(worktime.DefaultPolicy())

	// Lunch only: 660 < 780
	assert.Equal(t, 600, calc.DailyWorkTime(660, worktime.MustClock("08:00:00"), worktime.MustClock("19:00:00")))

	// Lunch and dinner
	assert.Equal(t, 710, calc.DailyWorkTime(800, worktime.MustClock("08:00:00"), worktime.MustClock("22:00:00")))

	// Dinner without lunch window
	assert.Equal(t, 770, calc.DailyWorkTime(800, worktime.MustClock("13:30:00"), worktime.MustClock("23:00:00")))

	// Neither
	assert.Equal(t, 180, calc.DailyWorkTime(180, worktime.MustClock("14:00:00"), worktime.MustClock("17:00:00")))

	// Boundaries are inclusive
	assert.Equal(t, 0, calc.DailyWorkTime(60, worktime.MustClock("12:00:00"), worktime.MustClock("13:00:00")))
}
