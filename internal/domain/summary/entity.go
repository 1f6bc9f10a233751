package summary

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/worktime"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/pkg/validator"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// DailySummary is the reconciled attendance of one employee on one day.
// (Date, EmployeeID) is the natural key.
type DailySummary struct {
	ID         string    `json:"id,omitempty"`
	Date       time.Time `json:"date"`
	EmployeeID string    `json:"employee_id"`
	IsHoliday  bool      `json:"is_holiday"`

	// Effective window after merging events with recognized attendance
	Enter *worktime.Clock `json:"enter,omitempty"`
	Leave *worktime.Clock `json:"leave,omitempty"`

	// Raw first and last badge event of the day
	RealEnter *worktime.Clock `json:"real_enter,omitempty"`
	RealLeave *worktime.Clock `json:"real_leave,omitempty"`

	IsAbsent     bool `json:"is_absent"`
	IsLate       bool `json:"is_late"`
	IsEarlyLeave bool `json:"is_early_leave"`

	// Minutes between the raw first and last event; nil when the day has no events
	WorkTimeMinutes *int `json:"work_time_minutes,omitempty"`

	AttendanceSnapshot []attendance.Snapshot `json:"attendance_snapshot"`

	CreatedBy string     `json:"created_by,omitempty"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
	DeletedAt *time.Time `json:"-"`
}

// Key returns the natural key of the row.
func (d DailySummary) Key() string {
	return d.Date.Format("2006-01-02") + "|" + d.EmployeeID
}

// UnmarshalJSON accepts the date as "yyyy-mm-dd" or as an RFC 3339 timestamp.
// The date is kept as midnight UTC of its calendar day.
func (d *DailySummary) UnmarshalJSON(data []byte) error {
	type plain DailySummary
	aux := struct {
		*plain
		Date string `json:"date"`
	}{plain: (*plain)(d)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	date, err := parseSummaryDate(aux.Date)
	if err != nil {
		return err
	}
	d.Date = date
	return nil
}

func parseSummaryDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, validator.Single("date", "date is required")
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, s); err != nil {
			return time.Time{}, validator.Single("date", fmt.Sprintf("date %q must be yyyy-mm-dd or RFC 3339", s))
		}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// IsFlagged reports whether the day needs an attendance issue.
func (d DailySummary) IsFlagged() bool {
	return d.IsLate || d.IsEarlyLeave || d.IsAbsent
}

// FlagLabels returns the labels of the active flags in a stable order.
func (d DailySummary) FlagLabels() []string {
	var labels []string
	if d.IsLate {
		labels = append(labels, FlagLate)
	}
	if d.IsAbsent {
		labels = append(labels, FlagAbsent)
	}
	if d.IsEarlyLeave {
		labels = append(labels, FlagEarlyLeave)
	}
	return labels
}

const (
	FlagLate       = "late"
	FlagAbsent     = "absent"
	FlagEarlyLeave = "early-leave"
)

// MonthlySummary rolls up one employee's month. (EmployeeID, YearMonth) is the natural key.
// Note is the only human-maintained field and survives recomputation.
type MonthlySummary struct {
	ID                  string           `json:"id,omitempty"`
	EmployeeID          string           `json:"employee_id"`
	YearMonth           YearMonth        `json:"yyyymm"`
	WeeklyWorkTimes     []WeeklyWorkTime `json:"weekly_work_times"`
	TotalWorkTime       int              `json:"total_work_time"`
	TotalWorkableTime   int              `json:"total_workable_time"`
	AvgWorkTime         decimal.Decimal  `json:"avg_work_time"`
	WorkDays            int              `json:"work_days"`
	AttendanceTypeTally map[string]int   `json:"attendance_type_tally"`
	LateDetails         []DayDetail      `json:"late_details"`
	AbsenceDetails      []DayDetail      `json:"absence_details"`
	EarlyLeaveDetails   []DayDetail      `json:"early_leave_details"`
	DailyEventSummary   []DayDetail      `json:"daily_event_summary"`
	Note                *string          `json:"note"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// WeeklyWorkTime is the work time of one ISO week, restricted to days of the month.
type WeeklyWorkTime struct {
	ISOYear         int `json:"iso_year"`
	Week            int `json:"week"`
	WorkTimeMinutes int `json:"work_time_minutes"`
}

// DayDetail is the read-model entry of one day inside a monthly summary.
type DayDetail struct {
	Date            string                `json:"date"`
	IsHoliday       bool                  `json:"is_holiday"`
	Enter           *worktime.Clock       `json:"enter,omitempty"`
	Leave           *worktime.Clock       `json:"leave,omitempty"`
	RealEnter       *worktime.Clock       `json:"real_enter,omitempty"`
	RealLeave       *worktime.Clock       `json:"real_leave,omitempty"`
	IsAbsent        bool                  `json:"is_absent"`
	IsLate          bool                  `json:"is_late"`
	IsEarlyLeave    bool                  `json:"is_early_leave"`
	WorkTimeMinutes *int                  `json:"work_time_minutes,omitempty"`
	Attendances     []attendance.Snapshot `json:"attendances"`
}

// YearMonth identifies a calendar month, formatted as "yyyymm".
type YearMonth struct {
	Year  int
	Month time.Month
}

func NewYearMonth(year, month int) (YearMonth, error) {
	if month < 1 || month > 12 || year < 1900 {
		return YearMonth{}, validator.Single("month", fmt.Sprintf("invalid period %04d-%02d", year, month))
	}
	return YearMonth{Year: year, Month: time.Month(month)}, nil
}

func ParseYearMonth(s string) (YearMonth, error) {
	year, month, ok := validator.IsValidYearMonth(s)
	if !ok {
		return YearMonth{}, validator.Single("yyyymm", "yyyymm must be a valid year and month, e.g. 202403")
	}
	return YearMonth{Year: year, Month: time.Month(month)}, nil
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d%02d", ym.Year, int(ym.Month))
}

// Start is the first day of the month at 00:00 UTC.
func (ym YearMonth) Start() time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End is the last day of the month at 00:00 UTC.
func (ym YearMonth) End() time.Time {
	return ym.Start().AddDate(0, 1, -1)
}

// Days lists every calendar day of the month.
func (ym YearMonth) Days() []time.Time {
	var days []time.Time
	for d := ym.Start(); !d.After(ym.End()); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Contains reports whether date falls inside the month.
func (ym YearMonth) Contains(date time.Time) bool {
	return date.Year() == ym.Year && date.Month() == ym.Month
}

func (ym YearMonth) MarshalJSON() ([]byte, error) {
	return []byte(`"` + ym.String() + `"`), nil
}

func (ym *YearMonth) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return validator.Single("yyyymm", "yyyymm must be a string")
	}
	parsed, err := ParseYearMonth(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*ym = parsed
	return nil
}
