package monthlysummary

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/summary"
	worktimeService "github.com/cmlabs-hris/hris-attendance-engine/internal/service/worktime"
	"github.com/shopspring/decimal"
)

// Aggregator rolls one employee's daily summaries up into a monthly summary.
// It performs no I/O.
type Aggregator struct {
	calculator *worktimeService.Calculator
}

func NewAggregator(calculator *worktimeService.Calculator) *Aggregator {
	return &Aggregator{calculator: calculator}
}

type weekKey struct {
	year, week int
}

// Aggregate builds the monthly summary. dailies must belong to employeeID and ym;
// records must already be joined to catalog.
func (a *Aggregator) Aggregate(employeeID string, ym summary.YearMonth, dailies []summary.DailySummary, records []attendance.UsedAttendance, catalog attendance.Catalog) summary.MonthlySummary {
	dailyByDate := make(map[string]summary.DailySummary, len(dailies))
	for _, d := range dailies {
		dailyByDate[dateKey(d.Date)] = d
	}
	recordsByDate := make(map[string][]attendance.UsedAttendance)
	for _, r := range records {
		key := dateKey(r.Date)
		recordsByDate[key] = append(recordsByDate[key], r)
	}

	out := summary.MonthlySummary{
		EmployeeID:          employeeID,
		YearMonth:           ym,
		WeeklyWorkTimes:     []summary.WeeklyWorkTime{},
		AttendanceTypeTally: newTally(catalog),
		LateDetails:         []summary.DayDetail{},
		AbsenceDetails:      []summary.DayDetail{},
		EarlyLeaveDetails:   []summary.DayDetail{},
		DailyEventSummary:   []summary.DayDetail{},
	}

	weekly := make(map[weekKey]int)
	weekdays := 0

	for _, date := range ym.Days() {
		key := dateKey(date)
		daily, hasDaily := dailyByDate[key]
		dayRecords := recordsByDate[key]

		if wd := date.Weekday(); wd != time.Saturday && wd != time.Sunday {
			weekdays++
		}

		year, week := date.ISOWeek()
		weekly[weekKey{year, week}] += a.dailyWorkTime(daily, dayRecords)

		if (hasDaily && daily.WorkTimeMinutes != nil) || len(a.calculator.RecognizedOnly(dayRecords)) > 0 {
			out.WorkDays++
		}

		for _, r := range dayRecords {
			if r.Type != nil {
				out.AttendanceTypeTally[r.Type.Title]++
			}
		}

		if !hasDaily {
			continue
		}
		detail := toDetail(daily)
		out.DailyEventSummary = append(out.DailyEventSummary, detail)
		if daily.IsLate {
			out.AttendanceTypeTally[summary.FlagLate]++
			out.LateDetails = append(out.LateDetails, detail)
		}
		if daily.IsAbsent {
			out.AttendanceTypeTally[summary.FlagAbsent]++
			out.AbsenceDetails = append(out.AbsenceDetails, detail)
		}
		if daily.IsEarlyLeave {
			out.AttendanceTypeTally[summary.FlagEarlyLeave]++
			out.EarlyLeaveDetails = append(out.EarlyLeaveDetails, detail)
		}
	}

	keys := make([]weekKey, 0, len(weekly))
	for k := range weekly {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].week < keys[j].week
	})
	for _, k := range keys {
		out.WeeklyWorkTimes = append(out.WeeklyWorkTimes, summary.WeeklyWorkTime{
			ISOYear:         k.year,
			Week:            k.week,
			WorkTimeMinutes: weekly[k],
		})
		out.TotalWorkTime += weekly[k]
	}

	out.TotalWorkableTime = weekdays * a.calculator.Policy().WorkableMinutesPerDay
	out.AvgWorkTime = average(out.TotalWorkTime, out.WorkDays)
	return out
}

// dailyWorkTime returns the worked minutes of one day after lunch and dinner deductions.
func (a *Aggregator) dailyWorkTime(daily summary.DailySummary, records []attendance.UsedAttendance) int {
	attendanceMinutes := 0
	for _, r := range records {
		if r.Type != nil {
			attendanceMinutes += r.Type.WorkTimeMinutes
		}
	}

	if daily.RealEnter != nil && daily.RealLeave != nil {
		base := attendanceMinutes
		if daily.WorkTimeMinutes != nil {
			base += *daily.WorkTimeMinutes
		}
		return a.calculator.DailyWorkTime(base, *daily.RealEnter, *daily.RealLeave)
	}
	return attendanceMinutes
}

func newTally(catalog attendance.Catalog) map[string]int {
	tally := make(map[string]int, len(catalog)+3)
	for _, t := range catalog {
		tally[t.Title] = 0
	}
	tally[summary.FlagLate] = 0
	tally[summary.FlagAbsent] = 0
	tally[summary.FlagEarlyLeave] = 0
	return tally
}

func average(total, days int) decimal.Decimal {
	if days == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(total)).Div(decimal.NewFromInt(int64(days))).Round(2)
}

func toDetail(d summary.DailySummary) summary.DayDetail {
	attendances := d.AttendanceSnapshot
	if attendances == nil {
		attendances = []attendance.Snapshot{}
	}
	return summary.DayDetail{
		Date:            dateKey(d.Date),
		IsHoliday:       d.IsHoliday,
		Enter:           d.Enter,
		Leave:           d.Leave,
		RealEnter:       d.RealEnter,
		RealLeave:       d.RealLeave,
		IsAbsent:        d.IsAbsent,
		IsLate:          d.IsLate,
		IsEarlyLeave:    d.IsEarlyLeave,
		WorkTimeMinutes: d.WorkTimeMinutes,
		Attendances:     attendances,
	}
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
