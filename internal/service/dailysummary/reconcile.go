package dailysummary

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/summary"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/worktime"
)

// summarizeEmployee computes every day of the month for one employee.
func (s *DailySummaryServiceImpl) summarizeEmployee(emp employee.Employee, in *monthInput, performedBy string) []summary.DailySummary {
	days := in.ym.Days()
	rows := make([]summary.DailySummary, 0, len(days))

	for _, date := range days {
		key := dateKey(date)
		row := s.summarizeDay(emp, date, in.calendar.IsHoliday(date), in.events[emp.ID][key], in.records[emp.ID][key])
		row.CreatedBy = performedBy
		rows = append(rows, row)
	}
	return rows
}

// summarizeDay reconciles one (employee, day) cell. events must belong to that
// employee and day; records must be joined to their attendance type.
func (s *DailySummaryServiceImpl) summarizeDay(emp employee.Employee, date time.Time, isHoliday bool, events []worktime.Clock, records []attendance.UsedAttendance) summary.DailySummary {
	row := summary.DailySummary{
		Date:               date,
		EmployeeID:         emp.ID,
		IsHoliday:          isHoliday,
		AttendanceSnapshot: make([]attendance.Snapshot, 0, len(records)),
	}

	sorted := append([]worktime.Clock(nil), events...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	hasEvents := len(sorted) > 0
	if hasEvents {
		first, last := sorted[0], sorted[len(sorted)-1]
		row.RealEnter = &first
		row.RealLeave = &last
		minutes := first.MinutesUntil(last)
		row.WorkTimeMinutes = &minutes
	}

	recognized := s.calculator.RecognizedOnly(records)

	enterCandidates := []*worktime.Clock{row.RealEnter}
	leaveCandidates := []*worktime.Clock{row.RealLeave}
	for _, r := range recognized {
		enterCandidates = append(enterCandidates, r.Type.StartWorkTime)
		leaveCandidates = append(leaveCandidates, r.Type.EndWorkTime)
	}
	row.Enter = worktime.Earliest(enterCandidates...)
	row.Leave = worktime.Latest(leaveCandidates...)

	outOfEmployment := emp.IsOutsideEmployment(date)
	row.IsAbsent = !(outOfEmployment || isHoliday || len(recognized) > 0 || hasEvents)

	// Lateness is judged on the raw events, not the effective window
	if hasEvents {
		row.IsLate = s.calculator.IsLate(*row.RealEnter, s.calculator.HasMorningRecognized(records), isHoliday, outOfEmployment)
		row.IsEarlyLeave = s.calculator.IsEarlyLeave(*row.RealLeave, s.calculator.HasAfternoonRecognized(records), isHoliday, outOfEmployment)
	}

	for _, r := range records {
		row.AttendanceSnapshot = append(row.AttendanceSnapshot, r.Snapshot())
	}
	return row
}

// groupEvents indexes event times by employee ID and day. Events of unknown
// employee numbers are dropped.
func groupEvents(events []attendance.RawEvent, employees []employee.Employee) map[string]map[string][]worktime.Clock {
	idByCode := make(map[string]string, len(employees))
	for _, emp := range employees {
		if emp.EmployeeCode != "" {
			idByCode[emp.EmployeeCode] = emp.ID
		}
	}

	out := make(map[string]map[string][]worktime.Clock)
	for _, ev := range events {
		id, ok := idByCode[ev.EmployeeNumber]
		if !ok {
			continue
		}
		if out[id] == nil {
			out[id] = make(map[string][]worktime.Clock)
		}
		key := dateKey(ev.Date)
		out[id][key] = append(out[id][key], ev.Time)
	}
	return out
}

func groupRecords(records []attendance.UsedAttendance) map[string]map[string][]attendance.UsedAttendance {
	out := make(map[string]map[string][]attendance.UsedAttendance)
	for _, r := range records {
		if out[r.EmployeeID] == nil {
			out[r.EmployeeID] = make(map[string][]attendance.UsedAttendance)
		}
		key := dateKey(r.Date)
		out[r.EmployeeID][key] = append(out[r.EmployeeID][key], r)
	}
	return out
}
