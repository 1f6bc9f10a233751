package dailysummary

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/issue"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/summary"
)

var errInjected = errors.New("injected failure")

// fakeTransactor restores the daily repository when fn fails, mimicking a rollback.
type fakeTransactor struct {
	repo *fakeDailyRepo
}

func (t *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	saved := t.repo.clone()
	if err := fn(ctx); err != nil {
		t.repo.restore(saved)
		return err
	}
	return nil
}

type fakeDailyRepo struct {
	mu         sync.Mutex
	rows       map[string]summary.DailySummary
	nextID     int
	failUpsert bool
	batchSizes []int
}

func newFakeDailyRepo() *fakeDailyRepo {
	return &fakeDailyRepo{rows: make(map[string]summary.DailySummary)}
}

func (r *fakeDailyRepo) clone() map[string]summary.DailySummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]summary.DailySummary, len(r.rows))
	for k, v := range r.rows {
		out[k] = v
	}
	return out
}

func (r *fakeDailyRepo) restore(rows map[string]summary.DailySummary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = rows
}

func (r *fakeDailyRepo) SoftDeleteBetween(ctx context.Context, start, end time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	var n int64
	for k, row := range r.rows {
		if row.DeletedAt == nil && !row.Date.Before(start) && !row.Date.After(end) {
			row.DeletedAt = &now
			r.rows[k] = row
			n++
		}
	}
	return n, nil
}

func (r *fakeDailyRepo) UpsertBatch(ctx context.Context, rows []summary.DailySummary, batchSize int) ([]summary.DailySummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batchSizes = append(r.batchSizes, batchSize)

	out := make([]summary.DailySummary, 0, len(rows))
	for i, row := range rows {
		if r.failUpsert && i == len(rows)/2 {
			return nil, errInjected
		}
		if existing, ok := r.rows[row.Key()]; ok {
			row.ID = existing.ID
		} else {
			r.nextID++
			row.ID = fmt.Sprintf("ds-%d", r.nextID)
		}
		row.DeletedAt = nil
		r.rows[row.Key()] = row
		out = append(out, row)
	}
	return out, nil
}

func (r *fakeDailyRepo) ListByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]summary.DailySummary, error) {
	var out []summary.DailySummary
	for _, row := range r.live() {
		if row.EmployeeID == employeeID && !row.Date.Before(start) && !row.Date.After(end) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *fakeDailyRepo) ListEmployeeIDsBetween(ctx context.Context, start, end time.Time) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, row := range r.live() {
		if !seen[row.EmployeeID] && !row.Date.Before(start) && !row.Date.After(end) {
			seen[row.EmployeeID] = true
			out = append(out, row.EmployeeID)
		}
	}
	sort.Strings(out)
	return out, nil
}

// live returns non-deleted rows ordered by natural key.
func (r *fakeDailyRepo) live() []summary.DailySummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []summary.DailySummary
	for _, row := range r.rows {
		if row.DeletedAt == nil {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

func (r *fakeDailyRepo) find(employeeID string, date time.Time) (summary.DailySummary, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[summary.DailySummary{EmployeeID: employeeID, Date: date}.Key()]
	return row, ok
}

type fakeEventRepo struct {
	events []attendance.RawEvent
}

func (r *fakeEventRepo) ListBetween(ctx context.Context, start, end time.Time) ([]attendance.RawEvent, error) {
	var out []attendance.RawEvent
	for _, e := range r.events {
		if !e.Date.Before(start) && !e.Date.After(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeUsedRepo struct {
	records []attendance.UsedAttendance
}

func (r *fakeUsedRepo) ListBetween(ctx context.Context, start, end time.Time) ([]attendance.UsedAttendance, error) {
	var out []attendance.UsedAttendance
	for _, u := range r.records {
		if !u.Date.Before(start) && !u.Date.After(end) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUsedRepo) ListByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.UsedAttendance, error) {
	all, _ := r.ListBetween(ctx, start, end)
	var out []attendance.UsedAttendance
	for _, u := range all {
		if u.EmployeeID == employeeID {
			out = append(out, u)
		}
	}
	return out, nil
}

// fakeTypeRepo serves types until refreshed; a refresh switches to fresh when set.
type fakeTypeRepo struct {
	types     []attendance.AttendanceType
	fresh     []attendance.AttendanceType
	refreshes int
}

func (r *fakeTypeRepo) List(ctx context.Context) ([]attendance.AttendanceType, error) {
	return r.types, nil
}

func (r *fakeTypeRepo) Refresh(ctx context.Context) ([]attendance.AttendanceType, error) {
	r.refreshes++
	if r.fresh != nil {
		r.types = r.fresh
	}
	return r.types, nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) ListByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.employees {
		for _, id := range ids {
			if e.ID == id {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

func (r *fakeEmployeeRepo) ListByEmployeeCodes(ctx context.Context, codes []string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.employees {
		for _, c := range codes {
			if e.EmployeeCode == c {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

type fakeHolidayRepo struct {
	holidays []holiday.Holiday
}

func (r *fakeHolidayRepo) ListBetween(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	return r.holidays, nil
}

type fakeTracker struct {
	mu      sync.Mutex
	tracked []summary.DailySummary
}

func (t *fakeTracker) TrackFlagged(ctx context.Context, summaries []summary.DailySummary) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, s := range summaries {
		if s.IsFlagged() {
			t.tracked = append(t.tracked, s)
			n++
		}
	}
	return n
}

func (t *fakeTracker) UpdateStatus(ctx context.Context, req issue.UpdateStatusRequest) (issue.Issue, error) {
	return issue.Issue{}, errors.New("not implemented")
}
