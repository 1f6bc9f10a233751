package dailysummary

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/issue"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/summary"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/worktime"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/pkg/validator"
	worktimeService "github.com/cmlabs-hris/hris-attendance-engine/internal/service/worktime"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultBatchSize = 1000
	DefaultWorkers   = 4
)

// Options tunes the engine's resource use.
type Options struct {
	Workers   int
	BatchSize int
}

type DailySummaryServiceImpl struct {
	transactor   database.Transactor
	eventRepo    attendance.RawEventRepository
	usedRepo     attendance.UsedAttendanceRepository
	typeRepo     attendance.AttendanceTypeRepository
	employeeRepo employee.EmployeeRepository
	holidayRepo  holiday.HolidayRepository
	dailyRepo    summary.DailySummaryRepository
	issueTracker issue.Tracker
	calculator   *worktimeService.Calculator
	opts         Options
}

func NewDailySummaryService(
	transactor database.Transactor,
	eventRepo attendance.RawEventRepository,
	usedRepo attendance.UsedAttendanceRepository,
	typeRepo attendance.AttendanceTypeRepository,
	employeeRepo employee.EmployeeRepository,
	holidayRepo holiday.HolidayRepository,
	dailyRepo summary.DailySummaryRepository,
	issueTracker issue.Tracker,
	calculator *worktimeService.Calculator,
	opts Options,
) summary.DailySummaryService {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	return &DailySummaryServiceImpl{
		transactor:   transactor,
		eventRepo:    eventRepo,
		usedRepo:     usedRepo,
		typeRepo:     typeRepo,
		employeeRepo: employeeRepo,
		holidayRepo:  holidayRepo,
		dailyRepo:    dailyRepo,
		issueTracker: issueTracker,
		calculator:   calculator,
		opts:         opts,
	}
}

// GenerateDailySummaries implements summary.DailySummaryService.
func (s *DailySummaryServiceImpl) GenerateDailySummaries(ctx context.Context, req summary.GenerateDailyRequest) (summary.GenerateDailyResult, error) {
	if err := req.Validate(); err != nil {
		return summary.GenerateDailyResult{}, err
	}
	ym, err := summary.NewYearMonth(req.Year, req.Month)
	if err != nil {
		return summary.GenerateDailyResult{}, err
	}

	start := time.Now()
	mode := "live"

	var rows []summary.DailySummary
	if req.Snapshot != nil {
		mode = "snapshot"
		rows, err = prepareSnapshot(ym, req.Snapshot, req.PerformedBy)
	} else {
		rows, err = s.reconcile(ctx, ym, req.PerformedBy)
	}
	if err != nil {
		return summary.GenerateDailyResult{}, err
	}

	var stored []summary.DailySummary
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		deleted, err := s.dailyRepo.SoftDeleteBetween(txCtx, ym.Start(), ym.End())
		if err != nil {
			return fmt.Errorf("failed to invalidate daily summaries of %s: %w", ym, err)
		}
		slog.Debug("Invalidated daily summaries", "yyyymm", ym.String(), "count", deleted)

		stored, err = s.dailyRepo.UpsertBatch(txCtx, rows, s.opts.BatchSize)
		if err != nil {
			return fmt.Errorf("failed to write daily summaries of %s: %w", ym, err)
		}
		return nil
	})
	if err != nil {
		return summary.GenerateDailyResult{}, err
	}

	issueCount := 0
	if s.issueTracker != nil {
		issueCount = s.issueTracker.TrackFlagged(ctx, stored)
	}

	slog.Info("Daily summaries generated",
		"yyyymm", ym.String(),
		"mode", mode,
		"performed_by", req.PerformedBy,
		"summary_count", len(stored),
		"issue_count", issueCount,
		"duration", time.Since(start),
	)

	return summary.GenerateDailyResult{
		SummaryCount: len(stored),
		IssueCount:   issueCount,
	}, nil
}

// prepareSnapshot keeps the rows of the target month and rejects duplicate natural keys.
func prepareSnapshot(ym summary.YearMonth, snapshot []summary.DailySummary, performedBy string) ([]summary.DailySummary, error) {
	seen := make(map[string]struct{}, len(snapshot))
	rows := make([]summary.DailySummary, 0, len(snapshot))

	for _, row := range snapshot {
		row.Date = dayOf(row.Date)
		if !ym.Contains(row.Date) {
			continue
		}
		if validator.IsEmpty(row.EmployeeID) {
			return nil, validator.Single("snapshot", fmt.Sprintf("row on %s has no employee_id", row.Date.Format("2006-01-02")))
		}
		if _, dup := seen[row.Key()]; dup {
			return nil, fmt.Errorf("%w: %s on %s", summary.ErrDuplicateNaturalKey, row.EmployeeID, row.Date.Format("2006-01-02"))
		}
		seen[row.Key()] = struct{}{}

		row.ID = ""
		row.DeletedAt = nil
		row.CreatedBy = performedBy
		if row.AttendanceSnapshot == nil {
			row.AttendanceSnapshot = []attendance.Snapshot{}
		}
		rows = append(rows, row)
	}

	sortSummaries(rows)
	return rows, nil
}

// monthInput is the read-only data shared by all workers of one run.
type monthInput struct {
	ym       summary.YearMonth
	calendar holiday.Calendar
	events   map[string]map[string][]worktime.Clock
	records  map[string]map[string][]attendance.UsedAttendance
}

// reconcile loads the month's raw data and computes one summary per (employee, day).
func (s *DailySummaryServiceImpl) reconcile(ctx context.Context, ym summary.YearMonth, performedBy string) ([]summary.DailySummary, error) {
	events, err := s.eventRepo.ListBetween(ctx, ym.Start(), ym.End())
	if err != nil {
		return nil, fmt.Errorf("failed to load raw events: %w", err)
	}

	used, err := s.usedRepo.ListBetween(ctx, ym.Start(), ym.End())
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance records: %w", err)
	}

	catalog, err := attendance.LoadCatalog(ctx, s.typeRepo)
	if err != nil {
		return nil, err
	}
	_, used, err = attendance.JoinWithReload(ctx, s.typeRepo, catalog, used)
	if err != nil {
		return nil, err
	}

	employees, err := s.resolveEmployees(ctx, events, used)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return []summary.DailySummary{}, nil
	}

	holidays, err := s.holidayRepo.ListBetween(ctx, ym.Start(), ym.End())
	if err != nil {
		return nil, fmt.Errorf("failed to load holidays: %w", err)
	}

	in := &monthInput{
		ym:       ym,
		calendar: holiday.NewCalendar(holidays),
		events:   groupEvents(events, employees),
		records:  groupRecords(used),
	}

	perEmployee := make([][]summary.DailySummary, len(employees))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i, emp := range employees {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			perEmployee[i] = s.summarizeEmployee(emp, in, performedBy)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("daily summary computation interrupted: %w", err)
	}

	rows := make([]summary.DailySummary, 0, len(employees)*len(ym.Days()))
	for _, part := range perEmployee {
		rows = append(rows, part...)
	}
	sortSummaries(rows)
	return rows, nil
}

// resolveEmployees merges the employees referenced by number (events) and by ID
// (attendance records) into one list ordered by ID.
func (s *DailySummaryServiceImpl) resolveEmployees(ctx context.Context, events []attendance.RawEvent, used []attendance.UsedAttendance) ([]employee.Employee, error) {
	byID := make(map[string]employee.Employee)

	codes := uniqueStrings(len(events), func(i int) string { return events[i].EmployeeNumber })
	if len(codes) > 0 {
		found, err := s.employeeRepo.ListByEmployeeCodes(ctx, codes)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve employee numbers: %w", err)
		}
		known := make(map[string]struct{}, len(found))
		for _, emp := range found {
			byID[emp.ID] = emp
			known[emp.EmployeeCode] = struct{}{}
		}
		for _, code := range codes {
			if _, ok := known[code]; !ok {
				slog.Warn("Skipping raw events of unknown employee number", "employee_number", code)
			}
		}
	}

	ids := uniqueStrings(len(used), func(i int) string { return used[i].EmployeeID })
	if len(ids) > 0 {
		found, err := s.employeeRepo.ListByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve employees: %w", err)
		}
		for _, emp := range found {
			byID[emp.ID] = emp
		}
		for _, id := range ids {
			if _, ok := byID[id]; !ok {
				return nil, fmt.Errorf("%w: attendance records reference employee %s", employee.ErrEmployeeNotFound, id)
			}
		}
	}

	employees := make([]employee.Employee, 0, len(byID))
	for _, emp := range byID {
		employees = append(employees, emp)
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].ID < employees[j].ID })
	return employees, nil
}

func sortSummaries(rows []summary.DailySummary) {
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.Before(rows[j].Date)
		}
		return rows[i].EmployeeID < rows[j].EmployeeID
	})
}

func uniqueStrings(n int, at func(i int) string) []string {
	seen := make(map[string]struct{}, n)
	out := make([]string, 0)
	for i := 0; i < n; i++ {
		v := at(i)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
