package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/summary"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/pkg/database"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const monthlySummaryColumns = `
	id, employee_id, yyyymm, weekly_work_times, total_work_time, total_workable_time,
	avg_work_time, work_days, attendance_type_tally, late_details, absence_details,
	early_leave_details, daily_event_summary, note, created_at, updated_at
`

type monthlySummaryRepositoryImpl struct {
	db *database.DB
}

func NewMonthlySummaryRepository(db *database.DB) summary.MonthlySummaryRepository {
	return &monthlySummaryRepositoryImpl{db: db}
}

// Upsert implements summary.MonthlySummaryRepository. note is never written here.
func (r *monthlySummaryRepositoryImpl) Upsert(ctx context.Context, s summary.MonthlySummary) (summary.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	var (
		weekly, tally, late, absence, early, daily []byte
		err                                        error
	)
	for _, field := range []struct {
		dst *[]byte
		src any
	}{
		{&weekly, s.WeeklyWorkTimes},
		{&tally, s.AttendanceTypeTally},
		{&late, s.LateDetails},
		{&absence, s.AbsenceDetails},
		{&early, s.EarlyLeaveDetails},
		{&daily, s.DailyEventSummary},
	} {
		if *field.dst, err = json.Marshal(field.src); err != nil {
			return summary.MonthlySummary{}, fmt.Errorf("failed to encode monthly summary: %w", err)
		}
	}

	query := `
		INSERT INTO monthly_summaries (
			id, employee_id, yyyymm, weekly_work_times, total_work_time, total_workable_time,
			avg_work_time, work_days, attendance_type_tally, late_details, absence_details,
			early_leave_details, daily_event_summary
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (employee_id, yyyymm) DO UPDATE SET
			weekly_work_times = EXCLUDED.weekly_work_times,
			total_work_time = EXCLUDED.total_work_time,
			total_workable_time = EXCLUDED.total_workable_time,
			avg_work_time = EXCLUDED.avg_work_time,
			work_days = EXCLUDED.work_days,
			attendance_type_tally = EXCLUDED.attendance_type_tally,
			late_details = EXCLUDED.late_details,
			absence_details = EXCLUDED.absence_details,
			early_leave_details = EXCLUDED.early_leave_details,
			daily_event_summary = EXCLUDED.daily_event_summary,
			updated_at = NOW()
		RETURNING ` + monthlySummaryColumns

	row := q.QueryRow(ctx, query,
		uuid.Must(uuid.NewV7()).String(), s.EmployeeID, s.YearMonth.String(), weekly,
		s.TotalWorkTime, s.TotalWorkableTime, s.AvgWorkTime, s.WorkDays,
		tally, late, absence, early, daily,
	)
	stored, err := scanMonthlySummary(row)
	if err != nil {
		return summary.MonthlySummary{}, fmt.Errorf("failed to upsert monthly summary: %w", err)
	}
	return stored, nil
}

// Get implements summary.MonthlySummaryRepository.
func (r *monthlySummaryRepositoryImpl) Get(ctx context.Context, employeeID string, ym summary.YearMonth) (summary.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + monthlySummaryColumns + ` FROM monthly_summaries WHERE employee_id = $1 AND yyyymm = $2`

	stored, err := scanMonthlySummary(q.QueryRow(ctx, query, employeeID, ym.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return summary.MonthlySummary{}, summary.ErrMonthlySummaryNotFound
		}
		return summary.MonthlySummary{}, fmt.Errorf("failed to get monthly summary: %w", err)
	}
	return stored, nil
}

// UpdateNote implements summary.MonthlySummaryRepository.
func (r *monthlySummaryRepositoryImpl) UpdateNote(ctx context.Context, employeeID string, ym summary.YearMonth, note *string) (summary.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE monthly_summaries
		SET note = $3, updated_at = NOW()
		WHERE employee_id = $1 AND yyyymm = $2
		RETURNING ` + monthlySummaryColumns

	stored, err := scanMonthlySummary(q.QueryRow(ctx, query, employeeID, ym.String(), note))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return summary.MonthlySummary{}, summary.ErrMonthlySummaryNotFound
		}
		return summary.MonthlySummary{}, fmt.Errorf("failed to update monthly summary note: %w", err)
	}
	return stored, nil
}

func scanMonthlySummary(row pgx.Row) (summary.MonthlySummary, error) {
	var s summary.MonthlySummary
	var yyyymm string
	var weekly, tally, late, absence, early, daily []byte

	err := row.Scan(
		&s.ID, &s.EmployeeID, &yyyymm, &weekly, &s.TotalWorkTime, &s.TotalWorkableTime,
		&s.AvgWorkTime, &s.WorkDays, &tally, &late, &absence,
		&early, &daily, &s.Note, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return summary.MonthlySummary{}, err
	}

	if s.YearMonth, err = summary.ParseYearMonth(yyyymm); err != nil {
		return summary.MonthlySummary{}, err
	}

	for _, field := range []struct {
		src []byte
		dst any
	}{
		{weekly, &s.WeeklyWorkTimes},
		{tally, &s.AttendanceTypeTally},
		{late, &s.LateDetails},
		{absence, &s.AbsenceDetails},
		{early, &s.EarlyLeaveDetails},
		{daily, &s.DailyEventSummary},
	} {
		if err := json.Unmarshal(field.src, field.dst); err != nil {
			return summary.MonthlySummary{}, fmt.Errorf("failed to decode monthly summary %s: %w", s.ID, err)
		}
	}

	return s, nil
}
