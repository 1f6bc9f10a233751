package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/summary"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/worktime"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/pkg/database"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type dailySummaryRepositoryImpl struct {
	db *database.DB
}

func NewDailySummaryRepository(db *database.DB) summary.DailySummaryRepository {
	return &dailySummaryRepositoryImpl{db: db}
}

// SoftDeleteBetween implements summary.DailySummaryRepository.
func (r *dailySummaryRepositoryImpl) SoftDeleteBetween(ctx context.Context, start, end time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE daily_summaries
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE date BETWEEN $1 AND $2 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to soft delete daily summaries: %w", err)
	}
	return tag.RowsAffected(), nil
}

const upsertDailySummaryQuery = `
	INSERT INTO daily_summaries (
		id, date, employee_id, is_holiday,
		enter_time, leave_time, real_enter_time, real_leave_time,
		is_absent, is_late, is_early_leave, work_time_minutes,
		attendance_snapshot, created_by
	) VALUES (
		$1, $2, $3, $4,
		$5, $6, $7, $8,
		$9, $10, $11, $12,
		$13, $14
	)
	ON CONFLICT (date, employee_id) DO UPDATE SET
		is_holiday = EXCLUDED.is_holiday,
		enter_time = EXCLUDED.enter_time,
		leave_time = EXCLUDED.leave_time,
		real_enter_time = EXCLUDED.real_enter_time,
		real_leave_time = EXCLUDED.real_leave_time,
		is_absent = EXCLUDED.is_absent,
		is_late = EXCLUDED.is_late,
		is_early_leave = EXCLUDED.is_early_leave,
		work_time_minutes = EXCLUDED.work_time_minutes,
		attendance_snapshot = EXCLUDED.attendance_snapshot,
		created_by = EXCLUDED.created_by,
		deleted_at = NULL,
		updated_at = NOW()
	RETURNING id, created_at, updated_at
`

// UpsertBatch implements summary.DailySummaryRepository.
func (r *dailySummaryRepositoryImpl) UpsertBatch(ctx context.Context, rows []summary.DailySummary, batchSize int) ([]summary.DailySummary, error) {
	q := GetQuerier(ctx, r.db)
	if batchSize <= 0 {
		batchSize = len(rows)
	}

	stored := make([]summary.DailySummary, 0, len(rows))
	for offset := 0; offset < len(rows); offset += batchSize {
		chunk := rows[offset:min(offset+batchSize, len(rows))]

		batch := &pgx.Batch{}
		for _, row := range chunk {
			snapshot, err := json.Marshal(row.AttendanceSnapshot)
			if err != nil {
				return nil, fmt.Errorf("failed to encode attendance snapshot: %w", err)
			}
			batch.Queue(upsertDailySummaryQuery,
				uuid.Must(uuid.NewV7()).String(), row.Date, row.EmployeeID, row.IsHoliday,
				worktime.PGTime(row.Enter), worktime.PGTime(row.Leave),
				worktime.PGTime(row.RealEnter), worktime.PGTime(row.RealLeave),
				row.IsAbsent, row.IsLate, row.IsEarlyLeave, row.WorkTimeMinutes,
				snapshot, row.CreatedBy,
			)
		}

		written, err := r.sendUpsertBatch(ctx, q, batch, chunk)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert daily summaries %d-%d: %w", offset, offset+len(chunk), err)
		}
		stored = append(stored, written...)
	}

	return stored, nil
}

func (r *dailySummaryRepositoryImpl) sendUpsertBatch(ctx context.Context, q database.Querier, batch *pgx.Batch, chunk []summary.DailySummary) ([]summary.DailySummary, error) {
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	out := make([]summary.DailySummary, 0, len(chunk))
	for _, row := range chunk {
		if err := results.QueryRow().Scan(&row.ID, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, err
		}
		row.DeletedAt = nil
		out = append(out, row)
	}
	return out, nil
}

// ListByEmployeeBetween implements summary.DailySummaryRepository.
func (r *dailySummaryRepositoryImpl) ListByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]summary.DailySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, date, employee_id, is_holiday,
			enter_time, leave_time, real_enter_time, real_leave_time,
			is_absent, is_late, is_early_leave, work_time_minutes,
			attendance_snapshot, created_by, created_at, updated_at, deleted_at
		FROM daily_summaries
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3 AND deleted_at IS NULL
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily summaries: %w", err)
	}
	defer rows.Close()

	var out []summary.DailySummary
	for rows.Next() {
		var d summary.DailySummary
		var enter, leave, realEnter, realLeave pgtype.Time
		var snapshot []byte

		if err := rows.Scan(
			&d.ID, &d.Date, &d.EmployeeID, &d.IsHoliday,
			&enter, &leave, &realEnter, &realLeave,
			&d.IsAbsent, &d.IsLate, &d.IsEarlyLeave, &d.WorkTimeMinutes,
			&snapshot, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt, &d.DeletedAt,
		); err != nil {
			return nil, err
		}

		d.Enter = worktime.ClockPtr(enter)
		d.Leave = worktime.ClockPtr(leave)
		d.RealEnter = worktime.ClockPtr(realEnter)
		d.RealLeave = worktime.ClockPtr(realLeave)

		d.AttendanceSnapshot = []attendance.Snapshot{}
		if len(snapshot) > 0 {
			if err := json.Unmarshal(snapshot, &d.AttendanceSnapshot); err != nil {
				return nil, fmt.Errorf("failed to decode attendance snapshot of %s: %w", d.ID, err)
			}
		}
		out = append(out, d)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// ListEmployeeIDsBetween implements summary.DailySummaryRepository.
func (r *dailySummaryRepositoryImpl) ListEmployeeIDsBetween(ctx context.Context, start, end time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT employee_id
		FROM daily_summaries
		WHERE date BETWEEN $1 AND $2 AND deleted_at IS NULL
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query summarized employees: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
