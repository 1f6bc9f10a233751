package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/worktime"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5/pgtype"
)

type attendanceTypeRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceTypeRepository(db *database.DB) attendance.AttendanceTypeRepository {
	return &attendanceTypeRepositoryImpl{db: db}
}

// List implements attendance.AttendanceTypeRepository.
func (r *attendanceTypeRepositoryImpl) List(ctx context.Context) ([]attendance.AttendanceType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, title, work_time_minutes, recognized_work_time,
			start_work_time, end_work_time, deducted_annual_leave
		FROM attendance_types
		ORDER BY title
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance types: %w", err)
	}
	defer rows.Close()

	var types []attendance.AttendanceType
	for rows.Next() {
		var t attendance.AttendanceType
		var start, end pgtype.Time
		if err := rows.Scan(
			&t.ID, &t.Title, &t.WorkTimeMinutes, &t.RecognizedWorkTime,
			&start, &end, &t.DeductedAnnualLeave,
		); err != nil {
			return nil, err
		}
		t.StartWorkTime = worktime.ClockPtr(start)
		t.EndWorkTime = worktime.ClockPtr(end)
		types = append(types, t)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return types, nil
}
