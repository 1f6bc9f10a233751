package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type usedAttendanceRepositoryImpl struct {
	db *database.DB
}

func NewUsedAttendanceRepository(db *database.DB) attendance.UsedAttendanceRepository {
	return &usedAttendanceRepositoryImpl{db: db}
}

// ListBetween implements attendance.UsedAttendanceRepository.
func (r *usedAttendanceRepositoryImpl) ListBetween(ctx context.Context, start, end time.Time) ([]attendance.UsedAttendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, attendance_type_id
		FROM used_attendances
		WHERE date BETWEEN $1 AND $2 AND deleted_at IS NULL
		ORDER BY date, employee_id, id
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query used attendances: %w", err)
	}
	return scanUsedAttendances(rows)
}

// ListByEmployeeBetween implements attendance.UsedAttendanceRepository.
func (r *usedAttendanceRepositoryImpl) ListByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.UsedAttendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, attendance_type_id
		FROM used_attendances
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3 AND deleted_at IS NULL
		ORDER BY date, id
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query used attendances of employee %s: %w", employeeID, err)
	}
	return scanUsedAttendances(rows)
}

func scanUsedAttendances(rows pgx.Rows) ([]attendance.UsedAttendance, error) {
	defer rows.Close()

	var records []attendance.UsedAttendance
	for rows.Next() {
		var u attendance.UsedAttendance
		if err := rows.Scan(&u.ID, &u.EmployeeID, &u.Date, &u.AttendanceTypeID); err != nil {
			return nil, err
		}
		records = append(records, u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
