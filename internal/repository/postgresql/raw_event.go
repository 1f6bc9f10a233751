package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/worktime"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5/pgtype"
)

type rawEventRepositoryImpl struct {
	db *database.DB
}

func NewRawEventRepository(db *database.DB) attendance.RawEventRepository {
	return &rawEventRepositoryImpl{db: db}
}

// ListBetween implements attendance.RawEventRepository.
func (r *rawEventRepositoryImpl) ListBetween(ctx context.Context, start, end time.Time) ([]attendance.RawEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_number, event_date, event_time
		FROM raw_attendance_events
		WHERE event_date BETWEEN $1 AND $2
		ORDER BY event_date, event_time
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query raw events: %w", err)
	}
	defer rows.Close()

	var events []attendance.RawEvent
	for rows.Next() {
		var ev attendance.RawEvent
		var at pgtype.Time
		if err := rows.Scan(&ev.EmployeeNumber, &ev.Date, &at); err != nil {
			return nil, err
		}
		clock := worktime.ClockPtr(at)
		if clock == nil {
			continue
		}
		ev.Time = *clock
		events = append(events, ev)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
