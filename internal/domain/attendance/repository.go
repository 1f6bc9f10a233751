package attendance

import (
	"context"
	"time"
)

// RawEventRepository reads badge events. Results are ordered by date then time.
type RawEventRepository interface {
	ListBetween(ctx context.Context, start, end time.Time) ([]RawEvent, error)
}

// UsedAttendanceRepository reads approved attendance records, unjoined.
type UsedAttendanceRepository interface {
	ListBetween(ctx context.Context, start, end time.Time) ([]UsedAttendance, error)
	ListByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]UsedAttendance, error)
}

// AttendanceTypeRepository reads the attendance type catalog.
type AttendanceTypeRepository interface {
	List(ctx context.Context) ([]AttendanceType, error)
}

// CatalogRefresher is implemented by catalog repositories that may serve a stale
// copy. Refresh reads the catalog from its source and replaces the stale copy.
type CatalogRefresher interface {
	Refresh(ctx context.Context) ([]AttendanceType, error)
}
