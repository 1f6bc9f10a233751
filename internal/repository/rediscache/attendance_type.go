package rediscache

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/pkg/cache"
)

const attendanceTypesKey = "attendance_types"

type attendanceTypeRepository struct {
	next  attendance.AttendanceTypeRepository
	store cache.Store
	ttl   time.Duration
}

// NewAttendanceTypeRepository caches the catalog read from next for ttl.
// Cache failures fall through to next.
func NewAttendanceTypeRepository(next attendance.AttendanceTypeRepository, store cache.Store, ttl time.Duration) attendance.AttendanceTypeRepository {
	return &attendanceTypeRepository{next: next, store: store, ttl: ttl}
}

// List implements attendance.AttendanceTypeRepository.
func (r *attendanceTypeRepository) List(ctx context.Context) ([]attendance.AttendanceType, error) {
	var cached []attendance.AttendanceType
	found, err := r.store.Get(ctx, attendanceTypesKey, &cached)
	if err != nil {
		slog.Warn("Attendance type cache read failed", "error", err)
	}
	if found {
		return cached, nil
	}

	return r.Refresh(ctx)
}

// Refresh implements attendance.CatalogRefresher. It reads next and rewrites the cache.
func (r *attendanceTypeRepository) Refresh(ctx context.Context) ([]attendance.AttendanceType, error) {
	types, err := r.next.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.store.Set(ctx, attendanceTypesKey, types, r.ttl); err != nil {
		slog.Warn("Attendance type cache write failed", "error", err)
	}
	return types, nil
}
