package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/worktime"
)

// RawEvent is a single badge event recorded by the ingestion pipeline.
// Events are keyed by employee number, not employee ID.
type RawEvent struct {
	EmployeeNumber string
	Date           time.Time
	Time           worktime.Clock
}

// AttendanceType is a catalog entry describing a kind of approved attendance
// (annual leave, half-day leave, business trip, ...).
type AttendanceType struct {
	ID                  string          `json:"id"`
	Title               string          `json:"title"`
	WorkTimeMinutes     int             `json:"work_time_minutes"`
	RecognizedWorkTime  bool            `json:"recognized_work_time"`
	StartWorkTime       *worktime.Clock `json:"start_work_time,omitempty"`
	EndWorkTime         *worktime.Clock `json:"end_work_time,omitempty"`
	DeductedAnnualLeave float64         `json:"deducted_annual_leave"`
}

// UsedAttendance is an approved attendance record for one employee and day.
// Type is populated once the record has been joined to the catalog.
type UsedAttendance struct {
	ID               string
	EmployeeID       string
	Date             time.Time
	AttendanceTypeID string
	Type             *AttendanceType
}

// Snapshot is the denormalized copy of an attendance record embedded in summaries.
type Snapshot struct {
	AttendanceTypeID    string          `json:"attendance_type_id"`
	Title               string          `json:"title"`
	WorkTimeMinutes     int             `json:"work_time_minutes"`
	RecognizedWorkTime  bool            `json:"recognized_work_time"`
	StartWorkTime       *worktime.Clock `json:"start_work_time,omitempty"`
	EndWorkTime         *worktime.Clock `json:"end_work_time,omitempty"`
	DeductedAnnualLeave float64         `json:"deducted_annual_leave"`
}

// Snapshot returns the denormalized view of a joined record.
func (u UsedAttendance) Snapshot() Snapshot {
	if u.Type == nil {
		return Snapshot{AttendanceTypeID: u.AttendanceTypeID}
	}
	return Snapshot{
		AttendanceTypeID:    u.AttendanceTypeID,
		Title:               u.Type.Title,
		WorkTimeMinutes:     u.Type.WorkTimeMinutes,
		RecognizedWorkTime:  u.Type.RecognizedWorkTime,
		StartWorkTime:       u.Type.StartWorkTime,
		EndWorkTime:         u.Type.EndWorkTime,
		DeductedAnnualLeave: u.Type.DeductedAnnualLeave,
	}
}

// Catalog indexes attendance types by ID.
type Catalog map[string]AttendanceType

func NewCatalog(types []AttendanceType) Catalog {
	c := make(Catalog, len(types))
	for _, t := range types {
		c[t.ID] = t
	}
	return c
}

// Join attaches catalog types to records. A record referencing an unknown type
// yields ErrUnknownAttendanceType.
func (c Catalog) Join(records []UsedAttendance) ([]UsedAttendance, error) {
	out := make([]UsedAttendance, 0, len(records))
	for _, r := range records {
		t, ok := c[r.AttendanceTypeID]
		if !ok {
			return nil, UnknownTypeError(r)
		}
		r.Type = &t
		out = append(out, r)
	}
	return out, nil
}
