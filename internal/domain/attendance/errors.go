package attendance

import (
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-engine/internal/pkg/validator"
)

var (
	ErrUnknownAttendanceType = errors.New("attendance record references an unknown attendance type")
)

// UnknownTypeError reports a record whose type is missing from the catalog as a validation failure.
func UnknownTypeError(r UsedAttendance) error {
	return fmt.Errorf("%w: %w", ErrUnknownAttendanceType, validator.Single(
		"attendance_type_id",
		fmt.Sprintf("record %s of employee %s on %s references unknown type %q",
			r.ID, r.EmployeeID, r.Date.Format("2006-01-02"), r.AttendanceTypeID),
	))
}
