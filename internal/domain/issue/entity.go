package issue

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/worktime"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusResolved  Status = "resolved"
	StatusRejected  Status = "rejected"
)

// transitions lists the allowed next states; absent keys are terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusRejected},
	StatusConfirmed: {StatusResolved},
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether the workflow allows moving from s to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Issue is an attendance anomaly raised for a flagged daily summary.
type Issue struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee_id"`
	Date             time.Time       `json:"date"`
	DailySummaryID   string          `json:"daily_summary_id"`
	Status           Status          `json:"status"`
	ProblematicEnter *worktime.Clock `json:"problematic_enter,omitempty"`
	ProblematicLeave *worktime.Clock `json:"problematic_leave,omitempty"`
	CorrectedEnter   *worktime.Clock `json:"corrected_enter,omitempty"`
	CorrectedLeave   *worktime.Clock `json:"corrected_leave,omitempty"`
	Description      string          `json:"description"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
