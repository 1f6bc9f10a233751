package issue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/issue"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/summary"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/worktime"
	"github.com/google/uuid"
)

type TrackerImpl struct {
	issueRepo issue.IssueRepository
}

func NewTracker(issueRepo issue.IssueRepository) issue.Tracker {
	return &TrackerImpl{issueRepo: issueRepo}
}

// TrackFlagged implements issue.Tracker.
func (t *TrackerImpl) TrackFlagged(ctx context.Context, summaries []summary.DailySummary) int {
	created := 0
	for _, s := range summaries {
		if !s.IsFlagged() {
			continue
		}

		ok, err := t.issueRepo.CreateIfAbsent(ctx, newIssue(s))
		if err != nil {
			slog.Error("Failed to create attendance issue",
				"employee_id", s.EmployeeID,
				"date", s.Date.Format("2006-01-02"),
				"error", err,
			)
			continue
		}
		if !ok {
			slog.Debug("Attendance issue already exists", "employee_id", s.EmployeeID, "date", s.Date.Format("2006-01-02"))
			continue
		}
		created++
	}
	return created
}

// UpdateStatus implements issue.Tracker.
func (t *TrackerImpl) UpdateStatus(ctx context.Context, req issue.UpdateStatusRequest) (issue.Issue, error) {
	if err := req.Validate(); err != nil {
		return issue.Issue{}, err
	}

	current, err := t.issueRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, issue.ErrIssueNotFound) {
			return issue.Issue{}, err
		}
		return issue.Issue{}, fmt.Errorf("failed to load attendance issue: %w", err)
	}

	if !current.Status.CanTransitionTo(req.Status) {
		return issue.Issue{}, fmt.Errorf("%w: %s -> %s", issue.ErrInvalidTransition, current.Status, req.Status)
	}

	// from guards against a concurrent transition between read and write
	updated, err := t.issueRepo.UpdateStatus(ctx, req.ID, current.Status, req.Status)
	if err != nil {
		return issue.Issue{}, err
	}

	slog.Info("Attendance issue status updated", "issue_id", req.ID, "from", current.Status, "to", req.Status)
	return updated, nil
}

func newIssue(s summary.DailySummary) issue.Issue {
	return issue.Issue{
		ID:               uuid.Must(uuid.NewV7()).String(),
		EmployeeID:       s.EmployeeID,
		Date:             s.Date,
		DailySummaryID:   s.ID,
		Status:           issue.StatusPending,
		ProblematicEnter: firstSet(s.RealEnter, s.Enter),
		ProblematicLeave: firstSet(s.RealLeave, s.Leave),
		Description:      strings.Join(s.FlagLabels(), ", "),
	}
}

func firstSet(values ...*worktime.Clock) *worktime.Clock {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
