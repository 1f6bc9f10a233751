package issue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/issue"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/summary"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/worktime"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIssueRepo struct {
	byID     map[string]issue.Issue
	byDay    map[string]string
	failDate string
}

func newFakeIssueRepo() *fakeIssueRepo {
	return &fakeIssueRepo{byID: map[string]issue.Issue{}, byDay: map[string]string{}}
}

func (r *fakeIssueRepo) CreateIfAbsent(ctx context.Context, i issue.Issue) (bool, error) {
	day := i.Date.Format("2006-01-02")
	if day == r.failDate {
		return false, errors.New("connection reset")
	}
	key := i.EmployeeID + "|" + day
	if _, ok := r.byDay[key]; ok {
		return false, nil
	}
	r.byDay[key] = i.ID
	r.byID[i.ID] = i
	return true, nil
}

func (r *fakeIssueRepo) GetByID(ctx context.Context, id string) (issue.Issue, error) {
	i, ok := r.byID[id]
	if !ok {
		return issue.Issue{}, issue.ErrIssueNotFound
	}
	return i, nil
}

func (r *fakeIssueRepo) UpdateStatus(ctx context.Context, id string, from, to issue.Status) (issue.Issue, error) {
	i, ok := r.byID[id]
	if !ok || i.Status != from {
		return issue.Issue{}, issue.ErrIssueNotFound
	}
	i.Status = to
	r.byID[id] = i
	return i, nil
}

func (r *fakeIssueRepo) only(t *testing.T) issue.Issue {
	t.Helper()
	require.Len(t, r.byID, 1)
	for _, i := range r.byID {
		return i
	}
	return issue.Issue{}
}

func ptr(s string) *worktime.Clock {
	c := worktime.MustClock(s)
	return &c
}

func date(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestTrackFlagged_CreatesPendingIssue(t *testing.T) {
	repo := newFakeIssueRepo()
	tracker := NewTracker(repo)

	n := tracker.TrackFlagged(context.Background(), []summary.DailySummary{
		{ID: "ds-1", EmployeeID: "emp-1", Date: date(4), RealEnter: ptr("09:05"), RealLeave: ptr("09:05"), Enter: ptr("09:05"), Leave: ptr("09:05"), IsLate: true, IsEarlyLeave: true},
		{ID: "ds-2", EmployeeID: "emp-1", Date: date(5)},
	})

	assert.Equal(t, 1, n)
	got := repo.only(t)
	assert.Equal(t, issue.StatusPending, got.Status)
	assert.Equal(t, "late, early-leave", got.Description)
	assert.Equal(t, "ds-1", got.DailySummaryID)
	assert.Equal(t, "09:05:00", got.ProblematicEnter.String())
	assert.Nil(t, got.CorrectedEnter)
	assert.Nil(t, got.CorrectedLeave)
}

func TestTrackFlagged_FallsBackToEffectiveWindow(t *testing.T) {
	repo := newFakeIssueRepo()
	tracker := NewTracker(repo)

	tracker.TrackFlagged(context.Background(), []summary.DailySummary{
		{EmployeeID: "emp-1", Date: date(6), Enter: ptr("09:00"), Leave: ptr("13:00"), IsAbsent: true},
	})

	got := repo.only(t)
	assert.Equal(t, "absent", got.Description)
	assert.Equal(t, "09:00:00", got.ProblematicEnter.String())
	assert.Equal(t, "13:00:00", got.ProblematicLeave.String())
}

func TestTrackFlagged_SkipsFailuresAndExistingIssues(t *testing.T) {
	repo := newFakeIssueRepo()
	repo.failDate = "2024-03-05"
	tracker := NewTracker(repo)
	rows := []summary.DailySummary{
		{EmployeeID: "emp-1", Date: date(4), IsAbsent: true},
		{EmployeeID: "emp-1", Date: date(5), IsAbsent: true},
		{EmployeeID: "emp-1", Date: date(6), IsAbsent: true},
	}

	assert.Equal(t, 2, tracker.TrackFlagged(context.Background(), rows))
	assert.Equal(t, 0, tracker.TrackFlagged(context.Background(), rows), "one issue per employee and day")
	assert.Len(t, repo.byID, 2)
}

func TestUpdateStatus(t *testing.T) {
	repo := newFakeIssueRepo()
	repo.byID["i-1"] = issue.Issue{ID: "i-1", Status: issue.StatusPending}
	tracker := NewTracker(repo)
	ctx := context.Background()

	got, err := tracker.UpdateStatus(ctx, issue.UpdateStatusRequest{ID: "i-1", Status: issue.StatusConfirmed})
	require.NoError(t, err)
	assert.Equal(t, issue.StatusConfirmed, got.Status)

	_, err = tracker.UpdateStatus(ctx, issue.UpdateStatusRequest{ID: "i-1", Status: issue.StatusRejected})
	assert.ErrorIs(t, err, issue.ErrInvalidTransition)

	got, err = tracker.UpdateStatus(ctx, issue.UpdateStatusRequest{ID: "i-1", Status: issue.StatusResolved})
	require.NoError(t, err)
	assert.Equal(t, issue.StatusResolved, got.Status)

	_, err = tracker.UpdateStatus(ctx, issue.UpdateStatusRequest{ID: "missing", Status: issue.StatusConfirmed})
	assert.ErrorIs(t, err, issue.ErrIssueNotFound)

	_, err = tracker.UpdateStatus(ctx, issue.UpdateStatusRequest{ID: "i-1", Status: "voided"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}
