package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/issue"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/worktime"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const issueColumns = `
	id, employee_id, date, daily_summary_id, status,
	problematic_enter, problematic_leave, corrected_enter, corrected_leave,
	description, created_at, updated_at
`

type issueRepositoryImpl struct {
	db *database.DB
}

func NewIssueRepository(db *database.DB) issue.IssueRepository {
	return &issueRepositoryImpl{db: db}
}

// CreateIfAbsent implements issue.IssueRepository.
func (r *issueRepositoryImpl) CreateIfAbsent(ctx context.Context, i issue.Issue) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_issues (
			id, employee_id, date, daily_summary_id, status,
			problematic_enter, problematic_leave, corrected_enter, corrected_leave, description
		) VALUES ($1, $2, $3, NULLIF($4, '')::uuid, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (employee_id, date) DO NOTHING
	`

	tag, err := q.Exec(ctx, query,
		i.ID, i.EmployeeID, i.Date, i.DailySummaryID, i.Status,
		worktime.PGTime(i.ProblematicEnter), worktime.PGTime(i.ProblematicLeave),
		worktime.PGTime(i.CorrectedEnter), worktime.PGTime(i.CorrectedLeave),
		i.Description,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert attendance issue: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// GetByID implements issue.IssueRepository.
func (r *issueRepositoryImpl) GetByID(ctx context.Context, id string) (issue.Issue, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + issueColumns + ` FROM attendance_issues WHERE id = $1`

	found, err := scanIssue(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return issue.Issue{}, issue.ErrIssueNotFound
		}
		return issue.Issue{}, fmt.Errorf("failed to get attendance issue %s: %w", id, err)
	}
	return found, nil
}

// UpdateStatus implements issue.IssueRepository. The row must still be in status from.
func (r *issueRepositoryImpl) UpdateStatus(ctx context.Context, id string, from, to issue.Status) (issue.Issue, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_issues
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + issueColumns

	updated, err := scanIssue(q.QueryRow(ctx, query, id, from, to))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return issue.Issue{}, fmt.Errorf("%w: issue %s is no longer %s", issue.ErrInvalidTransition, id, from)
		}
		return issue.Issue{}, fmt.Errorf("failed to update attendance issue %s: %w", id, err)
	}
	return updated, nil
}

func scanIssue(row pgx.Row) (issue.Issue, error) {
	var i issue.Issue
	var summaryID *string
	var pEnter, pLeave, cEnter, cLeave pgtype.Time

	err := row.Scan(
		&i.ID, &i.EmployeeID, &i.Date, &summaryID, &i.Status,
		&pEnter, &pLeave, &cEnter, &cLeave,
		&i.Description, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return issue.Issue{}, err
	}

	if summaryID != nil {
		i.DailySummaryID = *summaryID
	}
	i.ProblematicEnter = worktime.ClockPtr(pEnter)
	i.ProblematicLeave = worktime.ClockPtr(pLeave)
	i.CorrectedEnter = worktime.ClockPtr(cEnter)
	i.CorrectedLeave = worktime.ClockPtr(cLeave)
	return i, nil
}
