package issue

import "context"

type IssueRepository interface {
	// CreateIfAbsent inserts the issue unless one already exists for the same
	// employee and date. created is false when the insert was skipped.
	CreateIfAbsent(ctx context.Context, issue Issue) (created bool, err error)
	GetByID(ctx context.Context, id string) (Issue, error)
	UpdateStatus(ctx context.Context, id string, from, to Status) (Issue, error)
}
