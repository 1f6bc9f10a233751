package issue

import "errors"

var (
	ErrIssueNotFound     = errors.New("attendance issue not found")
	ErrInvalidTransition = errors.New("attendance issue status transition not allowed")
)
