package issue

import (
	"context"

	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/summary"
)

// Tracker raises issues for flagged daily summaries.
type Tracker interface {
	// TrackFlagged creates a pending issue per flagged summary and returns how many were created.
	// Failures are logged per summary and never abort the batch.
	TrackFlagged(ctx context.Context, summaries []summary.DailySummary) int

	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (Issue, error)
}
