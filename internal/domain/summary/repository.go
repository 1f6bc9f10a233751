package summary

import (
	"context"
	"time"
)

// DailySummaryRepository persists daily summaries with soft-delete and revive semantics.
type DailySummaryRepository interface {
	// SoftDeleteBetween marks every live row in [start, end] as deleted and returns the count.
	SoftDeleteBetween(ctx context.Context, start, end time.Time) (int64, error)

	// UpsertBatch writes rows by natural key in chunks of batchSize. Existing rows,
	// deleted or not, are revived and overwritten. Returned rows carry their stored IDs.
	UpsertBatch(ctx context.Context, rows []DailySummary, batchSize int) ([]DailySummary, error)

	// ListByEmployeeBetween returns live rows ordered by date.
	ListByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]DailySummary, error)

	// ListEmployeeIDsBetween returns the distinct employees having live rows in the range.
	ListEmployeeIDsBetween(ctx context.Context, start, end time.Time) ([]string, error)
}

// MonthlySummaryRepository persists monthly summaries by (employee_id, yyyymm).
type MonthlySummaryRepository interface {
	// Upsert overwrites every derived field and leaves Note untouched on existing rows.
	Upsert(ctx context.Context, s MonthlySummary) (MonthlySummary, error)
	Get(ctx context.Context, employeeID string, ym YearMonth) (MonthlySummary, error)
	UpdateNote(ctx context.Context, employeeID string, ym YearMonth, note *string) (MonthlySummary, error)
}
