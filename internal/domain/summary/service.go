package summary

import "context"

// DailySummaryService reconciles raw events and attendance records into daily summaries.
type DailySummaryService interface {
	// GenerateDailySummaries recomputes every daily summary of a month in one transaction
	GenerateDailySummaries(ctx context.Context, req GenerateDailyRequest) (GenerateDailyResult, error)
}

// MonthlySummaryService rolls daily summaries up into monthly summaries.
type MonthlySummaryService interface {
	GenerateMonthlySummary(ctx context.Context, employeeID string, yyyymm string) (MonthlySummary, error)

	// GenerateMonthlySummaries runs GenerateMonthlySummary for every employee with daily summaries in the month
	GenerateMonthlySummaries(ctx context.Context, req GenerateMonthlyRequest) (GenerateMonthlyResult, error)

	GetMonthlySummary(ctx context.Context, employeeID string, yyyymm string) (MonthlySummary, error)
	UpdateNote(ctx context.Context, req UpdateNoteRequest) (MonthlySummary, error)
}
