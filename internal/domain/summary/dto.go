package summary

import (
	"github.com/cmlabs-hris/hris-attendance-engine/internal/pkg/validator"
)

// ========================================
// DAILY SUMMARY GENERATION
// ========================================

type GenerateDailyRequest struct {
	Year        int    `json:"year" validate:"gte=1900,lte=9999"`
	Month       int    `json:"month" validate:"gte=1,lte=12"`
	PerformedBy string `json:"-" validate:"notblank"`

	// Precomputed rows, e.g. from a historical import. When non-nil the
	// reconciliation is skipped and these rows are written as-is.
	Snapshot []DailySummary `json:"snapshot,omitempty"`
}

func (r *GenerateDailyRequest) Validate() error {
	return validator.Struct(r)
}

type GenerateDailyResult struct {
	SummaryCount int `json:"summary_count"`
	IssueCount   int `json:"issue_count"`
}

// ========================================
// MONTHLY SUMMARY GENERATION
// ========================================

type GenerateMonthlyRequest struct {
	YearMonth  string  `json:"yyyymm" validate:"yyyymm"`
	EmployeeID *string `json:"employee_id,omitempty" validate:"omitnil,notblank"`
}

func (r *GenerateMonthlyRequest) Validate() error {
	return validator.Struct(r)
}

type GenerateMonthlyResult struct {
	YearMonth string           `json:"yyyymm"`
	Summaries []MonthlySummary `json:"summaries"`
}

type UpdateNoteRequest struct {
	EmployeeID string  `json:"-" validate:"notblank"`
	YearMonth  string  `json:"-" validate:"yyyymm"`
	Note       *string `json:"note" validate:"omitnil,max=2000"`
}

func (r *UpdateNoteRequest) Validate() error {
	return validator.Struct(r)
}
