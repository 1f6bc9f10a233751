package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/summary"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

type SummaryHandler interface {
	GenerateDaily(w http.ResponseWriter, r *http.Request)
	GenerateMonthly(w http.ResponseWriter, r *http.Request)
	GetMonthly(w http.ResponseWriter, r *http.Request)
	UpdateNote(w http.ResponseWriter, r *http.Request)
}

type SummaryHandlerImpl struct {
	dailyService   summary.DailySummaryService
	monthlyService summary.MonthlySummaryService
}

func NewSummaryHandler(dailyService summary.DailySummaryService, monthlyService summary.MonthlySummaryService) SummaryHandler {
	return &SummaryHandlerImpl{
		dailyService:   dailyService,
		monthlyService: monthlyService,
	}
}

// GenerateDaily implements SummaryHandler.
func (h *SummaryHandlerImpl) GenerateDaily(w http.ResponseWriter, r *http.Request) {
	var req summary.GenerateDailyRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("GenerateDaily decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	performedBy, err := middleware.UserID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.PerformedBy = performedBy

	result, err := h.dailyService.GenerateDailySummaries(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Daily summaries generated successfully", result)
}

// GenerateMonthly implements SummaryHandler.
func (h *SummaryHandlerImpl) GenerateMonthly(w http.ResponseWriter, r *http.Request) {
	var req summary.GenerateMonthlyRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("GenerateMonthly decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.monthlyService.GenerateMonthlySummaries(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Monthly summaries generated successfully", result)
}

// GetMonthly implements SummaryHandler.
func (h *SummaryHandlerImpl) GetMonthly(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	yyyymm := chi.URLParam(r, "yyyymm")

	monthly, err := h.monthlyService.GetMonthlySummary(r.Context(), employeeID, yyyymm)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, monthly)
}

// UpdateNote implements SummaryHandler.
func (h *SummaryHandlerImpl) UpdateNote(w http.ResponseWriter, r *http.Request) {
	var req summary.UpdateNoteRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateNote decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")
	req.YearMonth = chi.URLParam(r, "yyyymm")

	monthly, err := h.monthlyService.UpdateNote(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Note updated successfully", monthly)
}
