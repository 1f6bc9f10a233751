package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/issue"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

type IssueHandler interface {
	UpdateStatus(w http.ResponseWriter, r *http.Request)
}

type IssueHandlerImpl struct {
	tracker issue.Tracker
}

func NewIssueHandler(tracker issue.Tracker) IssueHandler {
	return &IssueHandlerImpl{tracker: tracker}
}

// UpdateStatus implements IssueHandler.
func (h *IssueHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req issue.UpdateStatusRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateStatus decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.tracker.UpdateStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance issue updated successfully", updated)
}
