package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vendaflow/pipecrm/internal/entity"
	"github.com/vendaflow/pipecrm/internal/infra/http/middleware"
	"github.com/vendaflow/pipecrm/internal/usecase"
)

type ReminderHandler struct {
	Engine *usecase.ReminderEngine
}

func NewReminderHandler(engine *usecase.ReminderEngine) *ReminderHandler {
	return &ReminderHandler{Engine: engine}
}

type RemindersResponse struct {
	Reminders []entity.FollowUpReminder `json:"reminders"`
	Summary   usecase.ReminderSummary   `json:"summary"`
}

type AcknowledgeRequest struct {
	ActionType string `json:"action_type"`
}

type AcknowledgeResponse struct {
	Success bool `json:"success"`
}

// HandleList (GET /reminders) — lista ordenada + resumo para o badge.
func (h *ReminderHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	reminders := h.Engine.Evaluate()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(RemindersResponse{
		Reminders: reminders,
		Summary:   usecase.Summarize(reminders),
	})
}

// HandleAcknowledge (POST /reminders/{leadId}/acknowledge)
func (h *ReminderHandler) HandleAcknowledge(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadId")

	var req AcknowledgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.Engine.Acknowledge(r.Context(), leadID, req.ActionType); err != nil {
		writeUsecaseError(w, err)
		return
	}

	middleware.RecordAcknowledgment(req.ActionType)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AcknowledgeResponse{Success: true})
}
