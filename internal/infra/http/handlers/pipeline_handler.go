package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vendaflow/pipecrm/internal/infra/http/middleware"
	"github.com/vendaflow/pipecrm/internal/usecase"
)

type PipelineHandler struct {
	Store *usecase.PipelineStore
}

func NewPipelineHandler(store *usecase.PipelineStore) *PipelineHandler {
	return &PipelineHandler{Store: store}
}

type TransitionRequest struct {
	Stage string `json:"stage"`
}

type AssignOwnerRequest struct {
	Owner string `json:"owner"`
}

// HandleTransition (PUT /leads/{id}/stage) — drag-and-drop do board.
func (h *PipelineHandler) HandleTransition(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")

	var req TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	lead, err := h.Store.TransitionStage(r.Context(), leadID, req.Stage)
	if err != nil {
		writeUsecaseError(w, err)
		return
	}

	middleware.RecordStageTransition(req.Stage)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lead)
}

// HandleAssignOwner (PUT /leads/{id}/owner)
func (h *PipelineHandler) HandleAssignOwner(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")

	var req AssignOwnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	lead, err := h.Store.AssignOwner(r.Context(), leadID, req.Owner)
	if err != nil {
		writeUsecaseError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lead)
}

// HandleRecordContact (POST /leads/{id}/contact) — log manual de interação.
func (h *PipelineHandler) HandleRecordContact(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")

	lead, err := h.Store.RecordContact(r.Context(), leadID)
	if err != nil {
		writeUsecaseError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lead)
}

// HandleQuery (GET /leads?stage=) — lista em ordem de inserção.
func (h *PipelineHandler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	stage := r.URL.Query().Get("stage")

	leads := h.Store.Query(stage)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(leads)
}

// HandleSummary (GET /pipeline/summary) — contagem e valor por estágio.
func (h *PipelineHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Store.Summary())
}
