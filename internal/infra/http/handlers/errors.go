package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vendaflow/pipecrm/internal/usecase"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Success: false, Message: message})
}

// writeUsecaseError traduz a taxonomia de erros do core para HTTP.
func writeUsecaseError(w http.ResponseWriter, err error) {
	var notFound *usecase.NotFoundError
	if errors.As(err, &notFound) {
		writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}

	var invalidStage *usecase.InvalidStageError
	if errors.As(err, &invalidStage) {
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if usecase.IsDomainError(err) {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSONError(w, http.StatusInternalServerError, err.Error())
}
