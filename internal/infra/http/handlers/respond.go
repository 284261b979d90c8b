package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/logizar/logizar-crm/internal/usecase"
)

// Política única de errores: toda falla vuelve al cliente como
// {"error": {"code", "message"}}. Nada se traga en silencio.

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: message}})
}

func writeUsecaseError(w http.ResponseWriter, err error) {
	if de, ok := err.(*usecase.DomainError); ok {
		writeError(w, domainErrorStatus(de.Code), de.Code, de.Message)
		return
	}
	if te, ok := err.(*usecase.TechnicalError); ok {
		log.Printf("[api] error técnico %s: %s", te.Code, te.Message)
		writeError(w, http.StatusInternalServerError, te.Code, "error interno, intentá de nuevo")
		return
	}
	log.Printf("[api] error inesperado: %v", err)
	writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "error interno, intentá de nuevo")
}

func domainErrorStatus(code string) int {
	switch {
	case code == "VALIDATION_ERROR":
		return http.StatusUnprocessableEntity
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	case code == "INVALID_TRANSITION":
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
