package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/logizar/logizar-crm/internal/infra/http/middleware"
	"github.com/logizar/logizar-crm/internal/usecase"
)

// IntakeHandler atiende el formulario público de captura de leads. Es
// la variante sin autenticación del alta de contactos: sólo inserta,
// siempre en la etapa inicial.
type IntakeHandler struct {
	CaptureLead *usecase.CaptureLeadUseCase
	rateLimiter *RateLimiter
}

func NewIntakeHandler(captureLead *usecase.CaptureLeadUseCase) *IntakeHandler {
	return &IntakeHandler{
		CaptureLead: captureLead,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min por IP
	}
}

type intakeResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

func (h *IntakeHandler) HandleCapture(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(clientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, intakeResponse{
			Success: false,
			Message: "Demasiados intentos. Probá de nuevo en unos minutos.",
		})
		return
	}

	var input usecase.CaptureLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, intakeResponse{
			Success: false,
			Message: "JSON inválido",
		})
		return
	}

	contact, err := h.CaptureLead.Execute(r.Context(), input)
	if err != nil {
		// El formulario público sí muestra el error al visitante.
		if de, ok := err.(*usecase.DomainError); ok {
			writeJSON(w, domainErrorStatus(de.Code), intakeResponse{
				Success: false,
				Message: de.Message,
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, intakeResponse{
			Success: false,
			Message: "Hubo un error al enviar el formulario. Por favor, intentá nuevamente.",
		})
		return
	}

	middleware.RecordLeadCaptured()
	writeJSON(w, http.StatusCreated, intakeResponse{Success: true, ID: contact.ID})
}
