package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/logizar/logizar-crm/internal/infra/http/middleware"
	"github.com/logizar/logizar-crm/internal/infra/integration/supabase"
)

// AuthClient es el recorte del cliente de autenticación que usa este
// handler. La emisión y validación de credenciales vive del otro lado.
type AuthClient interface {
	SignIn(ctx context.Context, email, password string) (*supabase.Session, error)
	ResendConfirmation(ctx context.Context, email string) error
	SignOut(ctx context.Context, token string) error
}

type AuthHandler struct {
	Auth AuthClient
}

func NewAuthHandler(auth AuthClient) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resendConfirmationRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "email y contraseña son obligatorios")
		return
	}

	session, err := h.Auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		middleware.RecordAuthFailure()
		// Caso especial: cuenta sin confirmar. El cliente ofrece
		// reenviar el mail de confirmación.
		if errors.Is(err, supabase.ErrEmailNotConfirmed) {
			writeError(w, http.StatusUnauthorized, "email_not_confirmed",
				"Tu email aún no ha sido confirmado. Revisá tu bandeja de entrada.")
			return
		}
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func (h *AuthHandler) HandleResendConfirmation(w http.ResponseWriter, r *http.Request) {
	var req resendConfirmationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "email es obligatorio")
		return
	}

	if err := h.Auth.ResendConfirmation(r.Context(), req.Email); err != nil {
		writeError(w, http.StatusBadGateway, "AUTH_SERVICE_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"sent": true})
}

func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" || token == header {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "falta el token de autenticación")
		return
	}

	if err := h.Auth.SignOut(r.Context(), token); err != nil {
		writeError(w, http.StatusBadGateway, "AUTH_SERVICE_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"signed_out": true})
}

// HandleMe devuelve el perfil resuelto por el middleware. Es lo que usa
// el cliente para la atribución y la puerta de admin.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	profile := middleware.ProfileFromContext(r.Context())
	if profile == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "sesión inválida")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
