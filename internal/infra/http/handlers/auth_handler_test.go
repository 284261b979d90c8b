package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/logizar/logizar-crm/internal/infra/http/handlers"
	"github.com/logizar/logizar-crm/internal/infra/integration/supabase"
)

func TestLoginReturnsSession(t *testing.T) {
	mockAuth := new(MockAuthClient)
	mockAuth.On("SignIn", mock.Anything, "maria@logizar.com", "secreta123").Return(&supabase.Session{
		AccessToken: "jwt-token",
		User:        supabase.User{ID: "user-7", Email: "maria@logizar.com"},
	}, nil)

	handler := handlers.NewAuthHandler(mockAuth)

	rec := httptest.NewRecorder()
	handler.HandleLogin(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email": "maria@logizar.com", "password": "secreta123"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)

	var session supabase.Session
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	assert.Equal(t, "jwt-token", session.AccessToken)
}

// La cuenta sin confirmar tiene su propio código para que el cliente
// ofrezca reenviar el mail.
func TestLoginEmailNotConfirmed(t *testing.T) {
	mockAuth := new(MockAuthClient)
	mockAuth.On("SignIn", mock.Anything, "nuevo@logizar.com", "secreta123").
		Return(nil, supabase.ErrEmailNotConfirmed)

	handler := handlers.NewAuthHandler(mockAuth)

	rec := httptest.NewRecorder()
	handler.HandleLogin(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email": "nuevo@logizar.com", "password": "secreta123"}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "email_not_confirmed", resp.Error.Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	mockAuth := new(MockAuthClient)
	mockAuth.On("SignIn", mock.Anything, "maria@logizar.com", "incorrecta").
		Return(nil, supabase.ErrInvalidCredentials)

	handler := handlers.NewAuthHandler(mockAuth)

	rec := httptest.NewRecorder()
	handler.HandleLogin(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email": "maria@logizar.com", "password": "incorrecta"}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginRequiresEmailAndPassword(t *testing.T) {
	mockAuth := new(MockAuthClient)
	handler := handlers.NewAuthHandler(mockAuth)

	rec := httptest.NewRecorder()
	handler.HandleLogin(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email": "maria@logizar.com"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockAuth.AssertNotCalled(t, "SignIn", mock.Anything, mock.Anything, mock.Anything)
}

func TestResendConfirmation(t *testing.T) {
	mockAuth := new(MockAuthClient)
	mockAuth.On("ResendConfirmation", mock.Anything, "nuevo@logizar.com").Return(nil)

	handler := handlers.NewAuthHandler(mockAuth)

	rec := httptest.NewRecorder()
	handler.HandleResendConfirmation(rec, httptest.NewRequest(http.MethodPost, "/api/auth/resend-confirmation",
		strings.NewReader(`{"email": "nuevo@logizar.com"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	mockAuth.AssertCalled(t, "ResendConfirmation", mock.Anything, "nuevo@logizar.com")
}

func TestLogoutRequiresBearerToken(t *testing.T) {
	mockAuth := new(MockAuthClient)
	handler := handlers.NewAuthHandler(mockAuth)

	rec := httptest.NewRecorder()
	handler.HandleLogout(rec, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	mockAuth.AssertNotCalled(t, "SignOut", mock.Anything, mock.Anything)
}

func TestLogoutSignsOut(t *testing.T) {
	mockAuth := new(MockAuthClient)
	mockAuth.On("SignOut", mock.Anything, "jwt-token").Return(nil)

	handler := handlers.NewAuthHandler(mockAuth)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer jwt-token")

	rec := httptest.NewRecorder()
	handler.HandleLogout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockAuth.AssertExpectations(t)
}

func TestAuthServiceDown(t *testing.T) {
	mockAuth := new(MockAuthClient)
	mockAuth.On("ResendConfirmation", mock.Anything, "nuevo@logizar.com").
		Return(errors.New("connection refused"))

	handler := handlers.NewAuthHandler(mockAuth)

	rec := httptest.NewRecorder()
	handler.HandleResendConfirmation(rec, httptest.NewRequest(http.MethodPost, "/api/auth/resend-confirmation",
		strings.NewReader(`{"email": "nuevo@logizar.com"}`)))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
