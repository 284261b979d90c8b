package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrEmailNotConfirmed se trata aparte: el login lo convierte en la
// oferta de reenviar el mail de confirmación.
var ErrEmailNotConfirmed = errors.New("email not confirmed")

var ErrInvalidCredentials = errors.New("credenciales inválidas")

// Client habla con el servicio de autenticación hosteado. Acá no hay
// hash de contraseñas ni emisión de tokens: todo eso queda del otro
// lado del boundary.
type Client struct {
	BaseURL string
	AnonKey string
	HTTP    *http.Client
}

func NewClient(baseURL, anonKey string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		AnonKey: anonKey,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body, _ := json.Marshal(signInRequest{Email: email, Password: password})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/token?grant_type=password", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, "")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.ErrorCode == "email_not_confirmed" ||
			strings.Contains(apiErr.text(), "Email not confirmed") {
			return nil, ErrEmailNotConfirmed
		}
		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, apiErr.text())
		}
		return nil, errors.New(apiErr.text())
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, err
	}
	return &session, nil
}

// ResendConfirmation repite el mail de confirmación de alta.
func (c *Client) ResendConfirmation(ctx context.Context, email string) error {
	body, _ := json.Marshal(resendRequest{Type: "signup", Email: email})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/resend", bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.setHeaders(req, "")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("auth service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var apiErr apiError
		json.NewDecoder(resp.Body).Decode(&apiErr)
		return errors.New(apiErr.text())
	}
	return nil
}

func (c *Client) SignOut(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/logout", nil)
	if err != nil {
		return err
	}
	c.setHeaders(req, token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("auth service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var apiErr apiError
		json.NewDecoder(resp.Body).Decode(&apiErr)
		return errors.New(apiErr.text())
	}
	return nil
}

// GetUser resuelve un Bearer token a la identidad que lo emitió.
func (c *Client) GetUser(ctx context.Context, token string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/user", nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		json.NewDecoder(resp.Body).Decode(&apiErr)
		return nil, errors.New(apiErr.text())
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) setHeaders(req *http.Request, token string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.AnonKey)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.AnonKey)
	}
}
