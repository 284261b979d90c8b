package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/logizar/logizar-crm/internal/entity"
	"github.com/logizar/logizar-crm/internal/infra/integration/supabase"
)

type contextKey string

const profileKey contextKey = "profile"

type AuthService interface {
	GetUser(ctx context.Context, token string) (*supabase.User, error)
}

// Authenticator resuelve el Bearer token contra el servicio de auth y
// deja el perfil del staff en el contexto. Si el perfil todavía no
// existe en la tabla (alta recién confirmada) se arma uno mínimo con
// los datos de la identidad.
func Authenticator(auth AuthService, profiles entity.ProfileRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				unauthorized(w, "falta el token de autenticación")
				return
			}

			user, err := auth.GetUser(r.Context(), token)
			if err != nil {
				unauthorized(w, "sesión inválida o expirada")
				return
			}

			profile, err := profiles.FindByID(r.Context(), user.ID)
			if err != nil {
				profile = &entity.Profile{
					ID:       user.ID,
					FullName: user.UserMetadata["full_name"],
					Email:    user.Email,
				}
			}

			ctx := context.WithValue(r.Context(), profileKey, profile)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin protege la única acción con puerta de admin: el alta de
// productos.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profile := ProfileFromContext(r.Context())
		if profile == nil || !profile.IsAdmin() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{
					"code":    "FORBIDDEN",
					"message": "sólo un admin puede hacer eso",
				},
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func ProfileFromContext(ctx context.Context) *entity.Profile {
	profile, _ := ctx.Value(profileKey).(*entity.Profile)
	return profile
}

// WithProfile existe para los tests de handlers.
func WithProfile(ctx context.Context, profile *entity.Profile) context.Context {
	return context.WithValue(ctx, profileKey, profile)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": "UNAUTHORIZED", "message": message},
	})
}
