package entity

import (
	"context"
	"errors"
)

var ErrProfileNotFound = errors.New("perfil no encontrado")

const RoleAdmin = "admin"

// Profile es el usuario de staff. Comparte el ID con la identidad del
// servicio de autenticación y se usa para atribución y para la única
// puerta de admin de la UI (alta de productos).
type Profile struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
}

func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

type ProfileRepository interface {
	FindByID(ctx context.Context, id string) (*Profile, error)
}
