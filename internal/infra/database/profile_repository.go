package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/logizar/logizar-crm/internal/entity"
)

type ProfileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*entity.Profile, error) {
	query := `SELECT id, full_name, email, role FROM profiles WHERE id = $1`

	var p entity.Profile
	var email sql.NullString

	err := r.DB.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.FullName, &email, &p.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	p.Email = stringValue(email)
	return &p, nil
}
