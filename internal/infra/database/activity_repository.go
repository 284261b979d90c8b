package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/logizar/logizar-crm/internal/entity"
)

type ActivityRepository struct {
	DB *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

const activityQuery = `
	SELECT a.id, a.contact_id, a.type, a.subject, a.description,
	       a.created_by, a.created_at,
	       c.full_name, c.company, p.full_name
	FROM activities a
	JOIN contacts c ON c.id = a.contact_id
	LEFT JOIN profiles p ON p.id = a.created_by
`

func (r *ActivityRepository) ListAll(ctx context.Context) ([]entity.Activity, error) {
	return r.list(ctx, activityQuery+` ORDER BY a.created_at DESC`)
}

func (r *ActivityRepository) ListByContact(ctx context.Context, contactID string) ([]entity.Activity, error) {
	return r.list(ctx, activityQuery+` WHERE a.contact_id = $1 ORDER BY a.created_at DESC`, contactID)
}

func (r *ActivityRepository) list(ctx context.Context, query string, args ...any) ([]entity.Activity, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []entity.Activity
	for rows.Next() {
		var a entity.Activity
		var subject, createdBy, company, createdByName sql.NullString

		err := rows.Scan(
			&a.ID, &a.ContactID, &a.Type, &subject, &a.Description,
			&createdBy, &a.CreatedAt,
			&a.ContactName, &company, &createdByName,
		)
		if err != nil {
			return nil, err
		}

		a.Subject = stringValue(subject)
		a.CreatedBy = stringValue(createdBy)
		a.ContactCompany = stringValue(company)
		a.CreatedByName = stringValue(createdByName)
		activities = append(activities, a)
	}

	return activities, rows.Err()
}

// Create inserta la fila y completa el nombre del creador para que el
// handler devuelva la actividad lista para mostrar.
func (r *ActivityRepository) Create(ctx context.Context, a *entity.Activity) error {
	query := `
		INSERT INTO activities (id, contact_id, type, subject, description, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.DB.ExecContext(ctx, query,
		a.ID,
		a.ContactID,
		string(a.Type),
		nullString(a.Subject),
		a.Description,
		nullString(a.CreatedBy),
		a.CreatedAt,
	)
	if err != nil {
		return err
	}

	if a.CreatedBy != "" {
		var name sql.NullString
		err := r.DB.QueryRowContext(ctx,
			`SELECT full_name FROM profiles WHERE id = $1`, a.CreatedBy,
		).Scan(&name)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		a.CreatedByName = stringValue(name)
	}

	return nil
}
