package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/logizar/logizar-crm/internal/entity"
)

var ErrDuplicateContact = errors.New("ya existe un contacto con ese email")

type ContactRepository struct {
	DB *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

const contactColumns = `
	c.id, c.full_name, c.email, c.phone, c.company, c.position, c.source,
	c.stage, c.stage_order, c.notes, c.assigned_to, c.created_by,
	c.created_at, c.updated_at,
	ap.full_name, cp.full_name
`

const contactJoins = `
	FROM contacts c
	LEFT JOIN profiles ap ON ap.id = c.assigned_to
	LEFT JOIN profiles cp ON cp.id = c.created_by
`

// List devuelve los contactos en el orden del tablero: por columna
// (stage_order) y dentro de cada columna el más reciente primero.
func (r *ContactRepository) List(ctx context.Context) ([]entity.Contact, error) {
	query := `SELECT ` + contactColumns + contactJoins + `
		ORDER BY c.stage_order ASC, c.updated_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []entity.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *contact)
	}

	return contacts, rows.Err()
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*entity.Contact, error) {
	query := `SELECT ` + contactColumns + contactJoins + ` WHERE c.id = $1`

	contact, err := scanContact(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrContactNotFound
	}
	if err != nil {
		return nil, err
	}
	return contact, nil
}

func (r *ContactRepository) Create(ctx context.Context, c *entity.Contact) error {
	query := `
		INSERT INTO contacts (
			id, full_name, email, phone, company, position, source,
			stage, stage_order, notes, assigned_to, created_by,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.FullName,
		nullString(c.Email),
		nullString(c.Phone),
		nullString(c.Company),
		nullString(c.Position),
		nullString(c.Source),
		string(c.Stage),
		c.StageOrder,
		nullString(c.Notes),
		nullString(c.AssignedTo),
		nullString(c.CreatedBy),
		c.CreatedAt,
		c.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateContact
		}
		return err
	}

	return nil
}

// Update escribe el registro completo, como hace el diálogo de edición.
func (r *ContactRepository) Update(ctx context.Context, c *entity.Contact) error {
	query := `
		UPDATE contacts SET
			full_name = $1, email = $2, phone = $3, company = $4,
			position = $5, source = $6, stage = $7, stage_order = $8,
			notes = $9, assigned_to = $10, updated_at = $11
		WHERE id = $12
	`

	result, err := r.DB.ExecContext(ctx, query,
		c.FullName,
		nullString(c.Email),
		nullString(c.Phone),
		nullString(c.Company),
		nullString(c.Position),
		nullString(c.Source),
		string(c.Stage),
		c.StageOrder,
		nullString(c.Notes),
		nullString(c.AssignedTo),
		c.UpdatedAt,
		c.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return entity.ErrContactNotFound
	}

	return nil
}

// UpdateStage es la escritura del drag-and-drop: una sola fila, sin
// detección de conflictos (last-write-wins).
func (r *ContactRepository) UpdateStage(ctx context.Context, id string, stage entity.Stage, stageOrder int, updatedAt time.Time) error {
	query := `UPDATE contacts SET stage = $1, stage_order = $2, updated_at = $3 WHERE id = $4`

	result, err := r.DB.ExecContext(ctx, query, string(stage), stageOrder, updatedAt, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return entity.ErrContactNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (*entity.Contact, error) {
	var c entity.Contact
	var email, phone, company, position, source, notes sql.NullString
	var assignedTo, createdBy, assignedName, createdByName sql.NullString

	err := row.Scan(
		&c.ID, &c.FullName, &email, &phone, &company, &position, &source,
		&c.Stage, &c.StageOrder, &notes, &assignedTo, &createdBy,
		&c.CreatedAt, &c.UpdatedAt,
		&assignedName, &createdByName,
	)
	if err != nil {
		return nil, err
	}

	c.Email = stringValue(email)
	c.Phone = stringValue(phone)
	c.Company = stringValue(company)
	c.Position = stringValue(position)
	c.Source = stringValue(source)
	c.Notes = stringValue(notes)
	c.AssignedTo = stringValue(assignedTo)
	c.CreatedBy = stringValue(createdBy)
	c.AssignedToName = stringValue(assignedName)
	c.CreatedByName = stringValue(createdByName)

	return &c, nil
}
