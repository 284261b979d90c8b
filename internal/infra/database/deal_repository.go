package database

import (
	"context"
	"database/sql"

	"github.com/logizar/logizar-crm/internal/entity"
)

type DealRepository struct {
	DB *sql.DB
}

func NewDealRepository(db *sql.DB) *DealRepository {
	return &DealRepository{DB: db}
}

func (r *DealRepository) List(ctx context.Context) ([]entity.Deal, error) {
	query := `
		SELECT d.id, d.contact_id, d.product_id, d.quantity, d.unit_price,
		       d.currency, d.total_amount, d.status, d.notes,
		       d.created_by, d.created_at,
		       c.full_name, c.company, pr.name, pr.unit, p.full_name
		FROM deals d
		JOIN contacts c ON c.id = d.contact_id
		JOIN products pr ON pr.id = d.product_id
		LEFT JOIN profiles p ON p.id = d.created_by
		ORDER BY d.created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deals []entity.Deal
	for rows.Next() {
		var d entity.Deal
		var notes, createdBy, company, createdByName sql.NullString

		err := rows.Scan(
			&d.ID, &d.ContactID, &d.ProductID, &d.Quantity, &d.UnitPrice,
			&d.Currency, &d.TotalAmount, &d.Status, &notes,
			&createdBy, &d.CreatedAt,
			&d.ContactName, &company, &d.ProductName, &d.ProductUnit, &createdByName,
		)
		if err != nil {
			return nil, err
		}

		d.Notes = stringValue(notes)
		d.CreatedBy = stringValue(createdBy)
		d.ContactCompany = stringValue(company)
		d.CreatedByName = stringValue(createdByName)
		deals = append(deals, d)
	}

	return deals, rows.Err()
}

func (r *DealRepository) Create(ctx context.Context, d *entity.Deal) error {
	query := `
		INSERT INTO deals (
			id, contact_id, product_id, quantity, unit_price,
			currency, total_amount, status, notes, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.DB.ExecContext(ctx, query,
		d.ID,
		d.ContactID,
		d.ProductID,
		d.Quantity,
		d.UnitPrice,
		string(d.Currency),
		d.TotalAmount,
		string(d.Status),
		nullString(d.Notes),
		nullString(d.CreatedBy),
		d.CreatedAt,
	)

	return err
}
