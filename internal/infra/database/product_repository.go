package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/logizar/logizar-crm/internal/entity"
)

type ProductRepository struct {
	DB *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{DB: db}
}

const productColumns = `
	id, name, description, unit, dilution_ratio,
	base_price_ars, base_price_usd, is_active, created_at
`

func (r *ProductRepository) List(ctx context.Context) ([]entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name ASC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		var p entity.Product
		var description, dilution sql.NullString

		err := rows.Scan(
			&p.ID, &p.Name, &description, &p.Unit, &dilution,
			&p.BasePriceARS, &p.BasePriceUSD, &p.IsActive, &p.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		p.Description = stringValue(description)
		p.DilutionRatio = stringValue(dilution)
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p entity.Product
	var description, dilution sql.NullString

	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &description, &p.Unit, &dilution,
		&p.BasePriceARS, &p.BasePriceUSD, &p.IsActive, &p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	p.Description = stringValue(description)
	p.DilutionRatio = stringValue(dilution)
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (
			id, name, description, unit, dilution_ratio,
			base_price_ars, base_price_usd, is_active, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.DB.ExecContext(ctx, query,
		p.ID,
		p.Name,
		nullString(p.Description),
		p.Unit,
		nullString(p.DilutionRatio),
		p.BasePriceARS,
		p.BasePriceUSD,
		p.IsActive,
		p.CreatedAt,
	)

	return err
}
