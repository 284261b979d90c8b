package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrProductNotFound = errors.New("producto no encontrado")

// Unidades de venta del catálogo.
const (
	UnitLiter = "liter"
	UnitKilo  = "kilo"
)

var unitLabels = map[string]string{
	UnitLiter: "Litro",
	UnitKilo:  "Kilo",
}

func ValidUnit(u string) bool {
	_, ok := unitLabels[u]
	return ok
}

func UnitLabel(u string) string {
	return unitLabels[u]
}

type Product struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Description   string              `json:"description,omitempty"`
	Unit          string              `json:"unit"`
	DilutionRatio string              `json:"dilution_ratio,omitempty"`
	BasePriceARS  decimal.NullDecimal `json:"base_price_ars"`
	BasePriceUSD  decimal.NullDecimal `json:"base_price_usd"`
	IsActive      bool                `json:"is_active"`
	CreatedAt     time.Time           `json:"created_at"`
}

func NewProduct(name, description, unit, dilutionRatio string, priceARS, priceUSD decimal.NullDecimal) (*Product, error) {
	product := &Product{
		ID:            uuid.New().String(),
		Name:          name,
		Description:   description,
		Unit:          unit,
		DilutionRatio: dilutionRatio,
		BasePriceARS:  priceARS,
		BasePriceUSD:  priceUSD,
		IsActive:      true,
		CreatedAt:     time.Now(),
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	return product, nil
}

func (p *Product) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if !ValidUnit(p.Unit) {
		return errors.New("unit must be liter or kilo")
	}
	if p.BasePriceARS.Valid && p.BasePriceARS.Decimal.IsNegative() {
		return errors.New("base_price_ars must not be negative")
	}
	if p.BasePriceUSD.Valid && p.BasePriceUSD.Decimal.IsNegative() {
		return errors.New("base_price_usd must not be negative")
	}
	return nil
}

type ProductRepository interface {
	// List returns the whole catalog, inactive products included. The
	// handler decides how much of it the caller may see.
	List(ctx context.Context) ([]Product, error)
	FindByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, p *Product) error
}
