package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Currency string

// Las dos monedas soportadas. Montos en monedas distintas nunca se
// convierten ni se suman entre sí.
const (
	CurrencyARS Currency = "ARS"
	CurrencyUSD Currency = "USD"
)

func (c Currency) Valid() bool {
	return c == CurrencyARS || c == CurrencyUSD
}

type DealStatus string

const (
	DealPending DealStatus = "pending"
	DealWon     DealStatus = "won"
	DealLost    DealStatus = "lost"
)

var dealStatusLabels = map[DealStatus]string{
	DealPending: "Pendiente",
	DealWon:     "Ganada",
	DealLost:    "Perdida",
}

func (s DealStatus) Valid() bool {
	_, ok := dealStatusLabels[s]
	return ok
}

func (s DealStatus) Label() string {
	return dealStatusLabels[s]
}

// Deal es una oportunidad de venta de un producto a un contacto.
type Deal struct {
	ID          string          `json:"id"`
	ContactID   string          `json:"contact_id"`
	ProductID   string          `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Currency    Currency        `json:"currency"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      DealStatus      `json:"status"`
	Notes       string          `json:"notes,omitempty"`
	CreatedBy   string          `json:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`

	// Joined display fields.
	ContactName    string `json:"contact_name,omitempty"`
	ContactCompany string `json:"contact_company,omitempty"`
	ProductName    string `json:"product_name,omitempty"`
	ProductUnit    string `json:"product_unit,omitempty"`
	CreatedByName  string `json:"created_by_name,omitempty"`
}

// NewDeal calcula el total en el servidor: cantidad × precio unitario.
// Un total enviado por el cliente se ignora siempre.
func NewDeal(contactID, productID string, quantity, unitPrice decimal.Decimal, currency Currency, status DealStatus, notes, createdBy string) (*Deal, error) {
	deal := &Deal{
		ID:          uuid.New().String(),
		ContactID:   contactID,
		ProductID:   productID,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Currency:    currency,
		TotalAmount: quantity.Mul(unitPrice),
		Status:      status,
		Notes:       notes,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
	}

	if err := deal.Validate(); err != nil {
		return nil, err
	}

	return deal, nil
}

func (d *Deal) Validate() error {
	if d.ContactID == "" {
		return errors.New("contact_id is required")
	}
	if d.ProductID == "" {
		return errors.New("product_id is required")
	}
	if !d.Quantity.IsPositive() {
		return errors.New("quantity must be greater than zero")
	}
	if d.UnitPrice.IsNegative() {
		return errors.New("unit_price must not be negative")
	}
	if !d.Currency.Valid() {
		return errors.New("currency must be ARS or USD")
	}
	if !d.Status.Valid() {
		return errors.New("status must be pending, won or lost")
	}
	if !d.TotalAmount.Equal(d.Quantity.Mul(d.UnitPrice)) {
		return errors.New("total_amount does not match quantity × unit_price")
	}
	return nil
}

type DealRepository interface {
	List(ctx context.Context) ([]Deal, error)
	Create(ctx context.Context, d *Deal) error
}
