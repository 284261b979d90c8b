package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/logizar/logizar-crm/internal/entity"
)

type DealInput struct {
	ContactID string          `json:"contact_id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Currency  string          `json:"currency"`
	Status    string          `json:"status"`
	Notes     string          `json:"notes"`
}

type CreateDealUseCase struct {
	Deals    entity.DealRepository
	Contacts entity.ContactRepository
	Products entity.ProductRepository
}

func NewCreateDealUseCase(deals entity.DealRepository, contacts entity.ContactRepository, products entity.ProductRepository) *CreateDealUseCase {
	return &CreateDealUseCase{Deals: deals, Contacts: contacts, Products: products}
}

// Execute crea la oportunidad. El total nunca viene del cliente: se
// recalcula acá como cantidad × precio unitario.
func (uc *CreateDealUseCase) Execute(ctx context.Context, input DealInput, createdBy string) (*entity.Deal, error) {
	var errs []ValidationError
	if input.ContactID == "" {
		errs = append(errs, ValidationError{"contact_id", "is required"})
	}
	if input.ProductID == "" {
		errs = append(errs, ValidationError{"product_id", "is required"})
	}
	if !input.Quantity.IsPositive() {
		errs = append(errs, ValidationError{"quantity", "must be greater than zero"})
	}
	if input.UnitPrice.IsNegative() {
		errs = append(errs, ValidationError{"unit_price", "must not be negative"})
	}
	if !entity.Currency(input.Currency).Valid() {
		errs = append(errs, ValidationError{"currency", "must be ARS or USD"})
	}
	status := entity.DealStatus(input.Status)
	if input.Status == "" {
		status = entity.DealPending
	} else if !status.Valid() {
		errs = append(errs, ValidationError{"status", "must be pending, won or lost"})
	}
	if len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	contact, err := uc.Contacts.FindByID(ctx, input.ContactID)
	if err != nil {
		return nil, &DomainError{Code: "CONTACT_NOT_FOUND", Message: entity.ErrContactNotFound.Error()}
	}

	product, err := uc.Products.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, &DomainError{Code: "PRODUCT_NOT_FOUND", Message: entity.ErrProductNotFound.Error()}
	}

	deal, err := entity.NewDeal(
		contact.ID, product.ID,
		input.Quantity, input.UnitPrice,
		entity.Currency(input.Currency), status,
		input.Notes, createdBy,
	)
	if err != nil {
		return nil, &DomainError{Code: "INVALID_DEAL", Message: err.Error()}
	}

	if err := uc.Deals.Create(ctx, deal); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to create deal: " + err.Error()}
	}

	deal.ContactName = contact.FullName
	deal.ContactCompany = contact.Company
	deal.ProductName = product.Name
	deal.ProductUnit = product.Unit

	return deal, nil
}
