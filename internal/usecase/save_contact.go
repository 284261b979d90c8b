package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/logizar/logizar-crm/internal/entity"
)

type ContactInput struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Company    string `json:"company"`
	Position   string `json:"position"`
	Source     string `json:"source"`
	Stage      string `json:"stage"`
	Notes      string `json:"notes"`
	AssignedTo string `json:"assigned_to"`
}

// SaveContactUseCase cubre el diálogo de alta/edición de contactos.
// En ambos caminos stage_order se deriva de la etapa elegida.
type SaveContactUseCase struct {
	Contacts entity.ContactRepository
}

func NewSaveContactUseCase(contacts entity.ContactRepository) *SaveContactUseCase {
	return &SaveContactUseCase{Contacts: contacts}
}

func validateContactInput(input ContactInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.FullName) == "" {
		errs = append(errs, ValidationError{"full_name", "is required"})
	}
	if input.Email != "" && !isValidEmail(input.Email) {
		errs = append(errs, ValidationError{"email", "is invalid"})
	}
	if input.Source != "" && !entity.ValidSource(input.Source) {
		errs = append(errs, ValidationError{"source", "is unknown"})
	}
	return errs
}

func (uc *SaveContactUseCase) Create(ctx context.Context, input ContactInput, createdBy string) (*entity.Contact, error) {
	if errs := validateContactInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	stage := entity.StageNew
	if input.Stage != "" {
		parsed, err := entity.ParseStage(input.Stage)
		if err != nil {
			return nil, &DomainError{Code: "INVALID_STAGE", Message: err.Error()}
		}
		stage = parsed
	}

	contact, err := entity.NewContact(input.FullName, stage, createdBy)
	if err != nil {
		return nil, &DomainError{Code: "INVALID_CONTACT", Message: err.Error()}
	}
	applyContactInput(contact, input)

	if err := uc.Contacts.Create(ctx, contact); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to create contact: " + err.Error()}
	}

	return contact, nil
}

// Update escribe el registro completo. Reenviar el diálogo sin cambios
// produce el mismo registro salvo updated_at.
func (uc *SaveContactUseCase) Update(ctx context.Context, id string, input ContactInput) (*entity.Contact, error) {
	if errs := validateContactInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	stage, err := entity.ParseStage(input.Stage)
	if err != nil {
		return nil, &DomainError{Code: "INVALID_STAGE", Message: err.Error()}
	}

	contact, err := uc.Contacts.FindByID(ctx, id)
	if err != nil {
		return nil, &DomainError{Code: "CONTACT_NOT_FOUND", Message: entity.ErrContactNotFound.Error()}
	}

	contact.FullName = input.FullName
	applyContactInput(contact, input)
	contact.Stage = stage
	contact.StageOrder = stage.Order()
	contact.UpdatedAt = time.Now()

	if err := uc.Contacts.Update(ctx, contact); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to update contact: " + err.Error()}
	}

	return contact, nil
}

func applyContactInput(c *entity.Contact, input ContactInput) {
	c.Email = input.Email
	c.Phone = input.Phone
	c.Company = input.Company
	c.Position = input.Position
	c.Source = input.Source
	c.Notes = input.Notes
	c.AssignedTo = input.AssignedTo
}
