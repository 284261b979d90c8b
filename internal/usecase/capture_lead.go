package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/logizar/logizar-crm/internal/entity"
	"github.com/logizar/logizar-crm/internal/infra/queue"
)

type CaptureLeadInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
	Position string `json:"position"`
	Source   string `json:"source"`
	Notes    string `json:"notes"`
}

type LeadEventPublisher interface {
	PublishLeadCaptured(ctx context.Context, payload queue.LeadCapturedPayload) error
}

// CaptureLeadUseCase respalda el formulario público. Sólo inserta
// contactos nuevos, siempre en la etapa inicial, y sin creador (el
// visitante no está autenticado).
type CaptureLeadUseCase struct {
	Contacts entity.ContactRepository
	Events   LeadEventPublisher
}

func NewCaptureLeadUseCase(contacts entity.ContactRepository, events LeadEventPublisher) *CaptureLeadUseCase {
	return &CaptureLeadUseCase{Contacts: contacts, Events: events}
}

func (uc *CaptureLeadUseCase) Execute(ctx context.Context, input CaptureLeadInput) (*entity.Contact, error) {
	var errs []ValidationError
	if strings.TrimSpace(input.FullName) == "" {
		errs = append(errs, ValidationError{"full_name", "is required"})
	}
	if strings.TrimSpace(input.Email) == "" {
		errs = append(errs, ValidationError{"email", "is required"})
	} else if !isValidEmail(input.Email) {
		errs = append(errs, ValidationError{"email", "is invalid"})
	}
	if strings.TrimSpace(input.Phone) == "" {
		errs = append(errs, ValidationError{"phone", "is required"})
	} else if !isValidPhoneNumber(input.Phone) {
		errs = append(errs, ValidationError{"phone", "must be a valid phone number"})
	}
	if len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	source := input.Source
	if source == "" {
		source = entity.SourceWeb
	}
	if !entity.ValidSource(source) {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "validation failed: source (is unknown)"}
	}

	contact, err := entity.NewContact(input.FullName, entity.StageNew, "")
	if err != nil {
		return nil, &DomainError{Code: "INVALID_CONTACT", Message: err.Error()}
	}
	contact.Email = input.Email
	contact.Phone = input.Phone
	contact.Company = input.Company
	contact.Position = input.Position
	contact.Source = source
	contact.Notes = input.Notes

	if err := uc.Contacts.Create(ctx, contact); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to capture lead: " + err.Error()}
	}

	// El lead ya quedó guardado: si la cola falla sólo se pierde el
	// aviso por email, no el dato. Se loguea y se sigue.
	if uc.Events != nil {
		payload := queue.LeadCapturedPayload{
			ContactID: contact.ID,
			FullName:  contact.FullName,
			Email:     contact.Email,
			Phone:     contact.Phone,
			Company:   contact.Company,
			Source:    contact.Source,
			Notes:     contact.Notes,
			CreatedAt: contact.CreatedAt,
		}
		if err := uc.Events.PublishLeadCaptured(ctx, payload); err != nil {
			log.Printf("[capture-lead] no se pudo publicar el evento: %v", err)
		}
	}

	return contact, nil
}
