package usecase

import (
	"context"
	"strings"

	"github.com/logizar/logizar-crm/internal/entity"
)

type ActivityInput struct {
	Type        string `json:"type"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

// LogActivityUseCase agrega una entrada al historial de un contacto.
// El historial es append-only: no hay edición ni retractación.
type LogActivityUseCase struct {
	Activities entity.ActivityRepository
	Contacts   entity.ContactRepository
}

func NewLogActivityUseCase(activities entity.ActivityRepository, contacts entity.ContactRepository) *LogActivityUseCase {
	return &LogActivityUseCase{Activities: activities, Contacts: contacts}
}

func (uc *LogActivityUseCase) Execute(ctx context.Context, contactID string, input ActivityInput, createdBy string) (*entity.Activity, error) {
	var errs []ValidationError
	if !entity.ActivityType(input.Type).Valid() {
		errs = append(errs, ValidationError{"type", "is unknown"})
	}
	if strings.TrimSpace(input.Description) == "" {
		errs = append(errs, ValidationError{"description", "is required"})
	}
	if len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	if _, err := uc.Contacts.FindByID(ctx, contactID); err != nil {
		return nil, &DomainError{Code: "CONTACT_NOT_FOUND", Message: entity.ErrContactNotFound.Error()}
	}

	activity, err := entity.NewActivity(contactID, entity.ActivityType(input.Type), input.Subject, input.Description, createdBy)
	if err != nil {
		return nil, &DomainError{Code: "INVALID_ACTIVITY", Message: err.Error()}
	}

	// Create fills CreatedByName for the immediate prepend in the UI.
	if err := uc.Activities.Create(ctx, activity); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to log activity: " + err.Error()}
	}

	return activity, nil
}
