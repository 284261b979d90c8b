package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ActivityType clasifica una interacción registrada con un contacto.
type ActivityType string

const (
	ActivityCall     ActivityType = "call"
	ActivityWhatsApp ActivityType = "whatsapp"
	ActivityEmail    ActivityType = "email"
	ActivityNote     ActivityType = "note"
	ActivityMeeting  ActivityType = "meeting"
)

var activityLabels = map[ActivityType]string{
	ActivityCall:     "Llamada",
	ActivityWhatsApp: "WhatsApp",
	ActivityEmail:    "Email",
	ActivityNote:     "Nota",
	ActivityMeeting:  "Reunión",
}

func (t ActivityType) Valid() bool {
	_, ok := activityLabels[t]
	return ok
}

func (t ActivityType) Label() string {
	return activityLabels[t]
}

// Activity es una entrada inmutable del historial de un contacto.
// No existe edición ni borrado: sólo insert y lectura.
type Activity struct {
	ID          string       `json:"id"`
	ContactID   string       `json:"contact_id"`
	Type        ActivityType `json:"type"`
	Subject     string       `json:"subject,omitempty"`
	Description string       `json:"description"`
	CreatedBy   string       `json:"created_by,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`

	// Joined display fields.
	ContactName    string `json:"contact_name,omitempty"`
	ContactCompany string `json:"contact_company,omitempty"`
	CreatedByName  string `json:"created_by_name,omitempty"`
}

func NewActivity(contactID string, activityType ActivityType, subject, description, createdBy string) (*Activity, error) {
	activity := &Activity{
		ID:          uuid.New().String(),
		ContactID:   contactID,
		Type:        activityType,
		Subject:     subject,
		Description: description,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
	}

	if err := activity.Validate(); err != nil {
		return nil, err
	}

	return activity, nil
}

func (a *Activity) Validate() error {
	if a.ContactID == "" {
		return errors.New("contact_id is required")
	}
	if !a.Type.Valid() {
		return errors.New("type is invalid")
	}
	if a.Description == "" {
		return errors.New("description is required")
	}
	return nil
}

type ActivityRepository interface {
	ListAll(ctx context.Context) ([]Activity, error)
	ListByContact(ctx context.Context, contactID string) ([]Activity, error)
	// Create inserts the row and fills CreatedByName so the caller can
	// prepend the result straight into the visible timeline.
	Create(ctx context.Context, a *Activity) error
}
