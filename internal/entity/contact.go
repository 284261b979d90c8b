package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrContactNotFound = errors.New("contacto no encontrado")

// Lead sources offered by the contact dialog and the public form.
const (
	SourceWeb      = "web"
	SourceReferral = "referral"
	SourceSocial   = "social"
	SourceCampaign = "campaign"
	SourceOther    = "other"
)

var sourceLabels = map[string]string{
	SourceWeb:      "Sitio Web",
	SourceReferral: "Referido",
	SourceSocial:   "Redes Sociales",
	SourceCampaign: "Campaña",
	SourceOther:    "Otro",
}

func ValidSource(s string) bool {
	_, ok := sourceLabels[s]
	return ok
}

func SourceLabel(s string) string {
	return sourceLabels[s]
}

type Contact struct {
	ID         string    `json:"id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Company    string    `json:"company,omitempty"`
	Position   string    `json:"position,omitempty"`
	Source     string    `json:"source,omitempty"`
	Stage      Stage     `json:"stage"`
	StageOrder int       `json:"stage_order"`
	Notes      string    `json:"notes,omitempty"`
	AssignedTo string    `json:"assigned_to,omitempty"`
	CreatedBy  string    `json:"created_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Joined display names, populated on reads only. Never written back.
	AssignedToName string `json:"assigned_to_name,omitempty"`
	CreatedByName  string `json:"created_by_name,omitempty"`
}

// NewContact monta un contacto nuevo. StageOrder siempre se deriva de la
// etapa, nunca viene del cliente.
func NewContact(fullName string, stage Stage, createdBy string) (*Contact, error) {
	now := time.Now()
	contact := &Contact{
		ID:         uuid.New().String(),
		FullName:   fullName,
		Stage:      stage,
		StageOrder: stage.Order(),
		CreatedBy:  createdBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := contact.Validate(); err != nil {
		return nil, err
	}

	return contact, nil
}

func (c *Contact) Validate() error {
	if c.FullName == "" {
		return errors.New("full_name is required")
	}
	if !c.Stage.Valid() {
		return errors.New("stage is invalid")
	}
	if c.StageOrder != c.Stage.Order() {
		return errors.New("stage_order does not match stage")
	}
	return nil
}

// SetStage mueve el contacto manteniendo stage y stage_order consistentes.
func (c *Contact) SetStage(stage Stage) {
	c.Stage = stage
	c.StageOrder = stage.Order()
	c.UpdatedAt = time.Now()
}

type ContactRepository interface {
	List(ctx context.Context) ([]Contact, error)
	FindByID(ctx context.Context, id string) (*Contact, error)
	Create(ctx context.Context, c *Contact) error
	Update(ctx context.Context, c *Contact) error
	UpdateStage(ctx context.Context, id string, stage Stage, stageOrder int, updatedAt time.Time) error
}
