package usecase

import (
	"context"

	"github.com/logizar/logizar-crm/internal/entity"
)

// MoveStageUseCase respalda el drag-and-drop del tablero. Escribe
// {stage, stage_order, updated_at} en una sola fila; si la escritura
// falla el contacto queda como estaba (last-write-wins, sin detección
// de conflictos).
type MoveStageUseCase struct {
	Contacts entity.ContactRepository
}

func NewMoveStageUseCase(contacts entity.ContactRepository) *MoveStageUseCase {
	return &MoveStageUseCase{Contacts: contacts}
}

func (uc *MoveStageUseCase) Execute(ctx context.Context, contactID, stageName string) (*entity.Contact, error) {
	stage, err := entity.ParseStage(stageName)
	if err != nil {
		return nil, &DomainError{Code: "INVALID_STAGE", Message: err.Error()}
	}

	contact, err := uc.Contacts.FindByID(ctx, contactID)
	if err != nil {
		return nil, &DomainError{Code: "CONTACT_NOT_FOUND", Message: entity.ErrContactNotFound.Error()}
	}

	if !contact.Stage.CanMoveTo(stage) {
		return nil, &DomainError{Code: "INVALID_TRANSITION", Message: "no se puede mover a esa etapa"}
	}

	contact.SetStage(stage)

	if err := uc.Contacts.UpdateStage(ctx, contact.ID, contact.Stage, contact.StageOrder, contact.UpdatedAt); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to move contact: " + err.Error()}
	}

	return contact, nil
}
