package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/logizar/logizar-crm/internal/entity"
	"github.com/logizar/logizar-crm/internal/usecase"
)

func pipelineContact(stage entity.Stage) *entity.Contact {
	contact, _ := entity.NewContact("Juan Pérez", stage, "user-1")
	return contact
}

// Para las cinco etapas, mover un contacto escribe stage_order igual al
// índice fijo de la etapa en la lista canónica.
func TestMoveStageWritesCanonicalOrder(t *testing.T) {
	ctx := context.Background()

	for i, stage := range entity.Stages {
		mockRepo := new(MockContactRepository)
		contact := pipelineContact(entity.StageNew)

		mockRepo.On("FindByID", ctx, contact.ID).Return(contact, nil)
		mockRepo.On("UpdateStage", ctx, contact.ID, stage, i, mock.Anything).Return(nil)

		uc := usecase.NewMoveStageUseCase(mockRepo)
		moved, err := uc.Execute(ctx, contact.ID, string(stage))

		assert.NoError(t, err, "stage %s", stage)
		assert.Equal(t, stage, moved.Stage)
		assert.Equal(t, i, moved.StageOrder)
		mockRepo.AssertExpectations(t)
	}
}

// Escenario del tablero: "Juan Pérez" arranca en Nuevo y se arrastra a
// Seguimiento. Queda con stage follow_up y stage_order 2.
func TestDragFromNewToFollowUp(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockContactRepository)
	contact := pipelineContact(entity.StageNew)

	mockRepo.On("FindByID", ctx, contact.ID).Return(contact, nil)
	mockRepo.On("UpdateStage", ctx, contact.ID, entity.StageFollowUp, 2, mock.Anything).Return(nil)

	uc := usecase.NewMoveStageUseCase(mockRepo)
	moved, err := uc.Execute(ctx, contact.ID, "follow_up")

	assert.NoError(t, err)
	assert.Equal(t, entity.StageFollowUp, moved.Stage)
	assert.Equal(t, 2, moved.StageOrder)
	assert.Equal(t, "Seguimiento", moved.Stage.Label())
}

func TestMoveStageRejectsUnknownStage(t *testing.T) {
	mockRepo := new(MockContactRepository)

	uc := usecase.NewMoveStageUseCase(mockRepo)
	_, err := uc.Execute(context.Background(), "contact-1", "negotiation")

	assert.Error(t, err)
	assert.True(t, usecase.IsDomainError(err))
	mockRepo.AssertNotCalled(t, "UpdateStage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMoveStageContactNotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockContactRepository)
	mockRepo.On("FindByID", ctx, "missing").Return(nil, entity.ErrContactNotFound)

	uc := usecase.NewMoveStageUseCase(mockRepo)
	_, err := uc.Execute(ctx, "missing", "contacted")

	assert.Error(t, err)
	assert.True(t, usecase.IsDomainError(err))
}

// Si la escritura falla el error sube y no hay actualización optimista
// que deshacer: el contacto queda como estaba.
func TestMoveStageWriteFailure(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockContactRepository)
	contact := pipelineContact(entity.StageNew)

	mockRepo.On("FindByID", ctx, contact.ID).Return(contact, nil)
	mockRepo.On("UpdateStage", ctx, contact.ID, entity.StageLost, 4, mock.Anything).
		Return(errors.New("connection reset"))

	uc := usecase.NewMoveStageUseCase(mockRepo)
	_, err := uc.Execute(ctx, contact.ID, "lost")

	assert.Error(t, err)
	assert.True(t, usecase.IsTechnicalError(err))
}
