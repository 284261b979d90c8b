package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/logizar/logizar-crm/internal/entity"
)

func TestStageOrderMatchesCanonicalList(t *testing.T) {
	expected := map[entity.Stage]int{
		entity.StageNew:       0,
		entity.StageContacted: 1,
		entity.StageFollowUp:  2,
		entity.StagePurchased: 3,
		entity.StageLost:      4,
	}

	for stage, order := range expected {
		assert.Equal(t, order, stage.Order(), "stage %s", stage)
	}
	assert.Len(t, entity.Stages, len(expected))
}

func TestStageLabelsAreExhaustive(t *testing.T) {
	labels := map[entity.Stage]string{
		entity.StageNew:       "Nuevo",
		entity.StageContacted: "Contactado",
		entity.StageFollowUp:  "Seguimiento",
		entity.StagePurchased: "Compró",
		entity.StageLost:      "Perdido",
	}

	for stage, label := range labels {
		assert.Equal(t, label, stage.Label())
		assert.NotEmpty(t, stage.Color())
	}
}

func TestParseStageRejectsUnknown(t *testing.T) {
	_, err := entity.ParseStage("negotiation")
	assert.Error(t, err)

	stage, err := entity.ParseStage("follow_up")
	assert.NoError(t, err)
	assert.Equal(t, entity.StageFollowUp, stage)
}

// El pipeline no valida transiciones: cualquier etapa puede pasar a
// cualquier otra, incluso salir de "lost".
func TestAnyStageCanMoveToAnyValidStage(t *testing.T) {
	for _, from := range entity.Stages {
		for _, to := range entity.Stages {
			assert.True(t, from.CanMoveTo(to), "%s -> %s", from, to)
		}
	}
	assert.False(t, entity.StageNew.CanMoveTo(entity.Stage("negotiation")))
}

func TestNewContactDerivesStageOrder(t *testing.T) {
	contact, err := entity.NewContact("Juan Pérez", entity.StageContacted, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, entity.StageContacted, contact.Stage)
	assert.Equal(t, 1, contact.StageOrder)
	assert.NotEmpty(t, contact.ID)
}

func TestNewContactRequiresFullName(t *testing.T) {
	_, err := entity.NewContact("", entity.StageNew, "user-1")
	assert.Error(t, err)
}

func TestSetStageKeepsOrderConsistent(t *testing.T) {
	contact, _ := entity.NewContact("Juan Pérez", entity.StageNew, "user-1")
	before := contact.UpdatedAt

	contact.SetStage(entity.StageFollowUp)

	assert.Equal(t, entity.StageFollowUp, contact.Stage)
	assert.Equal(t, 2, contact.StageOrder)
	assert.NoError(t, contact.Validate())
	assert.False(t, contact.UpdatedAt.Before(before))
}
