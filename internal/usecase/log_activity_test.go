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

func TestLogActivityStampsCreator(t *testing.T) {
	ctx := context.Background()
	contact, _ := entity.NewContact("Juan Pérez", entity.StageContacted, "user-1")

	mockActivities := new(MockActivityRepository)
	mockContacts := new(MockContactRepository)

	mockContacts.On("FindByID", ctx, contact.ID).Return(contact, nil)
	mockActivities.On("Create", ctx, mock.MatchedBy(func(a *entity.Activity) bool {
		a.CreatedByName = "María García"
		return true
	})).Return(nil)

	uc := usecase.NewLogActivityUseCase(mockActivities, mockContacts)
	activity, err := uc.Execute(ctx, contact.ID, usecase.ActivityInput{
		Type:        "call",
		Subject:     "Seguimiento",
		Description: "Llamé para coordinar la entrega",
	}, "user-2")

	assert.NoError(t, err)
	assert.Equal(t, contact.ID, activity.ContactID)
	assert.Equal(t, entity.ActivityCall, activity.Type)
	assert.Equal(t, "user-2", activity.CreatedBy)
	assert.Equal(t, "María García", activity.CreatedByName,
		"Create fills the display name for the immediate prepend")
	assert.False(t, activity.CreatedAt.IsZero())
}

func TestLogActivityRequiresDescription(t *testing.T) {
	mockActivities := new(MockActivityRepository)
	mockContacts := new(MockContactRepository)

	uc := usecase.NewLogActivityUseCase(mockActivities, mockContacts)
	_, err := uc.Execute(context.Background(), "contact-1", usecase.ActivityInput{
		Type:        "note",
		Description: "   ",
	}, "user-1")

	assert.Error(t, err)
	assert.True(t, usecase.IsDomainError(err))
	mockActivities.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogActivityRejectsUnknownType(t *testing.T) {
	mockActivities := new(MockActivityRepository)
	mockContacts := new(MockContactRepository)

	uc := usecase.NewLogActivityUseCase(mockActivities, mockContacts)
	_, err := uc.Execute(context.Background(), "contact-1", usecase.ActivityInput{
		Type:        "fax",
		Description: "intenté por fax",
	}, "user-1")

	assert.Error(t, err)
	assert.True(t, usecase.IsDomainError(err))
	mockActivities.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogActivityContactNotFound(t *testing.T) {
	ctx := context.Background()
	mockActivities := new(MockActivityRepository)
	mockContacts := new(MockContactRepository)

	mockContacts.On("FindByID", ctx, "missing").Return(nil, entity.ErrContactNotFound)

	uc := usecase.NewLogActivityUseCase(mockActivities, mockContacts)
	_, err := uc.Execute(ctx, "missing", usecase.ActivityInput{
		Type:        "email",
		Description: "envié la propuesta",
	}, "user-1")

	assert.Error(t, err)
	assert.True(t, usecase.IsDomainError(err))
	mockActivities.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogActivityStoreFailure(t *testing.T) {
	ctx := context.Background()
	contact, _ := entity.NewContact("Juan Pérez", entity.StageNew, "user-1")

	mockActivities := new(MockActivityRepository)
	mockContacts := new(MockContactRepository)

	mockContacts.On("FindByID", ctx, contact.ID).Return(contact, nil)
	mockActivities.On("Create", ctx, mock.Anything).Return(errors.New("insert rejected"))

	uc := usecase.NewLogActivityUseCase(mockActivities, mockContacts)
	_, err := uc.Execute(ctx, contact.ID, usecase.ActivityInput{
		Type:        "meeting",
		Description: "reunión en planta",
	}, "user-1")

	assert.Error(t, err)
	assert.True(t, usecase.IsTechnicalError(err))
}
