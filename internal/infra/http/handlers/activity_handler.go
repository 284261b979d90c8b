package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/logizar/logizar-crm/internal/entity"
	"github.com/logizar/logizar-crm/internal/infra/http/middleware"
	"github.com/logizar/logizar-crm/internal/usecase"
)

type ActivityHandler struct {
	Activities  entity.ActivityRepository
	LogActivity *usecase.LogActivityUseCase
}

func NewActivityHandler(activities entity.ActivityRepository, logActivity *usecase.LogActivityUseCase) *ActivityHandler {
	return &ActivityHandler{Activities: activities, LogActivity: logActivity}
}

// HandleList acepta ?q= (substring) y ?type= (exacto, "all" lo apaga),
// con la misma semántica que tenía el filtro en el listado.
func (h *ActivityHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	activities, err := h.Activities.ListAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DATABASE_ERROR", "no se pudieron cargar las actividades")
		return
	}

	query := r.URL.Query()
	activities = usecase.FilterActivities(activities, query.Get("q"), query.Get("type"))

	writeJSON(w, http.StatusOK, activities)
}

func (h *ActivityHandler) HandleListByContact(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "id")

	activities, err := h.Activities.ListByContact(r.Context(), contactID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DATABASE_ERROR", "no se pudieron cargar las actividades")
		return
	}

	writeJSON(w, http.StatusOK, activities)
}

func (h *ActivityHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "id")

	var input usecase.ActivityInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	profile := middleware.ProfileFromContext(r.Context())
	createdBy := ""
	if profile != nil {
		createdBy = profile.ID
	}

	activity, err := h.LogActivity.Execute(r.Context(), contactID, input, createdBy)
	if err != nil {
		writeUsecaseError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, activity)
}
