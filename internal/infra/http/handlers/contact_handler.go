package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/logizar/logizar-crm/internal/entity"
	"github.com/logizar/logizar-crm/internal/infra/http/middleware"
	"github.com/logizar/logizar-crm/internal/usecase"
)

type ContactHandler struct {
	Contacts    entity.ContactRepository
	SaveContact *usecase.SaveContactUseCase
	MoveStage   *usecase.MoveStageUseCase
}

func NewContactHandler(contacts entity.ContactRepository, save *usecase.SaveContactUseCase, move *usecase.MoveStageUseCase) *ContactHandler {
	return &ContactHandler{Contacts: contacts, SaveContact: save, MoveStage: move}
}

func (h *ContactHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.Contacts.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DATABASE_ERROR", "no se pudieron cargar los contactos")
		return
	}

	if q := r.URL.Query().Get("q"); q != "" {
		contacts = usecase.FilterContacts(contacts, q)
	}
	if contacts == nil {
		contacts = []entity.Contact{}
	}

	writeJSON(w, http.StatusOK, contacts)
}

type pipelineColumn struct {
	Stage    entity.Stage     `json:"stage"`
	Label    string           `json:"label"`
	Color    string           `json:"color"`
	Contacts []entity.Contact `json:"contacts"`
}

// HandlePipeline arma el tablero: una columna por etapa, en el orden
// canónico, cada una con sus contactos ya ordenados por la consulta.
func (h *ContactHandler) HandlePipeline(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.Contacts.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DATABASE_ERROR", "no se pudo cargar el pipeline")
		return
	}

	byStage := make(map[entity.Stage][]entity.Contact, len(entity.Stages))
	for _, c := range contacts {
		byStage[c.Stage] = append(byStage[c.Stage], c)
	}

	columns := make([]pipelineColumn, 0, len(entity.Stages))
	for _, stage := range entity.Stages {
		column := pipelineColumn{
			Stage:    stage,
			Label:    stage.Label(),
			Color:    stage.Color(),
			Contacts: byStage[stage],
		}
		if column.Contacts == nil {
			column.Contacts = []entity.Contact{}
		}
		columns = append(columns, column)
	}

	writeJSON(w, http.StatusOK, columns)
}

func (h *ContactHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	contact, err := h.Contacts.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "CONTACT_NOT_FOUND", entity.ErrContactNotFound.Error())
		return
	}

	writeJSON(w, http.StatusOK, contact)
}

func (h *ContactHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.ContactInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	profile := middleware.ProfileFromContext(r.Context())
	createdBy := ""
	if profile != nil {
		createdBy = profile.ID
	}

	contact, err := h.SaveContact.Create(r.Context(), input, createdBy)
	if err != nil {
		writeUsecaseError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, contact)
}

func (h *ContactHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input usecase.ContactInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	contact, err := h.SaveContact.Update(r.Context(), id, input)
	if err != nil {
		writeUsecaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contact)
}

type moveStageRequest struct {
	Stage string `json:"stage"`
}

// HandleMoveStage es el destino del drag-and-drop del tablero.
func (h *ContactHandler) HandleMoveStage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req moveStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	contact, err := h.MoveStage.Execute(r.Context(), id, req.Stage)
	if err != nil {
		writeUsecaseError(w, err)
		return
	}

	middleware.RecordStageMove(string(contact.Stage))
	writeJSON(w, http.StatusOK, contact)
}
