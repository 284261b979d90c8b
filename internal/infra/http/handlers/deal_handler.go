package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/logizar/logizar-crm/internal/entity"
	"github.com/logizar/logizar-crm/internal/infra/http/middleware"
	"github.com/logizar/logizar-crm/internal/usecase"
)

type DealHandler struct {
	Deals      entity.DealRepository
	CreateDeal *usecase.CreateDealUseCase
}

func NewDealHandler(deals entity.DealRepository, createDeal *usecase.CreateDealUseCase) *DealHandler {
	return &DealHandler{Deals: deals, CreateDeal: createDeal}
}

type dealListResponse struct {
	Deals   []entity.Deal       `json:"deals"`
	Metrics usecase.DealMetrics `json:"metrics"`
}

// HandleList devuelve las oportunidades filtradas más las métricas.
// Las métricas se calculan sobre el conjunto completo en cada pedido;
// el filtro sólo recorta lo que se lista.
func (h *DealHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	deals, err := h.Deals.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DATABASE_ERROR", "no se pudieron cargar las oportunidades")
		return
	}

	metrics := usecase.ComputeDealMetrics(deals)

	query := r.URL.Query()
	filtered := usecase.FilterDeals(deals, query.Get("q"), query.Get("status"))

	writeJSON(w, http.StatusOK, dealListResponse{Deals: filtered, Metrics: metrics})
}

func (h *DealHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.DealInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	profile := middleware.ProfileFromContext(r.Context())
	createdBy := ""
	if profile != nil {
		createdBy = profile.ID
	}

	deal, err := h.CreateDeal.Execute(r.Context(), input, createdBy)
	if err != nil {
		writeUsecaseError(w, err)
		return
	}

	middleware.RecordDealCreated(string(deal.Status))
	writeJSON(w, http.StatusCreated, deal)
}
