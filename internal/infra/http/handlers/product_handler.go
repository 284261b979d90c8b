package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/logizar/logizar-crm/internal/entity"
	"github.com/logizar/logizar-crm/internal/infra/http/middleware"
)

type ProductHandler struct {
	Products entity.ProductRepository
}

func NewProductHandler(products entity.ProductRepository) *ProductHandler {
	return &ProductHandler{Products: products}
}

// HandleList muestra el catálogo activo. Un admin ve también los
// productos desactivados, igual que en la grilla original.
func (h *ProductHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.Products.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DATABASE_ERROR", "no se pudo cargar el catálogo")
		return
	}

	profile := middleware.ProfileFromContext(r.Context())
	if profile == nil || !profile.IsAdmin() {
		active := make([]entity.Product, 0, len(products))
		for _, p := range products {
			if p.IsActive {
				active = append(active, p)
			}
		}
		products = active
	}

	writeJSON(w, http.StatusOK, products)
}

type productRequest struct {
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Unit          string              `json:"unit"`
	DilutionRatio string              `json:"dilution_ratio"`
	BasePriceARS  decimal.NullDecimal `json:"base_price_ars"`
	BasePriceUSD  decimal.NullDecimal `json:"base_price_usd"`
}

// HandleCreate es la acción detrás de la puerta de admin.
func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	product, err := entity.NewProduct(req.Name, req.Description, req.Unit, req.DilutionRatio, req.BasePriceARS, req.BasePriceUSD)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.Products.Create(r.Context(), product); err != nil {
		writeError(w, http.StatusInternalServerError, "DATABASE_ERROR", "no se pudo crear el producto")
		return
	}

	writeJSON(w, http.StatusCreated, product)
}
