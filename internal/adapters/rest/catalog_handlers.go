package rest

import (
	"marketplace-service/internal/core/domain"
	usecases_port "marketplace-service/internal/core/port/usecases_port"
	"net/http"
)

type CatalogHandler struct {
	getCatalogUC     usecases_port.GetCatalogUseCase
	getBrandModelsUC usecases_port.GetBrandModelsUseCase
}

func NewCatalogHandler(getCatalogUC usecases_port.GetCatalogUseCase,
	getBrandModelsUC usecases_port.GetBrandModelsUseCase) *CatalogHandler {
	return &CatalogHandler{
		getCatalogUC:     getCatalogUC,
		getBrandModelsUC: getBrandModelsUC,
	}
}

func (h *CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	view, err := h.getCatalogUC.Execute(r.Context(), r.URL.Query().Get("context"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toCatalogResponse(view))
}

func (h *CatalogHandler) GetBrandModels(w http.ResponseWriter, r *http.Request) {
	brandID, ok := pathID(r, "brandID")
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "Invalid brand id.")
		return
	}

	models, err := h.getBrandModelsUC.Execute(r.Context(), brandID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, BrandModelsResponse{
		Success: true,
		BrandID: brandID,
		Models:  toModels(models),
	})
}

func toModels(models []domain.Model) []ModelResponse {
	response := make([]ModelResponse, len(models))
	for i, m := range models {
		response[i] = ModelResponse{ID: m.ID, BrandID: m.BrandID, Name: m.Name}
	}
	return response
}
