package rest

import (
	"marketplace-service/internal/core/domain"
	usecases_port "marketplace-service/internal/core/port/usecases_port"
	"net/http"
)

type ListingHandler struct {
	searchUC  usecases_port.SearchListingsUseCase
	detailsUC usecases_port.GetListingDetailsUseCase
}

func NewListingHandler(searchUC usecases_port.SearchListingsUseCase,
	detailsUC usecases_port.GetListingDetailsUseCase) *ListingHandler {
	return &ListingHandler{
		searchUC:  searchUC,
		detailsUC: detailsUC,
	}
}

// Search never rejects a filter value; only the context can make it fail with 400.
func (h *ListingHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	raw := domain.RawFilterParams{
		Context:     query.Get("context"),
		Search:      query.Get("search"),
		Category:    query.Get("category"),
		Subcategory: query.Get("subcategory"),
		Condition:   query.Get("condition"),
		BrandID:     query.Get("brand_id"),
		ModelID:     query.Get("model_id"),
		TradeType:   query.Get("trade_type"),
		PriceTier:   query.Get("price_tier"),
		Tags:        queryList(r, "tags"),
		Sort:        query.Get("sort"),
		Limit:       query.Get("limit"),
		Page:        query.Get("page"),
	}

	result, err := h.searchUC.Execute(r.Context(), raw)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toSearchResponse(result))
}

func (h *ListingHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	listingID, ok := pathID(r, "listingID")
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "Invalid listing id.")
		return
	}

	listing, err := h.detailsUC.Execute(r.Context(), listingID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"listing": toListingDetails(*listing),
	})
}
