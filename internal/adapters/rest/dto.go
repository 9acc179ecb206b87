package rest

import (
	"marketplace-service/internal/core/domain"
	"strconv"
	"time"
)

// SearchResponse is the contract of GET /api/v1/listings.
type SearchResponse struct {
	Success bool            `json:"success"`
	Context string          `json:"context"`
	Results SearchResults   `json:"results"`
	Applied AppliedFilters  `json:"applied"`
	Filters FilterOptionSet `json:"filters"`
}

type SearchResults struct {
	HTML       string                `json:"html"`
	Items      []ListingCardResponse `json:"items"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	TotalPages int                   `json:"totalPages"`
}

// AppliedFilters echoes the canonical filters, not the raw query.
type AppliedFilters struct {
	Search      string   `json:"search"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory"`
	Condition   string   `json:"condition"`
	BrandID     int64    `json:"brand_id"`
	ModelID     int64    `json:"model_id"`
	TradeType   *string  `json:"trade_type,omitempty"`
	PriceTier   *string  `json:"price_tier,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Sort        string   `json:"sort"`
	Limit       int      `json:"limit"`
	Page        int      `json:"page"`
}

// FilterOptionSet holds one option array per dimension. Context specific
// arrays are omitted when they do not apply.
type FilterOptionSet struct {
	Category    []FacetOptionResponse `json:"category"`
	Subcategory []FacetOptionResponse `json:"subcategory"`
	Condition   []FacetOptionResponse `json:"condition"`
	Brand       []FacetOptionResponse `json:"brand"`
	Model       []FacetOptionResponse `json:"model"`
	Tags        []FacetOptionResponse `json:"tags,omitempty"`
	PriceTier   []FacetOptionResponse `json:"price_tier,omitempty"`
	TradeType   []FacetOptionResponse `json:"trade_type,omitempty"`
	Sort        []FacetOptionResponse `json:"sort"`
	Limit       []FacetOptionResponse `json:"limit"`
}

type FacetOptionResponse struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Count    *int   `json:"count,omitempty"`
	Selected bool   `json:"selected"`
	Disabled *bool  `json:"disabled,omitempty"`
}

type ListingCardResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory,omitempty"`
	Condition   string    `json:"condition"`
	BrandID     int64     `json:"brand_id,omitempty"`
	BrandName   string    `json:"brand_name,omitempty"`
	ModelID     int64     `json:"model_id,omitempty"`
	ModelName   string    `json:"model_name,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	TradeType   string    `json:"trade_type,omitempty"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListingDetailsResponse struct {
	ListingCardResponse
	Description string `json:"description"`
	ForSale     bool   `json:"for_sale"`
	ForTrade    bool   `json:"for_trade"`
	Status      string `json:"status"`
	OwnerID     int64  `json:"owner_id"`
}

type DictionaryItemResponse struct {
	SystemName  string `json:"system_name"`
	DisplayName string `json:"display_name"`
}

type PriceTierResponse struct {
	SystemName  string   `json:"system_name"`
	DisplayName string   `json:"display_name"`
	Min         *float64 `json:"min"`
	Max         *float64 `json:"max"`
}

type BrandResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ModelResponse struct {
	ID      int64  `json:"id"`
	BrandID int64  `json:"brand_id"`
	Name    string `json:"name"`
}

type TagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CatalogResponse struct {
	Success       bool                                `json:"success"`
	Context       string                              `json:"context"`
	Categories    []DictionaryItemResponse            `json:"categories"`
	Subcategories map[string][]DictionaryItemResponse `json:"subcategories"`
	Conditions    map[string][]DictionaryItemResponse `json:"conditions"`
	TradeFormats  []DictionaryItemResponse            `json:"trade_formats,omitempty"`
	PriceTiers    []PriceTierResponse                 `json:"price_tiers,omitempty"`
	Sorts         []DictionaryItemResponse            `json:"sorts"`
	Limits        []int                               `json:"limits"`
	Brands        []BrandResponse                     `json:"brands"`
	Tags          []TagResponse                       `json:"tags,omitempty"`
}

type BrandModelsResponse struct {
	Success bool            `json:"success"`
	BrandID int64           `json:"brand_id"`
	Models  []ModelResponse `json:"models"`
}

type OrderResponse struct {
	ID             int64     `json:"id"`
	ListingID      int64     `json:"listing_id"`
	ListingTitle   string    `json:"listing_title"`
	BuyerID        int64     `json:"buyer_id"`
	SellerID       int64     `json:"seller_id"`
	Status         string    `json:"status"`
	TotalAmount    float64   `json:"total_amount"`
	TrackingNumber string    `json:"tracking_number,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type OrderListResponse struct {
	Success    bool            `json:"success"`
	Orders     []OrderResponse `json:"orders"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
}

type OrderEnvelope struct {
	Success bool          `json:"success"`
	Order   OrderResponse `json:"order"`
}

type UpdateOrderStatusRequest struct {
	Status         string `json:"status"`
	TrackingNumber string `json:"tracking_number"`
}

func toSearchResponse(result *domain.SearchResult) SearchResponse {
	items := make([]ListingCardResponse, len(result.Page.Items))
	for i, l := range result.Page.Items {
		items[i] = toListingCard(l)
	}

	return SearchResponse{
		Success: true,
		Context: result.Context.String(),
		Results: SearchResults{
			HTML:       result.HTML,
			Items:      items,
			Total:      result.Page.Total,
			Page:       result.Page.Page,
			TotalPages: result.Page.TotalPages,
		},
		Applied: toAppliedFilters(result.Filters),
		Filters: FilterOptionSet{
			Category:    toFacetOptions(result.Facets.Category),
			Subcategory: toFacetOptions(result.Facets.Subcategory),
			Condition:   toFacetOptions(result.Facets.Condition),
			Brand:       toFacetOptions(result.Facets.Brand),
			Model:       toFacetOptions(result.Facets.Model),
			Tags:        toOptionalFacetOptions(result.Facets.Tags),
			PriceTier:   toOptionalFacetOptions(result.Facets.PriceTier),
			TradeType:   toOptionalFacetOptions(result.Facets.TradeType),
			Sort:        toFacetOptions(result.Facets.Sort),
			Limit:       toFacetOptions(result.Facets.Limit),
		},
	}
}

func toAppliedFilters(f domain.FilterSet) AppliedFilters {
	applied := AppliedFilters{
		Search:      f.Search,
		Category:    f.Category,
		Subcategory: f.Subcategory,
		Condition:   f.Condition,
		BrandID:     f.BrandID,
		ModelID:     f.ModelID,
		Tags:        f.Tags,
		Sort:        f.Sort,
		Limit:       f.Limit,
		Page:        f.Page,
	}
	switch f.Context {
	case domain.ContextTrade:
		tradeType := f.TradeType
		applied.TradeType = &tradeType
	case domain.ContextBuy:
		priceTier := f.PriceTier
		applied.PriceTier = &priceTier
	}
	return applied
}

// toFacetOptions always yields a non-nil slice so the key serializes as [].
func toFacetOptions(options []domain.FacetOption) []FacetOptionResponse {
	response := make([]FacetOptionResponse, len(options))
	for i, o := range options {
		response[i] = FacetOptionResponse{
			Value:    o.Value,
			Label:    o.Label,
			Selected: o.Selected,
		}
		if o.Counted {
			count, disabled := o.Count, o.Disabled
			response[i].Count = &count
			response[i].Disabled = &disabled
		}
	}
	return response
}

// toOptionalFacetOptions keeps nil (dimension absent in this context) distinct from empty.
func toOptionalFacetOptions(options []domain.FacetOption) []FacetOptionResponse {
	if options == nil {
		return nil
	}
	return toFacetOptions(options)
}

func toListingCard(l domain.Listing) ListingCardResponse {
	tags := l.Tags
	if tags == nil {
		tags = []string{}
	}
	return ListingCardResponse{
		ID:          l.ID,
		Title:       l.Title,
		Category:    l.Category,
		Subcategory: l.Subcategory,
		Condition:   l.Condition,
		BrandID:     l.BrandID,
		BrandName:   l.BrandName,
		ModelID:     l.ModelID,
		ModelName:   l.ModelName,
		Price:       l.Price,
		TradeType:   l.TradeType,
		Tags:        tags,
		CreatedAt:   l.CreatedAt,
	}
}

func toListingDetails(l domain.Listing) ListingDetailsResponse {
	return ListingDetailsResponse{
		ListingCardResponse: toListingCard(l),
		Description:         l.Description,
		ForSale:             l.ForSale,
		ForTrade:            l.ForTrade,
		Status:              string(l.Status),
		OwnerID:             l.OwnerID,
	}
}

func toDictionaryItems(items []domain.DictionaryItem) []DictionaryItemResponse {
	response := make([]DictionaryItemResponse, len(items))
	for i, item := range items {
		response[i] = DictionaryItemResponse{SystemName: item.SystemName, DisplayName: item.DisplayName}
	}
	return response
}

func toCatalogResponse(view *domain.CatalogView) CatalogResponse {
	response := CatalogResponse{
		Success:       true,
		Context:       view.Context.String(),
		Categories:    toDictionaryItems(view.Categories),
		Subcategories: make(map[string][]DictionaryItemResponse, len(view.Subcategories)),
		Conditions:    make(map[string][]DictionaryItemResponse, len(view.Conditions)),
		Sorts:         toDictionaryItems(view.Sorts),
		Limits:        view.PageSizes,
		Brands:        make([]BrandResponse, len(view.Brands)),
	}
	for category, items := range view.Subcategories {
		response.Subcategories[category] = toDictionaryItems(items)
	}
	for category, items := range view.Conditions {
		response.Conditions[category] = toDictionaryItems(items)
	}
	if view.TradeFormats != nil {
		response.TradeFormats = toDictionaryItems(view.TradeFormats)
	}
	for _, tier := range view.PriceTiers {
		response.PriceTiers = append(response.PriceTiers, PriceTierResponse{
			SystemName:  tier.SystemName,
			DisplayName: tier.DisplayName,
			Min:         tier.Min,
			Max:         tier.Max,
		})
	}
	for i, b := range view.Brands {
		response.Brands[i] = BrandResponse{ID: b.ID, Name: b.Name}
	}
	if view.Tags != nil {
		response.Tags = make([]TagResponse, len(view.Tags))
		for i, t := range view.Tags {
			response.Tags[i] = TagResponse{ID: t.ID, Name: t.Name}
		}
	}
	return response
}

func toOrderResponse(o domain.Order) OrderResponse {
	return OrderResponse{
		ID:             o.ID,
		ListingID:      o.ListingID,
		ListingTitle:   o.ListingTitle,
		BuyerID:        o.BuyerID,
		SellerID:       o.SellerID,
		Status:         string(o.Status),
		TotalAmount:    o.TotalAmount,
		TrackingNumber: o.TrackingNumber,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func queryInt(raw string, fallback int) int {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
