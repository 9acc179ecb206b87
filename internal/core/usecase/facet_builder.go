package usecase

import (
	"marketplace-service/internal/core/domain"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// facetInput is everything the option lists are built from.
type facetInput struct {
	filters domain.FilterSet
	counts  domain.FacetCounts
	brands  []domain.Brand
	models  []domain.Model
	tags    []domain.Tag
}

func buildFacets(in facetInput) domain.Facets {
	fs := in.filters
	facets := domain.Facets{
		Category:    countedOptions(in, domain.FacetCategory),
		Subcategory: []domain.FacetOption{},
		Condition:   countedOptions(in, domain.FacetCondition),
		Brand:       make([]domain.FacetOption, 0, len(in.brands)),
		Model:       make([]domain.FacetOption, 0, len(in.models)),
		Sort:        plainOptions(domain.Sorts(fs.Context), fs.Sort),
	}

	if fs.Category != "" {
		facets.Subcategory = countedOptions(in, domain.FacetSubcategory)
	}

	for _, brand := range in.brands {
		facets.Brand = append(facets.Brand, domain.NewOption(
			strconv.FormatInt(brand.ID, 10), brand.Name, brand.ID == fs.BrandID))
	}
	for _, model := range in.models {
		facets.Model = append(facets.Model, domain.NewOption(
			strconv.FormatInt(model.ID, 10), model.Name, model.ID == fs.ModelID))
	}

	for _, size := range domain.PageSizes() {
		value := strconv.Itoa(size)
		facets.Limit = append(facets.Limit, domain.NewOption(value, value, size == fs.Limit))
	}

	switch fs.Context {
	case domain.ContextBuy:
		facets.PriceTier = countedOptions(in, domain.FacetPriceTier)
		facets.Tags = tagOptions(in.tags, fs)
	case domain.ContextTrade:
		facets.TradeType = countedOptions(in, domain.FacetTradeType)
	}
	return facets
}

func countedOptions(in facetInput, dim domain.FacetDimension) []domain.FacetOption {
	selected := in.filters.SelectedValue(dim)
	items := domain.CandidateValues(in.filters, dim)
	options := make([]domain.FacetOption, 0, len(items))
	for _, item := range items {
		options = append(options, domain.NewCountedOption(
			item.SystemName,
			item.DisplayName,
			in.counts.Get(dim, item.SystemName),
			item.SystemName == selected,
		))
	}
	return options
}

func plainOptions(items []domain.DictionaryItem, selected string) []domain.FacetOption {
	options := make([]domain.FacetOption, 0, len(items))
	for _, item := range items {
		options = append(options, domain.NewOption(item.SystemName, item.DisplayName, item.SystemName == selected))
	}
	return options
}

func tagOptions(tags []domain.Tag, fs domain.FilterSet) []domain.FacetOption {
	caser := cases.Title(language.English)
	options := make([]domain.FacetOption, 0, len(tags))
	for _, tag := range tags {
		options = append(options, domain.NewOption(tag.Name, caser.String(tag.Name), fs.HasTag(tag.Name)))
	}
	return options
}
