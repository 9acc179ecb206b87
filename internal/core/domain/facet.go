package domain

// FacetDimension names one filterable dimension of a search.
type FacetDimension string

const (
	FacetCategory    FacetDimension = "category"
	FacetSubcategory FacetDimension = "subcategory"
	FacetCondition   FacetDimension = "condition"
	FacetTradeType   FacetDimension = "trade_type"
	FacetPriceTier   FacetDimension = "price_tier"
)

// FacetOption is one selectable value of a facet as shown to the client.
// Count and Disabled are meaningful only when Counted is true.
type FacetOption struct {
	Value    string
	Label    string
	Count    int
	Counted  bool
	Selected bool
	Disabled bool
}

// NewCountedOption builds an option with a live count. A selected option is
// never disabled, even at zero, so the user can still deselect it.
func NewCountedOption(value, label string, count int, selected bool) FacetOption {
	return FacetOption{
		Value:    value,
		Label:    label,
		Count:    count,
		Counted:  true,
		Selected: selected,
		Disabled: count == 0 && !selected,
	}
}

// NewOption builds an option that only carries a selected flag.
func NewOption(value, label string, selected bool) FacetOption {
	return FacetOption{Value: value, Label: label, Selected: selected}
}

// Facets groups the option lists returned with a search. Context specific
// groups (Tags, PriceTier, TradeType) are nil when they do not apply.
type Facets struct {
	Category    []FacetOption
	Subcategory []FacetOption
	Condition   []FacetOption
	Brand       []FacetOption
	Model       []FacetOption
	Tags        []FacetOption
	PriceTier   []FacetOption
	TradeType   []FacetOption
	Sort        []FacetOption
	Limit       []FacetOption
}

// FacetCounts maps dimension -> candidate value -> match count.
type FacetCounts map[FacetDimension]map[string]int

// Get returns the count for one value, zero if it was never counted.
func (c FacetCounts) Get(dim FacetDimension, value string) int {
	return c[dim][value]
}

// FacetProbe is one auxiliary count: the current filters with a single value substituted.
type FacetProbe struct {
	Dimension FacetDimension
	Value     string
	Filters   FilterSet
}

// CountedDimensions lists the dimensions that get live counts in f's context.
// Subcategory is only counted once a category is resolved.
func CountedDimensions(f FilterSet) []FacetDimension {
	dims := []FacetDimension{FacetCategory}
	if f.Category != "" {
		dims = append(dims, FacetSubcategory)
	}
	dims = append(dims, FacetCondition)
	switch f.Context {
	case ContextTrade:
		dims = append(dims, FacetTradeType)
	case ContextBuy:
		dims = append(dims, FacetPriceTier)
	}
	return dims
}

// CandidateValues returns the vocabulary a dimension is counted over under f.
func CandidateValues(f FilterSet, dim FacetDimension) []DictionaryItem {
	switch dim {
	case FacetCategory:
		return Categories(f.Context)
	case FacetSubcategory:
		return Subcategories(f.Category)
	case FacetCondition:
		return Conditions(f.Category)
	case FacetTradeType:
		return TradeFormats()
	case FacetPriceTier:
		tiers := PriceTiers()
		items := make([]DictionaryItem, len(tiers))
		for i, tier := range tiers {
			items[i] = tier.DictionaryItem
		}
		return items
	}
	return nil
}

// SelectedValue returns the value f currently holds for dim.
func (f FilterSet) SelectedValue(dim FacetDimension) string {
	switch dim {
	case FacetCategory:
		return f.Category
	case FacetSubcategory:
		return f.Subcategory
	case FacetCondition:
		return f.Condition
	case FacetTradeType:
		return f.TradeType
	case FacetPriceTier:
		return f.PriceTier
	}
	return ""
}

// WithFacetValue returns a copy of f with value substituted for dim and all
// other filters unchanged, forced to a one-row first page. Substituting a
// category applies the same dependency rule as NormalizeFilters: the
// subcategory is cleared and a condition outside the new category's scale is dropped.
func (f FilterSet) WithFacetValue(dim FacetDimension, value string) FilterSet {
	probe := f.Clone()
	probe.Page = 1
	probe.Limit = 1

	switch dim {
	case FacetCategory:
		probe.Category = value
		probe.Subcategory = ""
		if probe.Condition != "" && !containsItem(Conditions(value), probe.Condition) {
			probe.Condition = ""
		}
	case FacetSubcategory:
		probe.Subcategory = value
	case FacetCondition:
		probe.Condition = value
	case FacetTradeType:
		probe.TradeType = value
	case FacetPriceTier:
		probe.PriceTier = value
	}
	return probe
}

// FacetProbes expands f into one probe per candidate value of every counted dimension.
func FacetProbes(f FilterSet) []FacetProbe {
	var probes []FacetProbe
	for _, dim := range CountedDimensions(f) {
		for _, item := range CandidateValues(f, dim) {
			probes = append(probes, FacetProbe{
				Dimension: dim,
				Value:     item.SystemName,
				Filters:   f.WithFacetValue(dim, item.SystemName),
			})
		}
	}
	return probes
}
