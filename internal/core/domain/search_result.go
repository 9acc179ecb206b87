package domain

// SearchResult is everything the listings endpoint returns for one request.
type SearchResult struct {
	Context SearchContext
	Filters FilterSet
	Page    SearchPage
	HTML    string
	Facets  Facets
}

// CatalogView is the dictionary payload for one context.
type CatalogView struct {
	Context       SearchContext
	Categories    []DictionaryItem
	Subcategories map[string][]DictionaryItem
	Conditions    map[string][]DictionaryItem
	TradeFormats  []DictionaryItem
	PriceTiers    []PriceTier
	Sorts         []DictionaryItem
	PageSizes     []int
	Brands        []Brand
	Tags          []Tag
}
