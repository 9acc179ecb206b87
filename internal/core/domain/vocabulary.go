package domain

import "slices"

// DictionaryItem is one vocabulary entry: the value the API accepts and the label the UI shows.
type DictionaryItem struct {
	SystemName  string
	DisplayName string
}

// PriceTier is a half-open price interval [Min, Max). A nil bound is unbounded.
type PriceTier struct {
	DictionaryItem
	Min *float64
	Max *float64
}

const (
	DefaultPageSize = 20
	DefaultSort     = "newest"

	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortTitleAsc  = "title_asc"
)

var pageSizes = []int{20, 40, 60}

var buyCategories = []DictionaryItem{
	{"phones", "Phones"},
	{"tablets", "Tablets"},
	{"laptops", "Laptops"},
	{"consoles", "Game Consoles"},
	{"accessories", "Accessories"},
	{"collectibles", "Collectibles"},
}

var tradeCategories = []DictionaryItem{
	{"phones", "Phones"},
	{"tablets", "Tablets"},
	{"consoles", "Game Consoles"},
	{"collectibles", "Collectibles"},
}

var subcategoriesByCategory = map[string][]DictionaryItem{
	"phones": {
		{"smartphones", "Smartphones"},
		{"feature_phones", "Feature Phones"},
		{"rugged_phones", "Rugged Phones"},
	},
	"tablets": {
		{"android_tablets", "Android Tablets"},
		{"ipads", "iPads"},
		{"e_readers", "E-Readers"},
	},
	"laptops": {
		{"ultrabooks", "Ultrabooks"},
		{"gaming_laptops", "Gaming Laptops"},
		{"chromebooks", "Chromebooks"},
	},
	"consoles": {
		{"home_consoles", "Home Consoles"},
		{"handhelds", "Handhelds"},
		{"retro_consoles", "Retro Consoles"},
	},
	"accessories": {
		{"cases", "Cases"},
		{"chargers", "Chargers & Cables"},
		{"headphones", "Headphones"},
	},
	"collectibles": {
		{"trading_cards", "Trading Cards"},
		{"figures", "Figures"},
		{"coins", "Coins"},
	},
}

var standardConditions = []DictionaryItem{
	{"new", "New"},
	{"like_new", "Like New"},
	{"good", "Good"},
	{"fair", "Fair"},
	{"for_parts", "For Parts"},
}

// collectibles are graded on their own scale
var conditionsByCategory = map[string][]DictionaryItem{
	"collectibles": {
		{"mint", "Mint"},
		{"near_mint", "Near Mint"},
		{"excellent", "Excellent"},
		{"good", "Good"},
		{"poor", "Poor"},
	},
}

var tradeFormats = []DictionaryItem{
	{"swap", "Straight Swap"},
	{"swap_plus_cash", "Swap + Cash"},
	{"open_to_offers", "Open to Offers"},
}

var buySorts = []DictionaryItem{
	{SortNewest, "Newest First"},
	{SortOldest, "Oldest First"},
	{SortPriceAsc, "Price: Low to High"},
	{SortPriceDesc, "Price: High to Low"},
	{SortTitleAsc, "Title: A to Z"},
}

var tradeSorts = []DictionaryItem{
	{SortNewest, "Newest First"},
	{SortOldest, "Oldest First"},
	{SortTitleAsc, "Title: A to Z"},
}

var priceTiers = []PriceTier{
	{DictionaryItem: DictionaryItem{"under_100", "Under $100"}, Max: floatPtr(100)},
	{DictionaryItem: DictionaryItem{"100_300", "$100 – $300"}, Min: floatPtr(100), Max: floatPtr(300)},
	{DictionaryItem: DictionaryItem{"300_700", "$300 – $700"}, Min: floatPtr(300), Max: floatPtr(700)},
	{DictionaryItem: DictionaryItem{"700_plus", "$700 & Up"}, Min: floatPtr(700)},
}

// Categories returns the curated category list for a context.
func Categories(sc SearchContext) []DictionaryItem {
	if sc == ContextTrade {
		return slices.Clone(tradeCategories)
	}
	return slices.Clone(buyCategories)
}

// Subcategories returns nil when the category is empty or unknown.
func Subcategories(category string) []DictionaryItem {
	return slices.Clone(subcategoriesByCategory[category])
}

// Conditions falls back to the standard scale for categories without their own.
func Conditions(category string) []DictionaryItem {
	if items, ok := conditionsByCategory[category]; ok {
		return slices.Clone(items)
	}
	return slices.Clone(standardConditions)
}

func TradeFormats() []DictionaryItem {
	return slices.Clone(tradeFormats)
}

func Sorts(sc SearchContext) []DictionaryItem {
	if sc == ContextTrade {
		return slices.Clone(tradeSorts)
	}
	return slices.Clone(buySorts)
}

func PageSizes() []int {
	return slices.Clone(pageSizes)
}

func PriceTiers() []PriceTier {
	return slices.Clone(priceTiers)
}

// FindPriceTier looks a tier up by its system name.
func FindPriceTier(value string) (PriceTier, bool) {
	for _, tier := range priceTiers {
		if tier.SystemName == value {
			return tier, true
		}
	}
	return PriceTier{}, false
}

// LabelOf returns the display name for value, or value itself when it is not in items.
func LabelOf(items []DictionaryItem, value string) string {
	for _, item := range items {
		if item.SystemName == value {
			return item.DisplayName
		}
	}
	return value
}

func containsItem(items []DictionaryItem, value string) bool {
	for _, item := range items {
		if item.SystemName == value {
			return true
		}
	}
	return false
}

func floatPtr(v float64) *float64 {
	return &v
}
