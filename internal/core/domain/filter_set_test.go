package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testTags = []Tag{{ID: 1, Name: "boxed"}, {ID: 2, Name: "rare"}, {ID: 3, Name: "vintage"}}

func TestNormalizeFilters_Defaults(t *testing.T) {
	fs := NormalizeFilters(ContextBuy, RawFilterParams{}, testTags)

	assert.Equal(t, ContextBuy, fs.Context)
	assert.Equal(t, DefaultSort, fs.Sort)
	assert.Equal(t, DefaultPageSize, fs.Limit)
	assert.Equal(t, 1, fs.Page)
	assert.Empty(t, fs.Category)
	assert.Empty(t, fs.Tags)
	assert.Zero(t, fs.BrandID)
}

func TestNormalizeFilters_InvalidValuesFallBack(t *testing.T) {
	fs := NormalizeFilters(ContextTrade, RawFilterParams{
		Category:  "laptops", // buy only
		Condition: "shiny",
		Sort:      "price_asc", // buy only
		Limit:     "25",
		Page:      "-3",
		BrandID:   "abc",
		ModelID:   "-7",
		TradeType: "gift",
	}, testTags)

	assert.Empty(t, fs.Category)
	assert.Empty(t, fs.Condition)
	assert.Equal(t, SortNewest, fs.Sort)
	assert.Equal(t, DefaultPageSize, fs.Limit)
	assert.Equal(t, 1, fs.Page)
	assert.Zero(t, fs.BrandID)
	assert.Zero(t, fs.ModelID)
	assert.Empty(t, fs.TradeType)
}

func TestNormalizeFilters_SubcategoryNeedsMatchingCategory(t *testing.T) {
	tests := []struct {
		name        string
		raw         RawFilterParams
		subcategory string
	}{
		{"no category", RawFilterParams{Subcategory: "smartphones"}, ""},
		{"other category", RawFilterParams{Category: "tablets", Subcategory: "smartphones"}, ""},
		{"matching category", RawFilterParams{Category: "phones", Subcategory: "smartphones"}, "smartphones"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := NormalizeFilters(ContextBuy, tt.raw, nil)
			assert.Equal(t, tt.subcategory, fs.Subcategory)
		})
	}
}

func TestNormalizeFilters_ConditionScaleFollowsCategory(t *testing.T) {
	fs := NormalizeFilters(ContextBuy, RawFilterParams{Category: "collectibles", Condition: "like_new"}, nil)
	assert.Empty(t, fs.Condition)

	fs = NormalizeFilters(ContextBuy, RawFilterParams{Category: "collectibles", Condition: "mint"}, nil)
	assert.Equal(t, "mint", fs.Condition)

	fs = NormalizeFilters(ContextBuy, RawFilterParams{Condition: "mint"}, nil)
	assert.Empty(t, fs.Condition)
}

func TestNormalizeFilters_ContextSpecificFields(t *testing.T) {
	raw := RawFilterParams{TradeType: "swap", PriceTier: "under_100", Tags: []string{"rare"}}

	buy := NormalizeFilters(ContextBuy, raw, testTags)
	assert.Empty(t, buy.TradeType)
	assert.Equal(t, "under_100", buy.PriceTier)
	assert.Equal(t, []string{"rare"}, buy.Tags)

	trade := NormalizeFilters(ContextTrade, raw, testTags)
	assert.Equal(t, "swap", trade.TradeType)
	assert.Empty(t, trade.PriceTier)
	assert.Empty(t, trade.Tags)
}

func TestNormalizeFilters_Tags(t *testing.T) {
	fs := NormalizeFilters(ContextBuy, RawFilterParams{
		Tags: []string{" Vintage ", "", "unknown", "RARE", "vintage"},
	}, testTags)

	assert.Equal(t, []string{"rare", "vintage"}, fs.Tags)
}

func TestNormalizeFilters_SearchAndPage(t *testing.T) {
	fs := NormalizeFilters(ContextBuy, RawFilterParams{
		Search: "  iphone   13 \t pro ",
		Page:   "999999",
		Limit:  "60",
	}, nil)

	assert.Equal(t, "iphone 13 pro", fs.Search)
	assert.Equal(t, maxPage, fs.Page)
	assert.Equal(t, 60, fs.Limit)

	long := NormalizeFilters(ContextBuy, RawFilterParams{Search: strings.Repeat("ж", 150)}, nil)
	assert.Equal(t, maxSearchLength, len([]rune(long.Search)))
}

func TestNormalizeFilters_KeepsMismatchedModel(t *testing.T) {
	fs := NormalizeFilters(ContextBuy, RawFilterParams{BrandID: "1", ModelID: "30"}, nil)
	assert.Equal(t, int64(1), fs.BrandID)
	assert.Equal(t, int64(30), fs.ModelID)
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, limit, want int
	}{
		{0, 20, 1},
		{5, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{35, 20, 2},
		{120, 60, 2},
		{10, 0, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.limit), "total=%d limit=%d", tt.total, tt.limit)
	}
}

func TestFilterSet_Offset(t *testing.T) {
	assert.Equal(t, 0, FilterSet{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, FilterSet{Page: 3, Limit: 20}.Offset())
}
