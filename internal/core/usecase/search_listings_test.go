package usecase

import (
	"context"
	"marketplace-service/internal/core/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findOption(options []domain.FacetOption, value string) (domain.FacetOption, bool) {
	for _, o := range options {
		if o.Value == value {
			return o, true
		}
	}
	return domain.FacetOption{}, false
}

func TestSearchListings_FiveMatchingPhones(t *testing.T) {
	store := newMarketStore(5, 30)
	events := newRecordingSearchEvents()
	uc := newSearchUseCase(store, &nopMetrics{}, events)

	result, err := uc.Execute(context.Background(), domain.RawFilterParams{
		Context:  "buy",
		Category: "phones",
		Limit:    "20",
		Page:     "1",
	})
	require.NoError(t, err)

	assert.Equal(t, 5, result.Page.Total)
	assert.Equal(t, 1, result.Page.TotalPages)
	assert.Len(t, result.Page.Items, 5)
	assert.Equal(t, "<div>buy:5</div>", result.HTML)

	phones, ok := findOption(result.Facets.Category, "phones")
	require.True(t, ok)
	assert.True(t, phones.Selected)
	assert.Equal(t, 5, phones.Count)

	tablets, ok := findOption(result.Facets.Category, "tablets")
	require.True(t, ok)
	assert.False(t, tablets.Selected)
	assert.Equal(t, 30, tablets.Count, "category counts substitute the category")

	select {
	case published := <-events.published:
		assert.Equal(t, result, published)
	case <-time.After(time.Second):
		t.Fatal("search event was not published")
	}
}

func TestSearchListings_PageBeyondLastIsEmpty(t *testing.T) {
	store := newMarketStore(20, 0)
	uc := newSearchUseCase(store, &nopMetrics{}, newRecordingSearchEvents())

	result, err := uc.Execute(context.Background(), domain.RawFilterParams{
		Context: "buy",
		Limit:   "20",
		Page:    "2",
	})
	require.NoError(t, err)

	assert.NotNil(t, result.Page.Items)
	assert.Empty(t, result.Page.Items)
	assert.Equal(t, 20, result.Page.Total)
	assert.Equal(t, 1, result.Page.TotalPages)
	assert.Equal(t, 2, result.Page.Page)
}

func TestSearchListings_SelectedZeroOptionStaysEnabled(t *testing.T) {
	store := newMarketStore(5, 2)
	uc := newSearchUseCase(store, &nopMetrics{}, newRecordingSearchEvents())

	result, err := uc.Execute(context.Background(), domain.RawFilterParams{
		Context:   "buy",
		Category:  "phones",
		Condition: "for_parts",
	})
	require.NoError(t, err)
	assert.Zero(t, result.Page.Total)

	forParts, ok := findOption(result.Facets.Condition, "for_parts")
	require.True(t, ok)
	assert.True(t, forParts.Selected)
	assert.Zero(t, forParts.Count)
	assert.False(t, forParts.Disabled)

	fair, ok := findOption(result.Facets.Condition, "fair")
	require.True(t, ok)
	assert.True(t, fair.Disabled)

	good, ok := findOption(result.Facets.Condition, "good")
	require.True(t, ok)
	assert.Equal(t, 5, good.Count)
}

func TestSearchListings_CanonicalFiltersAreReturned(t *testing.T) {
	store := newMarketStore(3, 0)
	uc := newSearchUseCase(store, &nopMetrics{}, newRecordingSearchEvents())

	result, err := uc.Execute(context.Background(), domain.RawFilterParams{
		Context:     "buy",
		Category:    "tablets",
		Subcategory: "smartphones",
		Sort:        "cheapest",
		Tags:        []string{"RARE", "nope"},
		BrandID:     "1",
	})
	require.NoError(t, err)

	assert.Empty(t, result.Filters.Subcategory)
	assert.Equal(t, domain.DefaultSort, result.Filters.Sort)
	assert.Equal(t, []string{"rare"}, result.Filters.Tags)

	newest, ok := findOption(result.Facets.Sort, domain.SortNewest)
	require.True(t, ok)
	assert.True(t, newest.Selected)
	assert.False(t, newest.Counted)

	apple, ok := findOption(result.Facets.Brand, "1")
	require.True(t, ok)
	assert.True(t, apple.Selected)
	assert.Len(t, result.Facets.Model, 2, "models of the selected brand")

	rare, ok := findOption(result.Facets.Tags, "rare")
	require.True(t, ok)
	assert.True(t, rare.Selected)
	assert.Equal(t, "Rare", rare.Label)

	assert.Len(t, result.Facets.Subcategory, 3)
	assert.Nil(t, result.Facets.TradeType)
	assert.Len(t, result.Facets.PriceTier, 4)
}

func TestSearchListings_TradeContext(t *testing.T) {
	store := newMarketStore(0, 0)
	store.AddListing(domain.Listing{
		ID: 1, Title: "Switch", Category: "consoles", Condition: "good",
		ForTrade: true, TradeType: "swap", CreatedAt: baseTime,
	})
	store.AddListing(domain.Listing{
		ID: 2, Title: "Pixel", Category: "phones", Condition: "good",
		ForTrade: true, TradeType: "open_to_offers", CreatedAt: baseTime,
	})
	uc := newSearchUseCase(store, &nopMetrics{}, newRecordingSearchEvents())

	result, err := uc.Execute(context.Background(), domain.RawFilterParams{Context: "trade", TradeType: "swap", PriceTier: "under_100"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Page.Total)
	assert.Empty(t, result.Filters.PriceTier)
	assert.Nil(t, result.Facets.Tags)
	assert.Nil(t, result.Facets.PriceTier)
	assert.Empty(t, result.Facets.Subcategory)

	offers, ok := findOption(result.Facets.TradeType, "open_to_offers")
	require.True(t, ok)
	assert.Equal(t, 1, offers.Count)
}

func TestSearchListings_UnsupportedContext(t *testing.T) {
	uc := newSearchUseCase(newMarketStore(1, 0), &nopMetrics{}, newRecordingSearchEvents())

	_, err := uc.Execute(context.Background(), domain.RawFilterParams{Context: "sell"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedContext)
}

func TestSearchListings_FacetFailureFailsRequest(t *testing.T) {
	metrics := &nopMetrics{}
	events := newRecordingSearchEvents()
	uc := newSearchUseCase(failingCounts{newMarketStore(3, 0)}, metrics, events)

	result, err := uc.Execute(context.Background(), domain.RawFilterParams{Context: "buy"})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, []string{"facets"}, metrics.failures)
	assert.Empty(t, events.published)
}
