package render

import (
	"marketplace-service/internal/core/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(v float64) *float64 { return &v }

func TestRenderResults_Empty(t *testing.T) {
	r, err := NewHTMLResultsRenderer()
	require.NoError(t, err)

	out, err := r.RenderResults(domain.ContextBuy, nil)
	require.NoError(t, err)
	assert.Contains(t, out, "listing-empty")
	assert.NotContains(t, out, "listing-grid")
}

func TestRenderResults_BuyCards(t *testing.T) {
	r, err := NewHTMLResultsRenderer()
	require.NoError(t, err)

	out, err := r.RenderResults(domain.ContextBuy, []domain.Listing{
		{
			ID: 1, Title: "iPhone 13 128GB", Category: "phones", Condition: "like_new",
			BrandName: "Apple", ModelName: "iPhone 13", Price: price(520), Tags: []string{"boxed"},
			CreatedAt: time.Now(),
		},
		{ID: 2, Title: "<script>alert(1)</script>", Category: "collectibles", Condition: "near_mint"},
	})
	require.NoError(t, err)

	assert.Contains(t, out, "listing-grid")
	assert.Contains(t, out, "iPhone 13 128GB")
	assert.Contains(t, out, "$520.00")
	assert.Contains(t, out, "Like New")
	assert.Contains(t, out, "Near Mint")
	assert.Contains(t, out, "boxed")
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "\n  ", "markup is minified")
}

func TestRenderResults_TradeShowsFormatNotPrice(t *testing.T) {
	r, err := NewHTMLResultsRenderer()
	require.NoError(t, err)

	out, err := r.RenderResults(domain.ContextTrade, []domain.Listing{
		{ID: 3, Title: "Switch OLED", Category: "consoles", Condition: "good", TradeType: "swap", Price: price(300)},
	})
	require.NoError(t, err)

	assert.Contains(t, out, "Straight Swap")
	assert.NotContains(t, out, "$300.00")
}
