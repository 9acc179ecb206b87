package postgres

import (
	"marketplace-service/internal/core/domain"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFilters_BaseConditions(t *testing.T) {
	where, args := applyFilters(domain.FilterSet{Context: domain.ContextBuy})
	assert.Equal(t, "WHERE l.status = 'active' AND l.for_sale = true", where)
	assert.Empty(t, args)

	where, _ = applyFilters(domain.FilterSet{Context: domain.ContextTrade})
	assert.Equal(t, "WHERE l.status = 'active' AND l.for_trade = true", where)
}

func TestApplyFilters_PlaceholdersAreSequential(t *testing.T) {
	where, args := applyFilters(domain.FilterSet{
		Context:     domain.ContextBuy,
		Search:      "50%_off",
		Category:    "phones",
		Subcategory: "smartphones",
		BrandID:     3,
		PriceTier:   "100_300",
		Tags:        []string{"rare", "vintage"},
	})

	assert.Contains(t, where, "(l.title ILIKE $1 OR l.description ILIKE $1)")
	assert.Contains(t, where, "l.category = $2")
	assert.Contains(t, where, "l.subcategory = $3")
	assert.Contains(t, where, "l.brand_id = $4")
	assert.Contains(t, where, "l.price >= $5")
	assert.Contains(t, where, "l.price < $6")
	assert.Contains(t, where, "t.name = ANY($7)")
	assert.Contains(t, where, "HAVING COUNT(DISTINCT t.name) = $8")

	require.Len(t, args, 8)
	assert.Equal(t, `%50\%\_off%`, args[0])
	assert.Equal(t, 100.0, args[4])
	assert.Equal(t, 300.0, args[5])
	assert.Equal(t, []string{"rare", "vintage"}, args[6])
	assert.Equal(t, 2, args[7])
}

func TestApplyFilters_ContextSpecificFieldsIgnoredElsewhere(t *testing.T) {
	where, args := applyFilters(domain.FilterSet{
		Context:   domain.ContextTrade,
		TradeType: "swap",
		PriceTier: "under_100",
		Tags:      []string{"rare"},
	})
	assert.Contains(t, where, "l.trade_type = $1")
	assert.NotContains(t, where, "l.price")
	assert.NotContains(t, where, "listing_tags")
	assert.Equal(t, []interface{}{"swap"}, args)
}

func TestApplyFilters_OpenEndedTier(t *testing.T) {
	where, args := applyFilters(domain.FilterSet{Context: domain.ContextBuy, PriceTier: "700_plus"})
	assert.Contains(t, where, "l.price >= $1")
	assert.NotContains(t, where, "l.price <")
	assert.Equal(t, []interface{}{700.0}, args)
}

func TestOrderByClause_AlwaysEndsWithIDTiebreak(t *testing.T) {
	sorts := []string{domain.SortNewest, domain.SortOldest, domain.SortPriceAsc, domain.SortPriceDesc, domain.SortTitleAsc, "bogus"}
	for _, sort := range sorts {
		clause := orderByClause(sort)
		assert.True(t, strings.HasSuffix(clause, "l.id DESC") || strings.HasSuffix(clause, "l.id ASC"), clause)
	}
	assert.Equal(t, "ORDER BY l.created_at DESC, l.id DESC", orderByClause("bogus"))
	assert.Contains(t, orderByClause(domain.SortPriceAsc), "NULLS LAST")
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a\\b\%c\_d`, escapeLike(`a\b%c_d`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
