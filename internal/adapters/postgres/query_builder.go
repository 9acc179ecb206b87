package postgres

import (
	"fmt"
	"marketplace-service/internal/core/domain"
	"strings"
)

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argId      int
}

func newQueryBuilder(sc domain.SearchContext) *queryBuilder {
	conditions := []string{"l.status = 'active'"}
	if sc == domain.ContextTrade {
		conditions = append(conditions, "l.for_trade = true")
	} else {
		conditions = append(conditions, "l.for_sale = true")
	}
	return &queryBuilder{
		argId:      1,
		conditions: conditions,
		args:       make([]interface{}, 0),
	}
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argId))
	qb.args = append(qb.args, arg)
	qb.argId++
}

// addSearch matches the pattern against title and description with one placeholder.
func (qb *queryBuilder) addSearch(search string) {
	qb.conditions = append(qb.conditions,
		fmt.Sprintf("(l.title ILIKE $%[1]d OR l.description ILIKE $%[1]d)", qb.argId))
	qb.args = append(qb.args, "%"+escapeLike(search)+"%")
	qb.argId++
}

// addAllTags keeps listings that carry every one of tags.
func (qb *queryBuilder) addAllTags(tags []string) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(
		`l.id IN (SELECT lt.listing_id FROM listing_tags lt JOIN tags t ON t.id = lt.tag_id
			WHERE t.name = ANY($%d) GROUP BY lt.listing_id HAVING COUNT(DISTINCT t.name) = $%d)`,
		qb.argId, qb.argId+1))
	qb.args = append(qb.args, tags, len(tags))
	qb.argId += 2
}

func (qb *queryBuilder) build() (string, []interface{}) {
	return "WHERE " + strings.Join(qb.conditions, " AND "), qb.args
}

// applyFilters turns every non-empty field of filters into an AND-ed predicate.
func applyFilters(filters domain.FilterSet) (string, []interface{}) {
	qb := newQueryBuilder(filters.Context)

	if filters.Search != "" {
		qb.addSearch(filters.Search)
	}
	if filters.Category != "" {
		qb.addCondition("%s = $%d", "l.category", filters.Category)
	}
	if filters.Subcategory != "" {
		qb.addCondition("%s = $%d", "l.subcategory", filters.Subcategory)
	}
	if filters.Condition != "" {
		qb.addCondition("%s = $%d", "l.condition", filters.Condition)
	}
	if filters.BrandID > 0 {
		qb.addCondition("%s = $%d", "l.brand_id", filters.BrandID)
	}
	if filters.ModelID > 0 {
		qb.addCondition("%s = $%d", "l.model_id", filters.ModelID)
	}

	switch filters.Context {
	case domain.ContextTrade:
		if filters.TradeType != "" {
			qb.addCondition("%s = $%d", "l.trade_type", filters.TradeType)
		}
	case domain.ContextBuy:
		if tier, ok := domain.FindPriceTier(filters.PriceTier); ok {
			if tier.Min != nil {
				qb.addCondition("%s >= $%d", "l.price", *tier.Min)
			}
			if tier.Max != nil {
				qb.addCondition("%s < $%d", "l.price", *tier.Max)
			}
		}
		if len(filters.Tags) > 0 {
			qb.addAllTags(filters.Tags)
		}
	}

	return qb.build()
}

// orderByClause always ends in an id tiebreak so pages never overlap.
func orderByClause(sort string) string {
	switch sort {
	case domain.SortOldest:
		return "ORDER BY l.created_at ASC, l.id ASC"
	case domain.SortPriceAsc:
		return "ORDER BY l.price ASC NULLS LAST, l.id DESC"
	case domain.SortPriceDesc:
		return "ORDER BY l.price DESC NULLS LAST, l.id DESC"
	case domain.SortTitleAsc:
		return "ORDER BY l.title ASC, l.id DESC"
	default:
		return "ORDER BY l.created_at DESC, l.id DESC"
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
