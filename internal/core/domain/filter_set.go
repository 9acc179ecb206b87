package domain

import (
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	maxPage         = 10000
	maxSearchLength = 100
	maxTags         = 10
)

// RawFilterParams holds the untrusted query string values as received.
type RawFilterParams struct {
	Context     string
	Search      string
	Category    string
	Subcategory string
	Condition   string
	BrandID     string
	ModelID     string
	TradeType   string
	PriceTier   string
	Tags        []string
	Sort        string
	Limit       string
	Page        string
}

// FilterSet is the canonical search for one request. Every field holds either
// its zero value ("any") or a value from the matching vocabulary.
type FilterSet struct {
	Context     SearchContext
	Search      string
	Category    string
	Subcategory string
	Condition   string
	BrandID     int64
	ModelID     int64
	TradeType   string // trade context only
	PriceTier   string // buy context only
	Tags        []string
	Sort        string
	Page        int
	Limit       int
}

// NormalizeFilters turns raw parameters into a FilterSet. It never fails:
// anything unrecognised falls back to its default. knownTags is the tag
// vocabulary; requested tags outside of it are dropped.
//
// A model that does not belong to the selected brand is kept as is and simply
// matches nothing.
func NormalizeFilters(sc SearchContext, raw RawFilterParams, knownTags []Tag) FilterSet {
	fs := FilterSet{
		Context: sc,
		Search:  normalizeSearch(raw.Search),
		Page:    parsePage(raw.Page),
		Limit:   parseLimit(raw.Limit),
		BrandID: parseID(raw.BrandID),
		ModelID: parseID(raw.ModelID),
		Sort:    DefaultSort,
	}

	category := strings.TrimSpace(raw.Category)
	if containsItem(Categories(sc), category) {
		fs.Category = category
	}

	// subcategory is scoped to the resolved category
	subcategory := strings.TrimSpace(raw.Subcategory)
	if fs.Category != "" && containsItem(Subcategories(fs.Category), subcategory) {
		fs.Subcategory = subcategory
	}

	condition := strings.TrimSpace(raw.Condition)
	if containsItem(Conditions(fs.Category), condition) {
		fs.Condition = condition
	}

	sort := strings.TrimSpace(raw.Sort)
	if containsItem(Sorts(sc), sort) {
		fs.Sort = sort
	}

	switch sc {
	case ContextTrade:
		tradeType := strings.TrimSpace(raw.TradeType)
		if containsItem(TradeFormats(), tradeType) {
			fs.TradeType = tradeType
		}
	case ContextBuy:
		if _, ok := FindPriceTier(strings.TrimSpace(raw.PriceTier)); ok {
			fs.PriceTier = strings.TrimSpace(raw.PriceTier)
		}
		fs.Tags = normalizeTags(raw.Tags, knownTags)
	}

	return fs
}

// Offset is the number of rows to skip for the current page.
func (f FilterSet) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Clone returns a copy that does not share the Tags slice.
func (f FilterSet) Clone() FilterSet {
	clone := f
	clone.Tags = slices.Clone(f.Tags)
	return clone
}

// HasTag reports whether tag is one of the requested tags.
func (f FilterSet) HasTag(tag string) bool {
	return slices.Contains(f.Tags, tag)
}

func normalizeSearch(raw string) string {
	search := strings.Join(strings.Fields(raw), " ")
	if utf8.RuneCountInString(search) > maxSearchLength {
		runes := []rune(search)
		search = strings.TrimSpace(string(runes[:maxSearchLength]))
	}
	return search
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	if page > maxPage {
		return maxPage
	}
	return page
}

func parseLimit(raw string) int {
	limit, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || !slices.Contains(pageSizes, limit) {
		return DefaultPageSize
	}
	return limit
}

func parseID(raw string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

// normalizeTags matches case-insensitively against the vocabulary, keeps the
// vocabulary spelling, drops duplicates and returns the result sorted.
func normalizeTags(requested []string, knownTags []Tag) []string {
	if len(requested) == 0 || len(knownTags) == 0 {
		return nil
	}

	canonical := make(map[string]string, len(knownTags))
	for _, tag := range knownTags {
		canonical[strings.ToLower(tag.Name)] = tag.Name
	}

	seen := make(map[string]bool)
	var tags []string
	for _, raw := range requested {
		key := strings.ToLower(strings.TrimSpace(raw))
		if key == "" {
			continue
		}
		name, ok := canonical[key]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		tags = append(tags, name)
		if len(tags) == maxTags {
			break
		}
	}
	slices.Sort(tags)
	return tags
}
