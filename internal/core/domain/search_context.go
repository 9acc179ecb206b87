package domain

import "strings"

// SearchContext is the marketplace mode a search runs in.
type SearchContext string

const (
	ContextBuy   SearchContext = "buy"
	ContextTrade SearchContext = "trade"
)

// ParseSearchContext accepts only the two supported modes; anything else is a user error.
func ParseSearchContext(raw string) (SearchContext, error) {
	switch SearchContext(strings.ToLower(strings.TrimSpace(raw))) {
	case ContextBuy:
		return ContextBuy, nil
	case ContextTrade:
		return ContextTrade, nil
	default:
		return "", ErrUnsupportedContext
	}
}

func (c SearchContext) String() string {
	return string(c)
}
