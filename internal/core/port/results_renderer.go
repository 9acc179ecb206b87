package port

import "marketplace-service/internal/core/domain"

// ResultsRendererPort turns a page of listings into the markup injected by the filter UI.
type ResultsRendererPort interface {
	RenderResults(sc domain.SearchContext, items []domain.Listing) (string, error)
}
