package port

import (
	"marketplace-service/internal/core/domain"
	"time"
)

type SearchMetricsPort interface {
	ObserveSearch(sc domain.SearchContext, total int, duration time.Duration)
	ObserveFacetProbes(sc domain.SearchContext, probes int, duration time.Duration)
	IncSearchFailure(sc domain.SearchContext, stage string)
}
