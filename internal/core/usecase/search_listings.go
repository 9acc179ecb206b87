package usecase

import (
	"context"
	"errors"
	"fmt"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
	"time"
)

// SearchListingsUseCase is the listings endpoint end to end: normalize, run
// the page query, count facets and render the results partial.
type SearchListingsUseCase struct {
	catalog  port.CatalogRepositoryPort
	engine   *QueryEngine
	counter  *FacetCounter
	renderer port.ResultsRendererPort
	events   port.SearchEventsPort
	metrics  port.SearchMetricsPort
}

func NewSearchListingsUseCase(
	catalog port.CatalogRepositoryPort,
	engine *QueryEngine,
	counter *FacetCounter,
	renderer port.ResultsRendererPort,
	events port.SearchEventsPort,
	metrics port.SearchMetricsPort,
) (*SearchListingsUseCase, error) {
	if catalog == nil || engine == nil || counter == nil {
		return nil, errors.New("catalog, query engine and facet counter are required")
	}
	if renderer == nil {
		return nil, errors.New("results renderer cannot be nil")
	}
	if events == nil || metrics == nil {
		return nil, errors.New("search events and metrics cannot be nil")
	}
	return &SearchListingsUseCase{
		catalog:  catalog,
		engine:   engine,
		counter:  counter,
		renderer: renderer,
		events:   events,
		metrics:  metrics,
	}, nil
}

func (uc *SearchListingsUseCase) Execute(ctx context.Context, raw domain.RawFilterParams) (*domain.SearchResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SearchListings",
	})

	sc, err := domain.ParseSearchContext(raw.Context)
	if err != nil {
		ucLogger.Warn("Unsupported search context", port.Fields{"context": raw.Context})
		return nil, err
	}
	ucLogger = ucLogger.WithFields(port.Fields{"context": sc.String()})
	ucLogger.Info("Use case started", nil)
	startTime := time.Now()

	catalog := newRequestCatalog(uc.catalog)

	var knownTags []domain.Tag
	if sc == domain.ContextBuy {
		if knownTags, err = catalog.Tags(ctx); err != nil {
			return nil, uc.fail(ucLogger, sc, "catalog", err)
		}
	}
	filters := domain.NormalizeFilters(sc, raw, knownTags)
	ucLogger.Debug("Filters normalized", port.Fields{"filters": filters})

	page, err := uc.engine.Run(ctx, filters)
	if err != nil {
		return nil, uc.fail(ucLogger, sc, "query", err)
	}

	html, err := uc.renderer.RenderResults(sc, page.Items)
	if err != nil {
		return nil, uc.fail(ucLogger, sc, "render", err)
	}

	facetStart := time.Now()
	counts, probes, err := uc.counter.CountAll(ctx, filters)
	if err != nil {
		return nil, uc.fail(ucLogger, sc, "facets", err)
	}
	uc.metrics.ObserveFacetProbes(sc, probes, time.Since(facetStart))

	brands, err := catalog.Brands(ctx)
	if err != nil {
		return nil, uc.fail(ucLogger, sc, "catalog", err)
	}
	models, err := catalog.Models(ctx, filters.BrandID)
	if err != nil {
		return nil, uc.fail(ucLogger, sc, "catalog", err)
	}

	result := &domain.SearchResult{
		Context: sc,
		Filters: filters,
		Page:    *page,
		HTML:    html,
		Facets: buildFacets(facetInput{
			filters: filters,
			counts:  counts,
			brands:  brands,
			models:  models,
			tags:    knownTags,
		}),
	}

	uc.metrics.ObserveSearch(sc, page.Total, time.Since(startTime))
	uc.publishSearchPerformed(ctx, ucLogger, result)

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_found":   page.Total,
		"items_on_page": len(page.Items),
		"facet_probes":  probes,
	})
	return result, nil
}

func (uc *SearchListingsUseCase) fail(logger port.LoggerPort, sc domain.SearchContext, stage string, err error) error {
	logger.Error("Search failed", err, port.Fields{"stage": stage})
	uc.metrics.IncSearchFailure(sc, stage)
	return fmt.Errorf("search %s: %w", stage, err)
}

// publishSearchPerformed never blocks or fails the search itself.
func (uc *SearchListingsUseCase) publishSearchPerformed(ctx context.Context, logger port.LoggerPort, result *domain.SearchResult) {
	pubCtx := context.WithoutCancel(ctx)
	go func() {
		if err := uc.events.PublishSearchPerformed(pubCtx, result); err != nil {
			logger.Warn("Failed to publish search event", port.Fields{"error": err.Error()})
		}
	}()
}
