package usecase

import (
	"context"
	"fmt"
	"marketplace-service/internal/adapters/memory"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
	"sync"
	"time"
)

type nopMetrics struct {
	mu       sync.Mutex
	failures []string
}

func (m *nopMetrics) ObserveSearch(domain.SearchContext, int, time.Duration)      {}
func (m *nopMetrics) ObserveFacetProbes(domain.SearchContext, int, time.Duration) {}
func (m *nopMetrics) IncSearchFailure(_ domain.SearchContext, stage string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, stage)
}

type stubRenderer struct{}

func (stubRenderer) RenderResults(sc domain.SearchContext, items []domain.Listing) (string, error) {
	return fmt.Sprintf("<div>%s:%d</div>", sc, len(items)), nil
}

type recordingSearchEvents struct {
	published chan *domain.SearchResult
}

func newRecordingSearchEvents() *recordingSearchEvents {
	return &recordingSearchEvents{published: make(chan *domain.SearchResult, 8)}
}

func (r *recordingSearchEvents) PublishSearchPerformed(ctx context.Context, result *domain.SearchResult) error {
	r.published <- result
	return nil
}

// failingCounts serves pages but fails every count.
type failingCounts struct {
	*memory.Store
}

func (failingCounts) CountWithFilters(ctx context.Context, filters domain.FilterSet) (int, error) {
	return 0, fmt.Errorf("pq: relation \"listings\" does not exist")
}

var baseTime = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func price(v float64) *float64 { return &v }

// newMarketStore holds the given number of phones plus tablets as noise, all for sale.
func newMarketStore(phones, tablets int) *memory.Store {
	store := memory.NewStore()
	store.AddBrand(domain.Brand{ID: 1, Name: "Apple"})
	store.AddBrand(domain.Brand{ID: 2, Name: "Samsung"})
	store.AddModel(domain.Model{ID: 10, BrandID: 1, Name: "iPhone 13"})
	store.AddModel(domain.Model{ID: 11, BrandID: 1, Name: "iPad Air"})
	store.AddTag(domain.Tag{ID: 1, Name: "vintage"})
	store.AddTag(domain.Tag{ID: 2, Name: "rare"})

	id := int64(1)
	for i := 0; i < phones; i++ {
		store.AddListing(domain.Listing{
			ID: id, Title: fmt.Sprintf("Phone %d", i), Category: "phones", Subcategory: "smartphones",
			Condition: "good", BrandID: 1, ModelID: 10, Price: price(150), ForSale: true,
			CreatedAt: baseTime.Add(time.Duration(id) * time.Hour),
		})
		id++
	}
	for i := 0; i < tablets; i++ {
		store.AddListing(domain.Listing{
			ID: id, Title: fmt.Sprintf("Tablet %d", i), Category: "tablets", Subcategory: "ipads",
			Condition: "new", BrandID: 1, ModelID: 11, Price: price(450), ForSale: true,
			CreatedAt: baseTime.Add(time.Duration(id) * time.Hour),
		})
		id++
	}
	return store
}

type storageAndCatalog interface {
	port.ListingStoragePort
	port.CatalogRepositoryPort
}

func newSearchUseCase(store storageAndCatalog, metrics *nopMetrics, events *recordingSearchEvents) *SearchListingsUseCase {
	engine, err := NewQueryEngine(store, time.Second)
	if err != nil {
		panic(err)
	}
	counter, err := NewFacetCounter(engine, 4)
	if err != nil {
		panic(err)
	}
	uc, err := NewSearchListingsUseCase(store, engine, counter, stubRenderer{}, events, metrics)
	if err != nil {
		panic(err)
	}
	return uc
}
