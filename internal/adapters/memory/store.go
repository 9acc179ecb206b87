package memory

import (
	"cmp"
	"context"
	"marketplace-service/internal/core/domain"
	"slices"
	"strings"
	"sync"
)

// Store keeps listings, reference data and orders in process memory. It
// answers the same ports as the postgres adapters and backs local runs and tests.
type Store struct {
	mu       sync.RWMutex
	listings []domain.Listing
	brands   []domain.Brand
	models   []domain.Model
	tags     []domain.Tag
	orders   map[int64]domain.Order
	history  []domain.OrderStatusChange
}

func NewStore() *Store {
	return &Store{orders: make(map[int64]domain.Order)}
}

func (s *Store) AddBrand(b domain.Brand) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brands = append(s.brands, b)
}

func (s *Store) AddModel(m domain.Model) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models = append(s.models, m)
}

func (s *Store) AddTag(t domain.Tag) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags = append(s.tags, t)
}

// AddListing resolves brand and model names the way the SQL joins do.
func (s *Store) AddListing(l domain.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.brands {
		if b.ID == l.BrandID {
			l.BrandName = b.Name
		}
	}
	for _, m := range s.models {
		if m.ID == l.ModelID {
			l.ModelName = m.Name
		}
	}
	l.Tags = slices.Sorted(slices.Values(l.Tags))
	if l.Status == "" {
		l.Status = domain.ListingActive
	}
	s.listings = append(s.listings, l)
}

func (s *Store) AddOrder(o domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = o
}

// History returns the recorded status changes, oldest first.
func (s *Store) History() []domain.OrderStatusChange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.history)
}

func (s *Store) FindWithFilters(ctx context.Context, filters domain.FilterSet) (*domain.SearchPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := s.match(filters)
	slices.SortStableFunc(matched, listingOrder(filters.Sort))

	items := make([]domain.Listing, 0, filters.Limit)
	if offset := filters.Offset(); offset < len(matched) {
		end := min(offset+filters.Limit, len(matched))
		for _, l := range matched[offset:end] {
			l.Tags = slices.Clone(l.Tags)
			items = append(items, l)
		}
	}
	return &domain.SearchPage{
		Items: items,
		Total: len(matched),
		Page:  filters.Page,
		Limit: filters.Limit,
	}, nil
}

func (s *Store) CountWithFilters(ctx context.Context, filters domain.FilterSet) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.match(filters)), nil
}

func (s *Store) GetListingDetails(ctx context.Context, listingID int64) (*domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.listings {
		if l.ID == listingID && l.Status == domain.ListingActive {
			l.Tags = slices.Clone(l.Tags)
			return &l, nil
		}
	}
	return nil, domain.ErrListingNotFound
}

func (s *Store) GetBrands(ctx context.Context) ([]domain.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	brands := slices.Clone(s.brands)
	slices.SortFunc(brands, func(a, b domain.Brand) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return brands, nil
}

func (s *Store) GetModelsByBrand(ctx context.Context, brandID int64) ([]domain.Model, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	models := make([]domain.Model, 0)
	for _, m := range s.models {
		if m.BrandID == brandID {
			models = append(models, m)
		}
	}
	slices.SortFunc(models, func(a, b domain.Model) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return models, nil
}

func (s *Store) GetTags(ctx context.Context) ([]domain.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tags := slices.Clone(s.tags)
	slices.SortFunc(tags, func(a, b domain.Tag) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return tags, nil
}

func (s *Store) match(filters domain.FilterSet) []domain.Listing {
	var matched []domain.Listing
	for _, l := range s.listings {
		if matchesListing(l, filters) {
			matched = append(matched, l)
		}
	}
	return matched
}

func matchesListing(l domain.Listing, f domain.FilterSet) bool {
	if l.Status != domain.ListingActive {
		return false
	}
	switch f.Context {
	case domain.ContextTrade:
		if !l.ForTrade || (f.TradeType != "" && l.TradeType != f.TradeType) {
			return false
		}
	default:
		if !l.ForSale {
			return false
		}
		if tier, ok := domain.FindPriceTier(f.PriceTier); ok && !inTier(l.Price, tier) {
			return false
		}
		for _, tag := range f.Tags {
			if !slices.Contains(l.Tags, tag) {
				return false
			}
		}
	}

	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(l.Title), needle) &&
			!strings.Contains(strings.ToLower(l.Description), needle) {
			return false
		}
	}
	if f.Category != "" && l.Category != f.Category {
		return false
	}
	if f.Subcategory != "" && l.Subcategory != f.Subcategory {
		return false
	}
	if f.Condition != "" && l.Condition != f.Condition {
		return false
	}
	if f.BrandID > 0 && l.BrandID != f.BrandID {
		return false
	}
	if f.ModelID > 0 && l.ModelID != f.ModelID {
		return false
	}
	return true
}

func inTier(price *float64, tier domain.PriceTier) bool {
	if price == nil {
		return false
	}
	if tier.Min != nil && *price < *tier.Min {
		return false
	}
	if tier.Max != nil && *price >= *tier.Max {
		return false
	}
	return true
}

// listingOrder mirrors the SQL ORDER BY, id tiebreak included. Missing prices sort last.
func listingOrder(sort string) func(a, b domain.Listing) int {
	byIDDesc := func(a, b domain.Listing) int { return cmp.Compare(b.ID, a.ID) }
	switch sort {
	case domain.SortOldest:
		return func(a, b domain.Listing) int {
			return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
		}
	case domain.SortPriceAsc:
		return func(a, b domain.Listing) int {
			return cmp.Or(comparePrice(a.Price, b.Price, false), byIDDesc(a, b))
		}
	case domain.SortPriceDesc:
		return func(a, b domain.Listing) int {
			return cmp.Or(comparePrice(a.Price, b.Price, true), byIDDesc(a, b))
		}
	case domain.SortTitleAsc:
		return func(a, b domain.Listing) int {
			return cmp.Or(cmp.Compare(a.Title, b.Title), byIDDesc(a, b))
		}
	default:
		return func(a, b domain.Listing) int {
			return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), byIDDesc(a, b))
		}
	}
}

func comparePrice(a, b *float64, desc bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case desc:
		return cmp.Compare(*b, *a)
	default:
		return cmp.Compare(*a, *b)
	}
}
