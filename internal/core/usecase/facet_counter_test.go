package usecase

import (
	"context"
	"errors"
	"marketplace-service/internal/core/domain"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockListingCounter struct {
	mock.Mock
}

func (m *MockListingCounter) Count(ctx context.Context, filters domain.FilterSet) (int, error) {
	args := m.Called(ctx, filters)
	return args.Int(0), args.Error(1)
}

func TestFacetCounter_CountsEveryProbe(t *testing.T) {
	counter := new(MockListingCounter)
	counter.On("Count", mock.Anything, mock.MatchedBy(func(f domain.FilterSet) bool {
		return f.Category == "phones"
	})).Return(7, nil)
	counter.On("Count", mock.Anything, mock.Anything).Return(0, nil)

	fc, err := NewFacetCounter(counter, 3)
	require.NoError(t, err)

	filters := domain.NormalizeFilters(domain.ContextBuy, domain.RawFilterParams{}, nil)
	counts, probes, err := fc.CountAll(context.Background(), filters)
	require.NoError(t, err)

	// 6 categories + 5 conditions + 4 price tiers
	assert.Equal(t, 15, probes)
	assert.Equal(t, 7, counts.Get(domain.FacetCategory, "phones"))
	assert.Equal(t, 0, counts.Get(domain.FacetCategory, "tablets"))
	assert.Contains(t, counts, domain.FacetPriceTier)
	assert.NotContains(t, counts, domain.FacetSubcategory)
	counter.AssertNumberOfCalls(t, "Count", 15)
}

func TestFacetCounter_FirstFailureFailsAll(t *testing.T) {
	storageErr := errors.New("connection reset")
	counter := new(MockListingCounter)
	counter.On("Count", mock.Anything, mock.MatchedBy(func(f domain.FilterSet) bool {
		return f.Condition == "fair"
	})).Return(0, storageErr)
	counter.On("Count", mock.Anything, mock.Anything).Return(1, nil)

	fc, err := NewFacetCounter(counter, 2)
	require.NoError(t, err)

	filters := domain.NormalizeFilters(domain.ContextTrade, domain.RawFilterParams{}, nil)
	counts, _, err := fc.CountAll(context.Background(), filters)

	assert.ErrorIs(t, err, storageErr)
	assert.Nil(t, counts)
}

type concurrencyProbe struct {
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (p *concurrencyProbe) Count(ctx context.Context, filters domain.FilterSet) (int, error) {
	n := p.inFlight.Add(1)
	defer p.inFlight.Add(-1)
	for {
		peak := p.peak.Load()
		if n <= peak || p.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	return 1, nil
}

func TestFacetCounter_RespectsConcurrencyLimit(t *testing.T) {
	probe := &concurrencyProbe{}
	fc, err := NewFacetCounter(probe, 2)
	require.NoError(t, err)

	filters := domain.NormalizeFilters(domain.ContextBuy, domain.RawFilterParams{Category: "phones"}, nil)
	_, probes, err := fc.CountAll(context.Background(), filters)
	require.NoError(t, err)

	assert.Equal(t, 18, probes)
	assert.LessOrEqual(t, probe.peak.Load(), int32(2))
}

func TestNewFacetCounter_RequiresCounter(t *testing.T) {
	_, err := NewFacetCounter(nil, 4)
	assert.Error(t, err)
}
