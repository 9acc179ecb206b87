package usecase

import (
	"context"
	"errors"
	"fmt"
	"marketplace-service/internal/core/domain"

	"golang.org/x/sync/errgroup"
)

type listingCounter interface {
	Count(ctx context.Context, filters domain.FilterSet) (int, error)
}

// FacetCounter answers "how many results if this one value were selected"
// for every candidate value of every counted dimension.
type FacetCounter struct {
	counter     listingCounter
	concurrency int
}

func NewFacetCounter(counter listingCounter, concurrency int) (*FacetCounter, error) {
	if counter == nil {
		return nil, errors.New("listing counter cannot be nil")
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &FacetCounter{counter: counter, concurrency: concurrency}, nil
}

// CountAll runs one count per probe, at most concurrency at a time. The first
// failure cancels the probes still in flight and is returned.
func (fc *FacetCounter) CountAll(ctx context.Context, filters domain.FilterSet) (domain.FacetCounts, int, error) {
	probes := domain.FacetProbes(filters)
	results := make([]int, len(probes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fc.concurrency)
	for i, probe := range probes {
		g.Go(func() error {
			count, err := fc.counter.Count(gctx, probe.Filters)
			if err != nil {
				return fmt.Errorf("facet %s=%s: %w", probe.Dimension, probe.Value, err)
			}
			results[i] = count
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, len(probes), err
	}

	counts := make(domain.FacetCounts)
	for i, probe := range probes {
		if counts[probe.Dimension] == nil {
			counts[probe.Dimension] = make(map[string]int)
		}
		counts[probe.Dimension][probe.Value] = results[i]
	}
	return counts, len(probes), nil
}
