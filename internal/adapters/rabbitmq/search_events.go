package rabbitmq

import (
	"context"
	"marketplace-service/internal/constants"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/contracts"
	"marketplace-service/internal/core/domain"
	"time"

	"github.com/google/uuid"
)

type searchFiltersDTO struct {
	Search      string   `json:"search,omitempty"`
	Category    string   `json:"category,omitempty"`
	Subcategory string   `json:"subcategory,omitempty"`
	Condition   string   `json:"condition,omitempty"`
	BrandID     int64    `json:"brand_id,omitempty"`
	ModelID     int64    `json:"model_id,omitempty"`
	TradeType   string   `json:"trade_type,omitempty"`
	PriceTier   string   `json:"price_tier,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Sort        string   `json:"sort"`
	Page        int      `json:"page"`
	Limit       int      `json:"limit"`
}

// SearchPerformedDTO is the body of a SearchPerformed/1.0.0 message.
type SearchPerformedDTO struct {
	EventID    string           `json:"event_id"`
	OccurredAt string           `json:"occurred_at"`
	TraceID    string           `json:"trace_id,omitempty"`
	Context    string           `json:"context"`
	Filters    searchFiltersDTO `json:"filters"`
	Total      int              `json:"total"`
	TotalPages int              `json:"total_pages"`
}

type SearchEventsAdapter struct {
	envelope *eventEnvelope
}

func NewSearchEventsAdapter(producer messagePublisher, validator eventValidator) (*SearchEventsAdapter, error) {
	envelope, err := newEventEnvelope(producer, validator)
	if err != nil {
		return nil, err
	}
	return &SearchEventsAdapter{envelope: envelope}, nil
}

func (a *SearchEventsAdapter) PublishSearchPerformed(ctx context.Context, result *domain.SearchResult) error {
	eventID := uuid.New()
	f := result.Filters
	dto := SearchPerformedDTO{
		EventID:    eventID.String(),
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
		TraceID:    contextkeys.TraceIDFromContext(ctx),
		Context:    result.Context.String(),
		Filters: searchFiltersDTO{
			Search:      f.Search,
			Category:    f.Category,
			Subcategory: f.Subcategory,
			Condition:   f.Condition,
			BrandID:     f.BrandID,
			ModelID:     f.ModelID,
			TradeType:   f.TradeType,
			PriceTier:   f.PriceTier,
			Tags:        f.Tags,
			Sort:        f.Sort,
			Page:        f.Page,
			Limit:       f.Limit,
		},
		Total:      result.Page.Total,
		TotalPages: result.Page.TotalPages,
	}

	return a.envelope.publish(ctx, constants.RoutingKeySearchPerformed,
		contracts.SearchPerformedEvent, contracts.EventVersionV1, eventID, dto)
}
