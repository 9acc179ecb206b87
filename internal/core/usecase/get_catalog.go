package usecase

import (
	"context"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
)

// GetCatalogUseCase returns every vocabulary the filter UI of one context needs.
type GetCatalogUseCase struct {
	repo port.CatalogRepositoryPort
}

func NewGetCatalogUseCase(repo port.CatalogRepositoryPort) *GetCatalogUseCase {
	return &GetCatalogUseCase{repo: repo}
}

func (uc *GetCatalogUseCase) Execute(ctx context.Context, rawContext string) (*domain.CatalogView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetCatalog",
	})

	sc, err := domain.ParseSearchContext(rawContext)
	if err != nil {
		return nil, err
	}
	ucLogger.Info("Use case started", port.Fields{"context": sc.String()})

	categories := domain.Categories(sc)
	view := &domain.CatalogView{
		Context:       sc,
		Categories:    categories,
		Subcategories: make(map[string][]domain.DictionaryItem, len(categories)),
		Conditions:    make(map[string][]domain.DictionaryItem, len(categories)),
		Sorts:         domain.Sorts(sc),
		PageSizes:     domain.PageSizes(),
	}
	for _, category := range categories {
		view.Subcategories[category.SystemName] = domain.Subcategories(category.SystemName)
		view.Conditions[category.SystemName] = domain.Conditions(category.SystemName)
	}

	brands, err := uc.repo.GetBrands(ctx)
	if err != nil {
		ucLogger.Error("Storage returned an error while getting brands", err, nil)
		return nil, err
	}
	view.Brands = brands

	switch sc {
	case domain.ContextBuy:
		view.PriceTiers = domain.PriceTiers()
		tags, err := uc.repo.GetTags(ctx)
		if err != nil {
			ucLogger.Error("Storage returned an error while getting tags", err, nil)
			return nil, err
		}
		view.Tags = tags
	case domain.ContextTrade:
		view.TradeFormats = domain.TradeFormats()
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"brands": len(brands)})
	return view, nil
}

type GetBrandModelsUseCase struct {
	repo port.CatalogRepositoryPort
}

func NewGetBrandModelsUseCase(repo port.CatalogRepositoryPort) *GetBrandModelsUseCase {
	return &GetBrandModelsUseCase{repo: repo}
}

// Execute returns domain.ErrBrandNotFound for an unknown brand so it is not
// confused with a brand that simply has no models yet.
func (uc *GetBrandModelsUseCase) Execute(ctx context.Context, brandID int64) ([]domain.Model, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetBrandModels",
		"brand_id": brandID,
	})

	ucLogger.Info("Use case started", nil)

	brands, err := uc.repo.GetBrands(ctx)
	if err != nil {
		ucLogger.Error("Storage returned an error while getting brands", err, nil)
		return nil, err
	}
	found := false
	for _, brand := range brands {
		if brand.ID == brandID {
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrBrandNotFound
	}

	models, err := uc.repo.GetModelsByBrand(ctx, brandID)
	if err != nil {
		ucLogger.Error("Storage returned an error while getting models", err, nil)
		return nil, err
	}
	if models == nil {
		models = []domain.Model{}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"models": len(models)})
	return models, nil
}
