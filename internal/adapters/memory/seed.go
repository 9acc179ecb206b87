package memory

import (
	"encoding/json"
	"fmt"
	"marketplace-service/internal/core/domain"
	"os"
	"time"
)

type seedFile struct {
	Brands   []seedBrand   `json:"brands"`
	Models   []seedModel   `json:"models"`
	Tags     []seedTag     `json:"tags"`
	Listings []seedListing `json:"listings"`
	Orders   []seedOrder   `json:"orders"`
}

type seedBrand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type seedModel struct {
	ID      int64  `json:"id"`
	BrandID int64  `json:"brand_id"`
	Name    string `json:"name"`
}

type seedTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type seedListing struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory"`
	Condition   string    `json:"condition"`
	BrandID     int64     `json:"brand_id"`
	ModelID     int64     `json:"model_id"`
	Price       *float64  `json:"price"`
	TradeType   string    `json:"trade_type"`
	ForSale     bool      `json:"for_sale"`
	ForTrade    bool      `json:"for_trade"`
	Status      string    `json:"status"`
	OwnerID     int64     `json:"owner_id"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
}

type seedOrder struct {
	ID             int64     `json:"id"`
	ListingID      int64     `json:"listing_id"`
	BuyerID        int64     `json:"buyer_id"`
	SellerID       int64     `json:"seller_id"`
	Status         string    `json:"status"`
	TotalAmount    float64   `json:"total_amount"`
	TrackingNumber string    `json:"tracking_number"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// LoadSeedFile builds a Store from a JSON fixture. Reference data is loaded
// before listings so brand and model names resolve.
func LoadSeedFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to decode seed file %s: %w", path, err)
	}

	store := NewStore()
	for _, b := range seed.Brands {
		store.AddBrand(domain.Brand{ID: b.ID, Name: b.Name})
	}
	for _, m := range seed.Models {
		store.AddModel(domain.Model{ID: m.ID, BrandID: m.BrandID, Name: m.Name})
	}
	for _, t := range seed.Tags {
		store.AddTag(domain.Tag{ID: t.ID, Name: t.Name})
	}
	for _, l := range seed.Listings {
		store.AddListing(domain.Listing{
			ID:          l.ID,
			Title:       l.Title,
			Description: l.Description,
			Category:    l.Category,
			Subcategory: l.Subcategory,
			Condition:   l.Condition,
			BrandID:     l.BrandID,
			ModelID:     l.ModelID,
			Price:       l.Price,
			TradeType:   l.TradeType,
			ForSale:     l.ForSale,
			ForTrade:    l.ForTrade,
			Status:      domain.ListingStatus(l.Status),
			OwnerID:     l.OwnerID,
			Tags:        l.Tags,
			CreatedAt:   l.CreatedAt,
		})
	}
	for _, o := range seed.Orders {
		status, err := domain.ParseOrderStatus(o.Status)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", o.ID, err)
		}
		store.AddOrder(domain.Order{
			ID:             o.ID,
			ListingID:      o.ListingID,
			BuyerID:        o.BuyerID,
			SellerID:       o.SellerID,
			Status:         status,
			TotalAmount:    o.TotalAmount,
			TrackingNumber: o.TrackingNumber,
			CreatedAt:      o.CreatedAt,
			UpdatedAt:      o.UpdatedAt,
		})
	}
	return store, nil
}
