package domain

import "time"

type ListingStatus string

const (
	ListingActive   ListingStatus = "active"
	ListingSold     ListingStatus = "sold"
	ListingDelisted ListingStatus = "delisted"
)

// Listing is one sellable or tradeable item.
type Listing struct {
	ID          int64
	Title       string
	Description string
	Category    string
	Subcategory string
	Condition   string
	BrandID     int64
	ModelID     int64
	BrandName   string
	ModelName   string
	Price       *float64 // buy listings only
	TradeType   string   // trade listings only
	ForSale     bool
	ForTrade    bool
	Status      ListingStatus
	OwnerID     int64
	Tags        []string
	CreatedAt   time.Time
}

type Brand struct {
	ID   int64
	Name string
}

// Model always belongs to exactly one Brand.
type Model struct {
	ID      int64
	BrandID int64
	Name    string
}

type Tag struct {
	ID   int64
	Name string
}

// SearchPage is one page of results plus the totals needed to paginate.
type SearchPage struct {
	Items      []Listing
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// TotalPages is ceil(total/limit) but never below 1, so an empty result still has one page.
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 1
	}
	pages := (total + limit - 1) / limit
	if pages < 1 {
		return 1
	}
	return pages
}
