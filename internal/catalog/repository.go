package catalog

import "context"

// MenuItem is one menu item record. SourceURL is the item's published
// page, next to which its structured option data lives; BasePrice,
// Sizes and Flavours are the weaker facts used when that data is
// missing or incomplete.
type MenuItem struct {
	ID        string   `json:"id"`
	Slug      string   `json:"slug"`
	Name      string   `json:"name"`
	SourceURL string   `json:"source_url"`
	DetailURL string   `json:"detail_url"`
	BasePrice float64  `json:"base_price"`
	Sizes     []string `json:"sizes"`
	Flavours  []string `json:"flavours"`
	Images    []string `json:"images"`
}

// Repository defines all database operations for menu items.
type Repository interface {
	Upsert(ctx context.Context, item *MenuItem) error
	GetBySlug(ctx context.Context, slug string) (*MenuItem, error)
	List(ctx context.Context) ([]MenuItem, error)
	SaveImages(ctx context.Context, slug string, images []string) error
}
