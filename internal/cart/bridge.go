package cart

import (
	"context"

	"caribmenu/internal/catalog"
)

// SideRef is one committed side item inside a cart entry.
type SideRef struct {
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	Price float64 `json:"price"`
}

// SidePayload is the committed-sides shape the cart collaborator
// expects: a flat triple list plus the same items grouped by category.
// Both views are written because downstream consumers read different
// ones; the shape is a compatibility contract, do not rearrange it.
type SidePayload struct {
	Items      [][]any              `json:"items"` // [name, type, price] triples
	Categories map[string][]SideRef `json:"categories"`
}

// Entry is one validated cart line in the collaborator's wire shape:
// additions stay a flat [name, price, ...] list and quantity is a
// string-encoded integer.
type Entry struct {
	ID        string      `json:"id"`
	ItemName  string      `json:"name"`
	SizeLabel string      `json:"size"`
	Sides     SidePayload `json:"sides"`
	Additions []any       `json:"additions"` // flat [name, price, ...]
	Quantity  string      `json:"quantity"`
	TotalCost float64     `json:"totalCost"`
}

// Bridge receives validated cart entries. The postgres repository is
// the default implementation; tests substitute their own.
type Bridge interface {
	Commit(ctx context.Context, userID string, entry *Entry) error
}

// newSidePayload builds both views of the committed sides from the
// selected item names, grouped per category in selection order.
func newSidePayload(categories []catalog.SideCategory, selectedByCategory map[string][]string) SidePayload {
	payload := SidePayload{
		Items:      [][]any{},
		Categories: make(map[string][]SideRef),
	}

	for _, c := range categories {
		for _, name := range selectedByCategory[c.CategoryName] {
			side := c.FindSide(name)
			if side == nil {
				continue
			}
			ref := SideRef{Name: side.Name, Type: side.Type, Price: side.Price}
			payload.Items = append(payload.Items, []any{side.Name, side.Type, side.Price})
			payload.Categories[c.CategoryName] = append(payload.Categories[c.CategoryName], ref)
		}
	}
	return payload
}
