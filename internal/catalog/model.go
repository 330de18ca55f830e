package catalog

// Sentinel marks a size or flavour dimension that does not apply to an item.
const Sentinel = "-"

// PriceEntry is one (size, flavour, price) combination from an item's price table.
type PriceEntry struct {
	Size    string  `json:"size"`
	Flavour string  `json:"flavour"`
	Price   float64 `json:"price"`
}

// PriceTable is the ordered price table of one menu item.
// Order is insertion order; it only matters as a tie-break
// (first positive-price entry wins on the fallback tier).
// Immutable once loaded for an item instance.
type PriceTable []PriceEntry

// SideItem is a selectable add-on belonging to exactly one side category.
type SideItem struct {
	Name  string  `json:"name"`
	Type  string  `json:"type"` // "Regular" or "Premium"
	Price float64 `json:"price"`
}

// SideCategory is a named group of side items with a selection cap.
// MaxSelected == 0 means optional/uncapped, 1 behaves as a radio group,
// >1 is a bounded multi-select.
type SideCategory struct {
	CategoryName string     `json:"category_name"`
	DisplayName  string     `json:"display_name"`
	Items        []SideItem `json:"items"`
	MaxSelected  int        `json:"max_selected"`
}

// Addition is an uncapped flat-fee toggle item.
type Addition struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ItemOptions is the fully decoded option data of one menu item.
type ItemOptions struct {
	Sizes          []string       `json:"sizes"`
	Flavours       []string       `json:"flavours"`
	Prices         PriceTable     `json:"prices"`
	SideCategories []SideCategory `json:"side_categories"`
	Additions      []Addition     `json:"additions"`
	Images         []string       `json:"images"`
	Description    string         `json:"description"`
}

// DefaultSize returns the first declared size, or the sentinel when
// size does not apply to this item.
func (o *ItemOptions) DefaultSize() string {
	if len(o.Sizes) > 0 {
		return o.Sizes[0]
	}
	return Sentinel
}

// DefaultFlavour returns the first declared flavour, or the sentinel.
func (o *ItemOptions) DefaultFlavour() string {
	if len(o.Flavours) > 0 {
		return o.Flavours[0]
	}
	return Sentinel
}

// Category looks up a side category by its category name.
func (o *ItemOptions) Category(name string) *SideCategory {
	for i := range o.SideCategories {
		if o.SideCategories[i].CategoryName == name {
			return &o.SideCategories[i]
		}
	}
	return nil
}

// FindSide looks up a side item inside a category.
func (c *SideCategory) FindSide(name string) *SideItem {
	for i := range c.Items {
		if c.Items[i].Name == name {
			return &c.Items[i]
		}
	}
	return nil
}

// FindAddition looks up an addition by name.
func (o *ItemOptions) FindAddition(name string) *Addition {
	for i := range o.Additions {
		if o.Additions[i].Name == name {
			return &o.Additions[i]
		}
	}
	return nil
}
