package catalog

import (
	"encoding/json"
	"strconv"
	"strings"
)

// OptionsDoc mirrors the JSON published alongside each item page.
// Menu data is authored by hand, so every field is optional and the
// flat arrays mix strings and numbers freely. Absence or malformed
// values must never fail a load, only degrade it.
type OptionsDoc struct {
	Sizes          []string          `json:"sizes"`
	Flavours       []string          `json:"flavours"`
	Items          []json.RawMessage `json:"items"` // flat [size, flavour, price, ...]
	SideCategories []SideCategoryDoc `json:"side_categories"`
	Additions      []json.RawMessage `json:"additions"` // flat [name, price, ...]
	Images         []json.RawMessage `json:"images"`
	Content        string            `json:"content"`
}

// SideCategoryDoc is the wire form of one side category.
// Config is a 9-element numeric array from the menu editor; only the
// regular-tier slot (index 3) feeds the selection cap.
type SideCategoryDoc struct {
	CategoryName string            `json:"category_name"`
	DisplayName  string            `json:"display_name"`
	Items        []json.RawMessage `json:"items"` // flat [name, type, price, ...]
	Config       []json.RawMessage `json:"config"`
}

const regularTierConfigIndex = 3

// DecodeOptions turns a raw options document into typed option data.
// Flat triple/pair encodings are decoded here, at the load boundary;
// nothing past this function handles flat arrays.
func DecodeOptions(doc *OptionsDoc) *ItemOptions {
	if doc == nil {
		return &ItemOptions{}
	}

	opts := &ItemOptions{
		Sizes:       doc.Sizes,
		Flavours:    doc.Flavours,
		Prices:      DecodePriceTriples(doc.Items),
		Additions:   DecodeAdditionPairs(doc.Additions),
		Images:      NormalizeImages(doc.Images),
		Description: doc.Content,
	}

	for _, cd := range doc.SideCategories {
		opts.SideCategories = append(opts.SideCategories, SideCategory{
			CategoryName: cd.CategoryName,
			DisplayName:  cd.DisplayName,
			Items:        DecodeSideTriples(cd.Items),
			MaxSelected:  CapFromConfig(cd.Config),
		})
	}

	return opts
}

// DecodePriceTriples decodes the historical flat encoding
// [size, flavour, price, size, flavour, price, ...] into ordered entries.
// A trailing partial triple is dropped.
func DecodePriceTriples(flat []json.RawMessage) PriceTable {
	var table PriceTable
	for i := 0; i+2 < len(flat); i += 3 {
		table = append(table, PriceEntry{
			Size:    asString(flat[i]),
			Flavour: asString(flat[i+1]),
			Price:   asNumber(flat[i+2]),
		})
	}
	return table
}

// DecodeSideTriples decodes flat [name, type, price, ...] side items.
func DecodeSideTriples(flat []json.RawMessage) []SideItem {
	var items []SideItem
	for i := 0; i+2 < len(flat); i += 3 {
		items = append(items, SideItem{
			Name:  asString(flat[i]),
			Type:  asString(flat[i+1]),
			Price: asNumber(flat[i+2]),
		})
	}
	return items
}

// DecodeAdditionPairs decodes flat [name, price, ...] additions.
func DecodeAdditionPairs(flat []json.RawMessage) []Addition {
	var adds []Addition
	for i := 0; i+1 < len(flat); i += 2 {
		adds = append(adds, Addition{
			Name:  asString(flat[i]),
			Price: asNumber(flat[i+1]),
		})
	}
	return adds
}

// CapFromConfig extracts the effective selection cap from the 9-element
// editor config array. Short or missing configs mean no cap.
func CapFromConfig(config []json.RawMessage) int {
	if len(config) <= regularTierConfigIndex {
		return 0
	}
	cap := int(asNumber(config[regularTierConfigIndex]))
	if cap < 0 {
		return 0
	}
	return cap
}

// NormalizeImages flattens the two historical image encodings — plain
// path strings and object-shaped entries — into a single path list.
func NormalizeImages(raw []json.RawMessage) []string {
	var images []string
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			if s != "" {
				images = append(images, s)
			}
			continue
		}

		var obj map[string]json.RawMessage
		if err := json.Unmarshal(r, &obj); err != nil {
			continue
		}
		for _, key := range []string{"src", "image", "path"} {
			if v, ok := obj[key]; ok {
				if img := asString(v); img != "" {
					images = append(images, img)
				}
				break
			}
		}
	}
	return images
}

// SynthesizeTable builds a price table when no per-combination prices
// were published. With neither sizes nor flavours it yields the single
// entry {-,-,base}; otherwise one entry per known size and/or flavour,
// all at the base price. A non-positive base yields nothing — there is
// no price fact to synthesize from.
func SynthesizeTable(basePrice float64, sizes, flavours []string) PriceTable {
	if basePrice <= 0 {
		return nil
	}

	if len(sizes) == 0 && len(flavours) == 0 {
		return PriceTable{{Size: Sentinel, Flavour: Sentinel, Price: basePrice}}
	}

	var table PriceTable
	if len(sizes) > 0 && len(flavours) > 0 {
		for _, s := range sizes {
			for _, f := range flavours {
				table = append(table, PriceEntry{Size: s, Flavour: f, Price: basePrice})
			}
		}
		return table
	}
	for _, s := range sizes {
		table = append(table, PriceEntry{Size: s, Flavour: Sentinel, Price: basePrice})
	}
	for _, f := range flavours {
		table = append(table, PriceEntry{Size: Sentinel, Flavour: f, Price: basePrice})
	}
	return table
}

// asString reads a raw JSON value as a string, tolerating numbers.
func asString(r json.RawMessage) string {
	var s string
	if err := json.Unmarshal(r, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n float64
	if err := json.Unmarshal(r, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return ""
}

// asNumber reads a raw JSON value as a number, tolerating numeric
// strings with stray currency symbols ("$4.50", "4.50TT").
func asNumber(r json.RawMessage) float64 {
	var n float64
	if err := json.Unmarshal(r, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(r, &s); err != nil {
		return 0
	}
	s = strings.TrimFunc(strings.TrimSpace(s), func(c rune) bool {
		return (c < '0' || c > '9') && c != '.' && c != '-'
	})
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return n
}
