package pricing

import (
	"strings"

	"caribmenu/internal/catalog"
)

// ResolveUnitPrice finds the price quoted for a (size, flavour)
// selection. Matching walks ordered tiers and returns on the first
// entry with a positive price:
//
//  1. exact size and flavour match
//  2. size is the sentinel: entries where size never applied, flavour matches
//  3. flavour is the sentinel: entries where flavour never applied, size matches
//  4. first positive-price entry anywhere in the table
//
// Menu data is authored inconsistently — some items vary only by
// flavour, some only by size, some by neither — so the sentinel has to
// be tried in both roles rather than requiring a full cross product.
// An empty table, or one with no positive price, resolves to 0.
func ResolveUnitPrice(table catalog.PriceTable, size, flavour string) float64 {
	for _, e := range table {
		if e.Price > 0 && e.Size == size && e.Flavour == flavour {
			return e.Price
		}
	}

	if size == catalog.Sentinel {
		for _, e := range table {
			if e.Price > 0 && e.Size == catalog.Sentinel && e.Flavour == flavour {
				return e.Price
			}
		}
	}

	if flavour == catalog.Sentinel {
		for _, e := range table {
			if e.Price > 0 && e.Flavour == catalog.Sentinel && e.Size == size {
				return e.Price
			}
		}
	}

	for _, e := range table {
		if e.Price > 0 {
			return e.Price
		}
	}
	return 0
}

// ResolveTotal folds side and addition prices into the unit price and
// multiplies by quantity. No rounding — trailing-zero suppression and
// the like are display concerns and must not touch the stored number.
func ResolveTotal(unitPrice float64, sides []catalog.SideItem, additions []catalog.Addition, quantity int) float64 {
	total := unitPrice
	for _, s := range sides {
		total += s.Price
	}
	for _, a := range additions {
		total += a.Price
	}
	return total * float64(quantity)
}

// SizeLabel composes the label stored with a cart entry: both
// dimensions when both apply, the single applicable one otherwise,
// the sentinel when neither applies.
func SizeLabel(size, flavour string) string {
	switch {
	case size != catalog.Sentinel && flavour != catalog.Sentinel:
		return strings.TrimSpace(size + " " + flavour)
	case size != catalog.Sentinel:
		return size
	case flavour != catalog.Sentinel:
		return flavour
	}
	return catalog.Sentinel
}
