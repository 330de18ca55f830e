package cart

import (
	"context"
	"strconv"

	"caribmenu/internal/catalog"
	"caribmenu/internal/pricing"
	"caribmenu/internal/selection"

	"github.com/google/uuid"
)

// ValidationFailure blocks an add-to-cart attempt whose required side
// categories are not fully selected. Message enumerates every unmet
// category in one pass.
type ValidationFailure struct {
	Missing []catalog.SideCategory
	Message string
}

func (v *ValidationFailure) Error() string { return v.Message }

// Item identifies the menu item an add-to-cart attempt is for.
// DetailURL is the item's full page, used as the escape hatch when no
// price can be resolved.
type Item struct {
	Name      string
	DetailURL string
	Options   *catalog.ItemOptions
}

// AddResult is the outcome of a successful attempt. Exactly one of
// Entry and RedirectURL is set: a resolved entry was committed, or the
// caller should send the user to the item's detail page because no
// usable price exists. A $0 item is never silently added.
type AddResult struct {
	Entry       *Entry
	RedirectURL string
}

// Service validates selections and commits cart entries through the
// bridge.
type Service struct {
	bridge Bridge
}

func NewService(bridge Bridge) *Service {
	return &Service{bridge: bridge}
}

// AttemptAdd validates the selection, resolves the price, and commits
// one cart entry.
//
// A missing required category returns *ValidationFailure and touches
// nothing. A unit price of 0 — no usable price data at all — returns a
// redirect to the item's detail page instead of adding a free item.
func (s *Service) AttemptAdd(
	ctx context.Context,
	userID string,
	item *Item,
	state *selection.State,
) (*AddResult, error) {

	missing := selection.MissingRequiredCategories(item.Options.SideCategories, state)
	if len(missing) > 0 {
		return nil, &ValidationFailure{
			Missing: missing,
			Message: selection.RequirementMessage(missing),
		}
	}

	unit := pricing.ResolveUnitPrice(item.Options.Prices, state.Size, state.Flavour)
	if unit == 0 {
		return &AddResult{RedirectURL: item.DetailURL}, nil
	}

	sides := selectedSideItems(item.Options.SideCategories, state)
	additions := selectedAdditions(item.Options, state)
	total := pricing.ResolveTotal(unit, sides, additions, state.Quantity)

	selectedByCategory := make(map[string][]string)
	for _, c := range item.Options.SideCategories {
		if picked := state.SelectedSides(c.CategoryName); len(picked) > 0 {
			selectedByCategory[c.CategoryName] = picked
		}
	}

	flatAdditions := []any{}
	for _, a := range additions {
		flatAdditions = append(flatAdditions, a.Name, a.Price)
	}

	entry := &Entry{
		ID:        uuid.New().String(),
		ItemName:  item.Name,
		SizeLabel: pricing.SizeLabel(state.Size, state.Flavour),
		Sides:     newSidePayload(item.Options.SideCategories, selectedByCategory),
		Additions: flatAdditions,
		Quantity:  strconv.Itoa(state.Quantity),
		TotalCost: total,
	}

	if err := s.bridge.Commit(ctx, userID, entry); err != nil {
		return nil, err
	}
	return &AddResult{Entry: entry}, nil
}

// selectedSideItems resolves the picked side names back to priced
// items, in category declaration order then selection order.
func selectedSideItems(categories []catalog.SideCategory, state *selection.State) []catalog.SideItem {
	var sides []catalog.SideItem
	for _, c := range categories {
		for _, name := range state.SelectedSides(c.CategoryName) {
			if side := c.FindSide(name); side != nil {
				sides = append(sides, *side)
			}
		}
	}
	return sides
}

func selectedAdditions(opts *catalog.ItemOptions, state *selection.State) []catalog.Addition {
	var additions []catalog.Addition
	for _, name := range state.SelectedAdditions() {
		if a := opts.FindAddition(name); a != nil {
			additions = append(additions, *a)
		}
	}
	return additions
}
