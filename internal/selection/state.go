package selection

import (
	"errors"

	"caribmenu/internal/catalog"
)

// ErrCategoryFull is returned when a selection would exceed a
// category's cap. Callers drop the selection and surface nothing —
// the UI policy is to just not let it happen.
var ErrCategoryFull = errors.New("side category is full")

// State is the mutable selection of one expanded item card: chosen
// size and flavour, chosen side items per category, chosen additions,
// and quantity. One State belongs to exactly one card instance and is
// discarded on collapse, so re-expansion starts fresh.
//
// Side and addition selections keep insertion order so cart payloads
// list them in the order the user picked them.
type State struct {
	Size    string
	Flavour string

	sides     map[string][]string // category name -> selected item names
	additions []string

	Quantity int
}

// New builds a fresh selection defaulted to the item's first size and
// flavour (or the sentinel when a dimension does not apply), quantity 1.
func New(opts *catalog.ItemOptions) *State {
	return &State{
		Size:     opts.DefaultSize(),
		Flavour:  opts.DefaultFlavour(),
		sides:    make(map[string][]string),
		Quantity: 1,
	}
}

func (s *State) SetSize(size string)       { s.Size = size }
func (s *State) SetFlavour(flavour string) { s.Flavour = flavour }

// IncrementQuantity raises quantity by one.
func (s *State) IncrementQuantity() { s.Quantity++ }

// DecrementQuantity lowers quantity, clamped at 1.
func (s *State) DecrementQuantity() {
	if s.Quantity > 1 {
		s.Quantity--
	}
}

// ToggleSide flips the selection of one side item within a category.
//
// Deselecting is always allowed. A cap of 1 behaves as a radio group:
// the previous pick in the category is cleared first. A cap of 0 means
// uncapped. Otherwise a pick under the cap is accepted and a pick at
// the cap is rejected whole — no partial mutation.
func (s *State) ToggleSide(category *catalog.SideCategory, itemName string) error {
	selected := s.sides[category.CategoryName]

	for i, name := range selected {
		if name == itemName {
			s.sides[category.CategoryName] = append(selected[:i:i], selected[i+1:]...)
			return nil
		}
	}

	switch {
	case category.MaxSelected == 1:
		s.sides[category.CategoryName] = []string{itemName}
	case category.MaxSelected == 0 || len(selected) < category.MaxSelected:
		s.sides[category.CategoryName] = append(selected, itemName)
	default:
		return ErrCategoryFull
	}
	return nil
}

// ToggleAddition flips an addition. Additions have no cap and no
// grouping; any subset may be active at once.
func (s *State) ToggleAddition(name string) {
	for i, n := range s.additions {
		if n == name {
			s.additions = append(s.additions[:i:i], s.additions[i+1:]...)
			return
		}
	}
	s.additions = append(s.additions, name)
}

// SelectedSides returns the picked item names for one category, in
// selection order.
func (s *State) SelectedSides(categoryName string) []string {
	return s.sides[categoryName]
}

// SideCount returns how many items are picked in one category.
func (s *State) SideCount(categoryName string) int {
	return len(s.sides[categoryName])
}

// SelectedAdditions returns the active additions in selection order.
func (s *State) SelectedAdditions() []string {
	return s.additions
}

// SideSelected reports whether one item is picked in a category.
func (s *State) SideSelected(categoryName, itemName string) bool {
	for _, n := range s.sides[categoryName] {
		if n == itemName {
			return true
		}
	}
	return false
}

// AdditionSelected reports whether an addition is active.
func (s *State) AdditionSelected(name string) bool {
	for _, n := range s.additions {
		if n == name {
			return true
		}
	}
	return false
}
