package selection

import "caribmenu/internal/catalog"

// MissingRequiredCategories returns, in declaration order, every
// capped category whose selected count is still below its cap. A full
// list comes back rather than the first failure so the user sees all
// unmet requirements in one message.
func MissingRequiredCategories(categories []catalog.SideCategory, state *State) []catalog.SideCategory {
	var missing []catalog.SideCategory
	for _, c := range categories {
		if c.MaxSelected <= 0 {
			continue
		}
		if state.SideCount(c.CategoryName) < c.MaxSelected {
			missing = append(missing, c)
		}
	}
	return missing
}

// RequirementMessage joins missing category display names into the
// single blocking message shown on an add-to-cart attempt.
func RequirementMessage(missing []catalog.SideCategory) string {
	if len(missing) == 0 {
		return ""
	}

	msg := "Please select a/an "
	for i, c := range missing {
		if i > 0 {
			msg += " and "
		}
		name := c.DisplayName
		if name == "" {
			name = c.CategoryName
		}
		msg += name
	}
	return msg + " before adding to cart"
}
