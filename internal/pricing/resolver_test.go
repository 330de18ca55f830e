package pricing

import (
	"testing"

	"caribmenu/internal/catalog"
)

func TestResolveUnitPrice_ExactMatchWinsOverFallback(t *testing.T) {
	table := catalog.PriceTable{
		{Size: "Small", Flavour: "Mild", Price: 30},
		{Size: "Large", Flavour: "Spicy", Price: 45},
	}

	got := ResolveUnitPrice(table, "Large", "Spicy")
	if got != 45 {
		t.Fatalf("expected exact match 45, got %v", got)
	}
}

func TestResolveUnitPrice_FlavourOnlyItems(t *testing.T) {
	// Items that never had a size dimension, only flavours.
	table := catalog.PriceTable{
		{Size: "-", Flavour: "Vanilla", Price: 5},
		{Size: "-", Flavour: "Chocolate", Price: 6},
	}

	if got := ResolveUnitPrice(table, "-", "Vanilla"); got != 5 {
		t.Fatalf("expected 5 for Vanilla, got %v", got)
	}
	if got := ResolveUnitPrice(table, "-", "Chocolate"); got != 6 {
		t.Fatalf("expected 6 for Chocolate, got %v", got)
	}
}

func TestResolveUnitPrice_SizeOnlyItems(t *testing.T) {
	table := catalog.PriceTable{
		{Size: "Small", Flavour: "-", Price: 20},
		{Size: "Large", Flavour: "-", Price: 35},
	}

	if got := ResolveUnitPrice(table, "Large", "-"); got != 35 {
		t.Fatalf("expected 35 for Large, got %v", got)
	}
}

func TestResolveUnitPrice_FallbackToFirstPositive(t *testing.T) {
	// Selection the table doesn't encode still gets a non-zero quote.
	table := catalog.PriceTable{
		{Size: "Small", Flavour: "Mild", Price: 0},
		{Size: "Medium", Flavour: "Mild", Price: 25},
		{Size: "Large", Flavour: "Mild", Price: 40},
	}

	if got := ResolveUnitPrice(table, "XL", "Hot"); got != 25 {
		t.Fatalf("expected first positive price 25, got %v", got)
	}
}

func TestResolveUnitPrice_ZeroPriceEntriesNeverMatch(t *testing.T) {
	table := catalog.PriceTable{
		{Size: "Large", Flavour: "Spicy", Price: 0},
		{Size: "Large", Flavour: "Spicy", Price: 45},
	}

	if got := ResolveUnitPrice(table, "Large", "Spicy"); got != 45 {
		t.Fatalf("zero-price entry must be skipped, got %v", got)
	}
}

func TestResolveUnitPrice_EmptyOrWorthlessTable(t *testing.T) {
	if got := ResolveUnitPrice(nil, "Large", "-"); got != 0 {
		t.Fatalf("empty table should resolve to 0, got %v", got)
	}

	table := catalog.PriceTable{{Size: "-", Flavour: "-", Price: 0}}
	if got := ResolveUnitPrice(table, "-", "-"); got != 0 {
		t.Fatalf("table with no positive price should resolve to 0, got %v", got)
	}
}

func TestResolveUnitPrice_Deterministic(t *testing.T) {
	table := catalog.PriceTable{
		{Size: "Small", Flavour: "-", Price: 10},
		{Size: "Large", Flavour: "-", Price: 15},
	}

	first := ResolveUnitPrice(table, "Small", "-")
	for i := 0; i < 10; i++ {
		if got := ResolveUnitPrice(table, "Small", "-"); got != first {
			t.Fatalf("resolution not deterministic: %v then %v", first, got)
		}
	}
}

func TestResolveTotal(t *testing.T) {
	sides := []catalog.SideItem{{Name: "Roll", Type: "Regular", Price: 2}}
	additions := []catalog.Addition{{Name: "Extra Sauce", Price: 1}}

	got := ResolveTotal(10, sides, additions, 3)
	if got != 39 {
		t.Fatalf("expected (10+2+1)*3 = 39, got %v", got)
	}
}

func TestResolveTotal_NoRounding(t *testing.T) {
	got := ResolveTotal(5.25, nil, nil, 2)
	if got != 10.5 {
		t.Fatalf("expected 10.5, got %v", got)
	}
}

func TestSizeLabel(t *testing.T) {
	cases := []struct {
		size, flavour, want string
	}{
		{"Large", "-", "Large"},
		{"-", "Spicy", "Spicy"},
		{"Large", "Spicy", "Large Spicy"},
		{"-", "-", "-"},
	}

	for _, tc := range cases {
		if got := SizeLabel(tc.size, tc.flavour); got != tc.want {
			t.Errorf("SizeLabel(%q, %q) = %q, want %q", tc.size, tc.flavour, got, tc.want)
		}
	}
}

func TestFlavourSwitchScenario(t *testing.T) {
	table := catalog.PriceTable{
		{Size: "-", Flavour: "Vanilla", Price: 5},
		{Size: "-", Flavour: "Chocolate", Price: 6},
	}

	// Default flavour is Vanilla.
	if got := ResolveUnitPrice(table, "-", "Vanilla"); got != 5 {
		t.Fatalf("expected default unit price 5, got %v", got)
	}

	// Switch to Chocolate, quantity 2, nothing else picked.
	unit := ResolveUnitPrice(table, "-", "Chocolate")
	if unit != 6 {
		t.Fatalf("expected unit price 6 after switch, got %v", unit)
	}
	if total := ResolveTotal(unit, nil, nil, 2); total != 12 {
		t.Fatalf("expected total 12, got %v", total)
	}
}
