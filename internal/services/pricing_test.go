package services

import (
	"testing"

	"oesters_backend/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func milkTeaItem() *models.MenuItem {
	item := &models.MenuItem{
		ID:    "item-milktea",
		Name:  "Milk Tea",
		Price: 0,
		Variations: []models.Variation{
			{Name: "Wintermelon", Price: 89},
			{Name: "Okinawa", Price: 99},
		},
		Flavors: []models.Flavor{
			{Name: "Less Sugar"},
			{Name: "Extra Sweet", Price: 5},
		},
		Addons: []models.Addon{
			{Name: "Pearls", Price: 15},
			{Name: "Cream Cheese", Price: 25},
		},
	}
	item.Resolve("Milk Tea Series")
	return item
}

func porkRibsItem() *models.MenuItem {
	item := &models.MenuItem{
		ID:    "item-ribs",
		Name:  "Pork Ribs Platter",
		Price: 250,
		Variations: []models.Variation{
			{Name: "Solo", Price: 0},
			{Name: "Family", Price: 150},
		},
	}
	item.Resolve("Rice Meals")
	return item
}

func TestLineIDSortsFlavorsButNotAddons(t *testing.T) {
	a := LineID("item-1", "Large", []string{"Mango", "Apple"}, []string{"Pearls", "Jelly"})
	b := LineID("item-1", "Large", []string{"Apple", "Mango"}, []string{"Pearls", "Jelly"})
	if a != b {
		t.Errorf("flavor order changed the line ID: %q vs %q", a, b)
	}

	c := LineID("item-1", "Large", []string{"Apple", "Mango"}, []string{"Jelly", "Pearls"})
	if a == c {
		t.Errorf("addon order should be part of the line identity, got equal ID %q", a)
	}
}

func TestLineIDLeavesCallerSliceUntouched(t *testing.T) {
	flavors := []string{"Mango", "Apple"}
	LineID("item-1", "", flavors, nil)
	if flavors[0] != "Mango" || flavors[1] != "Apple" {
		t.Errorf("caller's flavor slice was reordered: %v", flavors)
	}
}

func TestUnitPriceSubstitutiveVariation(t *testing.T) {
	item := milkTeaItem()
	got := UnitPrice(item, &item.Variations[0], nil, nil)
	if got != 89 {
		t.Errorf("expected variation price 89 to substitute the base, got %v", got)
	}
}

func TestUnitPriceZeroVariationFallsBackToBase(t *testing.T) {
	item := &models.MenuItem{ID: "item-1", Name: "Burger", Price: 120}
	item.Resolve("Snacks")
	variation := &models.Variation{Name: "Regular", Price: 0}
	if got := UnitPrice(item, variation, nil, nil); got != 120 {
		t.Errorf("expected base price 120 for a zero-priced variation, got %v", got)
	}
}

func TestUnitPriceAdditiveMode(t *testing.T) {
	item := porkRibsItem()
	if item.PricingMode != models.PricingAdditive {
		t.Fatalf("expected additive pricing mode, got %q", item.PricingMode)
	}
	if got := UnitPrice(item, &item.Variations[1], nil, nil); got != 400 {
		t.Errorf("expected 250 + 150 = 400 in additive mode, got %v", got)
	}
	// A zero-priced variation in additive mode still charges the base.
	if got := UnitPrice(item, &item.Variations[0], nil, nil); got != 250 {
		t.Errorf("expected 250 for the zero-priced variation, got %v", got)
	}
}

func TestUnitPricePromoOverridesBase(t *testing.T) {
	item := &models.MenuItem{ID: "item-1", Name: "Fries", Price: 99, PromoPrice: floatPtr(79)}
	item.Resolve("Snacks")
	if got := UnitPrice(item, nil, nil, nil); got != 79 {
		t.Errorf("expected promo price 79, got %v", got)
	}

	// A zero promo price is treated as unset.
	item.PromoPrice = floatPtr(0)
	if got := UnitPrice(item, nil, nil, nil); got != 99 {
		t.Errorf("expected regular price 99 when promo is zero, got %v", got)
	}
}

func TestUnitPriceFlavorAndAddonSurcharges(t *testing.T) {
	item := milkTeaItem()
	got := UnitPrice(item, &item.Variations[0], []string{"Less Sugar", "Extra Sweet"}, []models.Addon{
		{Name: "Pearls", Price: 15},
		{Name: "Cream Cheese", Price: 25},
	})
	// 89 + 0 + 5 + 15 + 25
	if got != 134 {
		t.Errorf("expected 134, got %v", got)
	}
}

func TestUnitPriceUnknownFlavorIsFree(t *testing.T) {
	item := milkTeaItem()
	got := UnitPrice(item, &item.Variations[0], []string{"No Such Flavor"}, nil)
	if got != 89 {
		t.Errorf("unknown flavor should add nothing, got %v", got)
	}
}

func TestComposeLinesSingleSelect(t *testing.T) {
	item := &models.MenuItem{
		ID:         "item-1",
		Name:       "Iced Coffee",
		Price:      0,
		Variations: []models.Variation{{Name: "Tall", Price: 95}, {Name: "Grande", Price: 115}},
	}
	item.Resolve("Coffee")

	lines := ComposeLines(item, models.SelectionOptions{Variation: "Grande", Quantity: 2})
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	line := lines[0]
	if line.SelectedVariation == nil || line.SelectedVariation.Name != "Grande" {
		t.Errorf("expected Grande variation, got %+v", line.SelectedVariation)
	}
	if line.FinalPrice != 115 {
		t.Errorf("expected final price 115, got %v", line.FinalPrice)
	}
	if line.Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", line.Quantity)
	}
}

func TestComposeLinesMultiSelectFansOut(t *testing.T) {
	item := milkTeaItem()
	if !item.AllowMultipleSelections {
		t.Fatal("expected milk tea category to imply multi-select")
	}

	opts := models.SelectionOptions{
		Variations: []string{"Wintermelon", "Okinawa"},
		Flavors:    []string{"Extra Sweet"},
		Addons:     []string{"Pearls"},
	}
	lines := ComposeLines(item, opts)
	if len(lines) != 2 {
		t.Fatalf("expected one line per chosen variation, got %d", len(lines))
	}

	// 89 + 5 + 15 and 99 + 5 + 15: shared surcharges apply to each line.
	if lines[0].FinalPrice != 109 || lines[1].FinalPrice != 119 {
		t.Errorf("expected prices 109 and 119, got %v and %v", lines[0].FinalPrice, lines[1].FinalPrice)
	}
	if lines[0].CartLineID == lines[1].CartLineID {
		t.Error("fan-out lines must have distinct line IDs")
	}
	if got := SelectionTotal(item, opts); got != 228 {
		t.Errorf("expected selection total 228, got %v", got)
	}
}

func TestComposeLinesUnknownVariationFallsBack(t *testing.T) {
	item := &models.MenuItem{ID: "item-1", Name: "Lemonade", Price: 60}
	item.Resolve("Drinks")

	lines := ComposeLines(item, models.SelectionOptions{Variation: "Venti"})
	if len(lines) != 1 {
		t.Fatalf("expected a single fallback line, got %d", len(lines))
	}
	if lines[0].SelectedVariation != nil {
		t.Errorf("expected no variation on the fallback line, got %+v", lines[0].SelectedVariation)
	}
	if lines[0].FinalPrice != 60 {
		t.Errorf("expected base price 60, got %v", lines[0].FinalPrice)
	}
}

func TestComposeLinesDropsUnknownAddons(t *testing.T) {
	item := milkTeaItem()
	lines := ComposeLines(item, models.SelectionOptions{
		Variation: "Wintermelon",
		Addons:    []string{"Pearls", "Gold Flakes"},
	})
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	if len(lines[0].SelectedAddons) != 1 || lines[0].SelectedAddons[0].Name != "Pearls" {
		t.Errorf("expected only the known addon to survive, got %+v", lines[0].SelectedAddons)
	}
	if lines[0].FinalPrice != 104 {
		t.Errorf("expected 89 + 15 = 104, got %v", lines[0].FinalPrice)
	}
}

func TestComposeLinesSkipsDisabledOptions(t *testing.T) {
	item := &models.MenuItem{
		ID:    "item-1",
		Name:  "Iced Tea",
		Price: 0,
		Variations: []models.Variation{
			{Name: "Small", Price: 45},
			{Name: "Large", Price: 65, Disabled: true},
		},
		Addons: []models.Addon{
			{Name: "Lemon", Price: 10, Disabled: true},
		},
	}
	item.Resolve("Drinks")
	item.AllowMultipleSelections = true

	lines := ComposeLines(item, models.SelectionOptions{
		Variations: []string{"Small", "Large"},
		Addons:     []string{"Lemon"},
	})
	if len(lines) != 1 {
		t.Fatalf("disabled variation must be skipped, got %d lines", len(lines))
	}
	if lines[0].SelectedVariation.Name != "Small" {
		t.Errorf("expected the enabled variation, got %+v", lines[0].SelectedVariation)
	}
	if len(lines[0].SelectedAddons) != 0 {
		t.Errorf("disabled addon must be dropped, got %+v", lines[0].SelectedAddons)
	}
	if lines[0].FinalPrice != 45 {
		t.Errorf("expected 45, got %v", lines[0].FinalPrice)
	}
}

func TestComposeLinesDefaultQuantity(t *testing.T) {
	item := milkTeaItem()
	lines := ComposeLines(item, models.SelectionOptions{Variation: "Okinawa"})
	if lines[0].Quantity != 1 {
		t.Errorf("expected default quantity 1, got %d", lines[0].Quantity)
	}
}
