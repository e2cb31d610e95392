package services

import (
	"sort"
	"strings"

	"oesters_backend/internal/models"
)

// LineID builds the composite identity key for a cart line: item ID, chosen
// variation name, flavor names sorted lexicographically, addon names in
// selection order, joined with fixed delimiters. Two additions resolving to
// the same key merge into one line.
//
// Flavors are sorted so picking "A then B" and "B then A" lands on the same
// line. Addon order is intentionally left as selected: sorting it would merge
// lines the storefront has always treated as distinct, which is a
// user-visible behavior change.
func LineID(itemID, variationName string, flavors []string, addonNames []string) string {
	sortedFlavors := append([]string(nil), flavors...)
	sort.Strings(sortedFlavors)

	var b strings.Builder
	b.WriteString(itemID)
	b.WriteString("-")
	b.WriteString(variationName)
	b.WriteString("-")
	b.WriteString(strings.Join(sortedFlavors, ","))
	b.WriteString("-")
	b.WriteString(strings.Join(addonNames, ","))
	return b.String()
}

// UnitPrice computes the deterministic unit price for one item with the
// given resolved options. Never fails; a zero price is legal.
//
// Rules, in order: the promotional price overrides the base price when set
// and non-zero; the variation price is added on top for additive-mode items
// and substitutes the base when positive for everything else; flavor and
// addon surcharges are summed on top.
func UnitPrice(item *models.MenuItem, variation *models.Variation, flavors []string, addons []models.Addon) float64 {
	base := item.BasePrice()

	var variationPrice float64
	if variation != nil {
		variationPrice = variation.Price
	}

	var unit float64
	switch {
	case item.PricingMode == models.PricingAdditive:
		unit = base + variationPrice
	case variationPrice > 0:
		unit = variationPrice
	default:
		unit = base
	}

	for _, name := range flavors {
		unit += item.FlavorSurcharge(name)
	}
	for _, addon := range addons {
		unit += addon.Price
	}
	return unit
}

// ComposeLines turns a (MenuItem, SelectionOptions) pair into priced cart
// lines. Single-select items yield one line. Multi-select items yield one
// line per chosen variation, each carrying the same flavor and addon
// selections and priced independently.
func ComposeLines(item *models.MenuItem, opts models.SelectionOptions) []models.CartLine {
	addons := resolveAddons(item, opts.Addons)
	quantity := opts.RequestedQuantity()

	variationNames := opts.VariationNames(item.AllowMultipleSelections)
	lines := make([]models.CartLine, 0, len(variationNames))
	for _, name := range variationNames {
		variation := item.FindVariation(name)
		if variation == nil || variation.Disabled {
			continue
		}
		chosen := *variation
		lines = append(lines, composeLine(item, &chosen, opts.Flavors, addons, quantity))
	}

	if len(lines) == 0 {
		lines = append(lines, composeLine(item, nil, opts.Flavors, addons, quantity))
	}
	return lines
}

// SelectionTotal is the price shown while the customer is still choosing:
// the sum of each prospective line's unit price, so shared flavor/addon
// surcharges are charged once per chosen variation.
func SelectionTotal(item *models.MenuItem, opts models.SelectionOptions) float64 {
	var total float64
	for _, line := range ComposeLines(item, opts) {
		total += line.FinalPrice
	}
	return total
}

func composeLine(item *models.MenuItem, variation *models.Variation, flavors []string, addons []models.Addon, quantity int) models.CartLine {
	variationName := ""
	if variation != nil {
		variationName = variation.Name
	}

	addonNames := make([]string, len(addons))
	for i, addon := range addons {
		addonNames[i] = addon.Name
	}

	return models.CartLine{
		CartLineID:        LineID(item.ID, variationName, flavors, addonNames),
		ItemID:            item.ID,
		ItemName:          item.Name,
		Image:             item.Image,
		SelectedVariation: variation,
		SelectedFlavors:   flavors,
		SelectedAddons:    addons,
		FinalPrice:        UnitPrice(item, variation, flavors, addons),
		Quantity:          quantity,
	}
}

// resolveAddons maps selected addon names to catalog addon records,
// preserving selection order. Names the item does not carry, and addons
// marked disabled, are dropped.
func resolveAddons(item *models.MenuItem, names []string) []models.Addon {
	if len(names) == 0 {
		return nil
	}
	addons := make([]models.Addon, 0, len(names))
	for _, name := range names {
		if addon := item.FindAddon(name); addon != nil && !addon.Disabled {
			addons = append(addons, *addon)
		}
	}
	return addons
}
