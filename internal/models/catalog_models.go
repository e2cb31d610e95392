package models

import (
	"encoding/json"
	"strings"
)

// Category is a menu category. Storefront ordering follows SortOrder.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

// Variation is a selectable pricing alternative on a menu item (e.g. a size
// or a concrete product on a master-menu item).
type Variation struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Disabled bool    `json:"disabled,omitempty"`
}

// Flavor is a selectable taste modifier, usually free, sometimes carrying a
// surcharge. Catalog data stores flavors either as bare name strings or as
// full objects; UnmarshalJSON normalizes both into this record so the
// ambiguity never reaches pricing logic.
type Flavor struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Disabled bool    `json:"disabled,omitempty"`
}

func (f *Flavor) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*f = Flavor{Name: name}
		return nil
	}

	type flavorObject Flavor
	var obj flavorObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*f = Flavor(obj)
	return nil
}

// Addon is a selectable paid extra.
type Addon struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Disabled bool    `json:"disabled,omitempty"`
}

// PricingMode controls how a chosen variation's price combines with the
// item's base price.
type PricingMode string

const (
	// PricingSubstitutive: a positive variation price replaces the base price.
	PricingSubstitutive PricingMode = "substitutive"
	// PricingAdditive: the variation price is added on top of the base price.
	PricingAdditive PricingMode = "additive"
)

// MenuItem is a catalog entry. Created and edited only by the admin
// back-office; read-only to the cart and pricing code.
type MenuItem struct {
	ID            string      `json:"id"`
	CategoryID    string      `json:"category_id" binding:"required"`
	Name          string      `json:"name" binding:"required"`
	Description   string      `json:"description"`
	Price         float64     `json:"price"`
	PromoPrice    *float64    `json:"promo_price,omitempty"`
	Image         string      `json:"image"`
	Variations    []Variation `json:"variations"`
	Flavors       []Flavor    `json:"flavors"`
	Addons        []Addon     `json:"addons"`
	AllowMultiple bool        `json:"allow_multiple"`
	OutOfStock    bool        `json:"out_of_stock"`
	SortOrder     int         `json:"sort_order"`

	// Resolved once when the item crosses from storage into the catalog
	// snapshot; never re-derived at selection time.
	AllowMultipleSelections bool        `json:"allow_multiple_selections"`
	PricingMode             PricingMode `json:"pricing_mode"`
}

// porkRibsMarker keeps the legacy name-based additive pricing rule working
// for existing data. New items opt in via PricingMode directly.
const porkRibsMarker = "pork ribs"

var multiSelectCategoryMarkers = []string{"milk tea", "fruit tea", "series"}

// Resolve computes the derived selection and pricing flags from the item's
// own data and the name of its category.
func (m *MenuItem) Resolve(categoryName string) {
	m.AllowMultipleSelections = m.AllowMultiple || categoryImpliesMultiSelect(categoryName)

	if strings.Contains(strings.ToLower(m.Name), porkRibsMarker) {
		m.PricingMode = PricingAdditive
	} else {
		m.PricingMode = PricingSubstitutive
	}
}

func categoryImpliesMultiSelect(categoryName string) bool {
	lower := strings.ToLower(categoryName)
	for _, marker := range multiSelectCategoryMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// BasePrice is the promotional price when set and non-zero, else the
// regular price.
func (m *MenuItem) BasePrice() float64 {
	if m.PromoPrice != nil && *m.PromoPrice != 0 {
		return *m.PromoPrice
	}
	return m.Price
}

// FindVariation returns the variation with the given name, or nil.
func (m *MenuItem) FindVariation(name string) *Variation {
	for i := range m.Variations {
		if m.Variations[i].Name == name {
			return &m.Variations[i]
		}
	}
	return nil
}

// FindAddon returns the addon with the given name, or nil.
func (m *MenuItem) FindAddon(name string) *Addon {
	for i := range m.Addons {
		if m.Addons[i].Name == name {
			return &m.Addons[i]
		}
	}
	return nil
}

// FlavorSurcharge returns the surcharge of the named flavor, 0 when the
// flavor is unknown or carries no price.
func (m *MenuItem) FlavorSurcharge(name string) float64 {
	for i := range m.Flavors {
		if m.Flavors[i].Name == name {
			return m.Flavors[i].Price
		}
	}
	return 0
}
