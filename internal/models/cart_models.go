package models

// SelectionOptions is the ephemeral choice a customer makes against one
// menu item at add-to-cart time. Variation names how the chosen option is
// identified; for multi-select items Variations carries several.
type SelectionOptions struct {
	Variation  string   `json:"variation,omitempty"`
	Variations []string `json:"variations,omitempty"`
	Flavors    []string `json:"flavors,omitempty"`
	Addons     []string `json:"addons,omitempty"`
	Quantity   int      `json:"quantity,omitempty"`
}

// VariationNames returns the chosen variations regardless of mode. An empty
// slice means no variation was chosen.
func (o SelectionOptions) VariationNames(multiSelect bool) []string {
	if multiSelect && len(o.Variations) > 0 {
		return o.Variations
	}
	if o.Variation != "" {
		return []string{o.Variation}
	}
	if len(o.Variations) > 0 {
		return o.Variations[:1]
	}
	return nil
}

// RequestedQuantity returns the explicit quantity, defaulting to 1.
func (o SelectionOptions) RequestedQuantity() int {
	if o.Quantity > 0 {
		return o.Quantity
	}
	return 1
}

// CartLine is one priced, quantity-bearing row in the cart, keyed by a
// composite identity. FinalPrice is fixed at first-add time.
type CartLine struct {
	CartLineID        string     `json:"cart_line_id"`
	ItemID            string     `json:"item_id"`
	ItemName          string     `json:"item_name"`
	Image             string     `json:"image,omitempty"`
	SelectedVariation *Variation `json:"selected_variation,omitempty"`
	SelectedFlavors   []string   `json:"selected_flavors,omitempty"`
	SelectedAddons    []Addon    `json:"selected_addons,omitempty"`
	FinalPrice        float64    `json:"final_price"`
	Quantity          int        `json:"quantity"`
}

// Cart is the ordered collection of lines owned by one browsing session.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Find returns the line with the given ID, or nil.
func (c *Cart) Find(cartLineID string) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].CartLineID == cartLineID {
			return &c.Lines[i]
		}
	}
	return nil
}

// Total sums finalPrice times quantity over all lines.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.Lines {
		total += line.FinalPrice * float64(line.Quantity)
	}
	return total
}

// Count sums quantities over all lines (cart badge semantics, not line count).
func (c *Cart) Count() int {
	var count int
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}
