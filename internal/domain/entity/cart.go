package entity

// LineItem is one product (optionally a specific variant) plus a quantity in
// a cart. Quantity zero means "absent": reconciliation writes zero instead of
// removing the entry so the server update call can see the removal.
type LineItem struct {
	ID             string          `json:"id,omitempty"`
	Product        *Product        `json:"product"`
	ProductVariant *ProductVariant `json:"productVariant,omitempty"`
	Quantity       int             `json:"quantity"`
}

// Cart is one child's shopping cart. The server is the source of truth after
// any mutating call, so fetches replace a child's cart wholesale.
type Cart struct {
	CartID    string     `json:"cartId"`
	Child     string     `json:"child"`
	LineItems []LineItem `json:"lineItems"`
}

// RecipeCount sums quantities over recipe-type line items. Zero-quantity
// items contribute nothing, matching their "absent" semantics.
func (c Cart) RecipeCount() int {
	count := 0
	for _, item := range c.LineItems {
		if item.Product != nil && item.Product.IsRecipe() {
			count += item.Quantity
		}
	}

	return count
}

// Clone deep-copies the cart so edit sessions never alias store state.
func (c Cart) Clone() Cart {
	clone := c
	clone.LineItems = make([]LineItem, len(c.LineItems))
	for i, item := range c.LineItems {
		clone.LineItems[i] = item.clone()
	}

	return clone
}

func (li LineItem) clone() LineItem {
	clone := li
	if li.Product != nil {
		product := li.Product.Clone()
		clone.Product = &product
	}
	if li.ProductVariant != nil {
		variant := *li.ProductVariant
		clone.ProductVariant = &variant
	}

	return clone
}

// CartUpdate is the batched save payload for one child's cart.
type CartUpdate struct {
	CartID    string     `json:"-"`
	Customer  string     `json:"-"`
	LineItems []LineItem `json:"lineItems"`
}
