package domain

// ItemID identifies an item in the game catalog.
type ItemID int

// RecipeID identifies a crafting recipe.
type RecipeID int

// SearchCategoryID identifies a market-board search category.
type SearchCategoryID int

// SearchCategory represents a market search category an item can be listed under
type SearchCategory struct {
	ID   SearchCategoryID `json:"id"`
	Name string           `json:"name"`
}

// Item represents one catalog item. VendorPrice and SearchCategory use zero
// as "absent": an item with VendorPrice 0 is not vendor-sold and an item with
// SearchCategory 0 is never tradable on the market board.
type Item struct {
	ID             ItemID           `json:"id"`
	Name           string           `json:"name"`
	HQPossible     bool             `json:"hq_possible"`
	VendorPrice    int              `json:"vendor_price,omitempty"`
	SearchCategory SearchCategoryID `json:"search_category,omitempty"`
}

// VendorSold reports whether the item can be bought from an NPC vendor.
func (i Item) VendorSold() bool {
	return i.VendorPrice > 0
}

// Marketable reports whether the item can be traded on the market board.
func (i Item) Marketable() bool {
	return i.SearchCategory > 0
}
