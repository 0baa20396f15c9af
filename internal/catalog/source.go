package catalog

import "github.com/moogleworks/market-moogle/internal/domain"

// IngredientSlot is one of the ten material slots of a recipe row.
type IngredientSlot struct {
	Item  domain.ItemID
	Count int
}

// ItemRow is a normalized item record as delivered by the ingestion
// collaborator. VendorPrice is zero unless the item appears in the
// vendor-sale set; SearchCategory is zero when the item is untradable.
type ItemRow struct {
	ID             domain.ItemID
	Name           string
	HQPossible     bool
	VendorPrice    int
	SearchCategory domain.SearchCategoryID
}

// RecipeRow is a normalized recipe record with its ingredient slots.
type RecipeRow struct {
	ID          domain.RecipeID
	Item        domain.ItemID
	Yield       int
	Ingredients []IngredientSlot
}

// Source carries the normalized row sets the catalog is built from.
type Source struct {
	Categories []domain.SearchCategory
	Items      []ItemRow
	Recipes    []RecipeRow
}
