package domain

// AcquireMethod names one way to obtain an item.
type AcquireMethod string

const (
	// MethodVendor is a purchase from an NPC vendor at a fixed price.
	MethodVendor AcquireMethod = "vendor"
	// MethodMarket is a purchase of the lowest NQ listing on the market board.
	MethodMarket AcquireMethod = "market"
	// MethodCraft is crafting the item via a specific recipe.
	MethodCraft AcquireMethod = "craft"
)

// IngredientCost pairs a required material count with the cheapest known way
// to acquire that material.
type IngredientCost struct {
	Count  int         `json:"count"`
	Report *CostReport `json:"cost"`
}

// CostReport is one acquisition possibility for an item. Recipe, Yield and
// Ingredients are populated only when Method is MethodCraft.
type CostReport struct {
	Item        ItemID           `json:"item_id"`
	Method      AcquireMethod    `json:"method"`
	Price       int              `json:"price"`
	Recipe      RecipeID         `json:"recipe_id,omitempty"`
	Yield       int              `json:"yield,omitempty"`
	Ingredients []IngredientCost `json:"ingredients,omitempty"`
}

// ProfitEntry is one row of the recipe profitability report.
type ProfitEntry struct {
	RecipeID    RecipeID         `json:"recipe_id"`
	ItemID      ItemID           `json:"item_id"`
	Name        string           `json:"name"`
	HQ          bool             `json:"hq"`
	Velocity    float64          `json:"velocity"`
	Price       int              `json:"price"`
	Cost        int              `json:"cost"`
	Profit      int              `json:"profit"`
	Ingredients []IngredientCost `json:"ingredients"`
}
