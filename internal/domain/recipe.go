package domain

// Recipe represents a crafting recipe producing Yield units of Item per craft
type Recipe struct {
	ID    RecipeID `json:"recipe_id"`
	Item  ItemID   `json:"item_id"`
	Yield int      `json:"yield"`
}

// Ingredient represents a single material requirement of a recipe
type Ingredient struct {
	Recipe RecipeID `json:"recipe_id"`
	Item   ItemID   `json:"item_id"`
	Count  int      `json:"count"`
}
