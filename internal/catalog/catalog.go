// Package catalog holds the immutable in-memory index of items, recipes and
// ingredients. A Catalog is built once from normalized import rows and is safe
// for concurrent readers; nothing mutates it after Build returns.
package catalog

import (
	"fmt"
	"iter"

	"github.com/moogleworks/market-moogle/internal/domain"
)

// Catalog indexes items, recipes and ingredient lists by id, plus a derived
// item -> recipe-ids index in recipe discovery order.
type Catalog struct {
	categories    map[domain.SearchCategoryID]domain.SearchCategory
	items         map[domain.ItemID]domain.Item
	recipes       map[domain.RecipeID]domain.Recipe
	ingredients   map[domain.RecipeID][]domain.Ingredient
	recipesByItem map[domain.ItemID][]domain.RecipeID

	// insertion order, for deterministic enumeration
	itemOrder   []domain.ItemID
	recipeOrder []domain.RecipeID
}

// Build constructs a Catalog from normalized source rows, dropping items with
// a non-positive id or empty name, recipes with a non-positive produced-item
// id or zero yield, and ingredient slots with a non-positive count.
func Build(src Source) *Catalog {
	c := &Catalog{
		categories:    make(map[domain.SearchCategoryID]domain.SearchCategory, len(src.Categories)),
		items:         make(map[domain.ItemID]domain.Item, len(src.Items)),
		recipes:       make(map[domain.RecipeID]domain.Recipe, len(src.Recipes)),
		ingredients:   make(map[domain.RecipeID][]domain.Ingredient, len(src.Recipes)),
		recipesByItem: make(map[domain.ItemID][]domain.RecipeID),
	}

	for _, cat := range src.Categories {
		c.categories[cat.ID] = cat
	}

	for _, row := range src.Items {
		if row.ID <= 0 || row.Name == "" {
			continue
		}
		c.items[row.ID] = domain.Item{
			ID:             row.ID,
			Name:           row.Name,
			HQPossible:     row.HQPossible,
			VendorPrice:    row.VendorPrice,
			SearchCategory: row.SearchCategory,
		}
		c.itemOrder = append(c.itemOrder, row.ID)
	}

	for _, row := range src.Recipes {
		if row.ID <= 0 || row.Item <= 0 || row.Yield == 0 {
			continue
		}
		c.recipes[row.ID] = domain.Recipe{ID: row.ID, Item: row.Item, Yield: row.Yield}
		c.recipeOrder = append(c.recipeOrder, row.ID)

		var mats []domain.Ingredient
		for _, slot := range row.Ingredients {
			if slot.Count <= 0 {
				continue
			}
			mats = append(mats, domain.Ingredient{Recipe: row.ID, Item: slot.Item, Count: slot.Count})
		}
		c.ingredients[row.ID] = mats

		// one pass, preserving discovery order within each bucket
		c.recipesByItem[row.Item] = append(c.recipesByItem[row.Item], row.ID)
	}

	return c
}

// ItemByID returns the item or domain.ErrItemNotFound.
func (c *Catalog) ItemByID(id domain.ItemID) (domain.Item, error) {
	item, ok := c.items[id]
	if !ok {
		return domain.Item{}, fmt.Errorf("%w: %d", domain.ErrItemNotFound, id)
	}
	return item, nil
}

// RecipeByID returns the recipe or domain.ErrRecipeNotFound.
func (c *Catalog) RecipeByID(id domain.RecipeID) (domain.Recipe, error) {
	recipe, ok := c.recipes[id]
	if !ok {
		return domain.Recipe{}, fmt.Errorf("%w: %d", domain.ErrRecipeNotFound, id)
	}
	return recipe, nil
}

// CategoryByID returns the search category or domain.ErrCategoryNotFound.
func (c *Catalog) CategoryByID(id domain.SearchCategoryID) (domain.SearchCategory, error) {
	cat, ok := c.categories[id]
	if !ok {
		return domain.SearchCategory{}, fmt.Errorf("%w: %d", domain.ErrCategoryNotFound, id)
	}
	return cat, nil
}

// IngredientsForRecipe returns the recipe's ordered ingredient list, possibly
// empty, or domain.ErrRecipeNotFound for an unknown recipe id.
func (c *Catalog) IngredientsForRecipe(id domain.RecipeID) ([]domain.Ingredient, error) {
	if _, ok := c.recipes[id]; !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrRecipeNotFound, id)
	}
	return c.ingredients[id], nil
}

// RecipesForItem returns a lazy, restartable sequence of the recipes that
// produce the given item, in discovery order. Empty when the item has none.
func (c *Catalog) RecipesForItem(id domain.ItemID) iter.Seq[domain.Recipe] {
	return func(yield func(domain.Recipe) bool) {
		for _, recipeID := range c.recipesByItem[id] {
			if !yield(c.recipes[recipeID]) {
				return
			}
		}
	}
}

// Items enumerates all items in insertion order.
func (c *Catalog) Items() iter.Seq[domain.Item] {
	return func(yield func(domain.Item) bool) {
		for _, id := range c.itemOrder {
			if !yield(c.items[id]) {
				return
			}
		}
	}
}

// ItemIDs enumerates all item ids in insertion order.
func (c *Catalog) ItemIDs() iter.Seq[domain.ItemID] {
	return func(yield func(domain.ItemID) bool) {
		for _, id := range c.itemOrder {
			if !yield(id) {
				return
			}
		}
	}
}

// Recipes enumerates all recipes in insertion order.
func (c *Catalog) Recipes() iter.Seq[domain.Recipe] {
	return func(yield func(domain.Recipe) bool) {
		for _, id := range c.recipeOrder {
			if !yield(c.recipes[id]) {
				return
			}
		}
	}
}

// ItemCount returns the number of items in the catalog.
func (c *Catalog) ItemCount() int {
	return len(c.items)
}

// RecipeCount returns the number of recipes in the catalog.
func (c *Catalog) RecipeCount() int {
	return len(c.recipes)
}
