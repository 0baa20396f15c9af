package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moogleworks/market-moogle/internal/catalog"
	"github.com/moogleworks/market-moogle/internal/domain"
	"github.com/moogleworks/market-moogle/internal/seq"
)

type fakeMarket map[domain.ItemID]domain.MarketInfo

func (f fakeMarket) Lookup(id domain.ItemID) (domain.MarketInfo, bool) {
	info, ok := f[id]
	return info, ok
}

func (f fakeMarket) Available() bool { return f != nil }

func quote(hq bool, price int, velocity float64) domain.Quote {
	return domain.Quote{HQ: hq, Price: price, Velocity: velocity}
}

func sellInfo(id domain.ItemID, nq, hq domain.Quote) domain.MarketInfo {
	return domain.MarketInfo{Item: id, World: "faerie", NQ: nq, HQ: hq}
}

func buildCatalog(t *testing.T, src catalog.Source) *catalog.Catalog {
	t.Helper()
	return catalog.Build(src)
}

func TestCostPossibilitiesVendorAndMarket(t *testing.T) {
	c := buildCatalog(t, catalog.Source{
		Items: []catalog.ItemRow{
			{ID: 1, Name: "copper ore", VendorPrice: 25, SearchCategory: 40},
		},
	})
	buy := fakeMarket{1: sellInfo(1, quote(false, 18, 3), quote(true, 0, 0))}
	r := New(c, buy, fakeMarket{})

	reports, err := r.CostPossibilities(1)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, domain.MethodVendor, reports[0].Method)
	assert.Equal(t, 25, reports[0].Price)
	assert.Equal(t, domain.MethodMarket, reports[1].Method)
	assert.Equal(t, 18, reports[1].Price)

	cheapest, err := r.Cheapest(1)
	require.NoError(t, err)
	require.NotNil(t, cheapest)
	assert.Equal(t, domain.MethodMarket, cheapest.Method)
}

func TestCheapestTiePrefersEarlierMethod(t *testing.T) {
	c := buildCatalog(t, catalog.Source{
		Items: []catalog.ItemRow{
			{ID: 1, Name: "copper ore", VendorPrice: 25, SearchCategory: 40},
		},
	})
	buy := fakeMarket{1: sellInfo(1, quote(false, 25, 3), quote(true, 0, 0))}
	r := New(c, buy, fakeMarket{})

	cheapest, err := r.Cheapest(1)
	require.NoError(t, err)
	require.NotNil(t, cheapest)
	assert.Equal(t, domain.MethodVendor, cheapest.Method)
}

func TestCraftCostFromVendorMaterials(t *testing.T) {
	c := buildCatalog(t, catalog.Source{
		Items: []catalog.ItemRow{
			{ID: 1, Name: "maple log", VendorPrice: 100},
			{ID: 2, Name: "maple lumber", SearchCategory: 44},
		},
		Recipes: []catalog.RecipeRow{
			{ID: 10, Item: 2, Yield: 1, Ingredients: []catalog.IngredientSlot{{Item: 1, Count: 2}}},
		},
	})
	r := New(c, fakeMarket{}, fakeMarket{})

	reports, err := r.CostPossibilities(2)
	require.NoError(t, err)
	require.Len(t, reports, 1)

	craft := reports[0]
	assert.Equal(t, domain.MethodCraft, craft.Method)
	assert.Equal(t, domain.RecipeID(10), craft.Recipe)
	assert.Equal(t, 200, craft.Price)
	require.Len(t, craft.Ingredients, 1)
	assert.Equal(t, 2, craft.Ingredients[0].Count)
	assert.Equal(t, domain.MethodVendor, craft.Ingredients[0].Report.Method)
}

func TestCraftCostNormalizesIntermediateYield(t *testing.T) {
	// crafting the intermediate yields 2 per craft at 100 gil of materials,
	// so four units cost round(4 * 100/2) = 200
	c := buildCatalog(t, catalog.Source{
		Items: []catalog.ItemRow{
			{ID: 1, Name: "iron ore", VendorPrice: 50},
			{ID: 2, Name: "iron ingot"},
			{ID: 3, Name: "iron plate", SearchCategory: 44},
		},
		Recipes: []catalog.RecipeRow{
			{ID: 10, Item: 2, Yield: 2, Ingredients: []catalog.IngredientSlot{{Item: 1, Count: 2}}},
			{ID: 11, Item: 3, Yield: 1, Ingredients: []catalog.IngredientSlot{{Item: 2, Count: 4}}},
		},
	})
	r := New(c, fakeMarket{}, fakeMarket{})

	cheapest, err := r.Cheapest(3)
	require.NoError(t, err)
	require.NotNil(t, cheapest)
	assert.Equal(t, domain.MethodCraft, cheapest.Method)
	assert.Equal(t, 200, cheapest.Price)
}

func TestCyclicRecipesResolveToOtherSources(t *testing.T) {
	// each item's recipe needs the other; only the vendor breaks the loop
	src := catalog.Source{
		Items: []catalog.ItemRow{
			{ID: 1, Name: "alpha", VendorPrice: 30},
			{ID: 2, Name: "beta"},
		},
		Recipes: []catalog.RecipeRow{
			{ID: 10, Item: 1, Yield: 1, Ingredients: []catalog.IngredientSlot{{Item: 2, Count: 1}}},
			{ID: 11, Item: 2, Yield: 1, Ingredients: []catalog.IngredientSlot{{Item: 1, Count: 3}}},
		},
	}

	// beta's craft resolves through vendor alphas: alpha's own recipe loops
	// back into beta mid-resolution and is skipped, leaving the vendor price
	r := New(buildCatalog(t, src), fakeMarket{}, fakeMarket{})
	reports, err := r.CostPossibilities(2)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, domain.MethodCraft, reports[0].Method)
	assert.Equal(t, 90, reports[0].Price)

	// resolving alpha first instead, beta is mid-cycle and unresolvable, so
	// alpha keeps only its vendor possibility
	r = New(buildCatalog(t, src), fakeMarket{}, fakeMarket{})
	reports, err = r.CostPossibilities(1)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, domain.MethodVendor, reports[0].Method)
}

func TestPureCycleYieldsNoPossibilities(t *testing.T) {
	c := buildCatalog(t, catalog.Source{
		Items: []catalog.ItemRow{
			{ID: 1, Name: "alpha"},
			{ID: 2, Name: "beta"},
		},
		Recipes: []catalog.RecipeRow{
			{ID: 10, Item: 1, Yield: 1, Ingredients: []catalog.IngredientSlot{{Item: 2, Count: 1}}},
			{ID: 11, Item: 2, Yield: 1, Ingredients: []catalog.IngredientSlot{{Item: 1, Count: 1}}},
		},
	})
	r := New(c, fakeMarket{}, fakeMarket{})

	reports, err := r.CostPossibilities(1)
	require.NoError(t, err)
	assert.Empty(t, reports)

	cheapest, err := r.Cheapest(1)
	require.NoError(t, err)
	assert.Nil(t, cheapest)
}

func TestCostPossibilitiesUnknownItem(t *testing.T) {
	c := buildCatalog(t, catalog.Source{})
	r := New(c, fakeMarket{}, fakeMarket{})

	_, err := r.CostPossibilities(99)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestProfitabilityPicksFasterGrade(t *testing.T) {
	c := buildCatalog(t, catalog.Source{
		Items: []catalog.ItemRow{
			{ID: 1, Name: "maple log", VendorPrice: 100},
			{ID: 2, Name: "maple lumber", HQPossible: true, SearchCategory: 44},
		},
		Recipes: []catalog.RecipeRow{
			{ID: 10, Item: 2, Yield: 1, Ingredients: []catalog.IngredientSlot{{Item: 1, Count: 2}}},
		},
	})
	sell := fakeMarket{2: sellInfo(2, quote(false, 500, 1.0), quote(true, 600, 0.5))}
	r := New(c, fakeMarket{}, sell)

	var entries []domain.ProfitEntry
	for entry, err := range r.Profitability(nil) {
		require.NoError(t, err)
		entries = append(entries, entry)
	}

	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, domain.RecipeID(10), entry.RecipeID)
	assert.Equal(t, "maple lumber", entry.Name)
	// NQ moves faster, so it wins despite the higher HQ price
	assert.False(t, entry.HQ)
	assert.Equal(t, 500, entry.Price)
	assert.Equal(t, 1.0, entry.Velocity)
	assert.Equal(t, 200, entry.Cost)
	// round(500*0.95 - 200*1.05)
	assert.Equal(t, 265, entry.Profit)
}

func TestProfitabilityIgnoresHQForNonHQItems(t *testing.T) {
	c := buildCatalog(t, catalog.Source{
		Items: []catalog.ItemRow{
			{ID: 1, Name: "maple log", VendorPrice: 100},
			{ID: 2, Name: "maple lumber", SearchCategory: 44},
		},
		Recipes: []catalog.RecipeRow{
			{ID: 10, Item: 2, Yield: 1, Ingredients: []catalog.IngredientSlot{{Item: 1, Count: 2}}},
		},
	})
	sell := fakeMarket{2: sellInfo(2, quote(false, 500, 0.2), quote(true, 900, 5.0))}
	r := New(c, fakeMarket{}, sell)

	for entry, err := range r.Profitability(nil) {
		require.NoError(t, err)
		assert.False(t, entry.HQ)
		assert.Equal(t, 500, entry.Price)
	}
}

func TestProfitabilitySkipsRecipesWithoutData(t *testing.T) {
	c := buildCatalog(t, catalog.Source{
		Items: []catalog.ItemRow{
			{ID: 1, Name: "maple log", VendorPrice: 100},
			{ID: 2, Name: "maple lumber", SearchCategory: 44},
			{ID: 3, Name: "orphan", SearchCategory: 44},
			{ID: 4, Name: "unobtainium"},
			{ID: 5, Name: "mystery box", SearchCategory: 44},
		},
		Recipes: []catalog.RecipeRow{
			{ID: 10, Item: 2, Yield: 1, Ingredients: []catalog.IngredientSlot{{Item: 1, Count: 2}}},
			// no sell-side data for item 3
			{ID: 11, Item: 3, Yield: 1, Ingredients: []catalog.IngredientSlot{{Item: 1, Count: 1}}},
			// item 5's sole ingredient cannot be acquired
			{ID: 12, Item: 5, Yield: 1, Ingredients: []catalog.IngredientSlot{{Item: 4, Count: 1}}},
		},
	})
	sell := fakeMarket{
		2: sellInfo(2, quote(false, 500, 1.0), quote(true, 0, 0)),
		5: sellInfo(5, quote(false, 900, 1.0), quote(true, 0, 0)),
	}
	r := New(c, fakeMarket{}, sell)

	var ids []domain.RecipeID
	for entry, err := range r.Profitability(nil) {
		require.NoError(t, err)
		ids = append(ids, entry.RecipeID)
	}
	assert.Equal(t, []domain.RecipeID{10}, ids)
}

func TestProfitabilitySkipsItemsCheaperOffTheShelf(t *testing.T) {
	// crafting maple lumber costs 200 but a vendor sells it for 50, so the
	// recipe is not worth reporting even with strong sell-side data
	c := buildCatalog(t, catalog.Source{
		Items: []catalog.ItemRow{
			{ID: 1, Name: "maple log", VendorPrice: 100},
			{ID: 2, Name: "maple lumber", VendorPrice: 50, SearchCategory: 44},
		},
		Recipes: []catalog.RecipeRow{
			{ID: 10, Item: 2, Yield: 1, Ingredients: []catalog.IngredientSlot{{Item: 1, Count: 2}}},
		},
	})
	sell := fakeMarket{2: sellInfo(2, quote(false, 500, 1.0), quote(true, 0, 0))}
	r := New(c, fakeMarket{}, sell)

	var entries []domain.ProfitEntry
	for entry, err := range r.Profitability(nil) {
		require.NoError(t, err)
		entries = append(entries, entry)
	}
	assert.Empty(t, entries)
}

func TestProfitabilitySkipsItemsCheaperOnMarket(t *testing.T) {
	c := buildCatalog(t, catalog.Source{
		Items: []catalog.ItemRow{
			{ID: 1, Name: "maple log", VendorPrice: 100},
			{ID: 2, Name: "maple lumber", SearchCategory: 44},
		},
		Recipes: []catalog.RecipeRow{
			{ID: 10, Item: 2, Yield: 1, Ingredients: []catalog.IngredientSlot{{Item: 1, Count: 2}}},
		},
	})
	// buy-side listings undercut the 200 gil craft
	buy := fakeMarket{2: sellInfo(2, quote(false, 150, 3.0), quote(true, 0, 0))}
	sell := fakeMarket{2: sellInfo(2, quote(false, 500, 1.0), quote(true, 0, 0))}
	r := New(c, buy, sell)

	var entries []domain.ProfitEntry
	for entry, err := range r.Profitability(nil) {
		require.NoError(t, err)
		entries = append(entries, entry)
	}
	assert.Empty(t, entries)
}

func TestProfitabilityOverRecipeSubset(t *testing.T) {
	c := buildCatalog(t, catalog.Source{
		Items: []catalog.ItemRow{
			{ID: 1, Name: "maple log", VendorPrice: 100},
			{ID: 2, Name: "maple lumber", SearchCategory: 44},
			{ID: 3, Name: "maple table", SearchCategory: 44},
		},
		Recipes: []catalog.RecipeRow{
			{ID: 10, Item: 2, Yield: 1, Ingredients: []catalog.IngredientSlot{{Item: 1, Count: 2}}},
			{ID: 11, Item: 3, Yield: 1, Ingredients: []catalog.IngredientSlot{{Item: 1, Count: 4}}},
		},
	})
	sell := fakeMarket{
		2: sellInfo(2, quote(false, 500, 1.0), quote(true, 0, 0)),
		3: sellInfo(3, quote(false, 900, 1.0), quote(true, 0, 0)),
	}
	r := New(c, fakeMarket{}, sell)

	table, err := c.RecipeByID(11)
	require.NoError(t, err)

	var ids []domain.RecipeID
	for entry, err := range r.Profitability(seq.Of([]domain.Recipe{table})) {
		require.NoError(t, err)
		ids = append(ids, entry.RecipeID)
	}
	assert.Equal(t, []domain.RecipeID{11}, ids)
}

func TestProfitabilityRestartable(t *testing.T) {
	c := buildCatalog(t, catalog.Source{
		Items: []catalog.ItemRow{
			{ID: 1, Name: "maple log", VendorPrice: 100},
			{ID: 2, Name: "maple lumber", SearchCategory: 44},
		},
		Recipes: []catalog.RecipeRow{
			{ID: 10, Item: 2, Yield: 1, Ingredients: []catalog.IngredientSlot{{Item: 1, Count: 2}}},
		},
	})
	sell := fakeMarket{2: sellInfo(2, quote(false, 500, 1.0), quote(true, 0, 0))}
	r := New(c, fakeMarket{}, sell)

	pass := r.Profitability(nil)
	first := 0
	for _, err := range pass {
		require.NoError(t, err)
		first++
	}
	second := 0
	for _, err := range pass {
		require.NoError(t, err)
		second++
	}
	assert.Equal(t, first, second)
}
