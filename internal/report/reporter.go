// Package report computes acquisition costs and recipe profitability from the
// catalog graph and the market snapshots. A Reporter is one resolution pass:
// it memoizes per item and must be rebuilt rather than reused once the
// underlying snapshots change.
package report

import (
	"errors"
	"iter"
	"math"

	"github.com/moogleworks/market-moogle/internal/domain"
	"github.com/moogleworks/market-moogle/internal/metrics"
)

const (
	// salesTaxRate is the fraction of a market sale the seller keeps.
	salesTaxRate = 0.95
	// inputPremiumRate pads material costs for price drift between passes.
	inputPremiumRate = 1.05
)

// errInProgress marks re-entry into an item currently being resolved. It
// never escapes the package: a cycle just makes the enclosing recipe
// unresolvable for this pass.
var errInProgress = errors.New("cost resolution in progress")

// CatalogReader is the slice of the catalog the cost engine reads.
type CatalogReader interface {
	ItemByID(id domain.ItemID) (domain.Item, error)
	RecipesForItem(id domain.ItemID) iter.Seq[domain.Recipe]
	IngredientsForRecipe(id domain.RecipeID) ([]domain.Ingredient, error)
	Recipes() iter.Seq[domain.Recipe]
}

// MarketReader is the snapshot read surface of one world's board.
type MarketReader interface {
	Lookup(id domain.ItemID) (domain.MarketInfo, bool)
	Available() bool
}

// Reporter resolves acquisition costs over one pair of market snapshots.
// Materials are priced against the buy world, finished goods against the
// sell world. Not safe for concurrent use.
type Reporter struct {
	catalog CatalogReader
	buy     MarketReader
	sell    MarketReader

	memo      map[domain.ItemID][]domain.CostReport
	resolving map[domain.ItemID]bool
}

// New starts a fresh resolution pass.
func New(catalog CatalogReader, buy, sell MarketReader) *Reporter {
	metrics.ReportPasses.Inc()
	return &Reporter{
		catalog:   catalog,
		buy:       buy,
		sell:      sell,
		memo:      make(map[domain.ItemID][]domain.CostReport),
		resolving: make(map[domain.ItemID]bool),
	}
}

// CostPossibilities returns every way to acquire the item, in order: vendor,
// market, then crafts in catalog order. An empty slice means the item exists
// but cannot be acquired with what this pass knows.
func (r *Reporter) CostPossibilities(id domain.ItemID) ([]domain.CostReport, error) {
	return r.possibilities(id)
}

// Cheapest returns the lowest-priced possibility, or nil when there is none.
// Ties keep the earlier possibility, so a vendor purchase beats an
// equally-priced market buy or craft.
func (r *Reporter) Cheapest(id domain.ItemID) (*domain.CostReport, error) {
	reports, err := r.possibilities(id)
	if err != nil {
		return nil, err
	}

	var best *domain.CostReport
	for i := range reports {
		if best == nil || reports[i].Price < best.Price {
			best = &reports[i]
		}
	}
	return best, nil
}

func (r *Reporter) possibilities(id domain.ItemID) ([]domain.CostReport, error) {
	if reports, ok := r.memo[id]; ok {
		return reports, nil
	}
	if r.resolving[id] {
		return nil, errInProgress
	}
	r.resolving[id] = true
	defer delete(r.resolving, id)

	item, err := r.catalog.ItemByID(id)
	if err != nil {
		return nil, err
	}

	reports := []domain.CostReport{}
	if item.VendorSold() {
		reports = append(reports, domain.CostReport{Item: id, Method: domain.MethodVendor, Price: item.VendorPrice})
	}
	if info, ok := r.buy.Lookup(id); ok {
		// materials are always bought NQ
		reports = append(reports, domain.CostReport{Item: id, Method: domain.MethodMarket, Price: info.NQ.Price})
	}

recipes:
	for recipe := range r.catalog.RecipesForItem(id) {
		ingredients, err := r.catalog.IngredientsForRecipe(recipe.ID)
		if err != nil {
			return nil, err
		}

		costs := make([]domain.IngredientCost, 0, len(ingredients))
		price := 0.0
		for _, ing := range ingredients {
			cheapest, err := r.Cheapest(ing.Item)
			if errors.Is(err, errInProgress) {
				// cycle back into an item still being resolved
				continue recipes
			}
			if err != nil {
				return nil, err
			}
			if cheapest == nil {
				continue recipes
			}

			perUnit := float64(cheapest.Price)
			if cheapest.Method == domain.MethodCraft {
				perUnit /= float64(cheapest.Yield)
			}
			price = math.Round(price + float64(ing.Count)*perUnit)
			costs = append(costs, domain.IngredientCost{Count: ing.Count, Report: cheapest})
		}

		reports = append(reports, domain.CostReport{
			Item:        id,
			Method:      domain.MethodCraft,
			Price:       int(price),
			Recipe:      recipe.ID,
			Yield:       recipe.Yield,
			Ingredients: costs,
		})
	}

	r.memo[id] = reports
	return reports, nil
}

// Profitability yields one entry per recipe whose produced item is cheapest
// to acquire by crafting and has sell-side market data. A nil recipes
// sequence means every catalog recipe. The sequence is lazy and restartable;
// later restarts reuse the memo table.
func (r *Reporter) Profitability(recipes iter.Seq[domain.Recipe]) iter.Seq2[domain.ProfitEntry, error] {
	if recipes == nil {
		recipes = r.catalog.Recipes()
	}
	return func(yield func(domain.ProfitEntry, error) bool) {
		for recipe := range recipes {
			entry, ok, err := r.profitEntry(recipe)
			if err != nil {
				yield(domain.ProfitEntry{}, err)
				return
			}
			if !ok {
				continue
			}
			if !yield(entry, nil) {
				return
			}
		}
	}
}

func (r *Reporter) profitEntry(recipe domain.Recipe) (domain.ProfitEntry, bool, error) {
	item, err := r.catalog.ItemByID(recipe.Item)
	if err != nil {
		return domain.ProfitEntry{}, false, err
	}

	// only items whose optimal acquisition is a craft are worth making;
	// anything cheaper from a vendor or the market is skipped outright
	cheapest, err := r.Cheapest(recipe.Item)
	if err != nil {
		return domain.ProfitEntry{}, false, err
	}
	if cheapest == nil || cheapest.Method != domain.MethodCraft {
		return domain.ProfitEntry{}, false, nil
	}

	info, ok := r.sell.Lookup(recipe.Item)
	if !ok {
		return domain.ProfitEntry{}, false, nil
	}

	// sell whichever grade moves faster; ties go to NQ
	quote := info.NQ
	if item.HQPossible && info.HQ.Velocity > info.NQ.Velocity {
		quote = info.HQ
	}

	profit := int(math.Round(float64(quote.Price)*salesTaxRate - float64(cheapest.Price)*inputPremiumRate))
	return domain.ProfitEntry{
		RecipeID:    recipe.ID,
		ItemID:      recipe.Item,
		Name:        item.Name,
		HQ:          quote.HQ,
		Velocity:    quote.Velocity,
		Price:       quote.Price,
		Cost:        cheapest.Price,
		Profit:      profit,
		Ingredients: cheapest.Ingredients,
	}, true, nil
}
