// Package ingest fetches the game data export (CSV sheets pinned to a git
// ref) and normalizes the four row sets the catalog is built from. Malformed
// fields are hard errors; ingestion never hands partially-typed rows onward.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/moogleworks/market-moogle/internal/catalog"
	"github.com/moogleworks/market-moogle/internal/domain"
	"github.com/moogleworks/market-moogle/internal/logger"
)

// DefaultBaseURL is the canonical home of the datamining CSV export.
const DefaultBaseURL = "https://raw.githubusercontent.com/xivapi/ffxiv-datamining"

// Sheet names in the data export.
const (
	SheetSearchCategory = "ItemSearchCategory"
	SheetGilShopItem    = "GilShopItem"
	SheetItem           = "Item"
	SheetRecipe         = "Recipe"
)

// Column positions within the export sheets.
const (
	colCategoryID   = 0
	colCategoryName = 1

	colGilShopItemID = 1

	colItemID             = 0
	colItemName           = 10
	colItemSearchCategory = 17
	colItemVendorPrice    = 26
	colItemHQPossible     = 28

	colRecipeID     = 0
	colRecipeItem   = 4
	colRecipeYield  = 5
	colRecipeSlot0  = 6
	ingredientSlots = 10
)

// headerRows is the number of non-data rows (key, name, type) at the top of
// every sheet.
const headerRows = 3

// Fetcher downloads and parses export sheets over HTTP.
type Fetcher struct {
	client  *http.Client
	baseURL string
	ref     string
}

// NewFetcher creates a Fetcher for the export at baseURL pinned to ref.
func NewFetcher(client *http.Client, baseURL, ref string) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client, baseURL: baseURL, ref: ref}
}

// Sheet fetches one sheet and returns its data rows with the header rows
// stripped.
func (f *Fetcher) Sheet(ctx context.Context, name string) ([][]string, error) {
	url := fmt.Sprintf("%s/%s/csv/%s.csv", f.baseURL, f.ref, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build sheet request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch sheet %s: unexpected status %d", name, resp.StatusCode)
	}

	return parseSheet(resp.Body)
}

func parseSheet(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // header rows differ in width from data rows
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse sheet: %w", err)
	}
	if len(rows) <= headerRows {
		return nil, nil
	}
	return rows[headerRows:], nil
}

// LoadSource fetches all four sheets concurrently and normalizes them into
// catalog source rows.
func (f *Fetcher) LoadSource(ctx context.Context) (catalog.Source, error) {
	log := logger.FromContext(ctx)

	var categoryRows, gilShopRows, itemRows, recipeRows [][]string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		categoryRows, err = f.Sheet(gctx, SheetSearchCategory)
		return err
	})
	g.Go(func() (err error) {
		gilShopRows, err = f.Sheet(gctx, SheetGilShopItem)
		return err
	})
	g.Go(func() (err error) {
		itemRows, err = f.Sheet(gctx, SheetItem)
		return err
	})
	g.Go(func() (err error) {
		recipeRows, err = f.Sheet(gctx, SheetRecipe)
		return err
	})
	if err := g.Wait(); err != nil {
		return catalog.Source{}, err
	}

	categories, err := NormalizeCategories(categoryRows)
	if err != nil {
		return catalog.Source{}, err
	}
	vendorSold, err := NormalizeGilShopItems(gilShopRows)
	if err != nil {
		return catalog.Source{}, err
	}
	items, err := NormalizeItems(itemRows, vendorSold)
	if err != nil {
		return catalog.Source{}, err
	}
	recipes, err := NormalizeRecipes(recipeRows)
	if err != nil {
		return catalog.Source{}, err
	}

	log.Info("Data export loaded",
		"categories", len(categories),
		"vendor_items", len(vendorSold),
		"items", len(items),
		"recipes", len(recipes))

	return catalog.Source{Categories: categories, Items: items, Recipes: recipes}, nil
}

// NormalizeCategories maps search-category rows to domain records.
func NormalizeCategories(rows [][]string) ([]domain.SearchCategory, error) {
	out := make([]domain.SearchCategory, 0, len(rows))
	for i, row := range rows {
		id, err := intField(SheetSearchCategory, i, row, colCategoryID)
		if err != nil {
			return nil, err
		}
		name, err := field(SheetSearchCategory, i, row, colCategoryName)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.SearchCategory{ID: domain.SearchCategoryID(id), Name: name})
	}
	return out, nil
}

// NormalizeGilShopItems collects the set of item ids sold by gil vendors.
func NormalizeGilShopItems(rows [][]string) (map[domain.ItemID]bool, error) {
	out := make(map[domain.ItemID]bool, len(rows))
	for i, row := range rows {
		id, err := intField(SheetGilShopItem, i, row, colGilShopItemID)
		if err != nil {
			return nil, err
		}
		out[domain.ItemID(id)] = true
	}
	return out, nil
}

// NormalizeItems maps item rows to catalog rows, attaching the vendor price
// only for items in the vendor-sale set. Invalid-but-well-typed rows (zero
// id, empty name) are passed through for the catalog build to drop.
func NormalizeItems(rows [][]string, vendorSold map[domain.ItemID]bool) ([]catalog.ItemRow, error) {
	out := make([]catalog.ItemRow, 0, len(rows))
	for i, row := range rows {
		id, err := intField(SheetItem, i, row, colItemID)
		if err != nil {
			return nil, err
		}
		name, err := field(SheetItem, i, row, colItemName)
		if err != nil {
			return nil, err
		}
		hqPossible, err := field(SheetItem, i, row, colItemHQPossible)
		if err != nil {
			return nil, err
		}
		vendorPrice, err := intField(SheetItem, i, row, colItemVendorPrice)
		if err != nil {
			return nil, err
		}
		searchCategory, err := intField(SheetItem, i, row, colItemSearchCategory)
		if err != nil {
			return nil, err
		}

		item := catalog.ItemRow{
			ID:             domain.ItemID(id),
			Name:           name,
			HQPossible:     hqPossible == "True",
			SearchCategory: domain.SearchCategoryID(searchCategory),
		}
		if vendorSold[item.ID] {
			item.VendorPrice = vendorPrice
		}
		out = append(out, item)
	}
	return out, nil
}

// NormalizeRecipes maps recipe rows, including their ten ingredient slot
// pairs, to catalog rows.
func NormalizeRecipes(rows [][]string) ([]catalog.RecipeRow, error) {
	out := make([]catalog.RecipeRow, 0, len(rows))
	for i, row := range rows {
		id, err := intField(SheetRecipe, i, row, colRecipeID)
		if err != nil {
			return nil, err
		}
		item, err := intField(SheetRecipe, i, row, colRecipeItem)
		if err != nil {
			return nil, err
		}
		yield, err := intField(SheetRecipe, i, row, colRecipeYield)
		if err != nil {
			return nil, err
		}

		recipe := catalog.RecipeRow{
			ID:    domain.RecipeID(id),
			Item:  domain.ItemID(item),
			Yield: yield,
		}
		for slot := 0; slot < ingredientSlots; slot++ {
			matItem, err := intField(SheetRecipe, i, row, colRecipeSlot0+slot*2)
			if err != nil {
				return nil, err
			}
			matCount, err := intField(SheetRecipe, i, row, colRecipeSlot0+slot*2+1)
			if err != nil {
				return nil, err
			}
			recipe.Ingredients = append(recipe.Ingredients, catalog.IngredientSlot{
				Item:  domain.ItemID(matItem),
				Count: matCount,
			})
		}
		out = append(out, recipe)
	}
	return out, nil
}

func field(sheet string, rowIndex int, row []string, col int) (string, error) {
	if col >= len(row) {
		return "", fmt.Errorf("%w: %s row %d has no column %d", domain.ErrMalformedRow, sheet, rowIndex, col)
	}
	return row[col], nil
}

func intField(sheet string, rowIndex int, row []string, col int) (int, error) {
	raw, err := field(sheet, rowIndex, row, col)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s row %d column %d: %q is not numeric", domain.ErrMalformedRow, sheet, rowIndex, col, raw)
	}
	return n, nil
}
