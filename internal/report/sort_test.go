package report

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moogleworks/market-moogle/internal/domain"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		expr     string
		key      SortKey
		desc     bool
		parseErr bool
	}{
		{expr: "profit", key: SortProfit},
		{expr: "-profit", key: SortProfit, desc: true},
		{expr: "velocity", key: SortVelocity},
		{expr: "-cost", key: SortCost, desc: true},
		{expr: "price", key: SortPrice},
		{expr: "name", parseErr: true},
		{expr: "", parseErr: true},
		{expr: "--profit", parseErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			key, desc, err := ParseSort(tt.expr)
			if tt.parseErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.desc, desc)
		})
	}
}

func TestComparatorOrders(t *testing.T) {
	entries := []domain.ProfitEntry{
		{RecipeID: 1, Profit: 50, Velocity: 2.0, Cost: 300, Price: 400},
		{RecipeID: 2, Profit: 200, Velocity: 0.5, Cost: 100, Price: 350},
		{RecipeID: 3, Profit: 125, Velocity: 1.0, Cost: 200, Price: 380},
	}

	sorted := slices.Clone(entries)
	slices.SortFunc(sorted, Comparator(SortProfit, true))
	assert.Equal(t, []domain.RecipeID{2, 3, 1}, recipeIDs(sorted))

	sorted = slices.Clone(entries)
	slices.SortFunc(sorted, Comparator(SortVelocity, false))
	assert.Equal(t, []domain.RecipeID{2, 3, 1}, recipeIDs(sorted))

	sorted = slices.Clone(entries)
	slices.SortFunc(sorted, Comparator(SortCost, false))
	assert.Equal(t, []domain.RecipeID{2, 3, 1}, recipeIDs(sorted))

	sorted = slices.Clone(entries)
	slices.SortFunc(sorted, Comparator(SortPrice, true))
	assert.Equal(t, []domain.RecipeID{1, 3, 2}, recipeIDs(sorted))
}

func TestComparatorBreaksTiesByRecipeID(t *testing.T) {
	entries := []domain.ProfitEntry{
		{RecipeID: 9, Profit: 100},
		{RecipeID: 3, Profit: 100},
		{RecipeID: 6, Profit: 100},
	}
	slices.SortFunc(entries, Comparator(SortProfit, true))
	assert.Equal(t, []domain.RecipeID{3, 6, 9}, recipeIDs(entries))
}

func recipeIDs(entries []domain.ProfitEntry) []domain.RecipeID {
	ids := make([]domain.RecipeID, len(entries))
	for i, e := range entries {
		ids[i] = e.RecipeID
	}
	return ids
}

func TestFilterMatch(t *testing.T) {
	entry := domain.ProfitEntry{Profit: 100, Velocity: 1.5, Cost: 250}

	assert.True(t, Filter{}.Match(entry))

	minProfit := 150
	assert.False(t, Filter{MinProfit: &minProfit}.Match(entry))
	minProfit = 100
	assert.True(t, Filter{MinProfit: &minProfit}.Match(entry))

	minVelocity := 2.0
	assert.False(t, Filter{MinVelocity: &minVelocity}.Match(entry))

	maxCost := 200
	assert.False(t, Filter{MaxCost: &maxCost}.Match(entry))
	maxCost = 250
	assert.True(t, Filter{MaxCost: &maxCost}.Match(entry))
}
