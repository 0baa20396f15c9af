package report

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/moogleworks/market-moogle/internal/domain"
)

// SortKey names a profitability report column entries can be ordered by.
type SortKey string

const (
	SortProfit   SortKey = "profit"
	SortVelocity SortKey = "velocity"
	SortCost     SortKey = "cost"
	SortPrice    SortKey = "price"
)

// DefaultSort is the order used when a request does not ask for one.
const DefaultSort = "-" + string(SortProfit)

// ParseSort interprets a sort expression like "velocity" or "-profit"; a
// leading '-' selects descending order.
func ParseSort(expr string) (SortKey, bool, error) {
	desc := strings.HasPrefix(expr, "-")
	key := SortKey(strings.TrimPrefix(expr, "-"))
	switch key {
	case SortProfit, SortVelocity, SortCost, SortPrice:
		return key, desc, nil
	default:
		return "", false, fmt.Errorf("unknown sort key %q", key)
	}
}

// Comparator returns an ordering function over profit entries for the given
// key and direction, with recipe id as the final tiebreaker so output order
// is stable across runs.
func Comparator(key SortKey, desc bool) func(a, b domain.ProfitEntry) int {
	var compare func(a, b domain.ProfitEntry) int
	switch key {
	case SortVelocity:
		compare = func(a, b domain.ProfitEntry) int { return cmp.Compare(a.Velocity, b.Velocity) }
	case SortCost:
		compare = func(a, b domain.ProfitEntry) int { return cmp.Compare(a.Cost, b.Cost) }
	case SortPrice:
		compare = func(a, b domain.ProfitEntry) int { return cmp.Compare(a.Price, b.Price) }
	default:
		compare = func(a, b domain.ProfitEntry) int { return cmp.Compare(a.Profit, b.Profit) }
	}

	return func(a, b domain.ProfitEntry) int {
		c := compare(a, b)
		if desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.RecipeID, b.RecipeID)
	}
}

// Filter narrows profitability entries. The zero value matches everything.
type Filter struct {
	MinProfit   *int
	MinVelocity *float64
	MaxCost     *int
}

// Match reports whether the entry passes every set bound.
func (f Filter) Match(e domain.ProfitEntry) bool {
	if f.MinProfit != nil && e.Profit < *f.MinProfit {
		return false
	}
	if f.MinVelocity != nil && e.Velocity < *f.MinVelocity {
		return false
	}
	if f.MaxCost != nil && e.Cost > *f.MaxCost {
		return false
	}
	return true
}
