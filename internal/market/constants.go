package market

// BatchSize is the pricing service's practical ceiling on ids per batched
// query.
const BatchSize = 100

// boardStateValue maps states onto the market_board_state gauge.
var boardStateValue = map[string]float64{
	"empty":      0,
	"refreshing": 1,
	"ready":      2,
	"failed":     3,
}
