package market

import (
	"context"

	"github.com/moogleworks/market-moogle/internal/domain"
)

// ListingEntry is the current lowest listing per grade for one item.
type ListingEntry struct {
	MinPriceNQ int
	MinPriceHQ int
}

// HistoryEntry is the recent sale velocity per grade for one item.
type HistoryEntry struct {
	NQVelocity float64
	HQVelocity float64
}

// Client is the batched query contract of the external pricing service.
// Both queries take at most BatchSize ids; items the service cannot resolve
// are simply absent from the returned map.
type Client interface {
	Listings(ctx context.Context, world string, ids []domain.ItemID) (map[domain.ItemID]ListingEntry, error)
	History(ctx context.Context, world string, ids []domain.ItemID) (map[domain.ItemID]HistoryEntry, error)
}
