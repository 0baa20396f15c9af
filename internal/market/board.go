// Package market maintains per-world snapshot caches of pricing data fetched
// from an external pricing service in rate-limited batches. Each Board is a
// small state machine (empty, refreshing, ready, failed); readers always get
// the latest complete snapshot, falling back to the previous one while a
// refresh is in flight.
package market

import (
	"context"
	"iter"
	"maps"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/moogleworks/market-moogle/internal/domain"
	"github.com/moogleworks/market-moogle/internal/logger"
	"github.com/moogleworks/market-moogle/internal/metrics"
	"github.com/moogleworks/market-moogle/internal/seq"
)

// ItemSource enumerates the catalog items whose ids a fetch should query.
type ItemSource interface {
	Items() iter.Seq[domain.Item]
}

// flight tracks one in-progress fetch so late refresh requests can attach to
// it instead of starting a second one.
type flight struct {
	done chan struct{}
	err  error
}

// Board is the snapshot cache for one world. All exported methods are safe
// for concurrent use; at most one fetch is ever in flight per Board.
type Board struct {
	world    string
	items    ItemSource
	client   Client
	throttle Throttle

	mu       sync.Mutex
	state    domain.BoardState
	current  domain.Snapshot // set only in ready
	previous domain.Snapshot // stale reads while refreshing
	lastErr  error           // retained in failed
	inflight *flight
}

// NewBoard creates an empty Board for the given world. The throttle is shared
// with every other board so the pricing-service request budget stays global.
func NewBoard(world string, items ItemSource, client Client, throttle Throttle) *Board {
	b := &Board{
		world:    world,
		items:    items,
		client:   client,
		throttle: throttle,
		state:    domain.BoardEmpty,
	}
	metrics.MarketBoardState.WithLabelValues(world).Set(boardStateValue[string(domain.BoardEmpty)])
	return b
}

// World returns the world this board tracks.
func (b *Board) World() string {
	return b.world
}

// State returns the current lifecycle state.
func (b *Board) State() domain.BoardState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Err returns the retained fetch error, non-nil only in the failed state.
func (b *Board) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastErr
}

// Status returns the displayable status of the board.
func (b *Board) Status() domain.BoardStatus {
	b.mu.Lock()
	defer b.mu.Unlock()

	status := domain.BoardStatus{World: b.world, State: b.state}
	if b.lastErr != nil {
		status.Error = b.lastErr.Error()
	}
	return status
}

// Available reports whether any snapshot (fresh or stale) can serve reads.
func (b *Board) Available() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.readable() != nil
}

// Lookup returns the market info for an item from the best snapshot on hand.
// The second return is false when the item is absent or no snapshot exists.
func (b *Board) Lookup(id domain.ItemID) (domain.MarketInfo, bool) {
	b.mu.Lock()
	snap := b.readable()
	b.mu.Unlock()

	if snap == nil {
		return domain.MarketInfo{}, false
	}
	info, ok := snap[id]
	return info, ok
}

// Snapshot returns the snapshot serving reads, or ErrSnapshotUnavailable.
func (b *Board) Snapshot() (domain.Snapshot, error) {
	b.mu.Lock()
	snap := b.readable()
	b.mu.Unlock()

	if snap == nil {
		return nil, domain.ErrSnapshotUnavailable
	}
	return snap, nil
}

// readable must be called with b.mu held. While refreshing it serves the
// snapshot captured before the fetch started, if there was one.
func (b *Board) readable() domain.Snapshot {
	if b.current != nil {
		return b.current
	}
	if b.state == domain.BoardRefreshing {
		return b.previous
	}
	return nil
}

// Refresh fetches a new snapshot and blocks until the fetch settles. A call
// made while a fetch is already in flight does not start a second one; it
// attaches to the in-flight fetch and returns its outcome. The fetch itself
// is detached from the caller's cancellation: a caller that stops waiting
// leaves the fetch to complete and install its result.
func (b *Board) Refresh(ctx context.Context) error {
	b.mu.Lock()
	if f := b.inflight; f != nil {
		b.mu.Unlock()
		metrics.MarketRefreshesJoined.WithLabelValues(b.world).Inc()
		select {
		case <-f.done:
			return f.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	f := &flight{done: make(chan struct{})}
	b.inflight = f
	if b.state == domain.BoardReady {
		b.previous = b.current
	} else {
		b.previous = nil
	}
	b.current = nil
	b.lastErr = nil
	b.setStateLocked(domain.BoardRefreshing)
	b.mu.Unlock()

	snap, err := b.fetch(context.WithoutCancel(ctx))

	b.mu.Lock()
	b.inflight = nil
	b.previous = nil
	if err != nil {
		b.lastErr = err
		b.setStateLocked(domain.BoardFailed)
		metrics.MarketFetchesTotal.WithLabelValues(b.world, metrics.OutcomeError).Inc()
	} else {
		b.current = snap
		b.setStateLocked(domain.BoardReady)
		metrics.MarketFetchesTotal.WithLabelValues(b.world, metrics.OutcomeOK).Inc()
		metrics.MarketSnapshotItems.WithLabelValues(b.world).Set(float64(len(snap)))
	}
	b.mu.Unlock()

	f.err = err
	close(f.done)
	return err
}

func (b *Board) setStateLocked(state domain.BoardState) {
	b.state = state
	metrics.MarketBoardState.WithLabelValues(b.world).Set(boardStateValue[string(state)])
}

// fetch queries listings and sale history for every marketable item in
// batches and merges the results into one snapshot. Only items present in
// both responses make it in; batch completion order does not matter because
// each id lives in exactly one batch.
func (b *Board) fetch(ctx context.Context) (domain.Snapshot, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	marketableIDs := seq.Select(
		seq.Where(b.items.Items(), domain.Item.Marketable),
		func(item domain.Item) domain.ItemID { return item.ID },
	)
	batches := seq.Collect(seq.Chunk(marketableIDs, BatchSize))

	results := make([]domain.Snapshot, len(batches))
	g, gctx := errgroup.WithContext(ctx)
	for i, ids := range batches {
		g.Go(func() error {
			var listings map[domain.ItemID]ListingEntry
			err := b.throttle.Do(gctx, func() error {
				var err error
				listings, err = b.client.Listings(gctx, b.world, ids)
				return err
			})
			if err != nil {
				return err
			}

			var history map[domain.ItemID]HistoryEntry
			err = b.throttle.Do(gctx, func() error {
				var err error
				history, err = b.client.History(gctx, b.world, ids)
				return err
			})
			if err != nil {
				return err
			}

			merged := make(domain.Snapshot, len(listings))
			for id, listing := range listings {
				hist, ok := history[id]
				if !ok {
					continue
				}
				merged[id] = domain.MarketInfo{
					Item:  id,
					World: b.world,
					NQ:    domain.Quote{HQ: false, Price: listing.MinPriceNQ, Velocity: hist.NQVelocity},
					HQ:    domain.Quote{HQ: true, Price: listing.MinPriceHQ, Velocity: hist.HQVelocity},
				}
			}
			results[i] = merged
			metrics.MarketFetchBatches.WithLabelValues(b.world).Inc()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("Market fetch failed", "world", b.world, "error", err)
		return nil, err
	}

	snap := make(domain.Snapshot)
	for _, merged := range results {
		maps.Copy(snap, merged)
	}

	metrics.MarketFetchDuration.WithLabelValues(b.world).Observe(time.Since(start).Seconds())
	log.Info("Market fetch complete", "world", b.world, "batches", len(batches), "items", len(snap))
	return snap, nil
}
