package domain

// Quote is one side of an item's market data: the lowest current listing
// price and the recent sale velocity for a single quality grade.
type Quote struct {
	HQ       bool    `json:"hq"`
	Price    int     `json:"price"`
	Velocity float64 `json:"velocity"`
}

// MarketInfo is the cached market data for one item on one world.
type MarketInfo struct {
	Item  ItemID `json:"item_id"`
	World string `json:"world"`
	NQ    Quote  `json:"nq"`
	HQ    Quote  `json:"hq"`
}

// Snapshot is one complete fetch result for a world. Items missing either a
// listing or a sale history are absent rather than zero-valued.
type Snapshot map[ItemID]MarketInfo

// BoardState is the lifecycle state of a market board.
type BoardState string

const (
	// BoardEmpty means no fetch has been attempted yet.
	BoardEmpty BoardState = "empty"
	// BoardRefreshing means a fetch is in flight.
	BoardRefreshing BoardState = "refreshing"
	// BoardReady means the latest fetch succeeded and its snapshot serves reads.
	BoardReady BoardState = "ready"
	// BoardFailed means the latest fetch failed; the error is retained.
	BoardFailed BoardState = "failed"
)

// BoardStatus is the displayable status of one board.
type BoardStatus struct {
	World string     `json:"world"`
	State BoardState `json:"state"`
	Error string     `json:"error,omitempty"`
}
