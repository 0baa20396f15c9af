package handler

import (
	"context"
	"net/http"

	"github.com/moogleworks/market-moogle/internal/domain"
	"github.com/moogleworks/market-moogle/internal/logger"
)

// MarketBoard is the board surface the market endpoints need.
type MarketBoard interface {
	World() string
	Status() domain.BoardStatus
	Refresh(ctx context.Context) error
}

// MarketStatusResponse lists the lifecycle state of every tracked world.
type MarketStatusResponse struct {
	Boards []domain.BoardStatus `json:"boards"`
}

// HandleGetMarketStatus reports the state of every market board.
func HandleGetMarketStatus(boards []MarketBoard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		statuses := make([]domain.BoardStatus, len(boards))
		for i, board := range boards {
			statuses[i] = board.Status()
		}
		respondJSON(w, http.StatusOK, MarketStatusResponse{Boards: statuses})
	}
}

// HandleRefreshMarket triggers a refresh of every board and returns 202
// without waiting. Boards already refreshing just keep their in-flight fetch.
func HandleRefreshMarket(boards []MarketBoard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// keep request-scoped values but detach from the request lifetime
		ctx := context.WithoutCancel(r.Context())
		log := logger.FromContext(ctx)

		for _, board := range boards {
			go func() {
				if err := board.Refresh(ctx); err != nil {
					log.Error("Market refresh failed", "world", board.World(), "error", err)
				}
			}()
		}

		log.Info("Market refresh triggered", "boards", len(boards))
		respondJSON(w, http.StatusAccepted, SuccessResponse{Message: "market refresh started"})
	}
}
