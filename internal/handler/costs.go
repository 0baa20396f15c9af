package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/moogleworks/market-moogle/internal/domain"
	"github.com/moogleworks/market-moogle/internal/logger"
	"github.com/moogleworks/market-moogle/internal/report"
)

// CostsResponse carries every acquisition possibility for one item.
type CostsResponse struct {
	ItemID        domain.ItemID       `json:"item_id"`
	Possibilities []domain.CostReport `json:"possibilities"`
	Cheapest      *domain.CostReport  `json:"cheapest,omitempty"`
}

// HandleGetItemCosts resolves the acquisition possibilities for one item.
// Each request runs a fresh resolution pass against the snapshots current at
// that moment.
func HandleGetItemCosts(catalog report.CatalogReader, buy, sell report.MarketReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}

		reporter := report.New(catalog, buy, sell)
		possibilities, err := reporter.CostPossibilities(domain.ItemID(id))
		if err != nil {
			log.Warn("Cost resolution failed", "item_id", id, "error", err)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}
		cheapest, err := reporter.Cheapest(domain.ItemID(id))
		if err != nil {
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		respondJSON(w, http.StatusOK, CostsResponse{
			ItemID:        domain.ItemID(id),
			Possibilities: possibilities,
			Cheapest:      cheapest,
		})
	}
}
