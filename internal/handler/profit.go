package handler

import (
	"net/http"
	"slices"
	"strconv"

	"github.com/moogleworks/market-moogle/internal/domain"
	"github.com/moogleworks/market-moogle/internal/logger"
	"github.com/moogleworks/market-moogle/internal/report"
)

// ProfitReportResponse is the profitability report payload.
type ProfitReportResponse struct {
	Count   int                  `json:"count"`
	Entries []domain.ProfitEntry `json:"entries"`
}

// HandleGetProfitReport computes the recipe profitability report. Supports
// minProfit, minVelocity and maxCost filters plus a sort expression like
// "-profit" or "velocity".
func HandleGetProfitReport(catalog report.CatalogReader, buy, sell report.MarketReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		if !sell.Available() {
			status, message := mapServiceErrorToUserMessage(domain.ErrSnapshotUnavailable)
			respondError(w, status, message)
			return
		}

		filter, err := parseFilter(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}

		sortExpr := r.URL.Query().Get("sort")
		if sortExpr == "" {
			sortExpr = report.DefaultSort
		}
		key, desc, err := report.ParseSort(sortExpr)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}

		reporter := report.New(catalog, buy, sell)
		entries := []domain.ProfitEntry{}
		for entry, err := range reporter.Profitability(nil) {
			if err != nil {
				log.Error("Profitability pass failed", "error", err)
				status, message := mapServiceErrorToUserMessage(err)
				respondError(w, status, message)
				return
			}
			if filter.Match(entry) {
				entries = append(entries, entry)
			}
		}
		slices.SortFunc(entries, report.Comparator(key, desc))

		respondJSON(w, http.StatusOK, ProfitReportResponse{Count: len(entries), Entries: entries})
	}
}

func parseFilter(r *http.Request) (report.Filter, error) {
	var filter report.Filter
	query := r.URL.Query()

	if raw := query.Get("minProfit"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return report.Filter{}, err
		}
		filter.MinProfit = &value
	}
	if raw := query.Get("minVelocity"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return report.Filter{}, err
		}
		filter.MinVelocity = &value
	}
	if raw := query.Get("maxCost"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return report.Filter{}, err
		}
		filter.MaxCost = &value
	}
	return filter, nil
}
