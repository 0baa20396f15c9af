package handler

import (
	"encoding/json"
	"net/http"
)

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// BoardAvailability reports whether a market board can serve reads.
type BoardAvailability interface {
	World() string
	Available() bool
}

// HandleHealthz provides a basic liveness check
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{
			Status: "ok",
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(response)
	}
}

// HandleReadyz reports ready once every market board has a readable snapshot.
// Until the first refresh completes the service can describe the catalog but
// not price anything.
func HandleReadyz(boards []BoardAvailability) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, board := range boards {
			if !board.Available() {
				response := HealthResponse{
					Status:  "unavailable",
					Message: "no market snapshot for world " + board.World(),
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(response)
				return
			}
		}

		response := HealthResponse{
			Status: "ok",
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(response)
	}
}
