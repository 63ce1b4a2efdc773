package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/progdash/progdash/internal/logging"
)

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, statusCode int, err error) {
	logging.EnrichError(r.Context(), err)
	writeJSON(w, statusCode, map[string]string{"error": err.Error()})
}
