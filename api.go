// api.go
package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

func apiCountHandler(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			json.NewEncoder(w).Encode(APIResponse{Success: false, Error: "Method not allowed"})
			return
		}

		page, err := countUpload(w, r, cfg.MaxUploadBytes)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, errNoFile) {
				status = http.StatusUnprocessableEntity
			}
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(APIResponse{Success: false, Error: err.Error()})
			return
		}
		json.NewEncoder(w).Encode(APIResponse{Success: true, Data: page.Tally})
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   version,
	})
}
