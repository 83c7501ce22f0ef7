package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/farxc/procurement-insights/internal/response"
)

func writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")

	w.WriteHeader(status)

	return json.NewEncoder(w).Encode(data)
}

func writeJSONError(w http.ResponseWriter, status int, message string) error {
	return writeJSON(w, status, &response.ErrorResponse{Success: false, Error: message})
}

// respondView computes a view, records its latency and writes it in the
// standard envelope.
func respondView[T any](app *application, w http.ResponseWriter, view, message string, compute func() T) {
	start := time.Now()
	data := compute()
	app.metrics.ObserveView(view, start)

	resp := &response.APIResponse[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		app.logger.Error("API", "failed to write %s response: %v", view, err)
	}
}
