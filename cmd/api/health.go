package main

import "net/http"

// @Summary		Health check
// @Description	returns the status of the service and the size of the loaded table
// @Tags			Health
// @Produce		json
// @Success		200	{object}	map[string]any
// @Router			/health [get]
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {

	data := map[string]any{
		"status":      "available",
		"version":     "1.0.0",
		"data_source": app.config.dataSource,
		"rows":        app.table.Len(),
		"database":    app.store != nil,
	}

	if err := writeJSON(w, http.StatusOK, data); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}
