package http

import (
	"net/http"

	"github.com/m-mizutani/releasegpt/pkg/domain/model"
	"github.com/m-mizutani/releasegpt/pkg/domain/types"
)

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, &model.HealthStatus{
		Status:  "healthy",
		Service: "releasegpt",
		Version: types.Version,
	})
}
