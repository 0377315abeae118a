package handler

import (
	"context"
	"net/http"

	"github.com/nutrigood/nutrigood-backend/internal/api/response"
)

// DBPinger reports whether the database connection is alive.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles the GET /health endpoint.
type HealthHandler struct {
	db      DBPinger
	version string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db DBPinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

type healthData struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database bool   `json:"database"`
}

// ServeHTTP handles the health check request.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data := healthData{Status: "healthy", Version: h.version, Database: true}

	if h.db == nil || h.db.Ping(r.Context()) != nil {
		data.Status = "degraded"
		data.Database = false
	}

	response.Success(w, http.StatusOK, data)
}
