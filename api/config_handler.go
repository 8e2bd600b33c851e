package api

import (
	"net/http"

	"github.com/seenimoa/smebench/internal/config"
)

// ConfigResponse is the JSON envelope returned by GET /api/v1/config.
type ConfigResponse struct {
	Config     *config.Config `json:"config"`
	ConfigFile string         `json:"config_file"` // empty when running on defaults
}

// handleGetConfig returns the running configuration. The engine is built
// once at startup, so the config is read-only over HTTP.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: ConfigResponse{
			Config:     s.cfg,
			ConfigFile: s.cfg.FilePath(),
		},
	})
}
