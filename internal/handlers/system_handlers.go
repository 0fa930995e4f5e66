package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/voidnest-bridge/internal/constants"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/utils"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version     string `json:"version"`
	Commit      string `json:"commit,omitempty"`
	BuildDate   string `json:"build_date,omitempty"`
	Environment string `json:"environment"`
}

// SystemHandler serves the health and version endpoints.
type SystemHandler struct {
	healthChecker HealthChecker
	build         BuildInfo
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(healthChecker HealthChecker, build BuildInfo) *SystemHandler {
	return &SystemHandler{
		healthChecker: healthChecker,
		build:         build,
	}
}

// Health opens a connection to the economy database and reports the result
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.healthChecker.HealthCheck(r.Context()); err != nil {
		log.Error().Err(err).Msg("Health check failed")
		utils.EnvelopeError(w, http.StatusServiceUnavailable, constants.CodeServiceUnavailable, constants.MsgServiceUnhealthy)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": h.build.Version,
	})
}

// Version reports build information
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.build)
}
