package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/yasinhessnawi1/voidnest-bridge/internal/constants"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/middleware"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/utils"
)

// EconomyHandler serves the dashboard endpoints.
type EconomyHandler struct {
	economyService EconomyServiceInterface
	hideErrors     bool
}

// NewEconomyHandler creates a new EconomyHandler.
// With hideErrors set, server error bodies carry a generic message.
func NewEconomyHandler(economyService EconomyServiceInterface, hideErrors bool) *EconomyHandler {
	return &EconomyHandler{
		economyService: economyService,
		hideErrors:     hideErrors,
	}
}

// GetStats returns the total balance and the number of accounts
func (h *EconomyHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.economyService.Stats(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.SendJSON(w, http.StatusOK, stats)
}

// GetLeaderboard returns the richest players
func (h *EconomyHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.economyService.Leaderboard(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.SendJSON(w, http.StatusOK, entries)
}

// GetPlayer returns a single player's balance
func (h *EconomyHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	name, ok := playerName(r)
	if !ok {
		utils.NotFound(w, constants.MsgPlayerNotFound)
		return
	}

	player, err := h.economyService.Player(r.Context(), name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.SendJSON(w, http.StatusOK, player)
}

// GetPlayerAdvice returns a player's balance together with generated tips
func (h *EconomyHandler) GetPlayerAdvice(w http.ResponseWriter, r *http.Request) {
	name, ok := playerName(r)
	if !ok {
		utils.NotFound(w, constants.MsgPlayerNotFound)
		return
	}

	advice, err := h.economyService.Advice(r.Context(), name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.SendJSON(w, http.StatusOK, advice)
}

// playerName reads the name path parameter, decoded exactly once.
// chi matches on r.URL.RawPath when it is set, leaving the parameter escaped.
func playerName(r *http.Request) (string, bool) {
	name := chi.URLParam(r, constants.ParamPlayerName)
	if r.URL.RawPath != "" {
		decoded, err := url.PathUnescape(name)
		if err != nil {
			return "", false
		}
		name = decoded
	}
	return name, name != ""
}

func (h *EconomyHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := utils.ParseError(err)

	if appErr.StatusCode >= http.StatusInternalServerError {
		requestID, _ := middleware.GetRequestID(r)
		logger := utils.RequestLogger(requestID, r.Method, r.URL.Path)
		event := logger.Error().Err(err)
		if appErr.DevInfo != "" {
			event = event.Str("db_error", appErr.DevInfo)
		}
		event.Msg("Economy request failed")
	}

	utils.ErrorFromAppError(w, appErr, h.hideErrors)
}
