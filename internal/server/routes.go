// Package server provides the HTTP server of the bridge.
// It handles routing, middleware configuration, and server lifecycle management.
//
// All economy routes are read-only GET endpoints open to any origin: the
// dashboard is a static page served from another host.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/yasinhessnawi1/voidnest-bridge/internal/constants"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/middleware"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/utils"
)

// SetupRoutes configures the routes for the application.
//
// The configured routes include:
// - Health check and version endpoints
// - Route self-description
// - Economy endpoints (stats, leaderboard, player lookup, advice)
func (s *Server) SetupRoutes() {
	r := chi.NewRouter()

	// CORS first so preflight requests are answered before anything else runs
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.Config.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", constants.HeaderContentType, constants.HeaderXRequestID},
		ExposedHeaders: []string{constants.HeaderXRequestID, constants.HeaderRetryAfter},
		MaxAge:         constants.CORSMaxAge,
	}))

	// Base middleware
	r.Use(middleware.RequestID())
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Recovery())
	r.Use(middleware.SecurityHeaders())
	if s.rateLimiter != nil {
		r.Use(middleware.RateLimit(s.rateLimiter))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.NotFound(w, constants.MsgPlayerNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.Error(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})

	// Service routes
	r.Group(func(r chi.Router) {
		r.Get(constants.HealthPath, s.Handlers.SystemHandler.Health)
		r.Get(constants.VersionPath, s.Handlers.SystemHandler.Version)
		r.Get(constants.RoutesPath, s.GetAPIRoutes)
	})

	// Economy routes
	r.Group(func(r chi.Router) {
		r.Get(constants.StatsPath, s.Handlers.EconomyHandler.GetStats)
		r.Get(constants.LeaderboardPath, s.Handlers.EconomyHandler.GetLeaderboard)
		r.Route(constants.PlayerRoutePrefix, func(r chi.Router) {
			r.Get("/{"+constants.ParamPlayerName+"}", s.Handlers.EconomyHandler.GetPlayer)
			r.Get("/{"+constants.ParamPlayerName+"}/advice", s.Handlers.EconomyHandler.GetPlayerAdvice)
		})
	})

	s.router = r
}

// GetRouter returns the configured router
func (s *Server) GetRouter() chi.Router {
	return s.router
}

// GetAPIRoutes returns documentation of all API routes.
func (s *Server) GetAPIRoutes(w http.ResponseWriter, r *http.Request) {
	routes := map[string]interface{}{}

	routes["economy"] = map[string]interface{}{
		"GET " + constants.StatsPath: map[string]interface{}{
			"description": "Total balance and number of accounts of the economy table",
			"response": map[string]interface{}{
				"totalBalance": 350.5,
				"accountCount": 2,
			},
			"not_found": "404 text/plain \"" + constants.MsgNoEconomyTable + "\" when no economy table is found",
		},
		"GET " + constants.LeaderboardPath: map[string]interface{}{
			"description": "The richest players, highest balance first",
			"response": []map[string]interface{}{
				{"username": "bob", "balance": 250.0, "rank": 1},
				{"username": "alice", "balance": 100.5, "rank": 2},
			},
			"limit": constants.LeaderboardSize,
		},
		"GET " + constants.PlayerPath: map[string]interface{}{
			"description": "Balance of a single player, name matched ignoring case",
			"path_params": map[string]string{
				constants.ParamPlayerName: "Player name",
			},
			"response": map[string]interface{}{
				"username": "alice",
				"balance":  100.5,
			},
			"not_found": "404 text/plain \"" + constants.MsgPlayerNotFound + "\"",
		},
		"GET " + constants.PlayerAdvicePath: map[string]interface{}{
			"description": "Player balance with generated money-making tips",
			"path_params": map[string]string{
				constants.ParamPlayerName: "Player name",
			},
			"response": map[string]interface{}{
				"username": "alice",
				"balance":  100.5,
				"advice":   "string - Generated tips",
			},
			"not_found": "404 text/plain \"" + constants.MsgPlayerNotFound + "\"",
		},
	}

	routes["errors"] = map[string]interface{}{
		"500": map[string]string{"error": "string - Database error message"},
		"429": map[string]string{"error": constants.MsgRateLimited},
	}

	routes["system"] = map[string]interface{}{
		"GET " + constants.HealthPath: map[string]interface{}{
			"description": "Opens a database connection and reports the result",
			"response": map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"status":  "healthy",
					"version": s.Config.App.Version,
				},
			},
		},
		"GET " + constants.VersionPath: map[string]interface{}{
			"description": "Build information",
			"response": map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"version":     s.Config.App.Version,
					"environment": s.Config.App.Environment,
				},
			},
		},
		"GET " + constants.RoutesPath: map[string]interface{}{
			"description": "This route listing",
		},
	}

	utils.JSON(w, http.StatusOK, routes)
}
