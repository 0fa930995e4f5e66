// Package handlers provides HTTP request handlers for the bridge API.
package handlers

import (
	"context"

	"github.com/yasinhessnawi1/voidnest-bridge/internal/models"
)

// EconomyServiceInterface defines methods required from the economy service.
// Errors are expected as *utils.AppError; anything else is treated as a server error.
type EconomyServiceInterface interface {
	// Stats returns the total balance and account count.
	Stats(ctx context.Context) (*models.GlobalStats, error)

	// Leaderboard returns the richest players, never nil.
	Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)

	// Player looks a player up by name, ignoring case.
	Player(ctx context.Context, name string) (*models.Player, error)

	// Advice looks a player up and attaches generated tips.
	Advice(ctx context.Context, name string) (*models.Advice, error)
}

// HealthChecker verifies the database can be reached.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
