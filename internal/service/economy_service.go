// Package service provides the business logic of the bridge.
//
// Every operation opens its own database session, discovers the economy table on it,
// runs its query and closes the session before returning, whatever the outcome.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/yasinhessnawi1/voidnest-bridge/internal/advisor"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/constants"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/database"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/discovery"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/models"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/repository"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/utils"
)

// EconomyService answers the dashboard queries.
type EconomyService struct {
	connector      database.Connector
	candidates     discovery.Candidates
	advisor        advisor.Advisor
	advisorTimeout time.Duration

	// newRepository is replaced in tests
	newRepository func(session *database.Session) repository.EconomyRepository
}

// NewEconomyService creates a new EconomyService.
//
// Parameters:
//   - connector: Opens one session per operation
//   - candidates: Name, balance and keyword lists used by discovery
//   - adv: Advice generator, nil disables advice
//   - advisorTimeout: Upper bound for a single advice request
func NewEconomyService(
	connector database.Connector,
	candidates discovery.Candidates,
	adv advisor.Advisor,
	advisorTimeout time.Duration,
) *EconomyService {
	if adv == nil {
		adv = advisor.NoopAdvisor{}
	}
	return &EconomyService{
		connector:      connector,
		candidates:     candidates,
		advisor:        adv,
		advisorTimeout: advisorTimeout,
		newRepository:  repository.NewEconomyRepository,
	}
}

// withSchema opens a session, discovers the economy table and runs fn.
// The session is closed once fn returns.
func (s *EconomyService) withSchema(
	ctx context.Context,
	fn func(repo repository.EconomyRepository, schema discovery.Schema) error,
) error {
	session, err := s.connector.Connect(ctx)
	if err != nil {
		return err
	}
	defer session.Close()

	schema, err := discovery.Discover(ctx, session, s.candidates)
	if err != nil {
		return err
	}

	return fn(s.newRepository(session), schema)
}

// Stats returns the total balance and account count of the economy table.
func (s *EconomyService) Stats(ctx context.Context) (*models.GlobalStats, error) {
	var stats *models.GlobalStats
	err := s.withSchema(ctx, func(repo repository.EconomyRepository, schema discovery.Schema) error {
		var err error
		stats, err = repo.Stats(ctx, schema)
		return err
	})
	if err != nil {
		return nil, mapError(err, constants.MsgNoEconomyTable)
	}
	return stats, nil
}

// Leaderboard returns the richest players. Without an economy table it is empty.
func (s *EconomyService) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	entries := []models.LeaderboardEntry{}
	err := s.withSchema(ctx, func(repo repository.EconomyRepository, schema discovery.Schema) error {
		top, err := repo.TopBalances(ctx, schema, constants.LeaderboardSize)
		if err != nil {
			return err
		}
		if top != nil {
			entries = top
		}
		return nil
	})
	if err != nil {
		mapped := mapError(err, constants.MsgNoEconomyTable)
		if utils.IsNotFoundError(mapped) {
			return []models.LeaderboardEntry{}, nil
		}
		return nil, mapped
	}
	return entries, nil
}

// Player looks a player up by name, ignoring case.
func (s *EconomyService) Player(ctx context.Context, name string) (*models.Player, error) {
	// An unusable name can never match a row
	if err := utils.ValidatePlayerName(name); err != nil {
		return nil, utils.NewNotFoundError(constants.MsgPlayerNotFound, err)
	}

	var player *models.Player
	err := s.withSchema(ctx, func(repo repository.EconomyRepository, schema discovery.Schema) error {
		var err error
		player, err = repo.FindPlayer(ctx, schema, name)
		return err
	})
	if err != nil {
		return nil, mapError(err, constants.MsgPlayerNotFound)
	}
	return player, nil
}

// Advice looks the player up and asks the advisor for tips.
// The database session is released before the advisor is called.
func (s *EconomyService) Advice(ctx context.Context, name string) (*models.Advice, error) {
	player, err := s.Player(ctx, name)
	if err != nil {
		return nil, err
	}

	return &models.Advice{
		Username: player.Username,
		Balance:  player.Balance,
		Advice:   advisor.Generate(ctx, s.advisor, *player, s.advisorTimeout),
	}, nil
}

// mapError turns repository and discovery errors into AppErrors. Anything that is
// not a known miss is a server error carrying the driver message.
func mapError(err error, notFoundMessage string) error {
	var appErr *utils.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, discovery.ErrSchemaNotFound), errors.Is(err, repository.ErrPlayerNotFound):
		return utils.NewNotFoundError(notFoundMessage, err)
	default:
		return utils.NewDatabaseError(err)
	}
}
