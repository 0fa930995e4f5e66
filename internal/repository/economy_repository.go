package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/yasinhessnawi1/voidnest-bridge/internal/constants"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/database"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/discovery"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/models"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/utils"
)

// ErrPlayerNotFound is returned when a lookup matches no row.
var ErrPlayerNotFound = errors.New("player not found")

// EconomyRepository reads the discovered economy table.
type EconomyRepository interface {
	Stats(ctx context.Context, schema discovery.Schema) (*models.GlobalStats, error)
	TopBalances(ctx context.Context, schema discovery.Schema, limit int) ([]models.LeaderboardEntry, error)
	FindPlayer(ctx context.Context, schema discovery.Schema, name string) (*models.Player, error)
}

// SQLEconomyRepository implements EconomyRepository on a single request session.
type SQLEconomyRepository struct {
	session *database.Session
	dialect database.Dialect
}

// NewEconomyRepository creates a repository bound to session.
func NewEconomyRepository(session *database.Session) EconomyRepository {
	return &SQLEconomyRepository{
		session: session,
		dialect: session.Dialect(),
	}
}

// Stats sums the balance column exactly and counts the rows.
func (r *SQLEconomyRepository) Stats(ctx context.Context, schema discovery.Schema) (*models.GlobalStats, error) {
	query := fmt.Sprintf(
		"SELECT SUM(%s), COUNT(*) FROM %s",
		database.CastDecimal(r.dialect, r.dialect.QuoteIdentifier(schema.BalanceColumn)),
		r.dialect.QuoteIdentifier(schema.Table),
	)

	// The sum is read as text so no float rounding happens before decimal parsing
	var total sql.NullString
	var count int64
	if err := r.session.QueryRow(ctx, query).Scan(&total, &count); err != nil {
		return nil, fmt.Errorf("failed to aggregate %s: %w", schema.Table, err)
	}

	sum := decimal.Zero
	if total.Valid && strings.TrimSpace(total.String) != "" {
		parsed, err := decimal.NewFromString(strings.TrimSpace(total.String))
		if err != nil {
			return nil, fmt.Errorf("failed to parse total balance %q: %w", total.String, err)
		}
		sum = parsed
	}

	return &models.GlobalStats{
		TotalBalance: sum.InexactFloat64(),
		AccountCount: count,
	}, nil
}

// TopBalances returns the richest limit players, ranked from 1.
func (r *SQLEconomyRepository) TopBalances(ctx context.Context, schema discovery.Schema, limit int) ([]models.LeaderboardEntry, error) {
	balanceCol := r.dialect.QuoteIdentifier(schema.BalanceColumn)
	query := fmt.Sprintf(
		"SELECT %s AS %s, %s AS %s FROM %s ORDER BY %s DESC LIMIT %d",
		r.dialect.QuoteIdentifier(schema.NameColumn), r.dialect.QuoteIdentifier(constants.ColumnAliasUsername),
		balanceCol, r.dialect.QuoteIdentifier(constants.ColumnAliasBalance),
		r.dialect.QuoteIdentifier(schema.Table),
		database.CastDecimal(r.dialect, balanceCol),
		limit,
	)

	rows, err := r.session.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard from %s: %w", schema.Table, err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var name, balance interface{}
		if err := rows.Scan(&name, &balance); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		players = append(players, models.Player{
			Username: stringValue(name),
			Balance:  balanceValue(balance),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leaderboard rows: %w", err)
	}

	return models.NewLeaderboard(players), nil
}

// FindPlayer looks a player up by name, ignoring case.
func (r *SQLEconomyRepository) FindPlayer(ctx context.Context, schema discovery.Schema, name string) (*models.Player, error) {
	query := fmt.Sprintf(
		"SELECT * FROM %s WHERE LOWER(%s) = LOWER(%s) LIMIT 1",
		r.dialect.QuoteIdentifier(schema.Table),
		r.dialect.QuoteIdentifier(schema.NameColumn),
		r.dialect.Placeholder(1),
	)

	rows, err := r.session.Query(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up player in %s: %w", schema.Table, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("error reading player row: %w", err)
		}
		return nil, ErrPlayerNotFound
	}

	row, err := database.ScanRowMap(rows)
	if err != nil {
		return nil, err
	}

	// Drivers may report column names in a different case than discovery saw
	nameValue, _ := utils.LookupFold(row, schema.NameColumn)
	balance, _ := utils.LookupFold(row, schema.BalanceColumn)

	return models.NewPlayer(stringValue(nameValue), balanceValue(balance)), nil
}

// stringValue renders a driver value as text.
func stringValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return fmt.Sprint(val)
	}
}

// balanceValue converts a driver value to float64 for transport. NULL and
// unparsable values count as zero.
func balanceValue(v interface{}) float64 {
	f, err := ParseBalance(v)
	if err != nil {
		log.Warn().Err(err).Msg("Unparsable balance, reporting 0")
		return 0
	}
	return f
}

// ParseBalance converts the numeric representations drivers return to float64.
func ParseBalance(v interface{}) (float64, error) {
	switch val := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case int32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case uint64:
		return float64(val), nil
	case []byte:
		return parseDecimalText(string(val))
	case string:
		return parseDecimalText(val)
	default:
		return 0, fmt.Errorf("unsupported balance type %T", v)
	}
}

func parseDecimalText(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid balance %q: %w", s, err)
	}
	return d.InexactFloat64(), nil
}
