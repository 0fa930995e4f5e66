package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/voidnest-bridge/internal/database"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/discovery"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/models"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/repository"
)

var xconomy = discovery.Schema{Table: "xconomy", NameColumn: "player", BalanceColumn: "balance"}

// setupEconomyRepositoryTest creates a repository on a mocked MySQL session
func setupEconomyRepositoryTest(t *testing.T) (repository.EconomyRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	session := database.NewSession(db, database.MySQLDialect{})
	repo := repository.NewEconomyRepository(session)

	return repo, mock, func() {
		session.Close()
	}
}

func TestEconomyRepository_Stats(t *testing.T) {
	statsQuery := regexp.QuoteMeta("SELECT SUM(CAST(`balance` AS DECIMAL(65,2))), COUNT(*) FROM `xconomy`")

	t.Run("Exact decimal sum", func(t *testing.T) {
		repo, mock, cleanup := setupEconomyRepositoryTest(t)
		defer cleanup()

		// Two rows of 10.005 summed by the server as DECIMAL
		mock.ExpectQuery(statsQuery).
			WillReturnRows(sqlmock.NewRows([]string{"SUM", "COUNT(*)"}).AddRow([]byte("20.01"), int64(2)))

		stats, err := repo.Stats(context.Background(), xconomy)

		require.NoError(t, err)
		assert.Equal(t, 20.01, stats.TotalBalance)
		assert.Equal(t, int64(2), stats.AccountCount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty table sums to zero", func(t *testing.T) {
		repo, mock, cleanup := setupEconomyRepositoryTest(t)
		defer cleanup()

		mock.ExpectQuery(statsQuery).
			WillReturnRows(sqlmock.NewRows([]string{"SUM", "COUNT(*)"}).AddRow(nil, int64(0)))

		stats, err := repo.Stats(context.Background(), xconomy)

		require.NoError(t, err)
		assert.Equal(t, 0.0, stats.TotalBalance)
		assert.Equal(t, int64(0), stats.AccountCount)
	})

	t.Run("Large totals keep their digits", func(t *testing.T) {
		repo, mock, cleanup := setupEconomyRepositoryTest(t)
		defer cleanup()

		mock.ExpectQuery(statsQuery).
			WillReturnRows(sqlmock.NewRows([]string{"SUM", "COUNT(*)"}).AddRow("123456789012.34", int64(9000)))

		stats, err := repo.Stats(context.Background(), xconomy)

		require.NoError(t, err)
		assert.Equal(t, 123456789012.34, stats.TotalBalance)
	})

	t.Run("Database error", func(t *testing.T) {
		repo, mock, cleanup := setupEconomyRepositoryTest(t)
		defer cleanup()

		mock.ExpectQuery(statsQuery).WillReturnError(errors.New("Lost connection to MySQL server"))

		_, err := repo.Stats(context.Background(), xconomy)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Lost connection")
	})
}

func TestEconomyRepository_TopBalances(t *testing.T) {
	leaderboardQuery := regexp.QuoteMeta(
		"SELECT `player` AS `username`, `balance` AS `balance` FROM `xconomy` " +
			"ORDER BY CAST(`balance` AS DECIMAL(65,2)) DESC LIMIT 5")

	t.Run("Ranks follow query order", func(t *testing.T) {
		repo, mock, cleanup := setupEconomyRepositoryTest(t)
		defer cleanup()

		mock.ExpectQuery(leaderboardQuery).
			WillReturnRows(sqlmock.NewRows([]string{"username", "balance"}).
				AddRow([]byte("Notch"), []byte("1000.00")).
				AddRow("Jeb", float64(999.5)).
				AddRow("Dinnerbone", int64(10)).
				AddRow(nil, nil))

		entries, err := repo.TopBalances(context.Background(), xconomy, 5)

		require.NoError(t, err)
		assert.Equal(t, []models.LeaderboardEntry{
			{Username: "Notch", Balance: 1000, Rank: 1},
			{Username: "Jeb", Balance: 999.5, Rank: 2},
			{Username: "Dinnerbone", Balance: 10, Rank: 3},
			{Username: "", Balance: 0, Rank: 4},
		}, entries)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty table gives empty slice", func(t *testing.T) {
		repo, mock, cleanup := setupEconomyRepositoryTest(t)
		defer cleanup()

		mock.ExpectQuery(leaderboardQuery).WillReturnRows(sqlmock.NewRows([]string{"username", "balance"}))

		entries, err := repo.TopBalances(context.Background(), xconomy, 5)

		require.NoError(t, err)
		assert.NotNil(t, entries)
		assert.Empty(t, entries)
	})

	t.Run("Database error", func(t *testing.T) {
		repo, mock, cleanup := setupEconomyRepositoryTest(t)
		defer cleanup()

		mock.ExpectQuery(leaderboardQuery).WillReturnError(errors.New("timeout"))

		_, err := repo.TopBalances(context.Background(), xconomy, 5)
		assert.Error(t, err)
	})
}

func TestEconomyRepository_FindPlayer(t *testing.T) {
	lookupQuery := regexp.QuoteMeta("SELECT * FROM `xconomy` WHERE LOWER(`player`) = LOWER(?) LIMIT 1")

	t.Run("Match with driver casing", func(t *testing.T) {
		repo, mock, cleanup := setupEconomyRepositoryTest(t)
		defer cleanup()

		mock.ExpectQuery(lookupQuery).
			WithArgs("STEVE").
			WillReturnRows(sqlmock.NewRows([]string{"UID", "Player", "Balance", "hidden"}).
				AddRow("uuid-1", []byte("steve"), []byte("42.50"), int64(0)))

		player, err := repo.FindPlayer(context.Background(), xconomy, "STEVE")

		require.NoError(t, err)
		assert.Equal(t, "steve", player.Username)
		assert.Equal(t, 42.5, player.Balance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No row", func(t *testing.T) {
		repo, mock, cleanup := setupEconomyRepositoryTest(t)
		defer cleanup()

		mock.ExpectQuery(lookupQuery).
			WithArgs("carol").
			WillReturnRows(sqlmock.NewRows([]string{"UID", "player", "balance"}))

		player, err := repo.FindPlayer(context.Background(), xconomy, "carol")

		assert.Nil(t, player)
		assert.ErrorIs(t, err, repository.ErrPlayerNotFound)
	})

	t.Run("Injection attempt is bound as data", func(t *testing.T) {
		repo, mock, cleanup := setupEconomyRepositoryTest(t)
		defer cleanup()

		payload := "x' OR '1'='1"
		mock.ExpectQuery(lookupQuery).
			WithArgs(payload).
			WillReturnRows(sqlmock.NewRows([]string{"player", "balance"}))

		_, err := repo.FindPlayer(context.Background(), xconomy, payload)
		assert.ErrorIs(t, err, repository.ErrPlayerNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		repo, mock, cleanup := setupEconomyRepositoryTest(t)
		defer cleanup()

		mock.ExpectQuery(lookupQuery).WithArgs("steve").WillReturnError(errors.New("deadlock"))

		_, err := repo.FindPlayer(context.Background(), xconomy, "steve")
		require.Error(t, err)
		assert.NotErrorIs(t, err, repository.ErrPlayerNotFound)
	})
}

func TestParseBalance(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		want    float64
		wantErr bool
	}{
		{name: "nil", input: nil, want: 0},
		{name: "bytes", input: []byte("1500.25"), want: 1500.25},
		{name: "string with spaces", input: " 7.5 ", want: 7.5},
		{name: "empty string", input: "", want: 0},
		{name: "int64", input: int64(300), want: 300},
		{name: "float64", input: 0.1, want: 0.1},
		{name: "exponent", input: "1.5e3", want: 1500},
		{name: "garbage", input: "lots", wantErr: true},
		{name: "unsupported type", input: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repository.ParseBalance(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestEconomyRepository_SQLite runs the queries against a real SQLite file.
func TestEconomyRepository_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "economy.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE accounts_v2 (player_uuid TEXT, amount REAL)`)
	require.NoError(t, err)
	for i, name := range []string{"alice", "bob", "carl", "dora", "eve", "finn"} {
		_, err = db.Exec(`INSERT INTO accounts_v2 VALUES (?, ?)`, name, float64(i*100)+0.5)
		require.NoError(t, err)
	}

	session := database.NewSession(db, database.SQLiteDialect{})
	repo := repository.NewEconomyRepository(session)
	schema := discovery.Schema{Table: "accounts_v2", NameColumn: "player_uuid", BalanceColumn: "amount"}
	ctx := context.Background()

	stats, err := repo.Stats(ctx, schema)
	require.NoError(t, err)
	assert.Equal(t, int64(6), stats.AccountCount)
	assert.Equal(t, 1503.0, stats.TotalBalance)

	entries, err := repo.TopBalances(ctx, schema, 5)
	require.NoError(t, err)
	require.Len(t, entries, 5)
	assert.Equal(t, "finn", entries[0].Username)
	assert.Equal(t, 500.5, entries[0].Balance)
	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
	}

	player, err := repo.FindPlayer(ctx, schema, "ALICE")
	require.NoError(t, err)
	assert.Equal(t, "alice", player.Username)
	assert.Equal(t, 0.5, player.Balance)
}
