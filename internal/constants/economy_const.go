// Package constants provides shared constant values used throughout the application.
//
// The economy_const.go file holds the default naming conventions used to recognise an
// economy table without any schema configuration.
package constants

// LeaderboardSize is the number of entries returned by the leaderboard endpoint.
const LeaderboardSize = 5

// DefaultNameColumns lists the column names accepted as the player identifier,
// highest priority first.
var DefaultNameColumns = []string{"username", "player_name", "name", "player_uuid", "uuid", "player"}

// DefaultBalanceColumns lists the column names accepted as the balance,
// highest priority first.
var DefaultBalanceColumns = []string{"balance", "money", "coins", "amount", "val", "balance_value"}

// DefaultTableKeywords lists the substrings that make a table worth inspecting.
var DefaultTableKeywords = []string{"account", "coin", "eco", "money", "user", "player", "balance", "data"}

// Column aliases used by the leaderboard query.
const (
	ColumnAliasUsername = "username"
	ColumnAliasBalance  = "balance"
)
