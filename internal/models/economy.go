// Package models holds the JSON documents served by the bridge.
package models

// GlobalStats aggregates the whole economy table.
type GlobalStats struct {
	TotalBalance float64 `json:"totalBalance"`
	AccountCount int64   `json:"accountCount"`
}

// LeaderboardEntry is one row of the richest-players list. Rank starts at 1.
type LeaderboardEntry struct {
	Username string  `json:"username"`
	Balance  float64 `json:"balance"`
	Rank     int     `json:"rank"`
}

// NewLeaderboard numbers the players in the order given.
func NewLeaderboard(players []Player) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(players))
	for i, p := range players {
		entries = append(entries, LeaderboardEntry{
			Username: p.Username,
			Balance:  p.Balance,
			Rank:     i + 1,
		})
	}
	return entries
}

// Advice is the advisor's answer for a single player.
type Advice struct {
	Username string  `json:"username"`
	Balance  float64 `json:"balance"`
	Advice   string  `json:"advice"`
}
