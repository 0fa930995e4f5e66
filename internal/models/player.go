package models

// Player is a single economy account as returned by the lookup endpoint.
type Player struct {
	Username string  `json:"username"`
	Balance  float64 `json:"balance"`
}

// NewPlayer creates a Player with the given name and balance.
func NewPlayer(username string, balance float64) *Player {
	return &Player{
		Username: username,
		Balance:  balance,
	}
}
