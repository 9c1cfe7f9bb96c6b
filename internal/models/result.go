package models

import (
	"time"
)

// Result records a player crossing the finish line
type Result struct {
	// ID is the unique identifier for the result
	ID string `json:"id"`

	// GameID is the game the player finished in
	GameID string `json:"gameId"`

	// PlayerID is the roster ID of the player within the game
	PlayerID int `json:"playerId"`

	PlayerName string `json:"playerName"`
	Color      string `json:"color"`

	// DiceRolls is the number of rolls it took to finish
	DiceRolls int `json:"diceRolls"`

	// FinishedAt is when the round that finished the player settled
	FinishedAt time.Time `json:"finishedAt"`
}
