package models

import (
	"time"
)

// Ladder links two cells. It climbs when End > Start and falls otherwise.
type Ladder struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// IsClimb reports whether the ladder moves a player forward
func (l *Ladder) IsClimb() bool {
	return l.End > l.Start
}

// Game is a read-only snapshot of a game session
type Game struct {
	// ID is the unique identifier for the game
	ID string `json:"id"`

	// ChannelID is the chat channel the game is played in, if any
	ChannelID string `json:"channelId,omitempty"`

	// MessageID is the chat message displaying the board
	MessageID string `json:"messageId,omitempty"`

	// BoardSize is the number of cells; the last cell is the finish
	BoardSize int `json:"boardSize"`

	// RowLength is the number of cells per displayed row
	RowLength int `json:"rowLength"`

	// Players in roster order
	Players []*Player `json:"players"`

	// Ladders sorted by descending start
	Ladders []*Ladder `json:"ladders"`

	// DiceFace is the last revealed die value, zero before the first roll
	DiceFace int `json:"diceFace"`

	// IsRolling is true while the die animation is playing
	IsRolling bool `json:"isRolling"`

	// RoundActive is true between the start and settlement of a round
	RoundActive bool `json:"roundActive"`

	// AutomaticMode is true while rounds are being triggered on a timer
	AutomaticMode bool `json:"automaticMode"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ActivePlayers returns players that have not finished, in roster order
func (g *Game) ActivePlayers() []*Player {
	var players []*Player
	for _, p := range g.Players {
		if !p.Finished {
			players = append(players, p)
		}
	}
	return players
}

// FinishedPlayers returns players that reached the last cell, in roster order
func (g *Game) FinishedPlayers() []*Player {
	var players []*Player
	for _, p := range g.Players {
		if p.Finished {
			players = append(players, p)
		}
	}
	return players
}

// GetPlayer finds a player by ID
func (g *Game) GetPlayer(id int) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}
