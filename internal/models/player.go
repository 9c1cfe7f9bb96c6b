package models

// MoveType tags moves that were not caused directly by a die
type MoveType string

const (
	// MoveTypeLadder marks a jump along a ladder
	MoveTypeLadder MoveType = "Ladder"
)

// Player represents a token on the board
type Player struct {
	// ID is assigned at creation as roster size + 1
	ID int `json:"id"`

	// Name is the display name of the player
	Name string `json:"name"`

	// Position is the board cell the player occupies, 1-based
	Position int `json:"position"`

	// Color is the display color, fixed at creation
	Color string `json:"color"`

	// DiceRolls counts completed roll-and-move cycles
	DiceRolls int `json:"diceRolls"`

	// MovedSteps is the roll number currently being stepped out
	MovedSteps int `json:"movedSteps"`

	// MoveHistory lists moves in the order they happened
	MoveHistory []*Move `json:"moveHistory"`

	// Finished is set once the player reaches the last cell and never cleared
	Finished bool `json:"finished"`
}

// Move records one movement unit of a player
type Move struct {
	// From is the position before the move
	From int `json:"from"`

	// To is the position after the move
	To int `json:"to"`

	// Dice is the die value that caused the move, zero for ladder jumps
	Dice int `json:"dice,omitempty"`

	// MoveType is empty for ordinary dice moves
	MoveType MoveType `json:"moveType,omitempty"`

	// MoveNumber is the player's roll counter when the move was recorded
	MoveNumber int `json:"moveNumber"`
}

// IsLadder reports whether the move was a ladder jump
func (m *Move) IsLadder() bool {
	return m.MoveType == MoveTypeLadder
}

// Clone returns a deep copy of the player
func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}

	clone := *p
	clone.MoveHistory = make([]*Move, len(p.MoveHistory))
	for i, move := range p.MoveHistory {
		m := *move
		clone.MoveHistory[i] = &m
	}

	return &clone
}
