package board

import (
	"fmt"

	"github.com/KirkDiggler/shoots/internal/dice"
	"github.com/KirkDiggler/shoots/internal/models"
)

// FirstPlayerColor is the color of the player every game starts with
const FirstPlayerColor = "red"

// MarkerKind describes how a cell relates to a ladder
type MarkerKind string

const (
	MarkerNone       MarkerKind = ""
	MarkerClimbStart MarkerKind = "climb_start"
	MarkerFallStart  MarkerKind = "fall_start"
	MarkerClimbEnd   MarkerKind = "climb_end"
	MarkerFallEnd    MarkerKind = "fall_end"
)

// Marker is the ladder decoration of a cell
type Marker struct {
	Kind   MarkerKind
	Symbol string
	Color  string
}

// Layout returns the cell numbers row by row, top row first. Rows run in
// boustrophedon order: the bottom row goes left to right starting at 1 and
// every row above reverses direction.
func (c Config) Layout() [][]int {
	rows := c.Rows()
	layout := make([][]int, rows)

	for row := 0; row < rows; row++ {
		fromBottom := rows - 1 - row
		cells := make([]int, c.RowLength)
		for col := 0; col < c.RowLength; col++ {
			if fromBottom%2 == 0 {
				cells[col] = fromBottom*c.RowLength + col + 1
			} else {
				cells[col] = fromBottom*c.RowLength + (c.RowLength - 1 - col) + 1
			}
		}
		layout[row] = cells
	}

	return layout
}

// MarkerFor picks the decoration of a cell. A ladder start wins over a
// ladder end when a cell is both.
func MarkerFor(ladders []*models.Ladder, position int) Marker {
	var startsHere, endsHere *models.Ladder
	for _, ladder := range ladders {
		if startsHere == nil && ladder.Start == position {
			startsHere = ladder
		}
		if endsHere == nil && ladder.End == position {
			endsHere = ladder
		}
	}

	switch {
	case startsHere != nil && startsHere.IsClimb():
		return Marker{Kind: MarkerClimbStart, Symbol: "↗", Color: "green"}
	case startsHere != nil:
		return Marker{Kind: MarkerFallStart, Symbol: "↘", Color: "red"}
	case endsHere != nil && endsHere.IsClimb():
		return Marker{Kind: MarkerClimbEnd, Symbol: "⤴", Color: "blue"}
	case endsHere != nil:
		return Marker{Kind: MarkerFallEnd, Symbol: "⤵", Color: "purple"}
	}

	return Marker{Kind: MarkerNone, Color: "black"}
}

// NewColor returns a fully saturated color with a random hue
func NewColor(roller dice.Roller) string {
	return fmt.Sprintf("hsl(%d, 100%%, 50%%)", roller.Roll(360)-1)
}
