package board

import (
	"log"
	"sort"

	"github.com/KirkDiggler/shoots/internal/dice"
	"github.com/KirkDiggler/shoots/internal/models"
)

const (
	// MaxLadders is the number of ladder candidates drawn per board
	MaxLadders = 15

	// MaxPositionAttempts bounds the draws for a single ladder endpoint
	MaxPositionAttempts = 20

	// noPosition is returned when no free endpoint was found
	noPosition = -1
)

// GenerateLadders draws up to MaxLadders ladders for the board.
//
// Endpoints never sit on the first or last cell, no two ladders share a
// start and no two share an end. A cell may still be the start of one
// ladder and the end of another. Candidates that cannot be placed are
// skipped, so fewer than MaxLadders may be returned. The result is sorted
// by descending start.
func GenerateLadders(roller dice.Roller, cfg Config) []*models.Ladder {
	ladders := make([]*models.Ladder, 0, MaxLadders)
	starts := make(map[int]bool)
	ends := make(map[int]bool)

	for i := 0; i < MaxLadders; i++ {
		start := drawFreePosition(roller, cfg.Size, starts)
		end := drawFreePosition(roller, cfg.Size, ends)

		if start == noPosition || end == noPosition || start == end {
			continue
		}

		starts[start] = true
		ends[end] = true
		ladders = append(ladders, &models.Ladder{Start: start, End: end})
	}

	sort.Slice(ladders, func(i, j int) bool {
		return ladders[i].Start > ladders[j].Start
	})

	return ladders
}

func drawFreePosition(roller dice.Roller, size int, used map[int]bool) int {
	for attempt := 0; attempt < MaxPositionAttempts; attempt++ {
		value := roller.Roll(size)
		if value != StartPosition && value != size && !used[value] {
			return value
		}
	}

	log.Printf("Failed to find a free ladder position after %d attempts", MaxPositionAttempts)
	return noPosition
}

// LadderIndex returns the index of the first ladder touching position,
// or -1. Renderers use it to give both ends of a ladder the same color.
func LadderIndex(ladders []*models.Ladder, position int) int {
	for i, ladder := range ladders {
		if ladder.Start == position || ladder.End == position {
			return i
		}
	}
	return -1
}
