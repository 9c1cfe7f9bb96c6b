// Package board holds the geometry of the playing field: its size, the
// serpentine row layout used for display, and the ladders linking cells.
package board

import (
	"errors"
	"fmt"
)

const (
	// DefaultSize is the number of cells on a standard board
	DefaultSize = 100

	// DefaultRowLength is the number of cells per displayed row
	DefaultRowLength = 10

	// StartPosition is where every player enters the board
	StartPosition = 1
)

// ErrInvalidBoard is returned when board dimensions cannot be laid out
var ErrInvalidBoard = errors.New("invalid board")

// Config describes the board dimensions
type Config struct {
	// Size is the number of cells, the last one being the finish
	Size int

	// RowLength is the width of a displayed row; it must divide Size
	RowLength int
}

// DefaultConfig returns the standard 10x10 board
func DefaultConfig() Config {
	return Config{
		Size:      DefaultSize,
		RowLength: DefaultRowLength,
	}
}

// Validate checks that the board can hold ladders and be laid out in rows
func (c Config) Validate() error {
	// ladders need at least two interior cells
	if c.Size < 4 {
		return fmt.Errorf("%w: size %d is too small", ErrInvalidBoard, c.Size)
	}

	if c.RowLength < 1 {
		return fmt.Errorf("%w: row length %d must be positive", ErrInvalidBoard, c.RowLength)
	}

	if c.Size%c.RowLength != 0 {
		return fmt.Errorf("%w: row length %d does not divide size %d", ErrInvalidBoard, c.RowLength, c.Size)
	}

	return nil
}

// Rows returns the number of displayed rows
func (c Config) Rows() int {
	return c.Size / c.RowLength
}

// Finish returns the last cell of the board
func (c Config) Finish() int {
	return c.Size
}
