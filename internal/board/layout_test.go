package board

import (
	"testing"

	"github.com/KirkDiggler/shoots/internal/dice"
	"github.com/KirkDiggler/shoots/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "default", cfg: DefaultConfig()},
		{name: "narrow rows", cfg: Config{Size: 100, RowLength: 5}},
		{name: "uneven rows", cfg: Config{Size: 100, RowLength: 7}, wantErr: true},
		{name: "zero row length", cfg: Config{Size: 100}, wantErr: true},
		{name: "too small", cfg: Config{Size: 2, RowLength: 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBoard)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLayoutIsSerpentine(t *testing.T) {
	layout := DefaultConfig().Layout()

	require.Len(t, layout, 10)
	assert.Equal(t, []int{100, 99, 98, 97, 96, 95, 94, 93, 92, 91}, layout[0])
	assert.Equal(t, []int{81, 82, 83, 84, 85, 86, 87, 88, 89, 90}, layout[1])
	assert.Equal(t, []int{20, 19, 18, 17, 16, 15, 14, 13, 12, 11}, layout[8])
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, layout[9])
}

func TestLayoutSmallBoard(t *testing.T) {
	layout := Config{Size: 6, RowLength: 2}.Layout()

	assert.Equal(t, [][]int{{5, 6}, {4, 3}, {1, 2}}, layout)
}

func TestMarkerFor(t *testing.T) {
	ladders := []*models.Ladder{
		{Start: 60, End: 20},
		{Start: 20, End: 45},
		{Start: 8, End: 31},
	}

	assert.Equal(t, MarkerClimbStart, MarkerFor(ladders, 8).Kind)
	assert.Equal(t, "↗", MarkerFor(ladders, 8).Symbol)
	assert.Equal(t, MarkerFallStart, MarkerFor(ladders, 60).Kind)
	assert.Equal(t, MarkerClimbEnd, MarkerFor(ladders, 31).Kind)
	assert.Equal(t, MarkerClimbEnd, MarkerFor(ladders, 45).Kind)
	// 20 is both a start and an end; the start wins
	assert.Equal(t, MarkerClimbStart, MarkerFor(ladders, 20).Kind)
	assert.Equal(t, MarkerNone, MarkerFor(ladders, 2).Kind)
	assert.Equal(t, "", MarkerFor(ladders, 2).Symbol)
}

func TestMarkerForFallEnd(t *testing.T) {
	ladders := []*models.Ladder{{Start: 60, End: 20}}

	marker := MarkerFor(ladders, 20)
	assert.Equal(t, MarkerFallEnd, marker.Kind)
	assert.Equal(t, "⤵", marker.Symbol)
	assert.Equal(t, "purple", marker.Color)
}

func TestNewColor(t *testing.T) {
	roller := dice.New(&dice.Config{Seed: 3})
	for i := 0; i < 20; i++ {
		assert.Regexp(t, `^hsl\(\d{1,3}, 100%, 50%\)$`, NewColor(roller))
	}
}
