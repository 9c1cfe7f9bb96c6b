package dice

import (
	"math/rand"
	"sync"
	"time"
)

// DefaultSides is used when a roll asks for fewer than one side
const DefaultSides = 6

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/KirkDiggler/shoots/internal/dice Roller

// Roller provides dice rolling functionality
type Roller interface {
	// Roll returns a uniformly random value in [1, sides]
	Roll(sides int) int
}

// Config for dice roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

type roller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// New creates a new dice roller
func New(cfg *Config) Roller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &roller{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Roll generates a random dice roll with the specified number of sides.
// Safe for concurrent use; several games share one roller.
func (r *roller) Roll(sides int) int {
	if sides < 1 {
		sides = DefaultSides
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.random.Intn(sides) + 1
}
