package game

import (
	"context"
	"log"

	"github.com/KirkDiggler/shoots/internal/common/clock"
)

// automaticPlayer is a running automatic mode loop
type automaticPlayer struct {
	cancel context.CancelFunc

	// done is closed once the loop has exited
	done chan struct{}
}

// setAutomatic starts or stops the automatic mode loop and reports whether
// the mode changed. Stopping does not wait for a round in progress.
func (s *session) setAutomatic(enabled bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if enabled == (s.automatic != nil) {
		return false
	}

	if !enabled {
		s.automatic.cancel()
		s.automatic = nil
		s.updatedAt = s.svc.clock.Now()
		return true
	}

	ctx, cancel := context.WithCancel(context.Background())
	auto := &automaticPlayer{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	ticker := s.svc.clock.NewTicker(s.svc.automaticInterval)

	s.automatic = auto
	s.updatedAt = s.svc.clock.Now()

	go s.runAutomatic(ctx, ticker, auto.done)

	return true
}

// runAutomatic starts a round on every tick on which the previous round
// has settled
func (s *session) runAutomatic(ctx context.Context, ticker clock.Ticker, done chan<- struct{}) {
	defer close(done)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			if ctx.Err() != nil {
				return
			}

			if !s.settled() {
				log.Printf("Game %s: round still in progress, waiting for the next tick", s.id)
				continue
			}

			// a round started here completes even if automatic mode is turned off
			s.playRound(context.WithoutCancel(ctx))
		}
	}
}
