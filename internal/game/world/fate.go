package world

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/stoneandsaber/internal/game/dice"
)

// Event is something fate may make happen to a world.
type Event struct {
	Name string
	// Probability is in [0, 1]; 1 fires every generation.
	Probability float64
	Apply       func(*World) error
}

// Fate plays a world for a number of generations. Each generation draws one
// value p in [0, 1) and fires, in registration order, every event whose
// probability exceeds p.
type Fate struct {
	world    *World
	events   []Event
	logger   *zap.Logger
	interval time.Duration
}

// NewFate creates a Fate with no events.
//
// Precondition: w and logger must not be nil.
func NewFate(w *World, logger *zap.Logger) *Fate {
	return &Fate{world: w, logger: logger}
}

// WithInterval paces generations: Run waits d between two generations.
func (f *Fate) WithInterval(d time.Duration) *Fate {
	f.interval = d
	return f
}

// AddEvent registers an event.
//
// Precondition: e.Apply must not be nil.
// Postcondition: returns an error if e.Probability is outside [0, 1].
func (f *Fate) AddEvent(e Event) error {
	if e.Probability < 0 || e.Probability > 1 {
		return fmt.Errorf("fate: event %q probability must be in [0, 1], got %g", e.Name, e.Probability)
	}
	if e.Apply == nil {
		return fmt.Errorf("fate: event %q has no action", e.Name)
	}
	f.events = append(f.events, e)
	return nil
}

// Events returns the registered events in order.
func (f *Fate) Events() []Event {
	out := make([]Event, len(f.events))
	copy(out, f.events)
	return out
}

// Run plays generations generations. An event that fails or panics is logged
// and does not stop the run.
//
// Precondition: generations >= 0.
// Postcondition: returns ctx.Err() when cancelled before the last generation, nil otherwise.
func (f *Fate) Run(ctx context.Context, generations int) error {
	var ticker *time.Ticker
	if f.interval > 0 {
		ticker = time.NewTicker(f.interval)
		defer ticker.Stop()
	}
	for g := 1; g <= generations; g++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		f.world.generation = g
		p := dice.Probability(f.world.src)
		for _, e := range f.events {
			if p < e.Probability {
				f.apply(e)
			}
		}
		if ticker != nil && g < generations {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}
	}
	f.logger.Info("generation is over",
		zap.Int("generations", generations),
		zap.Int("survivors", f.world.People.Len()),
	)
	return nil
}

func (f *Fate) apply(e Event) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Error("fate event panicked",
				zap.String("event", e.Name),
				zap.Int("generation", f.world.generation),
				zap.Any("panic", r),
			)
		}
	}()
	if err := e.Apply(f.world); err != nil {
		f.logger.Error("fate event failed",
			zap.String("event", e.Name),
			zap.Int("generation", f.world.generation),
			zap.Error(err),
		)
	}
}
