package panel

import (
	"context"
	"math/rand"
	"time"

	"github.com/keypanel/probe/internal/protocol"
)

// Generator plays synthetic panel traffic: button taps, chords held across
// ticks and dial sweeps.
type Generator struct {
	out      Sender
	interval time.Duration
	rng      *rand.Rand
	queue    []protocol.Event
}

func NewGenerator(out Sender, interval time.Duration, seed int64) *Generator {
	return &Generator{
		out:      out,
		interval: interval,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Start sends one event per interval until ctx ends or a send fails.
func (g *Generator) Start(ctx context.Context) error {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := g.out.Send(g.Next()); err != nil {
				return err
			}
		}
	}
}

// Next returns the next event, refilling the queue with a new pattern when
// it runs dry.
func (g *Generator) Next() protocol.Event {
	if len(g.queue) == 0 {
		g.queue = g.pattern()
	}
	ev := g.queue[0]
	g.queue = g.queue[1:]
	return ev
}

func (g *Generator) pattern() []protocol.Event {
	switch g.rng.Intn(3) {
	case 0: // tap
		b := protocol.Button(g.rng.Intn(protocol.NumButtons))
		return []protocol.Event{protocol.Press(b), protocol.Release(b)}

	case 1: // chord
		n := 2 + g.rng.Intn(2)
		seen := make(map[protocol.Button]bool)
		var held []protocol.Button
		for len(held) < n {
			b := protocol.Button(g.rng.Intn(int(protocol.ButtonMod)))
			if seen[b] {
				continue
			}
			seen[b] = true
			held = append(held, b)
		}
		evs := make([]protocol.Event, 0, 2*n)
		for _, b := range held {
			evs = append(evs, protocol.Press(b))
		}
		for i := len(held) - 1; i >= 0; i-- {
			evs = append(evs, protocol.Release(held[i]))
		}
		return evs

	default: // sweep
		dir := protocol.Left
		if g.rng.Intn(2) == 0 {
			dir = protocol.Right
		}
		steps := 3 + g.rng.Intn(6)
		evs := make([]protocol.Event, steps)
		for i := range evs {
			evs[i] = protocol.Dial(dir)
		}
		return evs
	}
}
