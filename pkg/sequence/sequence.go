// Package sequence cycles through an ordered list of layout generators.
//
// A [Sequencer] is built once per session. Its list cannot change after
// construction; only the position moves, always forward and wrapping around
// at the end, so the animation never runs out of layouts.
package sequence

import (
	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/layout"
)

// Sequencer holds a fixed cyclic list of generators and a current position.
// It is not safe for concurrent use; the tween driver serializes access.
type Sequencer struct {
	gens []layout.Generator
	idx  int
}

// New returns a sequencer positioned at the first generator. The list is
// copied, so later changes to the caller's slice have no effect.
func New(gens ...layout.Generator) (*Sequencer, error) {
	if len(gens) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "layout sequence must not be empty")
	}
	for i, g := range gens {
		if g == nil {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "layout sequence entry %d is nil", i)
		}
	}
	return &Sequencer{gens: append([]layout.Generator(nil), gens...)}, nil
}

// Current returns the active generator.
func (s *Sequencer) Current() layout.Generator { return s.gens[s.idx] }

// Advance moves to the next generator, wrapping at the end, and returns it.
func (s *Sequencer) Advance() layout.Generator {
	s.idx = (s.idx + 1) % len(s.gens)
	return s.gens[s.idx]
}

// Len returns the number of entries in the cycle.
func (s *Sequencer) Len() int { return len(s.gens) }

// Index returns the current position.
func (s *Sequencer) Index() int { return s.idx }

// Names lists the generator names in cycle order.
func (s *Sequencer) Names() []string {
	names := make([]string, len(s.gens))
	for i, g := range s.gens {
		names[i] = g.Name()
	}
	return names
}
