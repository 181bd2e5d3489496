package engine

import (
	"fmt"
	"math"

	"github.com/rpslab/rps-opponent-go/internal/game"
)

// Policy turns a network score vector into a concrete move.
type Policy interface {
	Select(probs []float64) (game.Choice, error)
}

// checkVector rejects vectors the policies must not act on: too short,
// non-finite entries. Silently defaulting to rock would mask a broken
// network.
func checkVector(probs []float64) error {
	if len(probs) < game.NumChoices {
		return fmt.Errorf("%w: got %d entries, need %d", ErrMalformedOutput, len(probs), game.NumChoices)
	}
	for i, p := range probs[:game.NumChoices] {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf("%w: entry %d is %v", ErrMalformedOutput, i, p)
		}
	}
	return nil
}

// GreedyPolicy picks the highest-scored move. Ties go to the lowest index:
// a later move only wins on strict improvement, so rock beats any tie and
// paper beats scissors on a tie between the two. Given the same vector it
// always returns the same move.
type GreedyPolicy struct{}

func (GreedyPolicy) Select(probs []float64) (game.Choice, error) {
	if err := checkVector(probs); err != nil {
		return 0, err
	}
	best := 0
	for i := 1; i < game.NumChoices; i++ {
		if probs[i] > probs[best] {
			best = i
		}
	}
	return game.Choice(best), nil
}

// SamplingPolicy draws a move weighted by score mass, using a single uniform
// draw from Rand. The vector need not be normalized. It must be chosen
// explicitly; the engine never mixes it with the greedy rule.
type SamplingPolicy struct {
	// Rand returns a uniform draw in [0,1).
	Rand func() float64
}

func (p SamplingPolicy) Select(probs []float64) (game.Choice, error) {
	if err := checkVector(probs); err != nil {
		return 0, err
	}
	total := 0.0
	for _, v := range probs[:game.NumChoices] {
		if v < 0 {
			return 0, fmt.Errorf("%w: negative mass %v", ErrMalformedOutput, v)
		}
		total += v
	}
	if total <= 0 {
		return 0, fmt.Errorf("%w: zero total mass", ErrMalformedOutput)
	}

	target := p.Rand() * total
	acc := 0.0
	for i := 0; i < game.NumChoices; i++ {
		acc += probs[i]
		if target < acc {
			return game.Choice(i), nil
		}
	}
	// Rounding left target at or past the final boundary.
	return game.Scissors, nil
}

// Policy names, as stored and accepted over the API.
const (
	PolicyGreedy   = "greedy"
	PolicySampling = "sampling"
)

// NewPolicy returns the policy for a name. The sampling policy draws from
// rand, which must not be nil when the name is "sampling".
func NewPolicy(name string, rand func() float64) (Policy, error) {
	switch name {
	case "", PolicyGreedy:
		return GreedyPolicy{}, nil
	case PolicySampling:
		if rand == nil {
			return nil, fmt.Errorf("engine: sampling policy requires a random source")
		}
		return SamplingPolicy{Rand: rand}, nil
	}
	return nil, fmt.Errorf("engine: unknown policy %q", name)
}
