// Package engine is the adaptive opponent's decision core: it encodes game
// history for the network, trains the network after every round, and turns
// the network's output vector into a move.
package engine

import "errors"

// Network is the trainable function the engine plays against the human with.
// The engine owns ordering (one Backward, then one Forward, per round) but is
// otherwise oblivious to what lies behind the interface.
type Network interface {
	// Forward consumes one encoded input and returns a fresh score vector,
	// one entry per move. The vector is not assumed to be normalized.
	Forward(input []float64) ([]float64, error)
	// Backward applies one training step toward target, based on the most
	// recent forward pass.
	Backward(target int, rate float64) error
}

// Sentinel conditions surfaced by the session.
var (
	// ErrNotReady is returned when a play is submitted before a network has
	// been attached.
	ErrNotReady = errors.New("engine: network not ready")
	// ErrMalformedOutput is returned when the network produced a vector the
	// selection policy cannot use.
	ErrMalformedOutput = errors.New("engine: malformed network output")
	// ErrUnavailable is returned for plays submitted after the network has
	// failed; the session no longer accepts rounds.
	ErrUnavailable = errors.New("engine: opponent unavailable")
)
