package engine

import (
	"fmt"
	"sync"

	"github.com/rpslab/rps-opponent-go/internal/game"
)

// State is the session lifecycle state.
type State string

const (
	// StateAwaitingNetwork rejects plays: no network has been attached yet.
	StateAwaitingNetwork State = "awaiting_network"
	// StateReady accepts plays indefinitely.
	StateReady State = "ready"
	// StateUnavailable is entered when the network fails mid-round; the
	// session keeps its history but accepts no further plays.
	StateUnavailable State = "unavailable"
)

// Session runs the per-round loop against one network instance: train on the
// finished round, encode, forward, select, record. Plays are serialized; the
// network never sees a forward pass before the preceding backward completed.
type Session struct {
	mu      sync.Mutex
	enc     Encoder
	pol     Policy
	rate    float64
	trainer *Trainer
	net     Network
	state   State

	probs        []float64
	history      []game.Round
	lastComputer game.Choice
	haveComputer bool
}

// NewSession creates a session in StateAwaitingNetwork. The caller attaches
// a network with Start; the session never constructs one itself.
func NewSession(enc Encoder, pol Policy, learningRate float64) *Session {
	return &Session{
		enc:   enc,
		pol:   pol,
		rate:  learningRate,
		state: StateAwaitingNetwork,
	}
}

// Start attaches the network and moves the session to StateReady. It issues
// one priming forward pass on an all-zero input so that the first round's
// backward call has a preceding forward, as the network contract requires.
func (s *Session) Start(net Network) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAwaitingNetwork {
		return fmt.Errorf("engine: session already started (state %s)", s.state)
	}

	probs, err := net.Forward(make([]float64, s.enc.Width()))
	if err != nil {
		return fmt.Errorf("engine: priming forward pass: %w", err)
	}
	s.net = net
	s.trainer = NewTrainer(net, s.rate)
	s.probs = probs
	s.state = StateReady
	return nil
}

// Result is the product of one play-action: the completed round, its
// position in the history, and the probability vector the computer's move
// was selected from.
type Result struct {
	Seq   int
	Round game.Round
	Probs []float64
}

// Play runs one round for the player's choice. On a network or policy
// failure nothing is appended to history and the session becomes
// unavailable.
func (s *Session) Play(player game.Choice) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateAwaitingNetwork:
		return Result{}, ErrNotReady
	case StateUnavailable:
		return Result{}, ErrUnavailable
	}
	if !player.Valid() {
		return Result{}, fmt.Errorf("engine: invalid choice %d", player)
	}

	// Train on the round the player just decided, before the forward pass
	// that picks the upcoming computer move.
	if err := s.trainer.Train(player); err != nil {
		s.state = StateUnavailable
		return Result{}, fmt.Errorf("%w: train: %v", ErrUnavailable, err)
	}

	input := s.enc.Encode(player, s.lastComputer, s.haveComputer)
	probs, err := s.net.Forward(input)
	if err != nil {
		s.state = StateUnavailable
		return Result{}, fmt.Errorf("%w: forward: %v", ErrUnavailable, err)
	}

	computer, err := s.pol.Select(probs)
	if err != nil {
		s.state = StateUnavailable
		return Result{}, fmt.Errorf("%w: select: %v", ErrUnavailable, err)
	}

	round := game.Round{Player: player, Computer: computer}
	s.history = append(s.history, round)
	s.probs = probs
	s.lastComputer = computer
	s.haveComputer = true

	out := make([]float64, len(probs))
	copy(out, probs)
	return Result{Seq: len(s.history) - 1, Round: round, Probs: out}, nil
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Probabilities returns a copy of the network's most recent output vector.
// Display-only; callers must not feed it back into the engine.
func (s *Session) Probabilities() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]float64, len(s.probs))
	copy(out, s.probs)
	return out
}

// History returns a copy of all completed rounds in play order.
func (s *Session) History() []game.Round {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]game.Round, len(s.history))
	copy(out, s.history)
	return out
}
