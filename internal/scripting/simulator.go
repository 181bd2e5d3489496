package scripting

import (
	"context"
	"fmt"

	"github.com/rpslab/rps-opponent-go/internal/engine"
)

// Report is the result of a finished simulation.
type Report struct {
	Rounds     int        `json:"rounds"`
	Stats      Statistics `json:"stats"`
	Rates      Rates      `json:"rates"`
	FinalProbs []float64  `json:"finalProbs"`
	Logs       []LogEntry `json:"logs,omitempty"`
}

// Simulator plays a scripted strategy against a session for a fixed number
// of rounds.
type Simulator struct {
	vm      *VM
	session *engine.Session
}

// NewSimulator compiles the strategy source against a ready session.
func NewSimulator(source string, session *engine.Session) (*Simulator, error) {
	vm := NewVM()
	if err := vm.Execute(source); err != nil {
		return nil, err
	}
	return &Simulator{vm: vm, session: session}, nil
}

// Run plays rounds until the count is reached or ctx is done. The session's
// history keeps growing across calls; the report covers only this run.
func (s *Simulator) Run(ctx context.Context, rounds int) (Report, error) {
	if rounds <= 0 {
		return Report{}, fmt.Errorf("scripting: round count %d must be positive", rounds)
	}

	var stats Statistics
	state := PickState{LastPlayer: -1, LastComputer: -1}

	for i := 0; i < rounds; i++ {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}

		state.Round = i + 1
		choice, err := s.vm.Pick(state)
		if err != nil {
			return Report{}, fmt.Errorf("round %d: %w", i+1, err)
		}

		res, err := s.session.Play(choice)
		if err != nil {
			return Report{}, fmt.Errorf("round %d: %w", i+1, err)
		}
		stats.Record(res.Round)

		state.LastPlayer = int(res.Round.Player)
		state.LastComputer = int(res.Round.Computer)
		state.LastOutcome = res.Round.Outcome().String()
		state.Wins = stats.PlayerWins
		state.Losses = stats.ComputerWins
		state.Draws = stats.Draws
	}

	return Report{
		Rounds:     stats.Rounds,
		Stats:      stats,
		Rates:      stats.Rates(),
		FinalProbs: s.session.Probabilities(),
		Logs:       s.vm.Logs(),
	}, nil
}
