package engine

import (
	"testing"

	"github.com/rpslab/rps-opponent-go/internal/game"
)

func TestTrainerTargetsCounterMove(t *testing.T) {
	net := &fakeNetwork{}
	tr := NewTrainer(net, 0.05)

	for _, p := range []game.Choice{game.Rock, game.Paper, game.Scissors} {
		if err := tr.Train(p); err != nil {
			t.Fatalf("Train(%v): %v", p, err)
		}
	}

	wantTargets := []int{int(game.Paper), int(game.Scissors), int(game.Rock)}
	if len(net.calls) != len(wantTargets) {
		t.Fatalf("got %d backward calls, want %d", len(net.calls), len(wantTargets))
	}
	for i, c := range net.calls {
		if c.op != "backward" {
			t.Fatalf("call %d is %q, want backward", i, c.op)
		}
		if c.target != wantTargets[i] {
			t.Errorf("call %d target = %d, want %d", i, c.target, wantTargets[i])
		}
		if c.rate != 0.05 {
			t.Errorf("call %d rate = %v, want 0.05", i, c.rate)
		}
	}
}

func TestTrainerDefaultRate(t *testing.T) {
	tr := NewTrainer(&fakeNetwork{}, 0)
	if tr.Rate() != DefaultLearningRate {
		t.Errorf("Rate() = %v, want %v", tr.Rate(), DefaultLearningRate)
	}
	tr = NewTrainer(&fakeNetwork{}, -1)
	if tr.Rate() != DefaultLearningRate {
		t.Errorf("negative rate: Rate() = %v, want %v", tr.Rate(), DefaultLearningRate)
	}
}
