package scripting

import (
	"strings"
	"testing"

	"github.com/rpslab/rps-opponent-go/internal/game"
)

func TestExecuteRequiresPick(t *testing.T) {
	vm := NewVM()
	if err := vm.Execute("var x = 1;"); err == nil {
		t.Fatal("script without pick() should fail")
	}
	if err := vm.Execute("var pick = 42;"); err == nil {
		t.Fatal("non-function pick should fail")
	}
}

func TestExecuteReportsSyntaxErrors(t *testing.T) {
	vm := NewVM()
	if err := vm.Execute("function pick( {"); err == nil {
		t.Fatal("broken source should fail")
	}
}

func TestPickConstantStrategy(t *testing.T) {
	vm := NewVM()
	if err := vm.Execute("function pick(state) { return PAPER; }"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	got, err := vm.Pick(PickState{Round: 1, LastPlayer: -1, LastComputer: -1})
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if got != game.Paper {
		t.Errorf("Pick = %v, want paper", got)
	}
}

func TestPickSeesState(t *testing.T) {
	vm := NewVM()
	// Echo the computer's last move back, rock on round one.
	src := `function pick(state) {
		if (state.lastComputer < 0) { return ROCK; }
		return state.lastComputer;
	}`
	if err := vm.Execute(src); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	got, err := vm.Pick(PickState{Round: 1, LastPlayer: -1, LastComputer: -1})
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if got != game.Rock {
		t.Errorf("round 1 pick = %v, want rock", got)
	}

	got, err = vm.Pick(PickState{Round: 2, LastPlayer: 0, LastComputer: int(game.Scissors)})
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if got != game.Scissors {
		t.Errorf("round 2 pick = %v, want scissors", got)
	}
}

func TestPickRejectsOutOfRangeMove(t *testing.T) {
	vm := NewVM()
	if err := vm.Execute("function pick(state) { return 5; }"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, err := vm.Pick(PickState{}); err == nil {
		t.Fatal("out-of-range move should fail")
	}
}

func TestScriptLogging(t *testing.T) {
	vm := NewVM()
	src := `function pick(state) { log("round", state.round); return ROCK; }`
	if err := vm.Execute(src); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, err := vm.Pick(PickState{Round: 3}); err != nil {
		t.Fatalf("Pick: %v", err)
	}
	logs := vm.Logs()
	if len(logs) != 1 || !strings.Contains(logs[0].Message, "round 3") {
		t.Errorf("Logs() = %+v, want one entry containing %q", logs, "round 3")
	}
}

func TestSandboxBlocksEscapes(t *testing.T) {
	vm := NewVM()
	src := `function pick(state) {
		if (typeof require !== "undefined") { return 9; }
		if (typeof eval === "function") { return 9; }
		return ROCK;
	}`
	if err := vm.Execute(src); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	got, err := vm.Pick(PickState{})
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if got != game.Rock {
		t.Error("sandbox globals are reachable from scripts")
	}
}
