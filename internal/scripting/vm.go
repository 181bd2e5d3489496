// Package scripting runs JavaScript player strategies against the adaptive
// opponent, mainly to benchmark how quickly the network locks onto a pattern.
package scripting

import (
	"fmt"
	"strings"
	"time"

	"github.com/dop251/goja"

	"github.com/rpslab/rps-opponent-go/internal/game"
)

// LogEntry is a single log message emitted by the script.
type LogEntry struct {
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
}

// PickState is what the script's pick() function sees each round.
type PickState struct {
	Round        int    `json:"round"`
	LastPlayer   int    `json:"lastPlayer"`   // -1 before the first round
	LastComputer int    `json:"lastComputer"` // -1 before the first round
	LastOutcome  string `json:"lastOutcome"`  // "" before the first round
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	Draws        int    `json:"draws"`
}

// VM wraps a sandboxed goja runtime. The script must define
// pick(state) -> 0|1|2; move constants ROCK, PAPER and SCISSORS are injected.
type VM struct {
	runtime *goja.Runtime
	logs    []LogEntry
	maxLogs int
}

const scriptTimeout = 2 * time.Second

// NewVM creates a sandboxed runtime with constants and helpers injected.
func NewVM() *VM {
	vm := &VM{
		runtime: goja.New(),
		maxLogs: 500,
	}
	// Scripts address PickState fields by their json names (state.lastComputer).
	vm.runtime.SetFieldNameMapper(goja.TagFieldNameMapper("json", true))
	vm.inject()
	return vm
}

func (vm *VM) inject() {
	vm.runtime.Set("ROCK", int(game.Rock))
	vm.runtime.Set("PAPER", int(game.Paper))
	vm.runtime.Set("SCISSORS", int(game.Scissors))

	// log(...args) — buffered, surfaced through Logs().
	vm.runtime.Set("log", func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		if len(vm.logs) >= vm.maxLogs {
			vm.logs = vm.logs[1:]
		}
		vm.logs = append(vm.logs, LogEntry{Time: time.Now(), Message: strings.Join(parts, " ")})
		return goja.Undefined()
	})
	console := vm.runtime.NewObject()
	console.Set("log", vm.runtime.Get("log"))
	vm.runtime.Set("console", console)

	// Block anything that reaches outside the sandbox.
	vm.runtime.Set("require", goja.Undefined())
	vm.runtime.Set("fetch", goja.Undefined())
	vm.runtime.Set("XMLHttpRequest", goja.Undefined())
	vm.runtime.Set("eval", goja.Undefined())
	vm.runtime.Set("Function", goja.Undefined())
}

// Execute runs the strategy source once; afterwards pick() must be defined.
func (vm *VM) Execute(source string) error {
	if err := vm.run(func() error {
		_, err := vm.runtime.RunString(source)
		return err
	}); err != nil {
		return fmt.Errorf("script execution error: %w", err)
	}
	if _, err := vm.pickFn(); err != nil {
		return err
	}
	return nil
}

func (vm *VM) pickFn() (goja.Callable, error) {
	fn := vm.runtime.Get("pick")
	if fn == nil || goja.IsUndefined(fn) || goja.IsNull(fn) {
		return nil, fmt.Errorf("pick() function is not defined")
	}
	callable, ok := goja.AssertFunction(fn)
	if !ok {
		return nil, fmt.Errorf("pick is not a function")
	}
	return callable, nil
}

// Pick calls the strategy for one round and validates its move.
func (vm *VM) Pick(state PickState) (game.Choice, error) {
	callable, err := vm.pickFn()
	if err != nil {
		return 0, err
	}

	var result goja.Value
	if err := vm.run(func() error {
		var callErr error
		result, callErr = callable(goja.Undefined(), vm.runtime.ToValue(state))
		return callErr
	}); err != nil {
		return 0, fmt.Errorf("pick() error: %w", err)
	}

	move := result.ToInteger()
	c := game.Choice(move)
	if move < 0 || !c.Valid() {
		return 0, fmt.Errorf("pick() returned %d, want 0..2", move)
	}
	return c, nil
}

// Logs returns the buffered script log.
func (vm *VM) Logs() []LogEntry {
	out := make([]LogEntry, len(vm.logs))
	copy(out, vm.logs)
	return out
}

// run executes fn with the interrupt timer armed so a runaway script cannot
// hang the simulation.
func (vm *VM) run(fn func() error) error {
	timer := time.AfterFunc(scriptTimeout, func() {
		vm.runtime.Interrupt("script timeout")
	})
	defer timer.Stop()
	defer vm.runtime.ClearInterrupt()
	return fn()
}
