package game

import (
	"fmt"
	"strings"
)

// Choice is one of the three playable moves. The numeric values are the
// network's input/output indices and must not be reordered.
type Choice uint8

const (
	Rock Choice = iota
	Paper
	Scissors

	// NumChoices is the size of the move space (network output width).
	NumChoices = 3
)

var choiceNames = [NumChoices]string{"rock", "paper", "scissors"}

func (c Choice) String() string {
	if int(c) >= len(choiceNames) {
		return fmt.Sprintf("choice(%d)", uint8(c))
	}
	return choiceNames[c]
}

// Valid reports whether c is one of the three playable moves.
func (c Choice) Valid() bool {
	return c < NumChoices
}

// ParseChoice parses a move name. Single-letter shorthands (r/p/s) are
// accepted for the CLI.
func ParseChoice(s string) (Choice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rock", "r":
		return Rock, nil
	case "paper", "p":
		return Paper, nil
	case "scissors", "s":
		return Scissors, nil
	}
	return 0, fmt.Errorf("unknown choice %q", s)
}

// WinsOver returns the move that beats c. Dominance is cyclic:
// rock > scissors > paper > rock.
func WinsOver(c Choice) Choice {
	return (c + 1) % NumChoices
}

// Beats reports whether move a beats move b.
func Beats(a, b Choice) bool {
	return WinsOver(b) == a
}
