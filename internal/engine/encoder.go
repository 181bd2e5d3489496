package engine

import (
	"fmt"

	"github.com/rpslab/rps-opponent-go/internal/game"
)

// Encoder maps the most recent moves to a fixed-width one-hot vector for the
// network. The width must not change for the lifetime of a session.
type Encoder interface {
	// Width is the length of every vector Encode returns.
	Width() int
	// Encode builds the input for the upcoming forward pass from the player's
	// just-made choice and, where the layout uses it, the computer's previous
	// choice. haveComputer is false before the computer has moved at all.
	Encode(player game.Choice, computer game.Choice, haveComputer bool) []float64
}

// MinimalEncoder encodes only the player's last choice: width 3, one-hot.
type MinimalEncoder struct{}

func (MinimalEncoder) Width() int { return game.NumChoices }

func (MinimalEncoder) Encode(player game.Choice, _ game.Choice, _ bool) []float64 {
	v := make([]float64, game.NumChoices)
	v[player] = 1
	return v
}

// ExtendedEncoder encodes the player's and the computer's last choices in two
// disjoint one-hot blocks: width 6. Until the computer has made a move the
// second block stays zero.
type ExtendedEncoder struct{}

func (ExtendedEncoder) Width() int { return 2 * game.NumChoices }

func (ExtendedEncoder) Encode(player game.Choice, computer game.Choice, haveComputer bool) []float64 {
	v := make([]float64, 2*game.NumChoices)
	v[player] = 1
	if haveComputer {
		v[game.NumChoices+int(computer)] = 1
	}
	return v
}

// NewEncoder returns the encoder for a layout name ("minimal" or "extended").
func NewEncoder(layout string) (Encoder, error) {
	switch layout {
	case "", LayoutMinimal:
		return MinimalEncoder{}, nil
	case LayoutExtended:
		return ExtendedEncoder{}, nil
	}
	return nil, fmt.Errorf("engine: unknown encoder layout %q", layout)
}

// Encoder layout names, as stored and accepted over the API.
const (
	LayoutMinimal  = "minimal"
	LayoutExtended = "extended"
)
