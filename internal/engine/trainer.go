package engine

import "github.com/rpslab/rps-opponent-go/internal/game"

// DefaultLearningRate is applied uniformly every round. There is no decay
// schedule and no adaptive rate.
const DefaultLearningRate = 0.1

// Trainer issues the per-round training step. The target is the move that
// beats the player's just-made choice, so the forward pass learns to forecast
// the counter to the player's next likely move rather than the move itself.
type Trainer struct {
	net  Network
	rate float64
}

// NewTrainer wraps net with a fixed learning rate. A rate of 0 or below
// falls back to the default.
func NewTrainer(net Network, rate float64) *Trainer {
	if rate <= 0 {
		rate = DefaultLearningRate
	}
	return &Trainer{net: net, rate: rate}
}

// Rate returns the fixed learning rate.
func (t *Trainer) Rate() float64 {
	return t.rate
}

// Train applies exactly one backward pass for the round the player just made.
// It must run before the forward pass that decides the upcoming round.
func (t *Trainer) Train(player game.Choice) error {
	return t.net.Backward(int(game.WinsOver(player)), t.rate)
}
