// Package neural implements the opponent's trainable network: a ring of
// recent encoded inputs feeding one tanh hidden layer and a softmax output
// over the three moves. Training is plain per-round SGD; there is no batching
// and no decay schedule.
package neural

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/rpslab/rps-opponent-go/internal/rng"
)

// ErrBackwardBeforeForward is returned when a training step is requested
// before any forward pass has produced activations to differentiate.
var ErrBackwardBeforeForward = errors.New("neural: backward called before forward")

// Config holds the network dimensions.
type Config struct {
	// InputSize is the width of one encoded input (3 or 6).
	InputSize int
	// HistorySize is how many recent inputs the network sees at once.
	HistorySize int
	HiddenSize  int
	OutputSize  int
}

// Validate checks that all dimensions are positive.
func (c Config) Validate() error {
	if c.InputSize <= 0 || c.HistorySize <= 0 || c.HiddenSize <= 0 || c.OutputSize <= 0 {
		return fmt.Errorf("neural: invalid config %+v: all sizes must be positive", c)
	}
	return nil
}

// Network is a two-layer net with an internal input-history ring. It is not
// safe for concurrent use; the session serializes access.
type Network struct {
	cfg     Config
	histLen int

	history *mat.VecDense // flattened ring of the last HistorySize inputs, oldest first
	w1      *mat.Dense    // HiddenSize x histLen
	b1      *mat.VecDense
	w2      *mat.Dense // OutputSize x HiddenSize
	b2      *mat.VecDense

	hidden *mat.VecDense // activations from the most recent forward pass
	probs  *mat.VecDense
	passes int
}

// New builds a network with weights drawn uniformly from [-0.1, 0.1) using
// the given stream, so equal seeds give equal networks. The output starts
// uniform until the first forward pass.
func New(cfg Config, src *rng.Stream) (*Network, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	histLen := cfg.InputSize * cfg.HistorySize

	n := &Network{
		cfg:     cfg,
		histLen: histLen,
		history: mat.NewVecDense(histLen, nil),
		w1:      mat.NewDense(cfg.HiddenSize, histLen, nil),
		b1:      mat.NewVecDense(cfg.HiddenSize, nil),
		w2:      mat.NewDense(cfg.OutputSize, cfg.HiddenSize, nil),
		b2:      mat.NewVecDense(cfg.OutputSize, nil),
		hidden:  mat.NewVecDense(cfg.HiddenSize, nil),
		probs:   mat.NewVecDense(cfg.OutputSize, nil),
	}

	draw := func() float64 { return src.Next()*0.2 - 0.1 }
	for i := 0; i < cfg.HiddenSize; i++ {
		for j := 0; j < histLen; j++ {
			n.w1.Set(i, j, draw())
		}
	}
	for i := 0; i < cfg.OutputSize; i++ {
		for j := 0; j < cfg.HiddenSize; j++ {
			n.w2.Set(i, j, draw())
		}
	}
	for i := 0; i < cfg.OutputSize; i++ {
		n.probs.SetVec(i, 1/float64(cfg.OutputSize))
	}
	return n, nil
}

// Config returns the dimensions the network was built with.
func (n *Network) Config() Config {
	return n.cfg
}

// Forward shifts the input into the history ring and computes a fresh
// probability vector. The returned slice is a copy.
func (n *Network) Forward(input []float64) ([]float64, error) {
	if len(input) != n.cfg.InputSize {
		return nil, fmt.Errorf("neural: input width %d, network expects %d", len(input), n.cfg.InputSize)
	}

	// Drop the oldest input, append the newest.
	raw := n.history.RawVector().Data
	copy(raw, raw[n.cfg.InputSize:])
	copy(raw[n.histLen-n.cfg.InputSize:], input)

	// Hidden layer: tanh(w1·history + b1).
	n.hidden.MulVec(n.w1, n.history)
	n.hidden.AddVec(n.hidden, n.b1)
	for i := 0; i < n.cfg.HiddenSize; i++ {
		n.hidden.SetVec(i, math.Tanh(n.hidden.AtVec(i)))
	}

	// Output layer: softmax(w2·hidden + b2), max-shifted for stability.
	n.probs.MulVec(n.w2, n.hidden)
	n.probs.AddVec(n.probs, n.b2)
	max := n.probs.AtVec(0)
	for i := 1; i < n.cfg.OutputSize; i++ {
		if v := n.probs.AtVec(i); v > max {
			max = v
		}
	}
	sum := 0.0
	for i := 0; i < n.cfg.OutputSize; i++ {
		v := math.Exp(n.probs.AtVec(i) - max)
		n.probs.SetVec(i, v)
		sum += v
	}
	for i := 0; i < n.cfg.OutputSize; i++ {
		n.probs.SetVec(i, n.probs.AtVec(i)/sum)
	}

	n.passes++
	return n.Probabilities(), nil
}

// Backward applies one SGD step pulling the output toward label, using the
// activations cached by the most recent forward pass.
func (n *Network) Backward(label int, rate float64) error {
	if n.passes == 0 {
		return ErrBackwardBeforeForward
	}
	if label < 0 || label >= n.cfg.OutputSize {
		return fmt.Errorf("neural: label %d out of range [0,%d)", label, n.cfg.OutputSize)
	}

	// Softmax + cross-entropy gradient at the output.
	dout := mat.NewVecDense(n.cfg.OutputSize, nil)
	dout.CopyVec(n.probs)
	dout.SetVec(label, dout.AtVec(label)-1)

	// Backprop through the tanh hidden layer.
	dhidden := mat.NewVecDense(n.cfg.HiddenSize, nil)
	dhidden.MulVec(n.w2.T(), dout)
	for i := 0; i < n.cfg.HiddenSize; i++ {
		h := n.hidden.AtVec(i)
		dhidden.SetVec(i, dhidden.AtVec(i)*(1-h*h))
	}

	var g2 mat.Dense
	g2.Outer(rate, dout, n.hidden)
	n.w2.Sub(n.w2, &g2)
	n.b2.AddScaledVec(n.b2, -rate, dout)

	var g1 mat.Dense
	g1.Outer(rate, dhidden, n.history)
	n.w1.Sub(n.w1, &g1)
	n.b1.AddScaledVec(n.b1, -rate, dhidden)

	return nil
}

// Probabilities returns a copy of the most recent output vector.
func (n *Network) Probabilities() []float64 {
	out := make([]float64, n.cfg.OutputSize)
	for i := range out {
		out[i] = n.probs.AtVec(i)
	}
	return out
}
