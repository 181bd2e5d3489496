// Package rng provides a reproducible stream of floats in [0,1) derived from
// a seed string via HMAC-SHA256. Sessions created with the same seed play out
// identically: the network gets the same initial weights and the sampling
// policy draws the same sequence.
package rng

import (
	"crypto/hmac"
	"crypto/sha256"
	"strconv"
)

// Stream generates floats by hashing the seed with an incrementing block
// counter and consuming the digest four bytes at a time.
type Stream struct {
	seed   string
	block  uint64
	pos    int
	buffer [32]byte
}

// New creates a stream positioned at the start of the sequence for seed.
func New(seed string) *Stream {
	s := &Stream{seed: seed}
	s.fill()
	return s
}

// Seed returns the seed string the stream was created with.
func (s *Stream) Seed() string {
	return s.seed
}

func (s *Stream) fill() {
	h := hmac.New(sha256.New, []byte(s.seed))
	h.Write([]byte("block:" + strconv.FormatUint(s.block, 10)))
	copy(s.buffer[:], h.Sum(nil))
}

func (s *Stream) nextByte() byte {
	if s.pos >= len(s.buffer) {
		s.block++
		s.pos = 0
		s.fill()
	}
	b := s.buffer[s.pos]
	s.pos++
	return b
}

// Next returns the next float in [0,1), built from exactly four bytes.
func (s *Stream) Next() float64 {
	result := 0.0
	divider := 1.0
	for i := 0; i < 4; i++ {
		divider *= 256
		result += float64(s.nextByte()) / divider
	}
	return result
}
