package engine

import (
	"testing"

	"github.com/rpslab/rps-opponent-go/internal/game"
)

func TestMinimalEncoderOneHot(t *testing.T) {
	enc := MinimalEncoder{}
	if enc.Width() != 3 {
		t.Fatalf("Width() = %d, want 3", enc.Width())
	}
	for c := game.Choice(0); c < game.NumChoices; c++ {
		v := enc.Encode(c, game.Rock, true)
		if len(v) != enc.Width() {
			t.Fatalf("Encode(%v) length %d, want %d", c, len(v), enc.Width())
		}
		for i, x := range v {
			want := 0.0
			if i == int(c) {
				want = 1.0
			}
			if x != want {
				t.Errorf("Encode(%v)[%d] = %v, want %v", c, i, x, want)
			}
		}
	}
}

func TestExtendedEncoderBlocks(t *testing.T) {
	enc := ExtendedEncoder{}
	if enc.Width() != 6 {
		t.Fatalf("Width() = %d, want 6", enc.Width())
	}
	v := enc.Encode(game.Paper, game.Scissors, true)
	want := []float64{0, 1, 0, 0, 0, 1}
	for i := range want {
		if v[i] != want[i] {
			t.Errorf("Encode(paper, scissors)[%d] = %v, want %v", i, v[i], want[i])
		}
	}
}

func TestExtendedEncoderNoComputerMove(t *testing.T) {
	v := ExtendedEncoder{}.Encode(game.Rock, game.Rock, false)
	want := []float64{1, 0, 0, 0, 0, 0}
	for i := range want {
		if v[i] != want[i] {
			t.Errorf("Encode(rock, -, none)[%d] = %v, want %v", i, v[i], want[i])
		}
	}
}

func TestNewEncoder(t *testing.T) {
	cases := []struct {
		layout string
		width  int
	}{
		{"", 3},
		{LayoutMinimal, 3},
		{LayoutExtended, 6},
	}
	for _, c := range cases {
		enc, err := NewEncoder(c.layout)
		if err != nil {
			t.Fatalf("NewEncoder(%q): %v", c.layout, err)
		}
		if enc.Width() != c.width {
			t.Errorf("NewEncoder(%q).Width() = %d, want %d", c.layout, enc.Width(), c.width)
		}
	}
	if _, err := NewEncoder("wide"); err == nil {
		t.Error("unknown layout should fail")
	}
}
