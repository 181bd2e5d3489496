package game

import "testing"

// Exhaustive outcome table over all nine move pairs.
func TestRoundOutcome(t *testing.T) {
	want := map[[2]Choice]Outcome{
		{Rock, Rock}:         Draw,
		{Rock, Paper}:        ComputerWins,
		{Rock, Scissors}:     PlayerWins,
		{Paper, Rock}:        PlayerWins,
		{Paper, Paper}:       Draw,
		{Paper, Scissors}:    ComputerWins,
		{Scissors, Rock}:     ComputerWins,
		{Scissors, Paper}:    PlayerWins,
		{Scissors, Scissors}: Draw,
	}
	for pair, expected := range want {
		r := Round{Player: pair[0], Computer: pair[1]}
		if got := r.Outcome(); got != expected {
			t.Errorf("Round{%v, %v}.Outcome() = %v, want %v", pair[0], pair[1], got, expected)
		}
	}
}

func TestOutcomeString(t *testing.T) {
	if got := PlayerWins.String(); got != "player_wins" {
		t.Errorf("PlayerWins.String() = %q, want %q", got, "player_wins")
	}
	if got := (Round{Rock, Rock}).Outcome().String(); got != "draw" {
		t.Errorf("expected draw, got %q", got)
	}
}
