package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/rpslab/rps-opponent-go/internal/game"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	if err := d.Migrate(); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return d
}

func TestMigrateIdempotent(t *testing.T) {
	d := newTestDB(t)
	if err := d.Migrate(); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	d := newTestDB(t)
	rec, err := d.CreateSession("minimal", "greedy", 8, 3, 0.1, "seed-1")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("CreateSession returned empty id")
	}

	got, err := d.GetSession(rec.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.Encoder != "minimal" || got.Policy != "greedy" || got.HiddenSize != 8 ||
		got.HistorySize != 3 || got.LearningRate != 0.1 || got.Seed != "seed-1" {
		t.Errorf("GetSession = %+v, mismatch with created record", got)
	}
}

func TestAppendAndListRounds(t *testing.T) {
	d := newTestDB(t)
	rec, err := d.CreateSession("minimal", "greedy", 8, 3, 0.1, "s")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	rounds := []game.Round{
		{Player: game.Rock, Computer: game.Paper},
		{Player: game.Paper, Computer: game.Paper},
		{Player: game.Scissors, Computer: game.Paper},
	}
	for i, r := range rounds {
		if err := d.AppendRound(rec.ID, i, r); err != nil {
			t.Fatalf("AppendRound(%d): %v", i, err)
		}
	}

	got, err := d.ListRounds(rec.ID)
	if err != nil {
		t.Fatalf("ListRounds: %v", err)
	}
	if len(got) != len(rounds) {
		t.Fatalf("got %d rounds, want %d", len(got), len(rounds))
	}
	wantOutcomes := []game.Outcome{game.ComputerWins, game.Draw, game.PlayerWins}
	for i, rr := range got {
		if rr.Seq != i {
			t.Errorf("round %d seq = %d", i, rr.Seq)
		}
		if rr.Round != rounds[i] {
			t.Errorf("round %d = %+v, want %+v", i, rr.Round, rounds[i])
		}
		if rr.Outcome != wantOutcomes[i] {
			t.Errorf("round %d outcome = %v, want %v", i, rr.Outcome, wantOutcomes[i])
		}
	}
}

func TestAppendRoundRefusesRewrites(t *testing.T) {
	d := newTestDB(t)
	rec, err := d.CreateSession("minimal", "greedy", 8, 3, 0.1, "s")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	r := game.Round{Player: game.Rock, Computer: game.Rock}
	if err := d.AppendRound(rec.ID, 0, r); err != nil {
		t.Fatalf("AppendRound: %v", err)
	}
	if err := d.AppendRound(rec.ID, 0, r); err == nil {
		t.Fatal("duplicate seq should be rejected")
	}
}

func TestSessionSummary(t *testing.T) {
	d := newTestDB(t)
	rec, err := d.CreateSession("minimal", "greedy", 8, 3, 0.1, "s")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	rounds := []game.Round{
		{Player: game.Rock, Computer: game.Scissors},  // player wins
		{Player: game.Rock, Computer: game.Paper},     // computer wins
		{Player: game.Paper, Computer: game.Paper},    // draw
		{Player: game.Scissors, Computer: game.Paper}, // player wins
	}
	for i, r := range rounds {
		if err := d.AppendRound(rec.ID, i, r); err != nil {
			t.Fatalf("AppendRound(%d): %v", i, err)
		}
	}

	s, err := d.SessionSummary(rec.ID)
	if err != nil {
		t.Fatalf("SessionSummary: %v", err)
	}
	want := Summary{Rounds: 4, PlayerWins: 2, ComputerWins: 1, Draws: 1}
	if s != want {
		t.Errorf("SessionSummary = %+v, want %+v", s, want)
	}
}

func TestStrategies(t *testing.T) {
	d := newTestDB(t)
	src := "function pick(state) { return ROCK; }"
	saved, err := d.SaveStrategy("always-rock", src)
	if err != nil {
		t.Fatalf("SaveStrategy: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("SaveStrategy returned empty id")
	}

	got, err := d.GetStrategy("always-rock")
	if err != nil {
		t.Fatalf("GetStrategy: %v", err)
	}
	if got.Source != src {
		t.Errorf("GetStrategy source = %q, want %q", got.Source, src)
	}

	if _, err := d.SaveStrategy("always-rock", src); err == nil {
		t.Error("duplicate strategy name should be rejected")
	}

	if _, err := d.GetStrategy("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	list, err := d.ListStrategies()
	if err != nil {
		t.Fatalf("ListStrategies: %v", err)
	}
	if len(list) != 1 || list[0].Name != "always-rock" {
		t.Errorf("ListStrategies = %+v", list)
	}
}
