package scripting

import (
	"github.com/shopspring/decimal"

	"github.com/rpslab/rps-opponent-go/internal/game"
)

// Statistics accumulates per-outcome counts and streaks over a simulation.
// The "player" here is the scripted strategy.
type Statistics struct {
	Rounds       int `json:"rounds"`
	PlayerWins   int `json:"playerWins"`
	ComputerWins int `json:"computerWins"`
	Draws        int `json:"draws"`

	// CurrentStreak is positive during a player win streak, negative during
	// a computer win streak; draws reset it.
	CurrentStreak     int `json:"currentStreak"`
	BestPlayerStreak  int `json:"bestPlayerStreak"`
	WorstPlayerStreak int `json:"worstPlayerStreak"`
}

// Record folds one round into the statistics.
func (s *Statistics) Record(r game.Round) {
	s.Rounds++
	switch r.Outcome() {
	case game.PlayerWins:
		s.PlayerWins++
		if s.CurrentStreak < 0 {
			s.CurrentStreak = 0
		}
		s.CurrentStreak++
		if s.CurrentStreak > s.BestPlayerStreak {
			s.BestPlayerStreak = s.CurrentStreak
		}
	case game.ComputerWins:
		s.ComputerWins++
		if s.CurrentStreak > 0 {
			s.CurrentStreak = 0
		}
		s.CurrentStreak--
		if s.CurrentStreak < s.WorstPlayerStreak {
			s.WorstPlayerStreak = s.CurrentStreak
		}
	default:
		s.Draws++
		s.CurrentStreak = 0
	}
}

// Rates reports the outcome shares as exact decimal strings, four places.
type Rates struct {
	PlayerWinRate   string `json:"playerWinRate"`
	ComputerWinRate string `json:"computerWinRate"`
	DrawRate        string `json:"drawRate"`
}

// Rates computes the outcome shares. All zero when no rounds were played.
func (s *Statistics) Rates() Rates {
	if s.Rounds == 0 {
		zero := decimal.Zero.StringFixed(4)
		return Rates{PlayerWinRate: zero, ComputerWinRate: zero, DrawRate: zero}
	}
	total := decimal.NewFromInt(int64(s.Rounds))
	rate := func(n int) string {
		return decimal.NewFromInt(int64(n)).DivRound(total, 4).StringFixed(4)
	}
	return Rates{
		PlayerWinRate:   rate(s.PlayerWins),
		ComputerWinRate: rate(s.ComputerWins),
		DrawRate:        rate(s.Draws),
	}
}
