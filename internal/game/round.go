package game

// Outcome classifies a finished round from the player's perspective.
type Outcome uint8

const (
	Draw Outcome = iota
	PlayerWins
	ComputerWins
)

var outcomeNames = [3]string{"draw", "player_wins", "computer_wins"}

func (o Outcome) String() string {
	if int(o) >= len(outcomeNames) {
		return "unknown"
	}
	return outcomeNames[o]
}

// Round is one completed round. It is a value type and never mutated after
// creation; the outcome is derived, not stored.
type Round struct {
	Player   Choice
	Computer Choice
}

// Outcome computes the round result from the two moves.
func (r Round) Outcome() Outcome {
	switch {
	case r.Player == r.Computer:
		return Draw
	case Beats(r.Player, r.Computer):
		return PlayerWins
	default:
		return ComputerWins
	}
}
