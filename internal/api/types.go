package api

// EngineVersion identifies the engine build in responses and health checks.
const EngineVersion = "1.0.0"

// EngineError is the structured error body every failing endpoint returns.
type EngineError struct {
	Type    string         `json:"type"`
	Message string         `json:"message"`
	Context map[string]any `json:"context,omitempty"`
}

// Error implements the error interface.
func (e EngineError) Error() string {
	return e.Message
}

// Error types.
const (
	ErrTypeInvalidChoice    = "invalid_choice"
	ErrTypeInvalidParams    = "invalid_params"
	ErrTypeSessionNotFound  = "session_not_found"
	ErrTypeNetworkNotReady  = "network_not_ready"
	ErrTypeUnavailable      = "opponent_unavailable"
	ErrTypeStrategyNotFound = "strategy_not_found"
	ErrTypeStrategyExists   = "strategy_exists"
	ErrTypeInternal         = "internal_error"
)

// CreateSessionRequest configures a new session. Zero values take defaults.
type CreateSessionRequest struct {
	Encoder      string  `json:"encoder,omitempty"`       // "minimal" (default) or "extended"
	Policy       string  `json:"policy,omitempty"`        // "greedy" (default) or "sampling"
	HiddenSize   int     `json:"hidden_size,omitempty"`   // default 8
	HistorySize  int     `json:"history_size,omitempty"`  // default 3
	LearningRate float64 `json:"learning_rate,omitempty"` // default 0.1
	Seed         string  `json:"seed,omitempty"`          // default random
}

// SessionResponse describes a session and its live state.
type SessionResponse struct {
	ID            string    `json:"id"`
	Encoder       string    `json:"encoder"`
	Policy        string    `json:"policy"`
	HiddenSize    int       `json:"hidden_size"`
	HistorySize   int       `json:"history_size"`
	LearningRate  float64   `json:"learning_rate"`
	Seed          string    `json:"seed"`
	State         string    `json:"state"`
	Probabilities []float64 `json:"probabilities"`
	CreatedAt     string    `json:"created_at"`
}

// PlayRequest submits the player's move for one round.
type PlayRequest struct {
	Choice string `json:"choice"`
}

// RoundDTO is one round with its derived outcome.
type RoundDTO struct {
	Seq      int    `json:"seq"`
	Player   string `json:"player"`
	Computer string `json:"computer"`
	Outcome  string `json:"outcome"`
}

// PlayResponse returns the completed round and the opponent's fresh output.
type PlayResponse struct {
	Round         RoundDTO  `json:"round"`
	Probabilities []float64 `json:"probabilities"`
}

// HistoryResponse lists a session's rounds in play order.
type HistoryResponse struct {
	SessionID string     `json:"session_id"`
	Rounds    []RoundDTO `json:"rounds"`
}

// ProbsResponse exposes the current probability vector, display-only.
type ProbsResponse struct {
	SessionID     string    `json:"session_id"`
	Probabilities []float64 `json:"probabilities"`
}

// StatsResponse summarizes a session. Rates are exact decimal strings.
type StatsResponse struct {
	SessionID       string `json:"session_id"`
	Rounds          int    `json:"rounds"`
	PlayerWins      int    `json:"player_wins"`
	ComputerWins    int    `json:"computer_wins"`
	Draws           int    `json:"draws"`
	PlayerWinRate   string `json:"player_win_rate"`
	ComputerWinRate string `json:"computer_win_rate"`
	DrawRate        string `json:"draw_rate"`
}

// SaveStrategyRequest stores a JavaScript strategy under a unique name.
type SaveStrategyRequest struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}
