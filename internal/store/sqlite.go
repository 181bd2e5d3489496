// Package store persists sessions, their round history, and stored player
// strategies in SQLite. Outcomes are never stored; they are recomputed from
// the two moves on read.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/rpslab/rps-opponent-go/internal/game"
)

// DB wraps the SQLite connection.
type DB struct {
	db *sql.DB
}

// New opens (or creates) the database at path and enables WAL mode.
func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Migrate creates the schema. Safe to run repeatedly.
func (d *DB) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			encoder TEXT NOT NULL,
			policy TEXT NOT NULL,
			hidden_size INTEGER NOT NULL,
			history_size INTEGER NOT NULL,
			learning_rate REAL NOT NULL,
			seed TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			player INTEGER NOT NULL,
			computer INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (session_id) REFERENCES sessions(id)
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_rounds_session_seq ON rounds(session_id, seq)`,
		`CREATE TABLE IF NOT EXISTS strategies (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			source TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// SessionRecord is one persisted session configuration.
type SessionRecord struct {
	ID           string    `json:"id"`
	Encoder      string    `json:"encoder"`
	Policy       string    `json:"policy"`
	HiddenSize   int       `json:"hidden_size"`
	HistorySize  int       `json:"history_size"`
	LearningRate float64   `json:"learning_rate"`
	Seed         string    `json:"seed"`
	CreatedAt    time.Time `json:"created_at"`
}

// RoundRecord is one persisted round. Outcome is derived at scan time, never
// read from disk.
type RoundRecord struct {
	Seq     int
	Round   game.Round
	Outcome game.Outcome
}

// Summary aggregates a session's rounds by outcome.
type Summary struct {
	Rounds       int
	PlayerWins   int
	ComputerWins int
	Draws        int
}

// CreateSession inserts a session row and returns it with a fresh id.
func (d *DB) CreateSession(encoder, policy string, hiddenSize, historySize int, learningRate float64, seed string) (SessionRecord, error) {
	rec := SessionRecord{
		ID:           uuid.New().String(),
		Encoder:      encoder,
		Policy:       policy,
		HiddenSize:   hiddenSize,
		HistorySize:  historySize,
		LearningRate: learningRate,
		Seed:         seed,
		CreatedAt:    time.Now().UTC(),
	}
	_, err := d.db.Exec(
		`INSERT INTO sessions (id, encoder, policy, hidden_size, history_size, learning_rate, seed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Encoder, rec.Policy, rec.HiddenSize, rec.HistorySize,
		rec.LearningRate, rec.Seed, rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return SessionRecord{}, fmt.Errorf("insert session: %w", err)
	}
	return rec, nil
}

// GetSession reads one session row.
func (d *DB) GetSession(id string) (SessionRecord, error) {
	var rec SessionRecord
	var created string
	err := d.db.QueryRow(
		`SELECT id, encoder, policy, hidden_size, history_size, learning_rate, seed, created_at
		 FROM sessions WHERE id = ?`, id,
	).Scan(&rec.ID, &rec.Encoder, &rec.Policy, &rec.HiddenSize, &rec.HistorySize,
		&rec.LearningRate, &rec.Seed, &created)
	if err != nil {
		return SessionRecord{}, fmt.Errorf("get session %s: %w", id, err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	return rec, nil
}

// AppendRound inserts one round at the given sequence position. The unique
// (session, seq) index refuses rewrites of past rounds.
func (d *DB) AppendRound(sessionID string, seq int, r game.Round) error {
	_, err := d.db.Exec(
		`INSERT INTO rounds (session_id, seq, player, computer) VALUES (?, ?, ?, ?)`,
		sessionID, seq, int(r.Player), int(r.Computer),
	)
	if err != nil {
		return fmt.Errorf("insert round %d for session %s: %w", seq, sessionID, err)
	}
	return nil
}

// ListRounds returns a session's rounds in play order with derived outcomes.
func (d *DB) ListRounds(sessionID string) ([]RoundRecord, error) {
	rows, err := d.db.Query(
		`SELECT seq, player, computer FROM rounds WHERE session_id = ? ORDER BY seq ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	defer rows.Close()

	var records []RoundRecord
	for rows.Next() {
		var rec RoundRecord
		var player, computer int
		if err := rows.Scan(&rec.Seq, &player, &computer); err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}
		rec.Round = game.Round{Player: game.Choice(player), Computer: game.Choice(computer)}
		rec.Outcome = rec.Round.Outcome()
		records = append(records, rec)
	}
	return records, rows.Err()
}

// SessionSummary counts a session's rounds by outcome.
func (d *DB) SessionSummary(sessionID string) (Summary, error) {
	records, err := d.ListRounds(sessionID)
	if err != nil {
		return Summary{}, err
	}
	var s Summary
	s.Rounds = len(records)
	for _, rec := range records {
		switch rec.Outcome {
		case game.PlayerWins:
			s.PlayerWins++
		case game.ComputerWins:
			s.ComputerWins++
		default:
			s.Draws++
		}
	}
	return s, nil
}
