package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("store: not found")

// Strategy is a stored JavaScript player strategy.
type Strategy struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveStrategy inserts a named strategy. Names are unique.
func (d *DB) SaveStrategy(name, source string) (Strategy, error) {
	s := Strategy{
		ID:        uuid.New().String(),
		Name:      name,
		Source:    source,
		CreatedAt: time.Now().UTC(),
	}
	_, err := d.db.Exec(
		`INSERT INTO strategies (id, name, source, created_at) VALUES (?, ?, ?, ?)`,
		s.ID, s.Name, s.Source, s.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Strategy{}, fmt.Errorf("insert strategy %q: %w", name, err)
	}
	return s, nil
}

// GetStrategy looks a strategy up by name.
func (d *DB) GetStrategy(name string) (Strategy, error) {
	var s Strategy
	var created string
	err := d.db.QueryRow(
		`SELECT id, name, source, created_at FROM strategies WHERE name = ?`, name,
	).Scan(&s.ID, &s.Name, &s.Source, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Strategy{}, fmt.Errorf("strategy %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return Strategy{}, fmt.Errorf("get strategy %q: %w", name, err)
	}
	s.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	return s, nil
}

// ListStrategies returns all stored strategies, newest first.
func (d *DB) ListStrategies() ([]Strategy, error) {
	rows, err := d.db.Query(
		`SELECT id, name, source, created_at FROM strategies ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list strategies: %w", err)
	}
	defer rows.Close()

	var out []Strategy
	for rows.Next() {
		var s Strategy
		var created string
		if err := rows.Scan(&s.ID, &s.Name, &s.Source, &created); err != nil {
			return nil, fmt.Errorf("scan strategy: %w", err)
		}
		s.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, s)
	}
	return out, rows.Err()
}
