package plays

import (
	"context"
	"database/sql"
)

// Play records the outcome of one /api/chain request. Only the outcome
// and the starting seed are persisted, never the chain itself.
type Play struct {
	Source     string `json:"source"` // "generated" | "fallback"
	Seed       string `json:"seed"`
	DurationMs int    `json:"durationMs"`
}

type Totals struct {
	Total     int `json:"total"`
	Generated int `json:"generated"`
	Fallback  int `json:"fallback"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Insert(ctx context.Context, p Play) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO plays(source, seed, duration_ms) VALUES(?,?,?)`,
		p.Source, p.Seed, p.DurationMs,
	)
	return err
}

func (s *Store) TotalsBySource(ctx context.Context) (Totals, error) {
	var t Totals
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, COUNT(1) FROM plays GROUP BY source`,
	)
	if err != nil {
		return t, err
	}
	defer rows.Close()
	for rows.Next() {
		var source string
		var n int
		if err := rows.Scan(&source, &n); err != nil {
			return t, err
		}
		switch source {
		case "generated":
			t.Generated = n
		case "fallback":
			t.Fallback = n
		}
		t.Total += n
	}
	return t, rows.Err()
}
