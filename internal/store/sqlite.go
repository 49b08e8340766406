// internal/store/sqlite.go
//
// SQLite implementation of Store, plus finished-puzzle results.
// Guess order is an explicit per-list sequence number; result rows are unique
// per owner/day/mode (INSERT OR IGNORE keeps the first).

package store

import (
	"context"
	"database/sql"

	"github.com/robalobadob/geodle/internal/geo"
	"github.com/robalobadob/geodle/internal/scorer"
)

// Result is one player's finished puzzle.
type Result struct {
	OwnerID string `json:"ownerId"`
	Day     string `json:"day"`
	Mode    string `json:"mode"`
	Code    string `json:"code"`
	Won     bool   `json:"won"`
	Guesses int    `json:"guesses"`
	Best    int    `json:"best"`
}

// SQLite is the database-backed guess and result store.
type SQLite struct{ db *sql.DB }

var _ Store = (*SQLite)(nil)

func NewSQLiteStore(db *sql.DB) *SQLite { return &SQLite{db: db} }

func (s *SQLite) Load(ctx context.Context, k Key) ([]scorer.Guess, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT code, name, distance, direction
		FROM guesses
		WHERE owner_id=? AND day=? AND mode=?
		ORDER BY seq ASC`, k.Owner, k.Day, k.Mode,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []scorer.Guess{}
	for rows.Next() {
		var g scorer.Guess
		var dir string
		if err := rows.Scan(&g.Code, &g.Name, &g.Distance, &dir); err != nil {
			return nil, err
		}
		g.Direction = geo.Direction(dir)
		out = append(out, g)
	}
	return out, rows.Err()
}

// Append stores g after the current last guess. The next sequence number is
// computed inside the INSERT so concurrent appends cannot share one.
func (s *SQLite) Append(ctx context.Context, k Key, g scorer.Guess) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO guesses(owner_id, day, mode, seq, code, name, distance, direction)
		VALUES(?, ?, ?,
			(SELECT COALESCE(MAX(seq), 0) + 1 FROM guesses WHERE owner_id=? AND day=? AND mode=?),
			?, ?, ?, ?)`,
		k.Owner, k.Day, k.Mode, k.Owner, k.Day, k.Mode,
		g.Code, g.Name, g.Distance, string(g.Direction),
	)
	return err
}

// RecordResult stores a finished puzzle. The first result per owner, day
// and mode wins; later calls are ignored. It reports whether a row was added.
func (s *SQLite) RecordResult(ctx context.Context, r Result) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(owner_id, day, mode, code, won, guesses, best)
		VALUES(?,?,?,?,?,?,?)`, r.OwnerID, r.Day, r.Mode, r.Code, r.Won, r.Guesses, r.Best,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Results lists an owner's finished puzzles, newest day first.
func (s *SQLite) Results(ctx context.Context, ownerID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT owner_id, day, mode, code, won, guesses, best
		FROM daily_results
		WHERE owner_id=?
		ORDER BY day DESC, mode ASC
		LIMIT ?`, ownerID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Result{}
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.OwnerID, &r.Day, &r.Mode, &r.Code, &r.Won, &r.Guesses, &r.Best); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Claim moves an anonymous owner's puzzles to another owner. Guess lists
// the new owner already has for the same day and mode are left alone, and
// so are conflicting results. It returns the number of guess lists moved.
func (s *SQLite) Claim(ctx context.Context, from, to string) (int, error) {
	if from == "" || to == "" || from == to {
		return 0, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx,
		`SELECT DISTINCT day, mode FROM guesses g
		WHERE owner_id=? AND NOT EXISTS (
			SELECT 1 FROM guesses o WHERE o.owner_id=? AND o.day=g.day AND o.mode=g.mode
		)`, from, to,
	)
	if err != nil {
		return 0, err
	}
	type list struct{ day, mode string }
	var lists []list
	for rows.Next() {
		var l list
		if err := rows.Scan(&l.day, &l.mode); err != nil {
			rows.Close()
			return 0, err
		}
		lists = append(lists, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for _, l := range lists {
		if _, err := tx.ExecContext(ctx,
			`UPDATE guesses SET owner_id=? WHERE owner_id=? AND day=? AND mode=?`,
			to, from, l.day, l.mode,
		); err != nil {
			return 0, err
		}
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE OR IGNORE daily_results SET owner_id=? WHERE owner_id=?`, to, from,
	); err != nil {
		return 0, err
	}
	return len(lists), tx.Commit()
}

// Tally recomputes an owner's counters from their results in the order they
// were recorded: games played, wins and the current run of wins.
func (s *SQLite) Tally(ctx context.Context, ownerID string) (played, wins, streak int, err error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT won FROM daily_results WHERE owner_id=? ORDER BY created_at ASC, rowid ASC`, ownerID,
	)
	if err != nil {
		return 0, 0, 0, err
	}
	defer rows.Close()
	for rows.Next() {
		var won bool
		if err := rows.Scan(&won); err != nil {
			return 0, 0, 0, err
		}
		played++
		if won {
			wins++
			streak++
		} else {
			streak = 0
		}
	}
	return played, wins, streak, rows.Err()
}
