package roster

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/samber/oops"
	_ "modernc.org/sqlite"

	"github.com/pefman/poke-duel/internal/battle"
)

// SQLiteStore persists teams in a local sqlite database.
type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS teams (
	id    TEXT PRIMARY KEY,
	owner TEXT NOT NULL DEFAULT '',
	name  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS pokemon (
	team_id  TEXT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	name     TEXT NOT NULL,
	type     TEXT NOT NULL,
	max_hp   INTEGER NOT NULL,
	attack   INTEGER NOT NULL,
	defense  INTEGER NOT NULL,
	speed    INTEGER NOT NULL,
	PRIMARY KEY (team_id, position)
);
CREATE TABLE IF NOT EXISTS moves (
	team_id  TEXT NOT NULL,
	pokemon_position INTEGER NOT NULL,
	position INTEGER NOT NULL,
	name     TEXT NOT NULL,
	type     TEXT NOT NULL,
	power    INTEGER NOT NULL,
	accuracy INTEGER NOT NULL,
	pp       INTEGER NOT NULL,
	PRIMARY KEY (team_id, pokemon_position, position),
	FOREIGN KEY (team_id, pokemon_position) REFERENCES pokemon(team_id, position) ON DELETE CASCADE
);
`

// OpenSQLite opens (and if needed creates) the roster database at path. An
// empty database is seeded with the built-in teams so the service is playable
// out of the box.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("roster db path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open roster db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping roster db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create roster schema: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.seedIfEmpty(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed roster db: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) seedIfEmpty() error {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM teams`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	for _, t := range SeedTeams() {
		if err := insertTeam(tx, t); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertTeam(tx *sql.Tx, t Team) error {
	if _, err := tx.Exec(`INSERT INTO teams (id, owner, name) VALUES (?, ?, ?)`, t.ID, t.Owner, t.Name); err != nil {
		return err
	}
	for pi, p := range t.Pokemon {
		if _, err := tx.Exec(
			`INSERT INTO pokemon (team_id, position, name, type, max_hp, attack, defense, speed) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, pi, p.Name, string(p.Type), p.MaxHP, p.Attack, p.Defense, p.Speed,
		); err != nil {
			return err
		}
		for mi, m := range p.Moves {
			if _, err := tx.Exec(
				`INSERT INTO moves (team_id, pokemon_position, position, name, type, power, accuracy, pp) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				t.ID, pi, mi, m.Name, string(m.Type), m.Power, m.Accuracy, m.MaxPP,
			); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetTeam loads a team with its full move set. Shared teams (empty owner) are
// visible to everyone; private teams only to their owner.
func (s *SQLiteStore) GetTeam(ctx context.Context, teamID, ownerID string) (*Team, error) {
	t := &Team{ID: teamID}
	err := s.db.QueryRowContext(ctx, `SELECT owner, name FROM teams WHERE id = ?`, teamID).Scan(&t.Owner, &t.Name)
	if err == sql.ErrNoRows {
		return nil, oops.Code(CodeNotFound).Errorf("team %s not found", teamID)
	}
	if err != nil {
		return nil, fmt.Errorf("load team %s: %w", teamID, err)
	}
	if t.Owner != "" && t.Owner != ownerID {
		return nil, oops.Code(CodeForbidden).Errorf("team %s does not belong to caller", teamID)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT position, name, type, max_hp, attack, defense, speed FROM pokemon WHERE team_id = ? ORDER BY position`, teamID)
	if err != nil {
		return nil, fmt.Errorf("load pokemon for %s: %w", teamID, err)
	}
	defer rows.Close()
	positions := []int{}
	for rows.Next() {
		var pos int
		var p Pokemon
		var typ string
		if err := rows.Scan(&pos, &p.Name, &typ, &p.MaxHP, &p.Attack, &p.Defense, &p.Speed); err != nil {
			return nil, err
		}
		p.Type = battle.Type(typ)
		t.Pokemon = append(t.Pokemon, p)
		positions = append(positions, pos)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, pos := range positions {
		moves, err := s.loadMoves(ctx, teamID, pos)
		if err != nil {
			return nil, err
		}
		t.Pokemon[i].Moves = moves
	}
	return t, nil
}

func (s *SQLiteStore) loadMoves(ctx context.Context, teamID string, pokemonPos int) ([]battle.Move, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, type, power, accuracy, pp FROM moves WHERE team_id = ? AND pokemon_position = ? ORDER BY position`,
		teamID, pokemonPos)
	if err != nil {
		return nil, fmt.Errorf("load moves: %w", err)
	}
	defer rows.Close()
	var moves []battle.Move
	for rows.Next() {
		var m battle.Move
		var typ string
		if err := rows.Scan(&m.Name, &typ, &m.Power, &m.Accuracy, &m.MaxPP); err != nil {
			return nil, err
		}
		m.Type = battle.Type(typ)
		moves = append(moves, m)
	}
	return moves, rows.Err()
}

// ListTeams returns the shared teams plus the caller's private teams, without
// move detail.
func (s *SQLiteStore) ListTeams(ctx context.Context, ownerID string) ([]Team, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner, name FROM teams WHERE owner = '' OR owner = ? ORDER BY name`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()
	var out []Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.Owner, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
