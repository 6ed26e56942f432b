package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/dynstore/dsflat/internal/tree"
)

// SQLiteStore serves a snapshot database produced by an external collector:
// a subkeys(name TEXT, record TEXT) table where record holds the subkey's
// tree as JSON. The binding is strictly read-only and hands tokens straight
// to the flattener. Enumeration follows insertion order, preserving the
// order the collector saw.
type SQLiteStore struct {
	db *sql.DB
}

var (
	_ Store      = (*SQLiteStore)(nil)
	_ TreeSource = (*SQLiteStore)(nil)
)

func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite store: path required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ListSubkeys implements Store.
func (s *SQLiteStore) ListSubkeys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM subkeys ORDER BY rowid")
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: query subkeys: %v", ErrStoreUnavailable, err)
	}
	defer func() { _ = rows.Close() }() // safe to ignore

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan subkey row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subkey rows: %w", err)
	}
	return names, nil
}

// likeEscaper neutralizes LIKE wildcards so base names match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// FetchTree implements TreeSource. Lookup matches the exact name or a
// tagged name sharing the base, parses the stored JSON record, and frames
// it with the base name.
func (s *SQLiteStore) FetchTree(ctx context.Context, base string) ([]tree.Token, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT record FROM subkeys WHERE name = ? OR name LIKE ? || ':%' ESCAPE '\' ORDER BY name LIMIT 1`,
		base, likeEscaper.Replace(base))

	var raw string
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrSubkeyNotFound, base)
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: fetch %s: %v", ErrStoreUnavailable, base, err)
	}

	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("parse record json for %s: %w", base, err)
	}
	return tree.FromValue(base, parsed), nil
}

// FetchRaw implements Store by rendering the framed tokens back to
// canonical text.
func (s *SQLiteStore) FetchRaw(ctx context.Context, base string) (string, error) {
	tokens, err := s.FetchTree(ctx, base)
	if err != nil {
		return "", err
	}
	return tree.Render(tokens), nil
}
