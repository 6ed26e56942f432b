package store

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/ohler55/ojg/oj"

	"github.com/dynstore/dsflat/internal/tree"
)

// JSONStore serves a structured snapshot document: a single JSON object
// whose members are subkeys (names may carry kind tags) and whose values
// are the subkey trees. It hands tokens straight to the flattener, so the
// text normalization stage never runs.
//
// JSON object member order is not semantic, so subkeys enumerate in sorted
// name order to keep repeated runs identical.
type JSONStore struct {
	order []string
	trees map[string]any
}

var (
	_ Store      = (*JSONStore)(nil)
	_ TreeSource = (*JSONStore)(nil)
)

// NewJSONStore parses a snapshot document from raw bytes.
func NewJSONStore(data []byte) (*JSONStore, error) {
	parsed, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse snapshot json: %w", err)
	}
	root, ok := parsed.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("snapshot root must be a json object, got %T", parsed)
	}

	order := make([]string, 0, len(root))
	for name := range root {
		order = append(order, name)
	}
	sort.Strings(order)

	return &JSONStore{order: order, trees: root}, nil
}

// LoadJSONStore reads and parses a snapshot document from disk. A missing
// file counts as an unavailable store.
func LoadJSONStore(path string) (*JSONStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read snapshot %s: %v", ErrStoreUnavailable, path, err)
	}
	return NewJSONStore(data)
}

// ListSubkeys implements Store.
func (s *JSONStore) ListSubkeys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names, nil
}

// FetchTree implements TreeSource, framing the member value with the base
// name.
func (s *JSONStore) FetchTree(ctx context.Context, base string) ([]tree.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	value, ok := s.lookup(base)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSubkeyNotFound, base)
	}
	return tree.FromValue(base, value), nil
}

// FetchRaw implements Store by rendering the framed tokens back to
// canonical text.
func (s *JSONStore) FetchRaw(ctx context.Context, base string) (string, error) {
	tokens, err := s.FetchTree(ctx, base)
	if err != nil {
		return "", err
	}
	return tree.Render(tokens), nil
}

func (s *JSONStore) lookup(base string) (any, bool) {
	if value, ok := s.trees[base]; ok {
		return value, true
	}
	for _, name := range s.order {
		if matchesBase(name, base) {
			return s.trees[name], true
		}
	}
	return nil, false
}
