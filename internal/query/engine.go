// Package query implements the two façade operations over a store binding:
// flatten every subkey, or resolve one flat record back to its owning
// subkey and flatten just that. Results stream record-by-record; nothing
// is buffered beyond one subkey's tokens.
package query

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dynstore/dsflat/api"
	"github.com/dynstore/dsflat/internal/store"
	"github.com/dynstore/dsflat/internal/tree"
)

// ErrEmptyQuery rejects a blank record handed to the matching operations.
// Distinct from "nothing resolved", which is an empty result, not an error.
var ErrEmptyQuery = errors.New("empty query record")

// Engine drives the flattening operations against one store binding.
type Engine struct {
	store store.Store
	log   zerolog.Logger
}

func NewEngine(st store.Store, log zerolog.Logger) *Engine {
	return &Engine{store: st, log: log}
}

// Subkeys lists the store's top-level subkey names, kind tags included.
// An unreachable or unpopulated store yields an empty list; callers retry
// at a higher operational layer.
func (e *Engine) Subkeys(ctx context.Context) ([]string, error) {
	names, err := e.store.ListSubkeys(ctx)
	if err != nil {
		if errors.Is(err, store.ErrStoreUnavailable) {
			e.log.Warn().Err(err).Msg("store unavailable, returning no subkeys")
			return nil, nil
		}
		return nil, fmt.Errorf("list subkeys: %w", err)
	}
	e.log.Debug().Int("count", len(names)).Msg("enumerated subkeys")
	return names, nil
}

// FlattenAll streams one record per leaf across every subkey, in the
// store's enumeration order. A subkey that vanished between the listing
// and its fetch is skipped; a store that goes away entirely ends the walk
// with whatever was already emitted. A malformed dump aborts with an error
// before any of that subkey's records reach emit.
func (e *Engine) FlattenAll(ctx context.Context, emit func(record string) error) error {
	names, err := e.Subkeys(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		unavailable, err := e.flattenSubkey(ctx, name, emit)
		if err != nil {
			return err
		}
		if unavailable {
			return nil
		}
	}
	return nil
}

// FlattenMatching resolves the subkey owning the given flat record (or
// prefix), flattens only that subkey, and streams the records anchored at
// the prefix: equal to it, or extending it past a separator. No resolution
// means no output and no error. A blank record is ErrEmptyQuery.
func (e *Engine) FlattenMatching(ctx context.Context, record string, emit func(record string) error) error {
	q := api.NormalizeQuery(strings.TrimSpace(record))
	if q == "" {
		return ErrEmptyQuery
	}

	names, err := e.Subkeys(ctx)
	if err != nil {
		return err
	}
	name, ok := resolveSubkey(names, q)
	if !ok {
		e.log.Debug().Str("record", record).Msg("no subkey owns record")
		return nil
	}
	e.log.Debug().Str("record", record).Str("subkey", name).Msg("resolved owning subkey")

	prefix := q + api.Separator
	_, err = e.flattenSubkey(ctx, name, func(rec string) error {
		if rec == q || strings.HasPrefix(rec, prefix) {
			return emit(rec)
		}
		return nil
	})
	return err
}

// Resolve exposes the reverse lookup on its own: which subkey owns this
// flat record. ok is false when nothing matches.
func (e *Engine) Resolve(ctx context.Context, record string) (name string, ok bool, err error) {
	if strings.TrimSpace(record) == "" {
		return "", false, ErrEmptyQuery
	}
	names, err := e.Subkeys(ctx)
	if err != nil {
		return "", false, err
	}
	name, ok = resolveSubkey(names, record)
	return name, ok, nil
}

// WriteAll runs FlattenAll with every record printed to w on its own line.
func (e *Engine) WriteAll(ctx context.Context, w io.Writer) error {
	return e.FlattenAll(ctx, func(rec string) error {
		_, err := fmt.Fprintln(w, rec)
		return err
	})
}

// WriteMatching runs FlattenMatching with every record printed to w on its
// own line.
func (e *Engine) WriteMatching(ctx context.Context, w io.Writer, record string) error {
	return e.FlattenMatching(ctx, record, func(rec string) error {
		_, err := fmt.Fprintln(w, rec)
		return err
	})
}

// flattenSubkey fetches one subkey's tokens and streams its records.
// unavailable reports the store going away mid-walk so FlattenAll can cut
// the walk short; the subkey itself contributing nothing is not an error.
func (e *Engine) flattenSubkey(ctx context.Context, name string, emit func(record string) error) (unavailable bool, err error) {
	tokens, err := e.fetchTokens(ctx, name)
	switch {
	case errors.Is(err, store.ErrSubkeyNotFound):
		e.log.Debug().Str("subkey", name).Msg("subkey gone before fetch, skipping")
		return false, nil
	case errors.Is(err, store.ErrStoreUnavailable):
		e.log.Warn().Str("subkey", name).Err(err).Msg("store unavailable during fetch")
		return true, nil
	case err != nil:
		var malformed *tree.MalformedError
		if errors.As(err, &malformed) {
			e.log.Error().Str("subkey", name).Int("line", malformed.Line).Str("detail", malformed.Message).Msg("malformed tree dump")
		}
		return false, fmt.Errorf("fetch %s: %w", name, err)
	}

	if err := tree.Flatten(tokens, emit); err != nil {
		return false, fmt.Errorf("flatten %s: %w", name, err)
	}
	return false, nil
}

// fetchTokens retrieves one subkey's canonical tokens. Structured bindings
// hand back framed tokens directly; text bindings are queried by base name
// and wrapped in a synthetic dictionary so the base heads every record.
// The kind tag affects only the name split, never the framing.
func (e *Engine) fetchTokens(ctx context.Context, name string) ([]tree.Token, error) {
	base, _ := api.SplitSubkey(name)

	if ts, ok := e.store.(store.TreeSource); ok {
		return ts.FetchTree(ctx, base)
	}

	raw, err := e.store.FetchRaw(ctx, base)
	if err != nil {
		return nil, err
	}
	tokens, err := tree.Normalize(raw)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return tokens, nil
	}

	framed := make([]tree.Token, 0, len(tokens)+3)
	framed = append(framed,
		tree.Token{Kind: tree.Leaf, Key: base, Value: tree.PlaceholderDictionary},
		tree.Token{Kind: tree.Open})
	framed = append(framed, tokens...)
	framed = append(framed, tree.Token{Kind: tree.Close})
	return framed, nil
}
