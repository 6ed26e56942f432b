// Package store binds the two-operation read interface of the external
// configuration store. Every binding lists top-level subkeys and dumps one
// subkey's tree; nothing here ever writes.
package store

import (
	"context"
	"errors"

	"github.com/dynstore/dsflat/api"
	"github.com/dynstore/dsflat/internal/tree"
)

var (
	// ErrStoreUnavailable marks a store that cannot be reached or is not
	// yet populated. Callers treat it as an empty result, never as fatal.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrSubkeyNotFound marks a fetch for a subkey the store does not hold.
	ErrSubkeyNotFound = errors.New("subkey not found")
)

// Store is the read interface every binding implements.
type Store interface {
	// ListSubkeys returns subkey names in the store's native enumeration
	// order, kind tags included.
	ListSubkeys(ctx context.Context) ([]string, error)

	// FetchRaw returns the raw textual dump of one subkey's tree. base is
	// the subkey name with any kind tag already stripped by the caller.
	FetchRaw(ctx context.Context, base string) (string, error)
}

// TreeSource is an optional capability for bindings whose backend hands
// over structured data. Tokens come back framed and balanced by
// construction, skipping the text normalization stage entirely.
type TreeSource interface {
	FetchTree(ctx context.Context, base string) ([]tree.Token, error)
}

// matchesBase reports whether a stored name answers a fetch for base:
// either the exact name or a tagged name whose pre-tag part is base.
func matchesBase(name, base string) bool {
	if name == base {
		return true
	}
	b, kind := api.SplitSubkey(name)
	return kind != "" && b == base
}
