package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// DirStore reads a captured snapshot directory: one file per subkey, the
// file name being the subkey name (kind tag included), the file content
// being the raw dump. Enumeration order is the sorted file name order.
type DirStore struct {
	fs billy.Filesystem
}

var _ Store = (*DirStore)(nil)

func NewDirStore(path string) (*DirStore, error) {
	if path == "" {
		return nil, errors.New("dir store: path required")
	}
	return &DirStore{fs: osfs.New(path)}, nil
}

// NewDirStoreFS mounts the snapshot on an existing filesystem, typically
// an in-memory one in tests.
func NewDirStoreFS(fsys billy.Filesystem) *DirStore {
	return &DirStore{fs: fsys}
}

// ListSubkeys implements Store. A missing or unreadable snapshot directory
// counts as an unavailable store.
func (s *DirStore) ListSubkeys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	infos, err := s.fs.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("%w: read snapshot dir: %v", ErrStoreUnavailable, err)
	}

	var names []string
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		names = append(names, info.Name())
	}
	sort.Strings(names)
	return names, nil
}

// FetchRaw implements Store. The exact file name wins; otherwise the first
// tagged file whose pre-tag base matches serves the dump.
func (s *DirStore) FetchRaw(ctx context.Context, base string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := base
	if _, err := s.fs.Stat(name); errors.Is(err, os.ErrNotExist) {
		names, err := s.ListSubkeys(ctx)
		if err != nil {
			return "", err
		}
		name = ""
		for _, candidate := range names {
			if matchesBase(candidate, base) {
				name = candidate
				break
			}
		}
		if name == "" {
			return "", fmt.Errorf("%w: %s", ErrSubkeyNotFound, base)
		}
	}

	f, err := s.fs.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrSubkeyNotFound, base)
		}
		return "", fmt.Errorf("%w: open %s: %v", ErrStoreUnavailable, name, err)
	}
	defer func() { _ = f.Close() }() // safe to ignore

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(data), nil
}
