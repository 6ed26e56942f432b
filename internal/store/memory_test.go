package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_InsertionOrder(t *testing.T) {
	s := NewMemoryStore()
	s.SetDump("b", "x : 1")
	s.SetDump("a", "y : 2")
	s.SetDump("b", "x : 3") // replace keeps position

	names, err := s.ListSubkeys(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, names)

	dump, err := s.FetchRaw(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, "x : 3", dump)
}

func TestMemoryStore_BaseLookup(t *testing.T) {
	s := NewMemoryStore()
	s.SetDump("mykey:State", "a : 1")

	dump, err := s.FetchRaw(context.Background(), "mykey")
	require.NoError(t, err)
	assert.Equal(t, "a : 1", dump)

	_, err = s.FetchRaw(context.Background(), "other")
	assert.ErrorIs(t, err, ErrSubkeyNotFound)
}

func TestMemoryStore_ContextCanceled(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ListSubkeys(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
