package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// snapshotDoc is the JSON snapshot the end-to-end runs query.
const snapshotDoc = `{
	"net:State": {
		"Addresses": ["192.168.1.5"],
		"Router": "192.168.1.1"
	},
	"ver": "1.2"
}`

// writeSnapshot places the snapshot in a temp dir and returns its path.
func writeSnapshot(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snap.json")
	require.NoError(t, os.WriteFile(path, []byte(snapshotDoc), 0o600))
	return path
}

// runCLI executes the root command in-process and captures stdout. Every
// call passes the full store flags; flag values persist across Execute
// calls within one test binary.
func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestCLIDump(t *testing.T) {
	snap := writeSnapshot(t)

	out := runCLI(t, "dump", "--store", "json", "--path", snap)
	assert.Equal(t,
		"net,Addresses,0,192.168.1.5\n"+
			"net,Router,192.168.1.1\n"+
			"ver,1.2\n", out)
}

func TestCLIMatch(t *testing.T) {
	snap := writeSnapshot(t)

	out := runCLI(t, "match", "net,Addresses", "--store", "json", "--path", snap)
	assert.Equal(t, "net,Addresses,0,192.168.1.5\n", out)
}

func TestCLIMatchNothing(t *testing.T) {
	snap := writeSnapshot(t)

	out := runCLI(t, "match", "absent,key", "--store", "json", "--path", snap)
	assert.Empty(t, out)
}

func TestCLIKeys(t *testing.T) {
	snap := writeSnapshot(t)

	out := runCLI(t, "keys", "--store", "json", "--path", snap)
	assert.Equal(t, "net:State\nver\n", out)
}

// brokenWriter fails every write.
type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("sink closed") }

func TestCLIKeysWriteError(t *testing.T) {
	snap := writeSnapshot(t)

	rootCmd.SetOut(brokenWriter{})
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"keys", "--store", "json", "--path", snap})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.ErrorContains(t, err, "sink closed")
}

func TestCLIDirStore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mykey:State"),
		[]byte("CurrentSet : /Sets/0\n"), 0o644))

	out := runCLI(t, "dump", "--store", "dir", "--path", dir)
	assert.Equal(t, "mykey,CurrentSet,/Sets/0\n", out)
}

func TestCLIRejectsUnknownStore(t *testing.T) {
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"dump", "--store", "etcd", "--path", "x"})
	require.Error(t, rootCmd.Execute())
}
