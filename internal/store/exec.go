package store

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// runnerFunc runs the store utility and returns its stdout. Swappable so
// tests can stub the external process.
type runnerFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecStore shells out to a store query utility: one argv to list subkeys
// (one name per line on stdout) and one to dump a subkey's tree, with the
// base name appended as the final argument.
type ExecStore struct {
	command   string
	listArgs  []string
	fetchArgs []string
	run       runnerFunc
}

var _ Store = (*ExecStore)(nil)

func NewExecStore(command string, listArgs, fetchArgs []string) (*ExecStore, error) {
	if command == "" {
		return nil, errors.New("exec store: command required")
	}
	return &ExecStore{
		command:   command,
		listArgs:  listArgs,
		fetchArgs: fetchArgs,
		run:       runCommand,
	}, nil
}

// ListSubkeys implements Store. Any failure to run the utility means the
// store cannot be reached.
func (s *ExecStore) ListSubkeys(ctx context.Context) ([]string, error) {
	out, err := s.run(ctx, s.command, s.listArgs...)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s list: %v", ErrStoreUnavailable, s.command, err)
	}

	var names []string
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		if name := strings.TrimSpace(sc.Text()); name != "" {
			names = append(names, name)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: scan %s output: %v", ErrStoreUnavailable, s.command, err)
	}
	return names, nil
}

// FetchRaw implements Store. A utility that cannot be started at all marks
// the store unavailable; a nonzero exit is read as the subkey not existing,
// which is how these utilities report unknown keys.
func (s *ExecStore) FetchRaw(ctx context.Context, base string) (string, error) {
	args := make([]string, 0, len(s.fetchArgs)+1)
	args = append(args, s.fetchArgs...)
	args = append(args, base)

	out, err := s.run(ctx, s.command, args...)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, s.command, err)
		}
		return "", fmt.Errorf("%w: %s %s: %v", ErrSubkeyNotFound, s.command, base, err)
	}
	return string(out), nil
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}
