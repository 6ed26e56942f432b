package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrUnknownStore marks a Store value naming no binding.
	ErrUnknownStore = errors.New("unknown store kind")

	// ErrIncompleteStore marks a selected binding missing a required
	// parameter.
	ErrIncompleteStore = errors.New("incomplete store configuration")
)

// validate checks the merged configuration before any store is built, so
// a bad setup fails here instead of mid-query.
func (c *Config) validate() error {
	switch c.Store {
	case StoreExec:
		if c.Command == "" {
			return fmt.Errorf("%w: exec store requires command", ErrIncompleteStore)
		}
	case StoreHTTP:
		if c.URL == "" {
			return fmt.Errorf("%w: http store requires url", ErrIncompleteStore)
		}
	case StoreDir, StoreJSON, StoreSQLite:
		if c.Path == "" {
			return fmt.Errorf("%w: %s store requires path", ErrIncompleteStore, c.Store)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStore, c.Store)
	}

	if _, err := time.ParseDuration(c.HTTPTimeout); err != nil {
		return fmt.Errorf("invalid http_timeout: %w", err)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}
