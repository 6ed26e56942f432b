// Package config resolves the tool's runtime configuration by merging, in
// increasing priority: built-in defaults, an optional HCL file, DSFLAT_*
// environment variables, and command-line flags. The merged result selects
// and parameterizes the store binding.
package config

import (
	"time"

	"github.com/rs/zerolog"
)

// Store binding kinds accepted by the Store field.
const (
	StoreExec   = "exec"
	StoreHTTP   = "http"
	StoreDir    = "dir"
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

const defaultHTTPTimeout = 15 * time.Second

// Config holds every runtime knob. Fields are populated from HCL
// attributes (hcl tags) and environment variables (env tags, looked up
// with the DSFLAT_ prefix); flags arrive as a pre-filled Config.
type Config struct {
	// Store selects the binding kind: exec, http, dir, json or sqlite.
	Store string `hcl:"store,optional" env:"STORE"`

	// Command is the store utility the exec binding shells out to.
	Command string `hcl:"command,optional" env:"COMMAND"`

	// ListArgs are the arguments for the utility's subkey listing call.
	ListArgs []string `hcl:"list_args,optional" env:"LIST_ARGS"`

	// FetchArgs are the arguments for the utility's dump call; the subkey
	// base name is appended as the final argument.
	FetchArgs []string `hcl:"fetch_args,optional" env:"FETCH_ARGS"`

	// URL is the base URL of the http binding's remote store.
	URL string `hcl:"url,optional" env:"URL"`

	// HTTPTimeout bounds one http round-trip, in time.ParseDuration form.
	HTTPTimeout string `hcl:"http_timeout,optional" env:"HTTP_TIMEOUT"`

	// Path locates the snapshot for the dir, json and sqlite bindings.
	Path string `hcl:"path,optional" env:"PATH"`

	// LogLevel is the zerolog level name for stderr diagnostics.
	LogLevel string `hcl:"log_level,optional" env:"LOG_LEVEL"`
}

// Default returns the built-in configuration: an exec store with no
// command yet (the command must come from a higher-priority source) and
// conservative ambient settings.
func Default() *Config {
	return &Config{
		Store:       StoreExec,
		HTTPTimeout: defaultHTTPTimeout.String(),
		LogLevel:    zerolog.LevelInfoValue,
	}
}

// Timeout returns HTTPTimeout parsed. Load has already validated the
// string; an unvalidated Config falls back to the default.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.HTTPTimeout)
	if err != nil {
		return defaultHTTPTimeout
	}
	return d
}

// Level returns LogLevel parsed. Same contract as Timeout.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
