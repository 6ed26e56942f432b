package cmd

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dynstore/dsflat/internal/config"
	"github.com/dynstore/dsflat/internal/store"
)

// buildStore constructs the binding the merged configuration selects.
// Config validation has already checked the required parameters, so
// failures here are the binding's own (an unopenable database, a bad URL).
func buildStore(cfg *config.Config, log zerolog.Logger) (store.Store, error) {
	log.Debug().Str("store", cfg.Store).Msg("building store binding")

	switch cfg.Store {
	case config.StoreExec:
		return store.NewExecStore(cfg.Command, cfg.ListArgs, cfg.FetchArgs)
	case config.StoreHTTP:
		return store.NewHTTPStore(store.HTTPConfig{BaseURL: cfg.URL, Timeout: cfg.Timeout()})
	case config.StoreDir:
		return store.NewDirStore(cfg.Path)
	case config.StoreJSON:
		return store.LoadJSONStore(cfg.Path)
	case config.StoreSQLite:
		return store.OpenSQLiteStore(cfg.Path)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownStore, cfg.Store)
	}
}
