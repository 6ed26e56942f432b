package config

import (
	"fmt"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/hcl/v2/hclsimple"
)

// envPrefix namespaces every environment lookup, so Path reads
// DSFLAT_PATH rather than the shell's PATH.
const envPrefix = "DSFLAT_"

// Load assembles the effective configuration. flags carries only the
// values explicitly set on the command line; file is the HCL path ("" for
// none; the extension must be .hcl or .json). Sources merge first-wins:
// flags, then environment, then file, then Default.
func Load(file string, flags *Config) (*Config, error) {
	sources := make([]*Config, 0, 4)
	if flags != nil {
		sources = append(sources, flags)
	}

	envCfg := &Config{}
	if err := env.ParseWithOptions(envCfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	sources = append(sources, envCfg)

	if file != "" {
		fileCfg := &Config{}
		if err := hclsimple.DecodeFile(file, nil, fileCfg); err != nil {
			return nil, fmt.Errorf("decode config file %s: %w", file, err)
		}
		sources = append(sources, fileCfg)
	}
	sources = append(sources, Default())

	cfg := &Config{}
	for _, src := range sources {
		if err := mergo.Merge(cfg, src); err != nil {
			return nil, fmt.Errorf("merge config sources: %w", err)
		}
	}
	return cfg, cfg.validate()
}
