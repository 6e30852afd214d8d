// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package config

import (
	"os"

	"github.com/pkg/errors"
	uconfig "go.uber.org/config"

	"github.com/worbli/sysgov/blockchain/genesis"
	"github.com/worbli/sysgov/db"
	"github.com/worbli/sysgov/pkg/log"
	"github.com/worbli/sysgov/pkg/tracer"
)

// IMPORTANT: to define a config, add a field or a new config type to the existing config types. In addition, provide
// the default value in Default var.

var (
	// Default is the default config
	Default = Config{
		Chain: Chain{
			ID: 1,
		},
		DB:      db.DefaultConfig,
		Genesis: genesis.Default,
		Tracer: tracer.Config{
			ServiceName: "sysgov",
		},
	}

	// ErrInvalidCfg indicates the invalid config value
	ErrInvalidCfg = errors.New("invalid config value")

	// Validates is the collection config validation functions
	Validates = []Validate{
		ValidateChain,
		ValidateDB,
		ValidateGenesis,
	}
)

type (
	// Chain is the config struct for the chain service
	Chain struct {
		// ID identifies the chain in logs and traces
		ID uint32 `yaml:"id"`
		// GenesisPath overrides the genesis section with a standalone genesis file
		GenesisPath string `yaml:"genesisPath"`
	}

	// Config is the root config struct, each package's config should be put as its sub struct
	Config struct {
		Chain   Chain            `yaml:"chain"`
		DB      db.Config        `yaml:"db"`
		Genesis genesis.Genesis  `yaml:"genesis"`
		Log     log.GlobalConfig `yaml:"log"`
		Tracer  tracer.Config    `yaml:"tracer"`
	}

	// Validate is the interface of validating the config
	Validate func(Config) error
)

// New creates a config instance. It first loads the default configs. If the config paths are not empty, it will read
// from the files and override the default configs. By default, it will apply all validation functions. To bypass
// validation, use DoNotValidate instead.
func New(configPaths []string, validates ...Validate) (Config, error) {
	opts := make([]uconfig.YAMLOption, 0)
	opts = append(opts, uconfig.Static(Default))
	opts = append(opts, uconfig.Expand(os.LookupEnv))
	for _, path := range configPaths {
		if path != "" {
			opts = append(opts, uconfig.File(path))
		}
	}
	yaml, err := uconfig.NewYAML(opts...)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to init config")
	}

	var cfg Config
	if err := yaml.Get(uconfig.Root).Populate(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to unmarshal YAML config to struct")
	}

	if cfg.Chain.GenesisPath != "" {
		g, err := genesis.New(cfg.Chain.GenesisPath)
		if err != nil {
			return Config{}, errors.Wrapf(err, "failed to load genesis from %s", cfg.Chain.GenesisPath)
		}
		cfg.Genesis = g
	}

	// By default, the config needs to pass all the validation
	if len(validates) == 0 {
		validates = Validates
	}
	for _, validate := range validates {
		if err := validate(cfg); err != nil {
			return Config{}, errors.Wrap(err, "failed to validate config")
		}
	}
	return cfg, nil
}

// ValidateChain validates the chain configs
func ValidateChain(cfg Config) error {
	if cfg.Chain.ID == 0 {
		return errors.Wrap(ErrInvalidCfg, "chain id should be greater than 0")
	}
	return nil
}

// ValidateDB validates the db configs
func ValidateDB(cfg Config) error {
	if cfg.DB.DbPath == "" {
		return errors.Wrap(ErrInvalidCfg, "db path cannot be empty")
	}
	if err := cfg.DB.Validate(); err != nil {
		return errors.Wrapf(ErrInvalidCfg, "invalid db config: %v", err)
	}
	return nil
}

// ValidateGenesis validates the genesis configs
func ValidateGenesis(cfg Config) error {
	if err := cfg.Genesis.Validate(); err != nil {
		return errors.Wrapf(ErrInvalidCfg, "invalid genesis: %v", err)
	}
	return nil
}

// DoNotValidate validates the given config
func DoNotValidate(cfg Config) error { return nil }
