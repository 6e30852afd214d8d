// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package cmd

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/worbli/sysgov/chainservice"
	"github.com/worbli/sysgov/config"
	"github.com/worbli/sysgov/pkg/log"
)

type rootOptions struct {
	configPaths []string
	dbPath      string
}

// NewRootCmd returns the sysctl command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "sysctl",
		Short:        "Command-line tool to drive the system account of a chain",
		Long:         "Command-line tool to apply system actions to a chain state store and inspect the result.",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringSliceVar(&opts.configPaths, "config", nil, "config files, later files override earlier ones")
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "state store path, overrides the config")
	root.AddCommand(newApplyCmd(opts), newShowCmd(opts))
	return root
}

// startChainService loads the config and opens the chain
func (opts *rootOptions) startChainService(ctx context.Context) (*chainservice.ChainService, error) {
	cfg, err := config.New(opts.configPaths)
	if err != nil {
		return nil, err
	}
	if opts.dbPath != "" {
		cfg.DB.DbPath = opts.dbPath
	}
	if err := log.InitLoggers(cfg.Log); err != nil {
		return nil, errors.Wrap(err, "failed to init logger")
	}
	cs, err := chainservice.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := cs.Start(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to start chain service")
	}
	return cs, nil
}

func stopChainService(ctx context.Context, cs *chainservice.ChainService, err *error) {
	if stopErr := cs.Stop(ctx); stopErr != nil && *err == nil {
		*err = errors.Wrap(stopErr, "failed to stop chain service")
	}
}
