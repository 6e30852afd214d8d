// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"
)

func newApplyCmd(opts *rootOptions) *cobra.Command {
	var keepGoing bool
	cmd := &cobra.Command{
		Use:   "apply ACTION_FILE",
		Short: "Apply the actions of a YAML file in order",
		Long: `Apply the actions of a YAML file in order, each action in its own block.
The file is a list of actions, e.g.

- actor: eosio
  action: setram
  maxRAMSize: 137438953472
- actor: alice
  action: bidname
  bidder: alice
  newName: wbi
  bid: "10.0000 SYS"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			specs, err := loadActionFile(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			cs, err := opts.startChainService(ctx)
			if err != nil {
				return err
			}
			defer stopChainService(ctx, cs, &err)

			tb := table.New("#", "Action", "Actor", "Height", "Result").WithWriter(cmd.OutOrStdout())
			defer tb.Print()
			failed := 0
			for i, spec := range specs {
				elp, err := spec.envelope()
				if err == nil {
					receipt, execErr := cs.Execute(ctx, elp)
					if execErr == nil {
						tb.AddRow(i, spec.Action, spec.Actor, receipt.BlockHeight, fmt.Sprintf("ok, %d transfers", len(receipt.TransactionLogs())))
						continue
					}
					err = execErr
				}
				failed++
				tb.AddRow(i, spec.Action, spec.Actor, "-", err.Error())
				if !keepGoing {
					return errors.Wrapf(err, "action #%d failed", i)
				}
			}
			if failed > 0 {
				return errors.Errorf("%d of %d actions failed", failed, len(specs))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "apply the remaining actions after a failure")
	return cmd
}
