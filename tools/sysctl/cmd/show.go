// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package cmd

import (
	"encoding/hex"
	"strconv"

	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/worbli/sysgov/action"
	"github.com/worbli/sysgov/chainservice"
	"github.com/worbli/sysgov/name"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	show := &cobra.Command{
		Use:   "show",
		Short: "Show the chain state",
	}
	show.AddCommand(
		newShowSubCmd(opts, "global", "Show the global state", cobra.NoArgs, showGlobal),
		newShowSubCmd(opts, "producers", "Show the registered producers", cobra.NoArgs, showProducers),
		newShowSubCmd(opts, "bids", "Show the name auctions", cobra.NoArgs, showBids),
		newShowSubCmd(opts, "account NAME", "Show an account, its resources and balance", cobra.ExactArgs(1), showAccount),
	)
	return show
}

type showFunc func(cmd *cobra.Command, cs *chainservice.ChainService, args []string) error

func newShowSubCmd(opts *rootOptions, use, short string, args cobra.PositionalArgs, fn showFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()
			cs, err := opts.startChainService(ctx)
			if err != nil {
				return err
			}
			defer stopChainService(ctx, cs, &err)
			return fn(cmd, cs, args)
		},
	}
}

func showGlobal(cmd *cobra.Command, cs *chainservice.ChainService, _ []string) error {
	ctx := cs.ReadContext(cmd.Context())
	gs, err := cs.System().GlobalState(ctx, cs.StateFactory())
	if err != nil {
		return err
	}
	height, err := cs.Height()
	if err != nil {
		return err
	}
	tb := table.New("Field", "Value").WithWriter(cmd.OutOrStdout())
	tb.AddRow("height", height)
	tb.AddRow("maxRAMSize", gs.MaxRAMSize)
	tb.AddRow("totalRAMBytesReserved", gs.TotalRAMBytesReserved)
	tb.AddRow("freeRAM", gs.FreeRAM())
	tb.AddRow("networkUsageLevel", gs.NetworkUsageLevel)
	tb.AddRow("maxAuthorityDepth", gs.MaxAuthorityDepth)
	tb.AddRow("lastProducerScheduleSize", gs.LastProducerScheduleSize)
	tb.AddRow("lastProducerScheduleUpdate", gs.LastProducerScheduleUpdate)
	tb.AddRow("lastNameClose", gs.LastNameClose)
	tb.Print()
	return nil
}

func showProducers(cmd *cobra.Command, cs *chainservice.ChainService, _ []string) error {
	ctx := cs.ReadContext(cmd.Context())
	prods, err := cs.System().Producers(ctx, cs.StateFactory())
	if err != nil {
		return err
	}
	tb := table.New("Owner", "Key", "URL", "Location", "Active").WithWriter(cmd.OutOrStdout())
	for _, p := range prods {
		tb.AddRow(p.Owner, hex.EncodeToString(p.ProducerKey), p.URL, p.Location, p.IsActive)
	}
	tb.Print()
	if proposed, err := cs.Native().ProposedSchedule(ctx, cs.StateFactory()); err == nil {
		keys, err := action.DecodeProducerSchedule(proposed.Raw)
		if err != nil {
			return err
		}
		tb = table.New("Version", "Producer", "Signing Key").WithWriter(cmd.OutOrStdout())
		for _, k := range keys {
			tb.AddRow(proposed.Version, k.ProducerName, hex.EncodeToString(k.BlockSigningKey))
		}
		tb.Print()
	}
	return nil
}

func showBids(cmd *cobra.Command, cs *chainservice.ChainService, _ []string) error {
	ctx := cs.ReadContext(cmd.Context())
	bids, err := cs.System().NameBids(ctx, cs.StateFactory())
	if err != nil {
		return err
	}
	sym := cs.Genesis().TokenSymbol()
	tb := table.New("Name", "High Bidder", "High Bid", "Last Bid", "Open").WithWriter(cmd.OutOrStdout())
	for _, b := range bids {
		tb.AddRow(b.NewName, b.HighBidder, action.NewAsset(b.HighBid, sym), b.LastBidTime, b.IsOpen())
	}
	tb.Print()
	return nil
}

func showAccount(cmd *cobra.Command, cs *chainservice.ChainService, args []string) error {
	n, err := name.FromString(args[0])
	if err != nil {
		return err
	}
	ctx := cs.ReadContext(cmd.Context())
	acct, err := cs.Native().Account(ctx, cs.StateFactory(), n)
	if err != nil {
		return err
	}
	limits, err := cs.Native().ResourceLimits(ctx, cs.StateFactory(), n)
	if err != nil {
		return err
	}
	bal, err := cs.Token().Balance(ctx, cs.StateFactory(), n, cs.Genesis().TokenSymbol())
	if err != nil {
		return err
	}
	tb := table.New("Field", "Value").WithWriter(cmd.OutOrStdout())
	tb.AddRow("name", acct.Name)
	tb.AddRow("creator", acct.Creator)
	tb.AddRow("createdAt", acct.CreatedAt)
	tb.AddRow("privileged", acct.Privileged)
	tb.AddRow("ramLimit", formatLimit(limits.RAM))
	tb.AddRow("netLimit", formatLimit(limits.Net))
	tb.AddRow("cpuLimit", formatLimit(limits.CPU))
	tb.AddRow("balance", bal)
	if res, err := cs.System().UserResources(ctx, cs.StateFactory(), n); err == nil {
		tb.AddRow("netWeight", res.NetWeight)
		tb.AddRow("cpuWeight", res.CPUWeight)
		tb.AddRow("ramBytes", res.RAMBytes)
	}
	tb.Print()
	return nil
}

func formatLimit(v int64) string {
	if v < 0 {
		return "unlimited"
	}
	return strconv.FormatInt(v, 10)
}
