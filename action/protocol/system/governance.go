// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package system

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/worbli/sysgov/action"
	"github.com/worbli/sysgov/action/protocol"
	"github.com/worbli/sysgov/blockchain/genesis"
	"github.com/worbli/sysgov/name"
	"github.com/worbli/sysgov/pkg/log"
)

// SetRAM raises the RAM ceiling
func (p *Protocol) SetRAM(ctx context.Context, gs *GlobalState, maxRAMSize uint64) error {
	g := genesis.MustExtractGenesisContext(ctx)
	if err := protocol.RequireAuth(ctx, g.SystemAccount()); err != nil {
		return err
	}
	if maxRAMSize <= gs.MaxRAMSize {
		return errors.Wrapf(action.ErrInvalidTransition, "ram may only be increased, current %d", gs.MaxRAMSize)
	}
	if maxRAMSize >= action.MaxRAMSizeLimit {
		return errors.Wrapf(action.ErrOutOfRange, "ram size %d is unrealistic", maxRAMSize)
	}
	if maxRAMSize <= gs.TotalRAMBytesReserved {
		return errors.Wrapf(action.ErrOutOfRange, "attempt to set max below reserved %d", gs.TotalRAMBytesReserved)
	}
	log.L().Info("Raised ram ceiling.", zap.Uint64("from", gs.MaxRAMSize), zap.Uint64("to", maxRAMSize))
	gs.MaxRAMSize = maxRAMSize
	return nil
}

// SetUsageLevel raises the network usage level
func (p *Protocol) SetUsageLevel(ctx context.Context, gs *GlobalState, level uint8) error {
	g := genesis.MustExtractGenesisContext(ctx)
	if err := protocol.RequireAuth(ctx, g.UsageAdmin()); err != nil {
		return err
	}
	if level <= gs.NetworkUsageLevel {
		return errors.Wrapf(action.ErrInvalidTransition, "usage level may only be increased, current %d", gs.NetworkUsageLevel)
	}
	if level > genesis.MaxUsageLevel {
		return errors.Wrapf(action.ErrOutOfRange, "usage level cannot exceed %d", genesis.MaxUsageLevel)
	}
	if level == 0 {
		return errors.Wrap(action.ErrOutOfRange, "usage level must be positive")
	}
	log.L().Info("Raised network usage level.", zap.Uint8("from", gs.NetworkUsageLevel), zap.Uint8("to", level))
	gs.NetworkUsageLevel = level
	return nil
}

// SetParams replaces the blockchain parameters and applies them to the chain
func (p *Protocol) SetParams(ctx context.Context, sm protocol.StateManager, gs *GlobalState, params action.BlockchainParameters) error {
	g := genesis.MustExtractGenesisContext(ctx)
	if err := protocol.RequireAuth(ctx, g.ParamsAdmin()); err != nil {
		return err
	}
	if params.MaxAuthorityDepth < action.MinAuthorityDepth {
		return errors.Wrapf(action.ErrInvalidTransition, "max authority depth should be at least %d", action.MinAuthorityDepth)
	}
	if err := p.chain.ApplyParameters(ctx, sm, params); err != nil {
		return err
	}
	gs.BlockchainParameters = params
	log.L().Info("Set blockchain parameters.", zap.Uint16("maxAuthorityDepth", params.MaxAuthorityDepth))
	return nil
}

// SetPriv sets or clears the privileged flag of an account
func (p *Protocol) SetPriv(ctx context.Context, sm protocol.StateManager, acct name.Name, isPriv bool) error {
	g := genesis.MustExtractGenesisContext(ctx)
	if err := protocol.RequireAuth(ctx, g.SystemAccount()); err != nil {
		return err
	}
	exist, err := p.chain.AccountExists(ctx, sm, acct)
	if err != nil {
		return err
	}
	if !exist {
		return errors.Wrapf(action.ErrNotFound, "account %s does not exist", acct)
	}
	if err := p.chain.SetPrivileged(ctx, sm, acct, isPriv); err != nil {
		return err
	}
	log.L().Info("Set privilege.", zap.Stringer("account", acct), zap.Bool("isPriv", isPriv))
	return nil
}
