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

// NewAccount creates an account, enforcing the naming convention of premium names. Only the system account may
// create names shorter than 12 characters. A 12-character name with a dot can only be created by the account named
// after its suffix. The new account starts with empty resources and zero limits.
func (p *Protocol) NewAccount(ctx context.Context, sm protocol.StateManager, gs *GlobalState, creator, newName name.Name) error {
	if err := protocol.RequireAuth(ctx, creator); err != nil {
		return err
	}
	if newName.IsEmpty() {
		return errors.Wrap(action.ErrNamingPolicy, "account name cannot be empty")
	}
	exist, err := p.chain.AccountExists(ctx, sm, newName)
	if err != nil {
		return err
	}
	if exist {
		return errors.Wrapf(action.ErrNamingPolicy, "account %s already exists", newName)
	}
	g := genesis.MustExtractGenesisContext(ctx)
	if creator != g.SystemAccount() && newName.HasDotSlot() {
		if newName.Length() < name.MaxLength-1 {
			return errors.Wrap(action.ErrNamingPolicy, "account names must be 12 characters")
		}
		if creator != newName.Suffix() {
			return errors.Wrap(action.ErrNamingPolicy, "only suffix may create this account")
		}
	}

	if err := p.chain.CreateAccount(ctx, sm, creator, newName); err != nil {
		return err
	}
	sym := g.TokenSymbol()
	res := UserResources{
		Owner:     newName,
		NetWeight: action.NewAsset(0, sym),
		CPUWeight: action.NewAsset(0, sym),
	}
	if _, err := sm.PutState(&res, userResOptions(newName)...); err != nil {
		return errors.Wrapf(err, "failed to store resources of %s", newName)
	}
	if err := p.chain.SetResourceLimits(ctx, sm, newName, 0, 0, 0); err != nil {
		return err
	}

	b, err := p.NameBid(ctx, sm, newName)
	switch errors.Cause(err) {
	case nil:
		if b.IsOpen() {
			if err := p.closeBid(ctx, sm, gs, b); err != nil {
				return err
			}
		}
	case action.ErrNotFound:
	default:
		return err
	}
	log.L().Info("Provisioned account.", zap.Stringer("account", newName), zap.Stringer("creator", creator))
	return nil
}
