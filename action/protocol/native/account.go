// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package native

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/worbli/sysgov/action"
	"github.com/worbli/sysgov/action/protocol"
	"github.com/worbli/sysgov/name"
	"github.com/worbli/sysgov/pkg/log"
	"github.com/worbli/sysgov/state"
)

// UnlimitedResource is the resource limit without quota
const UnlimitedResource = int64(-1)

// AccountExists returns true if the account has been created
func (p *Protocol) AccountExists(_ context.Context, sr protocol.StateReader, n name.Name) (bool, error) {
	_, err := p.loadAccount(sr, n)
	switch errors.Cause(err) {
	case nil:
		return true, nil
	case action.ErrNotFound:
		return false, nil
	default:
		return false, err
	}
}

// Account returns the account
func (p *Protocol) Account(_ context.Context, sr protocol.StateReader, n name.Name) (*Account, error) {
	return p.loadAccount(sr, n)
}

// Accounts returns all accounts in name order
func (p *Protocol) Accounts(_ context.Context, sr protocol.StateReader) ([]*Account, error) {
	_, iter, err := sr.States(protocol.NamespaceOption(AccountNameSpace))
	if err != nil {
		return nil, err
	}
	accts := make([]*Account, 0, iter.Size())
	for i := 0; i < iter.Size(); i++ {
		acct := &Account{}
		if _, err := iter.Next(acct); err != nil {
			return nil, errors.Wrap(err, "failed to deserialize account")
		}
		accts = append(accts, acct)
	}
	return accts, nil
}

// CreateAccount creates the account newName on behalf of creator
func (p *Protocol) CreateAccount(ctx context.Context, sm protocol.StateManager, creator, newName name.Name) error {
	if newName.IsEmpty() {
		return errors.Wrap(action.ErrNamingPolicy, "account name cannot be empty")
	}
	exist, err := p.AccountExists(ctx, sm, newName)
	if err != nil {
		return err
	}
	if exist {
		return errors.Wrapf(action.ErrNamingPolicy, "account %s already exists", newName)
	}
	acct := Account{
		Name:    newName,
		Creator: creator,
	}
	if blkCtx, ok := protocol.GetBlockCtx(ctx); ok {
		acct.CreatedAt = blkCtx.BlockTimeStamp.UTC()
	}
	if err := p.putState(sm, AccountNameSpace, newName.Bytes(), &acct); err != nil {
		return errors.Wrapf(err, "failed to store account %s", newName)
	}
	log.L().Debug("Created account.", zap.Stringer("account", newName), zap.Stringer("creator", creator))
	return nil
}

// SetPrivileged sets or clears the privileged flag of the account
func (p *Protocol) SetPrivileged(_ context.Context, sm protocol.StateManager, n name.Name, isPriv bool) error {
	acct, err := p.loadAccount(sm, n)
	if err != nil {
		return err
	}
	acct.Privileged = isPriv
	if err := p.putState(sm, AccountNameSpace, n.Bytes(), acct); err != nil {
		return errors.Wrapf(err, "failed to store account %s", n)
	}
	return nil
}

// SetResourceLimits sets the resource quotas of the account
func (p *Protocol) SetResourceLimits(_ context.Context, sm protocol.StateManager, n name.Name, ram, net, cpu int64) error {
	if _, err := p.loadAccount(sm, n); err != nil {
		return err
	}
	for _, v := range []int64{ram, net, cpu} {
		if v < UnlimitedResource {
			return errors.Wrapf(action.ErrOutOfRange, "invalid resource limit %d", v)
		}
	}
	if err := p.putState(sm, LimitsNameSpace, n.Bytes(), &ResourceLimits{RAM: ram, Net: net, CPU: cpu}); err != nil {
		return errors.Wrapf(err, "failed to store resource limits of %s", n)
	}
	return nil
}

// ResourceLimits returns the resource quotas of the account, an account never limited is unlimited
func (p *Protocol) ResourceLimits(_ context.Context, sr protocol.StateReader, n name.Name) (ResourceLimits, error) {
	if _, err := p.loadAccount(sr, n); err != nil {
		return ResourceLimits{}, err
	}
	limits := ResourceLimits{}
	err := p.state(sr, LimitsNameSpace, n.Bytes(), &limits)
	switch errors.Cause(err) {
	case nil:
		return limits, nil
	case state.ErrStateNotExist:
		return ResourceLimits{RAM: UnlimitedResource, Net: UnlimitedResource, CPU: UnlimitedResource}, nil
	default:
		return ResourceLimits{}, err
	}
}

func (p *Protocol) loadAccount(sr protocol.StateReader, n name.Name) (*Account, error) {
	acct := Account{}
	if err := p.state(sr, AccountNameSpace, n.Bytes(), &acct); err != nil {
		if errors.Cause(err) == state.ErrStateNotExist {
			return nil, errors.Wrapf(action.ErrNotFound, "account %s does not exist", n)
		}
		return nil, err
	}
	return &acct, nil
}
