// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package token

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

// Transfer moves quantity from one existing account to another
func (p *Protocol) Transfer(
	ctx context.Context,
	sm protocol.StateManager,
	from name.Name,
	to name.Name,
	quantity action.Asset,
	memo string,
) (*action.TransactionLog, error) {
	if err := action.NewTransfer(from, to, quantity, memo).SanityCheck(); err != nil {
		return nil, err
	}
	if from == to {
		return nil, errors.Wrap(action.ErrInvalidAction, "cannot transfer to self")
	}
	for _, acct := range []name.Name{from, to} {
		exist, err := p.accounts.AccountExists(ctx, sm, acct)
		if err != nil {
			return nil, err
		}
		if !exist {
			return nil, errors.Wrapf(action.ErrNotFound, "account %s does not exist", acct)
		}
	}
	sender, err := loadBalance(sm, from, quantity.Symbol)
	if err != nil {
		return nil, err
	}
	recipient, err := loadBalance(sm, to, quantity.Symbol)
	if err != nil {
		return nil, err
	}
	if err := sender.SubBalance(quantity.Amount); err != nil {
		return nil, errors.Wrapf(
			state.ErrNotEnoughBalance,
			"sender %s balance %s, required amount %s",
			from,
			action.NewAsset(sender.amount, quantity.Symbol),
			quantity,
		)
	}
	if err := recipient.AddBalance(quantity.Amount); err != nil {
		return nil, errors.Wrapf(err, "failed to add balance %s", quantity)
	}
	if err := storeBalance(sm, from, quantity.Symbol, sender); err != nil {
		return nil, err
	}
	if err := storeBalance(sm, to, quantity.Symbol, recipient); err != nil {
		return nil, err
	}
	log.L().Debug("Transferred.",
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.Stringer("quantity", quantity),
		zap.String("memo", memo))
	return &action.TransactionLog{
		Sender:    from,
		Recipient: to,
		Amount:    quantity,
		Memo:      memo,
	}, nil
}

func (p *Protocol) handleTransfer(ctx context.Context, tsf *action.Transfer, sm protocol.StateManager) (*action.Receipt, error) {
	if err := protocol.RequireAuth(ctx, tsf.From()); err != nil {
		return nil, err
	}
	tLog, err := p.Transfer(ctx, sm, tsf.From(), tsf.To(), tsf.Quantity(), tsf.Memo())
	if err != nil {
		return nil, err
	}
	return p.createReceipt(ctx, tLog), nil
}
