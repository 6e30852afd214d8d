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
	"github.com/worbli/sysgov/blockchain/genesis"
	"github.com/worbli/sysgov/name"
	"github.com/worbli/sysgov/pkg/log"
)

const (
	// ProtocolID is the protocol ID
	ProtocolID = "token"
	// TokenNameSpace is the namespace of the balances
	TokenNameSpace = "Token"
)

type (
	// AccountChecker tells whether an account exists
	AccountChecker interface {
		AccountExists(context.Context, protocol.StateReader, name.Name) (bool, error)
	}

	// Protocol defines the protocol of the token ledger. It keeps one balance per account and symbol, and moves
	// tokens between existing accounts.
	Protocol struct {
		accounts AccountChecker
	}
)

// NewProtocol instantiates the protocol of token ledger
func NewProtocol(accounts AccountChecker) *Protocol {
	return &Protocol{accounts: accounts}
}

// Name returns the name of protocol
func (p *Protocol) Name() string {
	return ProtocolID
}

// Handle handles a transfer
func (p *Protocol) Handle(ctx context.Context, act action.Action, sm protocol.StateManager) (*action.Receipt, error) {
	switch act := act.(type) {
	case *action.Transfer:
		return p.handleTransfer(ctx, act, sm)
	}
	return nil, nil
}

// Validate validates a transfer
func (p *Protocol) Validate(_ context.Context, act action.Action, _ protocol.StateReader) error {
	switch act := act.(type) {
	case *action.Transfer:
		return act.SanityCheck()
	}
	return nil
}

// CreateGenesisStates issues the initial balances
func (p *Protocol) CreateGenesisStates(ctx context.Context, sm protocol.StateManager) error {
	g := genesis.MustExtractGenesisContext(ctx)
	sym := g.TokenSymbol()
	owners, amounts := g.InitBalances()
	for i, owner := range owners {
		if amounts[i].Symbol != sym {
			return errors.Wrapf(action.ErrInvalidAsset, "initial balance of %s is not in %s", owner, sym)
		}
		if err := p.issue(sm, owner, amounts[i]); err != nil {
			return errors.Wrapf(err, "failed to issue initial balance to %s", owner)
		}
	}
	log.L().Info("Issued initial balances.", zap.Int("accounts", len(owners)), zap.String("symbol", sym.String()))
	return nil
}

func (p *Protocol) issue(sm protocol.StateManager, owner name.Name, quantity action.Asset) error {
	b, err := loadBalance(sm, owner, quantity.Symbol)
	if err != nil {
		return err
	}
	if err := b.AddBalance(quantity.Amount); err != nil {
		return err
	}
	return storeBalance(sm, owner, quantity.Symbol, b)
}

func (p *Protocol) createReceipt(ctx context.Context, logs ...*action.TransactionLog) *action.Receipt {
	blkCtx := protocol.MustGetBlockCtx(ctx)
	actionCtx := protocol.MustGetActionCtx(ctx)
	receipt := &action.Receipt{
		Status:      action.SuccessReceiptStatus,
		BlockHeight: blkCtx.BlockHeight,
		ActionHash:  actionCtx.ActionHash,
		ActionKind:  action.TransferKind,
	}
	return receipt.AddTransactionLogs(logs...)
}
