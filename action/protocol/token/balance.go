// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package token

import (
	"context"
	"math"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/worbli/sysgov/action"
	"github.com/worbli/sysgov/action/protocol"
	"github.com/worbli/sysgov/name"
	"github.com/worbli/sysgov/state"
)

// balance is the amount of one symbol held by an account
type balance struct {
	precision uint8
	amount    int64
}

type balanceRecord struct {
	Precision uint8
	Amount    uint64
}

// Serialize serializes balance into bytes
func (b *balance) Serialize() ([]byte, error) {
	return rlp.EncodeToBytes(&balanceRecord{
		Precision: b.precision,
		Amount:    uint64(b.amount),
	})
}

// Deserialize deserializes bytes into balance
func (b *balance) Deserialize(data []byte) error {
	var r balanceRecord
	if err := rlp.DecodeBytes(data, &r); err != nil {
		return errors.Wrap(state.ErrStateDeserialization, err.Error())
	}
	b.precision = r.Precision
	b.amount = int64(r.Amount)
	return nil
}

// AddBalance adds amount to the balance
func (b *balance) AddBalance(amount int64) error {
	if amount < 0 {
		return errors.Wrapf(action.ErrInvalidAsset, "negative amount %d", amount)
	}
	if b.amount > math.MaxInt64-amount {
		return errors.Wrap(action.ErrOutOfRange, "balance overflow")
	}
	b.amount += amount
	return nil
}

// SubBalance subtracts amount from the balance
func (b *balance) SubBalance(amount int64) error {
	if amount < 0 {
		return errors.Wrapf(action.ErrInvalidAsset, "negative amount %d", amount)
	}
	if amount > b.amount {
		return state.ErrNotEnoughBalance
	}
	b.amount -= amount
	return nil
}

func balanceKey(owner name.Name, code string) []byte {
	return append(owner.Bytes(), []byte(code)...)
}

func balanceOptions(owner name.Name, code string) []protocol.StateOption {
	return []protocol.StateOption{protocol.NamespaceOption(TokenNameSpace), protocol.KeyOption(balanceKey(owner, code))}
}

// loadBalance loads the balance of owner in sym, a missing balance is zero
func loadBalance(sr protocol.StateReader, owner name.Name, sym action.Symbol) (*balance, error) {
	b := balance{precision: sym.Precision}
	_, err := sr.State(&b, balanceOptions(owner, sym.Code)...)
	switch errors.Cause(err) {
	case nil:
		if b.precision != sym.Precision {
			return nil, errors.Wrapf(action.ErrInvalidAsset, "symbol precision mismatch, %s has precision %d", sym.Code, b.precision)
		}
		return &b, nil
	case state.ErrStateNotExist:
		return &balance{precision: sym.Precision}, nil
	default:
		return nil, errors.Wrapf(err, "failed to load balance of %s", owner)
	}
}

func storeBalance(sm protocol.StateManager, owner name.Name, sym action.Symbol, b *balance) error {
	_, err := sm.PutState(b, balanceOptions(owner, sym.Code)...)
	return errors.Wrapf(err, "failed to store balance of %s", owner)
}

// Balance returns the balance of owner in sym
func (p *Protocol) Balance(_ context.Context, sr protocol.StateReader, owner name.Name, sym action.Symbol) (action.Asset, error) {
	b, err := loadBalance(sr, owner, sym)
	if err != nil {
		return action.Asset{}, err
	}
	return action.NewAsset(b.amount, sym), nil
}
