// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package action

import (
	"io"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/worbli/sysgov/name"
)

// MaxMemoSize is the maximum byte length of a transfer memo
const MaxMemoSize = 256

// Transfer moves tokens between accounts
type Transfer struct {
	from     name.Name
	to       name.Name
	quantity Asset
	memo     string
}

// NewTransfer returns a Transfer action
func NewTransfer(from, to name.Name, quantity Asset, memo string) *Transfer {
	return &Transfer{
		from:     from,
		to:       to,
		quantity: quantity,
		memo:     memo,
	}
}

// From returns the sender
func (tsf *Transfer) From() name.Name { return tsf.from }

// To returns the recipient
func (tsf *Transfer) To() name.Name { return tsf.to }

// Quantity returns the amount transferred
func (tsf *Transfer) Quantity() Asset { return tsf.quantity }

// Memo returns the memo
func (tsf *Transfer) Memo() string { return tsf.memo }

// Kind returns the action name
func (tsf *Transfer) Kind() string { return TransferKind }

// SanityCheck validates the variables in the action
func (tsf *Transfer) SanityCheck() error {
	if !tsf.quantity.IsValid() {
		return errors.Wrapf(ErrInvalidAsset, "invalid quantity %s", tsf.quantity)
	}
	if tsf.quantity.Amount <= 0 {
		return errors.Wrapf(ErrInvalidAsset, "must transfer positive quantity")
	}
	if len(tsf.memo) > MaxMemoSize {
		return errors.Wrapf(ErrInvalidAction, "memo has more than %d bytes", MaxMemoSize)
	}
	return nil
}

// EncodeRLP implements rlp.Encoder
func (tsf *Transfer) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, []any{tsf.from.Uint64(), tsf.to.Uint64(), tsf.quantity, tsf.memo})
}
