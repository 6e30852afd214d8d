// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package action

import (
	"io"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/worbli/sysgov/name"
)

// NewAccount creates an account
type NewAccount struct {
	creator name.Name
	newName name.Name
}

// NewNewAccount returns a NewAccount action
func NewNewAccount(creator, newName name.Name) *NewAccount {
	return &NewAccount{creator: creator, newName: newName}
}

// Creator returns the creating account
func (act *NewAccount) Creator() name.Name { return act.creator }

// NewName returns the name of the account to create
func (act *NewAccount) NewName() name.Name { return act.newName }

// Kind returns the action name
func (act *NewAccount) Kind() string { return NewAccountKind }

// SanityCheck validates the variables in the action
func (act *NewAccount) SanityCheck() error { return nil }

// EncodeRLP implements rlp.Encoder
func (act *NewAccount) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, []any{act.creator.Uint64(), act.newName.Uint64()})
}
