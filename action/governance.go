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

type (
	// SetRAM raises the RAM ceiling of the chain
	SetRAM struct {
		maxRAMSize uint64
	}

	// SetUsageLevel raises the network usage level
	SetUsageLevel struct {
		level uint8
	}

	// SetParams replaces the blockchain parameters
	SetParams struct {
		params BlockchainParameters
	}

	// SetPriv sets or clears the privileged flag of an account
	SetPriv struct {
		account name.Name
		isPriv  bool
	}
)

// NewSetRAM returns a SetRAM action
func NewSetRAM(maxRAMSize uint64) *SetRAM {
	return &SetRAM{maxRAMSize: maxRAMSize}
}

// MaxRAMSize returns the requested RAM ceiling
func (act *SetRAM) MaxRAMSize() uint64 { return act.maxRAMSize }

// Kind returns the action name
func (act *SetRAM) Kind() string { return SetRAMKind }

// SanityCheck validates the variables in the action
func (act *SetRAM) SanityCheck() error { return nil }

// EncodeRLP implements rlp.Encoder
func (act *SetRAM) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, []any{act.maxRAMSize})
}

// NewSetUsageLevel returns a SetUsageLevel action
func NewSetUsageLevel(level uint8) *SetUsageLevel {
	return &SetUsageLevel{level: level}
}

// Level returns the requested usage level
func (act *SetUsageLevel) Level() uint8 { return act.level }

// Kind returns the action name
func (act *SetUsageLevel) Kind() string { return SetUsageLevelKind }

// SanityCheck validates the variables in the action
func (act *SetUsageLevel) SanityCheck() error { return nil }

// EncodeRLP implements rlp.Encoder
func (act *SetUsageLevel) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, []any{act.level})
}

// NewSetParams returns a SetParams action
func NewSetParams(params BlockchainParameters) *SetParams {
	return &SetParams{params: params}
}

// Params returns the requested parameters
func (act *SetParams) Params() BlockchainParameters { return act.params }

// Kind returns the action name
func (act *SetParams) Kind() string { return SetParamsKind }

// SanityCheck validates the variables in the action
func (act *SetParams) SanityCheck() error { return nil }

// EncodeRLP implements rlp.Encoder
func (act *SetParams) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &act.params)
}

// NewSetPriv returns a SetPriv action
func NewSetPriv(account name.Name, isPriv bool) *SetPriv {
	return &SetPriv{account: account, isPriv: isPriv}
}

// Account returns the target account
func (act *SetPriv) Account() name.Name { return act.account }

// IsPriv returns the requested flag
func (act *SetPriv) IsPriv() bool { return act.isPriv }

// Kind returns the action name
func (act *SetPriv) Kind() string { return SetPrivKind }

// SanityCheck validates the variables in the action
func (act *SetPriv) SanityCheck() error { return nil }

// EncodeRLP implements rlp.Encoder
func (act *SetPriv) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, []any{act.account.Uint64(), act.isPriv})
}
