// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package native

import (
	"time"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/worbli/sysgov/action"
	"github.com/worbli/sysgov/name"
)

type (
	// Account is an account known by the chain
	Account struct {
		Name       name.Name
		Creator    name.Name
		CreatedAt  time.Time
		Privileged bool
	}

	// ResourceLimits are the resource quotas of an account, -1 stands for unlimited
	ResourceLimits struct {
		RAM int64
		Net int64
		CPU int64
	}

	// ProposedSchedule is the last producer schedule proposed to the chain
	ProposedSchedule struct {
		Version uint32
		Raw     []byte
	}

	chainParameters struct {
		action.BlockchainParameters
	}

	accountRecord struct {
		Name       uint64
		Creator    uint64
		CreatedAt  uint64
		Privileged bool
	}

	limitsRecord struct {
		RAM uint64
		Net uint64
		CPU uint64
	}
)

// Serialize serializes account into bytes
func (a *Account) Serialize() ([]byte, error) {
	return rlp.EncodeToBytes(&accountRecord{
		Name:       a.Name.Uint64(),
		Creator:    a.Creator.Uint64(),
		CreatedAt:  uint64(a.CreatedAt.UnixMicro()),
		Privileged: a.Privileged,
	})
}

// Deserialize deserializes bytes into account
func (a *Account) Deserialize(data []byte) error {
	var r accountRecord
	if err := rlp.DecodeBytes(data, &r); err != nil {
		return err
	}
	a.Name = name.Name(r.Name)
	a.Creator = name.Name(r.Creator)
	a.CreatedAt = time.UnixMicro(int64(r.CreatedAt)).UTC()
	a.Privileged = r.Privileged
	return nil
}

// Serialize serializes resource limits into bytes
func (l *ResourceLimits) Serialize() ([]byte, error) {
	return rlp.EncodeToBytes(&limitsRecord{
		RAM: uint64(l.RAM),
		Net: uint64(l.Net),
		CPU: uint64(l.CPU),
	})
}

// Deserialize deserializes bytes into resource limits
func (l *ResourceLimits) Deserialize(data []byte) error {
	var r limitsRecord
	if err := rlp.DecodeBytes(data, &r); err != nil {
		return err
	}
	l.RAM = int64(r.RAM)
	l.Net = int64(r.Net)
	l.CPU = int64(r.CPU)
	return nil
}

// Serialize serializes proposed schedule into bytes
func (s *ProposedSchedule) Serialize() ([]byte, error) {
	return rlp.EncodeToBytes(s)
}

// Deserialize deserializes bytes into proposed schedule
func (s *ProposedSchedule) Deserialize(data []byte) error {
	return rlp.DecodeBytes(data, s)
}

func (p *chainParameters) Serialize() ([]byte, error) {
	return rlp.EncodeToBytes(&p.BlockchainParameters)
}

func (p *chainParameters) Deserialize(data []byte) error {
	return rlp.DecodeBytes(data, &p.BlockchainParameters)
}
