// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package system

import (
	"time"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/worbli/sysgov/action"
	"github.com/worbli/sysgov/blockchain/genesis"
	"github.com/worbli/sysgov/state"
)

// GlobalState holds the chain wide tunables of the system account
type GlobalState struct {
	action.BlockchainParameters
	MaxRAMSize                 uint64
	TotalRAMBytesReserved      uint64
	TotalRAMStake              int64
	NetworkUsageLevel          uint8
	LastProducerScheduleUpdate time.Time
	LastProducerScheduleSize   uint16
	IsProducerScheduleActive   bool
	LastNameClose              time.Time
}

type globalStateRecord struct {
	Params                     action.BlockchainParameters
	MaxRAMSize                 uint64
	TotalRAMBytesReserved      uint64
	TotalRAMStake              uint64
	NetworkUsageLevel          uint8
	LastProducerScheduleUpdate uint64
	LastProducerScheduleSize   uint16
	IsProducerScheduleActive   bool
	LastNameClose              uint64
}

func defaultGlobalState(g genesis.Genesis) *GlobalState {
	return &GlobalState{
		BlockchainParameters:     g.Params,
		MaxRAMSize:               g.MaxRAMSize,
		NetworkUsageLevel:        g.NetworkUsageLevel,
		IsProducerScheduleActive: true,
	}
}

// FreeRAM is the RAM not reserved yet
func (gs *GlobalState) FreeRAM() uint64 {
	if gs.MaxRAMSize < gs.TotalRAMBytesReserved {
		return 0
	}
	return gs.MaxRAMSize - gs.TotalRAMBytesReserved
}

// Serialize serializes global state into bytes
func (gs *GlobalState) Serialize() ([]byte, error) {
	return rlp.EncodeToBytes(&globalStateRecord{
		Params:                     gs.BlockchainParameters,
		MaxRAMSize:                 gs.MaxRAMSize,
		TotalRAMBytesReserved:      gs.TotalRAMBytesReserved,
		TotalRAMStake:              uint64(gs.TotalRAMStake),
		NetworkUsageLevel:          gs.NetworkUsageLevel,
		LastProducerScheduleUpdate: toMicro(gs.LastProducerScheduleUpdate),
		LastProducerScheduleSize:   gs.LastProducerScheduleSize,
		IsProducerScheduleActive:   gs.IsProducerScheduleActive,
		LastNameClose:              toMicro(gs.LastNameClose),
	})
}

// Deserialize deserializes bytes into global state
func (gs *GlobalState) Deserialize(data []byte) error {
	var r globalStateRecord
	if err := rlp.DecodeBytes(data, &r); err != nil {
		return errors.Wrap(state.ErrStateDeserialization, err.Error())
	}
	*gs = GlobalState{
		BlockchainParameters:       r.Params,
		MaxRAMSize:                 r.MaxRAMSize,
		TotalRAMBytesReserved:      r.TotalRAMBytesReserved,
		TotalRAMStake:              int64(r.TotalRAMStake),
		NetworkUsageLevel:          r.NetworkUsageLevel,
		LastProducerScheduleUpdate: fromMicro(r.LastProducerScheduleUpdate),
		LastProducerScheduleSize:   r.LastProducerScheduleSize,
		IsProducerScheduleActive:   r.IsProducerScheduleActive,
		LastNameClose:              fromMicro(r.LastNameClose),
	}
	return nil
}

// toMicro returns the unix microseconds of t, 0 for the zero time
func toMicro(t time.Time) uint64 {
	if t.IsZero() {
		return 0
	}
	return uint64(t.UnixMicro())
}

func fromMicro(v uint64) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.UnixMicro(int64(v)).UTC()
}
