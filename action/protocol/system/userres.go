// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package system

import (
	"context"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/worbli/sysgov/action"
	"github.com/worbli/sysgov/action/protocol"
	"github.com/worbli/sysgov/name"
	"github.com/worbli/sysgov/state"
)

// UserResources are the staked resources of an account
type UserResources struct {
	Owner     name.Name
	NetWeight action.Asset
	CPUWeight action.Asset
	RAMBytes  int64
}

type assetRecord struct {
	Amount    uint64
	Precision uint8
	Code      string
}

type userResourcesRecord struct {
	Owner     uint64
	NetWeight assetRecord
	CPUWeight assetRecord
	RAMBytes  uint64
}

func toAssetRecord(a action.Asset) assetRecord {
	return assetRecord{Amount: uint64(a.Amount), Precision: a.Symbol.Precision, Code: a.Symbol.Code}
}

func (r assetRecord) asset() action.Asset {
	return action.NewAsset(int64(r.Amount), action.Symbol{Precision: r.Precision, Code: r.Code})
}

// Serialize serializes user resources into bytes
func (res *UserResources) Serialize() ([]byte, error) {
	return rlp.EncodeToBytes(&userResourcesRecord{
		Owner:     res.Owner.Uint64(),
		NetWeight: toAssetRecord(res.NetWeight),
		CPUWeight: toAssetRecord(res.CPUWeight),
		RAMBytes:  uint64(res.RAMBytes),
	})
}

// Deserialize deserializes bytes into user resources
func (res *UserResources) Deserialize(data []byte) error {
	var r userResourcesRecord
	if err := rlp.DecodeBytes(data, &r); err != nil {
		return errors.Wrap(state.ErrStateDeserialization, err.Error())
	}
	*res = UserResources{
		Owner:     name.Name(r.Owner),
		NetWeight: r.NetWeight.asset(),
		CPUWeight: r.CPUWeight.asset(),
		RAMBytes:  int64(r.RAMBytes),
	}
	return nil
}

func userResOptions(owner name.Name) []protocol.StateOption {
	return []protocol.StateOption{protocol.NamespaceOption(UserResNameSpace), protocol.KeyOption(owner.Bytes())}
}

// UserResources returns the resources of owner
func (p *Protocol) UserResources(_ context.Context, sr protocol.StateReader, owner name.Name) (*UserResources, error) {
	res := UserResources{}
	if _, err := sr.State(&res, userResOptions(owner)...); err != nil {
		if errors.Cause(err) == state.ErrStateNotExist {
			return nil, errors.Wrapf(action.ErrNotFound, "no resources of %s", owner)
		}
		return nil, err
	}
	return &res, nil
}
