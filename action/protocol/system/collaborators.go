// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package system

import (
	"context"

	"github.com/worbli/sysgov/action"
	"github.com/worbli/sysgov/action/protocol"
	"github.com/worbli/sysgov/name"
)

type (
	// Transferer moves tokens between accounts within the running action
	Transferer interface {
		Transfer(ctx context.Context, sm protocol.StateManager, from, to name.Name, quantity action.Asset, memo string) (*action.TransactionLog, error)
	}

	// ChainController is the native chain seen by the system account
	ChainController interface {
		AccountExists(ctx context.Context, sr protocol.StateReader, n name.Name) (bool, error)
		CreateAccount(ctx context.Context, sm protocol.StateManager, creator, newName name.Name) error
		SetResourceLimits(ctx context.Context, sm protocol.StateManager, n name.Name, ram, net, cpu int64) error
		SetPrivileged(ctx context.Context, sm protocol.StateManager, n name.Name, isPriv bool) error
		ApplyParameters(ctx context.Context, sm protocol.StateManager, params action.BlockchainParameters) error
		ProposeSchedule(ctx context.Context, sm protocol.StateManager, raw []byte) (uint32, error)
	}
)
