// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package protocol

import (
	"context"

	"github.com/worbli/sysgov/action"
)

type (
	// Protocol defines the protocol interfaces atop the chain
	Protocol interface {
		ActionHandler
		Name() string
	}

	// ActionHandler is the interface for the action handlers. For each incoming action, the registered protocols
	// will be called one by one to process it. ActionHandler implementation is supposed to parse the sub-type of
	// the action to decide if it wants to handle this action or not, and returns a nil receipt if not.
	ActionHandler interface {
		Handle(context.Context, action.Action, StateManager) (*action.Receipt, error)
	}

	// ActionValidator is the interface of validating an action
	ActionValidator interface {
		Validate(context.Context, action.Action, StateReader) error
	}

	// GenesisStateCreator creates some genesis states
	GenesisStateCreator interface {
		CreateGenesisStates(context.Context, StateManager) error
	}
)
