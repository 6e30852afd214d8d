// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package native

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/worbli/sysgov/action"
	"github.com/worbli/sysgov/action/protocol"
	"github.com/worbli/sysgov/blockchain/genesis"
	"github.com/worbli/sysgov/pkg/log"
	"github.com/worbli/sysgov/state"
)

const (
	// ProtocolID is the protocol ID
	ProtocolID = "native"
	// AccountNameSpace is the namespace of the accounts
	AccountNameSpace = "Account"
	// LimitsNameSpace is the namespace of the resource limits
	LimitsNameSpace = "Limits"
	// NativeNameSpace is the namespace of the chain wide records
	NativeNameSpace = "Native"
)

var (
	_paramsKey   = []byte("params")
	_scheduleKey = []byte("schedule")
)

// Protocol is the native chain controller. It owns the accounts, their privileges and resource limits, the applied
// blockchain parameters and the proposed producer schedule. It handles no action by itself.
type Protocol struct{}

// NewProtocol instantiates the native protocol
func NewProtocol() *Protocol {
	return &Protocol{}
}

// Name returns the name of protocol
func (p *Protocol) Name() string {
	return ProtocolID
}

// Handle skips every action
func (p *Protocol) Handle(context.Context, action.Action, protocol.StateManager) (*action.Receipt, error) {
	return nil, nil
}

// CreateGenesisStates creates the genesis accounts and applies the genesis parameters
func (p *Protocol) CreateGenesisStates(ctx context.Context, sm protocol.StateManager) error {
	g := genesis.MustExtractGenesisContext(ctx)
	sys := g.SystemAccount()
	for _, n := range g.Accounts() {
		if err := p.CreateAccount(ctx, sm, sys, n); err != nil {
			return err
		}
	}
	if err := p.SetPrivileged(ctx, sm, sys, true); err != nil {
		return err
	}
	if err := p.ApplyParameters(ctx, sm, g.Params); err != nil {
		return err
	}
	log.L().Info("Created genesis accounts.", zap.Int("accounts", len(g.Accounts())))
	return nil
}

func (p *Protocol) state(sr protocol.StateReader, ns string, key []byte, s any) error {
	_, err := sr.State(s, protocol.NamespaceOption(ns), protocol.KeyOption(key))
	return err
}

func (p *Protocol) putState(sm protocol.StateManager, ns string, key []byte, s any) error {
	_, err := sm.PutState(s, protocol.NamespaceOption(ns), protocol.KeyOption(key))
	return err
}

// ApplyParameters sets the blockchain parameters enforced by the chain
func (p *Protocol) ApplyParameters(_ context.Context, sm protocol.StateManager, params action.BlockchainParameters) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if err := p.putState(sm, NativeNameSpace, _paramsKey, &chainParameters{params}); err != nil {
		return errors.Wrap(err, "failed to store blockchain parameters")
	}
	return nil
}

// Parameters returns the applied blockchain parameters, the default ones if never applied
func (p *Protocol) Parameters(_ context.Context, sr protocol.StateReader) (action.BlockchainParameters, error) {
	params := chainParameters{}
	err := p.state(sr, NativeNameSpace, _paramsKey, &params)
	switch errors.Cause(err) {
	case nil:
		return params.BlockchainParameters, nil
	case state.ErrStateNotExist:
		return action.DefaultBlockchainParameters(), nil
	default:
		return action.BlockchainParameters{}, err
	}
}

// ProposeSchedule records the encoded producer schedule and returns its version
func (p *Protocol) ProposeSchedule(_ context.Context, sm protocol.StateManager, raw []byte) (uint32, error) {
	s := ProposedSchedule{}
	if err := p.state(sm, NativeNameSpace, _scheduleKey, &s); err != nil && errors.Cause(err) != state.ErrStateNotExist {
		return 0, err
	}
	s.Version++
	s.Raw = make([]byte, len(raw))
	copy(s.Raw, raw)
	if err := p.putState(sm, NativeNameSpace, _scheduleKey, &s); err != nil {
		return 0, errors.Wrap(err, "failed to store proposed schedule")
	}
	log.L().Info("Proposed producer schedule.", zap.Uint32("version", s.Version))
	return s.Version, nil
}

// ProposedSchedule returns the last proposed producer schedule
func (p *Protocol) ProposedSchedule(_ context.Context, sr protocol.StateReader) (*ProposedSchedule, error) {
	s := ProposedSchedule{}
	if err := p.state(sr, NativeNameSpace, _scheduleKey, &s); err != nil {
		if errors.Cause(err) == state.ErrStateNotExist {
			return nil, errors.Wrap(action.ErrNotFound, "no producer schedule was proposed")
		}
		return nil, err
	}
	return &s, nil
}
