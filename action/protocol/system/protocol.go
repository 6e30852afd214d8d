// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package system

import (
	"context"

	"github.com/iotexproject/go-pkgs/hash"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/worbli/sysgov/action"
	"github.com/worbli/sysgov/action/protocol"
	"github.com/worbli/sysgov/blockchain/genesis"
	"github.com/worbli/sysgov/pkg/log"
	"github.com/worbli/sysgov/state"
)

const (
	// ProtocolID is the protocol ID
	ProtocolID = "system"
	// SystemNameSpace is the namespace of the global state
	SystemNameSpace = "System"
	// ProducerNameSpace is the namespace of the producers
	ProducerNameSpace = "Producer"
	// NameBidNameSpace is the namespace of the name bids
	NameBidNameSpace = "NameBid"
	// UserResNameSpace is the namespace of the user resources
	UserResNameSpace = "UserRes"
)

var (
	_globalKey = []byte("global")

	_systemActionMtc = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sysgov_action_metrics",
			Help: "Actions handled by the system protocol",
		},
		[]string{"type", "status"},
	)
)

func init() {
	prometheus.MustRegister(_systemActionMtc)
}

// Protocol defines the protocol of the system account. It governs the chain wide parameters and the producers, runs
// the premium name auction and provisions new accounts.
type Protocol struct {
	keyPrefix  []byte
	transferer Transferer
	chain      ChainController
}

// NewProtocol instantiates the system protocol
func NewProtocol(transferer Transferer, chain ChainController) *Protocol {
	h := hash.Hash160b([]byte(ProtocolID))
	return &Protocol{
		keyPrefix:  h[:],
		transferer: transferer,
		chain:      chain,
	}
}

// Name returns the name of protocol
func (p *Protocol) Name() string {
	return ProtocolID
}

// Handle handles the actions of the system account. An action either applies all its effects or none of them.
func (p *Protocol) Handle(ctx context.Context, act action.Action, sm protocol.StateManager) (*action.Receipt, error) {
	switch act.(type) {
	case *action.SetRAM,
		*action.SetUsageLevel,
		*action.SetParams,
		*action.SetPriv,
		*action.RemoveProducer,
		*action.SetProds,
		*action.BidName,
		*action.CloseBid,
		*action.NewAccount:
	default:
		return nil, nil
	}
	snapshot := sm.Snapshot()
	receipt, err := p.handle(ctx, act, sm)
	if err != nil {
		if revertErr := sm.Revert(snapshot); revertErr != nil {
			log.L().Error("Failed to revert working set.", zap.Int("snapshot", snapshot), zap.Error(revertErr))
			return nil, errors.Wrapf(revertErr, "failed to revert working set after %v", err)
		}
		_systemActionMtc.WithLabelValues(act.Kind(), "failure").Inc()
		log.L().Debug("Rejected action.", zap.String("type", act.Kind()), zap.Error(err))
		return nil, err
	}
	_systemActionMtc.WithLabelValues(act.Kind(), "success").Inc()
	return receipt, nil
}

func (p *Protocol) handle(ctx context.Context, act action.Action, sm protocol.StateManager) (*action.Receipt, error) {
	gs, err := p.GlobalState(ctx, sm)
	if err != nil {
		return nil, err
	}
	var logs []*action.TransactionLog
	switch act := act.(type) {
	case *action.SetRAM:
		err = p.SetRAM(ctx, gs, act.MaxRAMSize())
	case *action.SetUsageLevel:
		err = p.SetUsageLevel(ctx, gs, act.Level())
	case *action.SetParams:
		err = p.SetParams(ctx, sm, gs, act.Params())
	case *action.SetPriv:
		err = p.SetPriv(ctx, sm, act.Account(), act.IsPriv())
	case *action.RemoveProducer:
		err = p.RemoveProducer(ctx, sm, act.Producer())
	case *action.SetProds:
		err = p.SetProds(ctx, sm, gs, act.Schedule())
	case *action.BidName:
		logs, err = p.BidName(ctx, sm, act.Bidder(), act.NewName(), act.Bid())
	case *action.CloseBid:
		err = p.CloseBid(ctx, sm, gs, act.NewName())
	case *action.NewAccount:
		err = p.NewAccount(ctx, sm, gs, act.Creator(), act.NewName())
	}
	if err != nil {
		return nil, err
	}
	if err := p.putGlobalState(sm, gs); err != nil {
		return nil, err
	}
	return p.createReceipt(ctx, act.Kind(), logs...), nil
}

// Validate validates the actions of the system account
func (p *Protocol) Validate(_ context.Context, act action.Action, _ protocol.StateReader) error {
	switch act.(type) {
	case *action.SetRAM,
		*action.SetUsageLevel,
		*action.SetParams,
		*action.SetPriv,
		*action.RemoveProducer,
		*action.SetProds,
		*action.BidName,
		*action.CloseBid,
		*action.NewAccount:
		return act.SanityCheck()
	}
	return nil
}

// CreateGenesisStates stores the initial global state and registers the genesis producers
func (p *Protocol) CreateGenesisStates(ctx context.Context, sm protocol.StateManager) error {
	g := genesis.MustExtractGenesisContext(ctx)
	if err := p.putGlobalState(sm, defaultGlobalState(g)); err != nil {
		return err
	}
	for _, prod := range g.Producers {
		if err := p.RegisterProducer(ctx, sm, prod.Owner(), prod.Key(), prod.URL, prod.Location); err != nil {
			return errors.Wrapf(err, "failed to register genesis producer %s", prod.OwnerStr)
		}
	}
	return nil
}

// GlobalState returns the global state, the genesis default if it has never been stored
func (p *Protocol) GlobalState(ctx context.Context, sr protocol.StateReader) (*GlobalState, error) {
	gs := GlobalState{}
	err := p.state(sr, _globalKey, &gs)
	switch errors.Cause(err) {
	case nil:
		return &gs, nil
	case state.ErrStateNotExist:
		return defaultGlobalState(genesis.MustExtractGenesisContext(ctx)), nil
	default:
		return nil, errors.Wrap(err, "failed to load global state")
	}
}

func (p *Protocol) putGlobalState(sm protocol.StateManager, gs *GlobalState) error {
	return errors.Wrap(p.putState(sm, _globalKey, gs), "failed to store global state")
}

func (p *Protocol) state(sr protocol.StateReader, key []byte, value any) error {
	keyHash := hash.Hash160b(append(p.keyPrefix, key...))
	_, err := sr.State(value, protocol.NamespaceOption(SystemNameSpace), protocol.KeyOption(keyHash[:]))
	return err
}

func (p *Protocol) putState(sm protocol.StateManager, key []byte, value any) error {
	keyHash := hash.Hash160b(append(p.keyPrefix, key...))
	_, err := sm.PutState(value, protocol.NamespaceOption(SystemNameSpace), protocol.KeyOption(keyHash[:]))
	return err
}

func (p *Protocol) createReceipt(ctx context.Context, kind string, logs ...*action.TransactionLog) *action.Receipt {
	blkCtx := protocol.MustGetBlockCtx(ctx)
	actionCtx := protocol.MustGetActionCtx(ctx)
	receipt := &action.Receipt{
		Status:      action.SuccessReceiptStatus,
		BlockHeight: blkCtx.BlockHeight,
		ActionHash:  actionCtx.ActionHash,
		ActionKind:  kind,
	}
	return receipt.AddTransactionLogs(logs...)
}
