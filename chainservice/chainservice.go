// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package chainservice

import (
	"context"
	"encoding/hex"
	"sync"
	"time"

	"github.com/facebookgo/clock"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/worbli/sysgov/action"
	"github.com/worbli/sysgov/action/protocol"
	"github.com/worbli/sysgov/action/protocol/native"
	"github.com/worbli/sysgov/action/protocol/system"
	"github.com/worbli/sysgov/action/protocol/token"
	"github.com/worbli/sysgov/blockchain/genesis"
	"github.com/worbli/sysgov/config"
	"github.com/worbli/sysgov/name"
	"github.com/worbli/sysgov/pkg/lifecycle"
	"github.com/worbli/sysgov/pkg/log"
	"github.com/worbli/sysgov/pkg/tracer"
	"github.com/worbli/sysgov/state/factory"
)

// ErrUnhandledAction indicates no registered protocol accepts the action
var ErrUnhandledAction = errors.New("no protocol handles the action")

// ChainService applies authenticated actions to the chain state, one envelope per committed height
type ChainService struct {
	lifecycle lifecycle.Lifecycle
	mutex     sync.Mutex
	cfg       config.Config
	clk       clock.Clock
	factory   factory.Factory
	registry  *protocol.Registry
	native    *native.Protocol
	token     *token.Protocol
	system    *system.Protocol
	tp        *tracesdk.TracerProvider
}

type optionParams struct {
	isTesting bool
	clk       clock.Clock
}

// Option sets ChainService construction parameter.
type Option func(ops *optionParams) error

// WithTesting is an option to create a ChainService over an in-memory store.
func WithTesting() Option {
	return func(ops *optionParams) error {
		ops.isTesting = true
		return nil
	}
}

// WithClock sets the clock stamping the executed actions
func WithClock(clk clock.Clock) Option {
	return func(ops *optionParams) error {
		if clk == nil {
			return errors.New("clock cannot be nil")
		}
		ops.clk = clk
		return nil
	}
}

// New creates a ChainService from config
func New(cfg config.Config, opts ...Option) (*ChainService, error) {
	ops := optionParams{clk: clock.New()}
	for _, opt := range opts {
		if err := opt(&ops); err != nil {
			return nil, err
		}
	}
	sfOpt := factory.DefaultStateDBOption()
	if ops.isTesting {
		sfOpt = factory.InMemStateDBOption()
	}
	sf, err := factory.NewStateDB(cfg.DB, sfOpt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create state factory")
	}
	tp, err := tracer.NewProvider(
		tracer.WithServiceName(cfg.Tracer.ServiceName),
		tracer.WithEndpoint(cfg.Tracer.EndPoint),
		tracer.WithInstanceID(cfg.Tracer.InstanceID),
		tracer.WithSamplingRatio(cfg.Tracer.SamplingRatio),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create tracer provider")
	}

	cs := &ChainService{
		cfg:      cfg,
		clk:      ops.clk,
		factory:  sf,
		registry: protocol.NewRegistry(),
		native:   native.NewProtocol(),
		tp:       tp,
	}
	cs.token = token.NewProtocol(cs.native)
	cs.system = system.NewProtocol(cs.token, cs.native)
	for _, p := range []protocol.Protocol{cs.native, cs.token, cs.system} {
		if err := cs.registry.Register(p.Name(), p); err != nil {
			return nil, errors.Wrapf(err, "failed to register protocol %s", p.Name())
		}
	}
	cs.lifecycle.Add(sf)
	return cs, nil
}

// Start starts the state factory and commits the genesis states on an empty store
func (cs *ChainService) Start(ctx context.Context) error {
	if err := cs.lifecycle.OnStart(ctx); err != nil {
		return errors.Wrap(err, "error when starting state factory")
	}
	height, err := cs.factory.Height()
	if err != nil {
		return err
	}
	if height > 0 {
		log.L().Info("Loaded chain state.", zap.Uint32("chain", cs.cfg.Chain.ID), zap.Uint64("height", height))
		return nil
	}
	ws, err := cs.factory.NewWorkingSet(ctx)
	if err != nil {
		return err
	}
	ctx = cs.blockContext(ctx, 1, time.Unix(cs.cfg.Genesis.Timestamp, 0))
	ctx = protocol.WithActionCtx(ctx, protocol.ActionCtx{
		Caller:      cs.cfg.Genesis.SystemAccount(),
		Authorizers: []name.Name{cs.cfg.Genesis.SystemAccount()},
	})
	if err := cs.registry.CreateGenesisStates(ctx, ws); err != nil {
		return errors.Wrap(err, "failed to create genesis states")
	}
	if err := ws.Commit(ctx); err != nil {
		return errors.Wrap(err, "failed to commit genesis states")
	}
	gh := cs.cfg.Genesis.Hash()
	log.L().Info("Committed genesis states.",
		zap.Uint32("chain", cs.cfg.Chain.ID),
		zap.String("genesisHash", hex.EncodeToString(gh[:])))
	return nil
}

// Stop stops the state factory and flushes pending traces
func (cs *ChainService) Stop(ctx context.Context) error {
	if cs.tp != nil {
		if err := cs.tp.Shutdown(ctx); err != nil {
			log.L().Warn("Failed to shutdown tracer provider.", zap.Error(err))
		}
	}
	return cs.lifecycle.OnStop(ctx)
}

// Execute applies the envelope on a fresh working set at the next height. The working set is committed only when
// the action succeeds, a rejected action leaves the chain state untouched.
func (cs *ChainService) Execute(ctx context.Context, elp *action.Envelope) (*action.Receipt, error) {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	ctx, span := tracer.NewSpan(ctx, "ChainService.Execute")
	defer span.End()
	receipt, err := cs.execute(ctx, elp)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.String("kind", receipt.ActionKind),
		attribute.Int64("height", int64(receipt.BlockHeight)),
	)
	return receipt, nil
}

func (cs *ChainService) execute(ctx context.Context, elp *action.Envelope) (*action.Receipt, error) {
	if err := elp.SanityCheck(); err != nil {
		return nil, err
	}
	h, err := elp.Hash()
	if err != nil {
		return nil, err
	}
	ws, err := cs.factory.NewWorkingSet(ctx)
	if err != nil {
		return nil, err
	}
	height, err := cs.factory.Height()
	if err != nil {
		return nil, err
	}
	ctx = cs.blockContext(ctx, height+1, cs.clk.Now())
	ctx = protocol.WithActionCtx(ctx, protocol.ActionCtx{
		Caller:      elp.Actor(),
		Authorizers: elp.Authorizers(),
		ActionHash:  h,
	})
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("actor", elp.Actor().String()))

	act := elp.Action()
	for _, p := range cs.registry.All() {
		if v, ok := p.(protocol.ActionValidator); ok {
			if err := v.Validate(ctx, act, ws); err != nil {
				return nil, errors.Wrapf(err, "protocol %s rejected action %s", p.Name(), act.Kind())
			}
		}
	}
	var receipt *action.Receipt
	for _, p := range cs.registry.All() {
		receipt, err = p.Handle(ctx, act, ws)
		if err != nil {
			return nil, err
		}
		if receipt != nil {
			break
		}
	}
	if receipt == nil {
		return nil, errors.Wrapf(ErrUnhandledAction, "action %s", act.Kind())
	}
	if err := ws.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to commit working set")
	}
	log.L().Debug("Executed action.",
		zap.String("kind", act.Kind()),
		zap.Stringer("actor", elp.Actor()),
		zap.Uint64("height", receipt.BlockHeight),
		zap.String("hash", hex.EncodeToString(h[:])))
	return receipt, nil
}

func (cs *ChainService) blockContext(ctx context.Context, height uint64, ts time.Time) context.Context {
	ctx = genesis.WithGenesisContext(ctx, cs.cfg.Genesis)
	return protocol.WithBlockCtx(ctx, protocol.BlockCtx{
		BlockHeight:    height,
		BlockTimeStamp: ts.UTC(),
	})
}

// ReadContext returns a context carrying the genesis for the read-only accessors of the protocols
func (cs *ChainService) ReadContext(ctx context.Context) context.Context {
	return genesis.WithGenesisContext(ctx, cs.cfg.Genesis)
}

// Genesis returns the genesis of the chain
func (cs *ChainService) Genesis() *genesis.Genesis { return &cs.cfg.Genesis }

// Height returns the committed height
func (cs *ChainService) Height() (uint64, error) { return cs.factory.Height() }

// StateFactory returns the state factory
func (cs *ChainService) StateFactory() factory.Factory { return cs.factory }

// Registry returns the protocol registry
func (cs *ChainService) Registry() *protocol.Registry { return cs.registry }

// System returns the system protocol
func (cs *ChainService) System() *system.Protocol { return cs.system }

// Token returns the token protocol
func (cs *ChainService) Token() *token.Protocol { return cs.token }

// Native returns the native chain protocol
func (cs *ChainService) Native() *native.Protocol { return cs.native }
