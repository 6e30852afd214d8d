// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package system

import (
	"context"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/worbli/sysgov/action"
	"github.com/worbli/sysgov/action/protocol"
	"github.com/worbli/sysgov/action/protocol/native"
	"github.com/worbli/sysgov/action/protocol/token"
	"github.com/worbli/sysgov/blockchain/genesis"
	"github.com/worbli/sysgov/db"
	"github.com/worbli/sysgov/name"
	"github.com/worbli/sysgov/state/factory"
	"github.com/worbli/sysgov/test/identityset"
)

var (
	_bob       = identityset.Name(1)
	_carol     = identityset.Name(2)
	_dave      = identityset.Name(3)
	_producer1 = identityset.Name(19)
	_eosio     = name.MustFromString("eosio")
	_admin     = name.MustFromString("worbli.admin")
	_names     = name.MustFromString("eosio.names")
	_sys       = action.Symbol{Precision: 4, Code: "SYS"}
	_now       = time.Unix(1600000000, 0).UTC()
)

type testEnv struct {
	g      genesis.Genesis
	p      *Protocol
	native *native.Protocol
	token  *token.Protocol
	ws     factory.WorkingSet
}

func testGenesis() genesis.Genesis {
	g := genesis.Default
	g.InitAccounts = []string{_bob.String(), _carol.String(), _dave.String()}
	g.InitBalanceMap = map[string]string{
		_bob.String():   "1000.0000 SYS",
		_carol.String(): "1000.0000 SYS",
	}
	g.Producers = []genesis.Producer{{
		OwnerStr: _producer1.String(),
		KeyStr:   hex.EncodeToString(identityset.PublicKeyBytes(19)),
		URL:      "https://producer1.io",
		Location: 1,
	}}
	return g
}

func newWorkingSet(t *testing.T) factory.WorkingSet {
	require := require.New(t)
	ctx := context.Background()
	sf, err := factory.NewStateDB(db.DefaultConfig, factory.InMemStateDBOption())
	require.NoError(err)
	require.NoError(sf.Start(ctx))
	t.Cleanup(func() { require.NoError(sf.Stop(ctx)) })
	ws, err := sf.NewWorkingSet(ctx)
	require.NoError(err)
	return ws
}

func newTestEnv(t *testing.T) *testEnv {
	require := require.New(t)
	env := &testEnv{
		g:      testGenesis(),
		native: native.NewProtocol(),
		ws:     newWorkingSet(t),
	}
	env.token = token.NewProtocol(env.native)
	env.p = NewProtocol(env.token, env.native)

	registry := protocol.NewRegistry()
	require.NoError(registry.Register(native.ProtocolID, env.native))
	require.NoError(registry.Register(token.ProtocolID, env.token))
	require.NoError(registry.Register(ProtocolID, env.p))
	require.NoError(registry.CreateGenesisStates(env.ctx(_eosio), env.ws))
	return env
}

func testContext(g genesis.Genesis, caller name.Name) context.Context {
	ctx := genesis.WithGenesisContext(context.Background(), g)
	ctx = protocol.WithBlockCtx(ctx, protocol.BlockCtx{
		BlockHeight:    1,
		BlockTimeStamp: _now,
	})
	return protocol.WithActionCtx(ctx, protocol.ActionCtx{
		Caller:      caller,
		Authorizers: []name.Name{caller},
	})
}

func (env *testEnv) ctx(caller name.Name) context.Context {
	return testContext(env.g, caller)
}

func (env *testEnv) globalState(t *testing.T) *GlobalState {
	gs, err := env.p.GlobalState(env.ctx(_eosio), env.ws)
	require.NoError(t, err)
	return gs
}

func (env *testEnv) balance(t *testing.T, owner name.Name) int64 {
	b, err := env.token.Balance(env.ctx(owner), env.ws, owner, _sys)
	require.NoError(t, err)
	return b.Amount
}

func TestProtocol_HandleSkipsOtherActions(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)
	require.Equal(ProtocolID, env.p.Name())
	receipt, err := env.p.Handle(env.ctx(_bob), action.NewTransfer(_bob, _carol, action.MustParseAsset("1.0000 SYS"), ""), env.ws)
	require.NoError(err)
	require.Nil(receipt)
}

func TestProtocol_CreateGenesisStates(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	gs := env.globalState(t)
	require.Equal(env.g.MaxRAMSize, gs.MaxRAMSize)
	require.Equal(env.g.NetworkUsageLevel, gs.NetworkUsageLevel)
	require.Equal(env.g.Params, gs.BlockchainParameters)
	require.True(gs.IsProducerScheduleActive)

	prod, err := env.p.Producer(env.ctx(_eosio), env.ws, _producer1)
	require.NoError(err)
	require.Equal(identityset.PublicKeyBytes(19), prod.ProducerKey)
	require.Equal("https://producer1.io", prod.URL)
	require.True(prod.IsActive)
}

func TestProtocol_Validate(t *testing.T) {
	require := require.New(t)
	p := NewProtocol(nil, nil)
	ctx := context.Background()
	require.NoError(p.Validate(ctx, action.NewSetRAM(1), nil))
	require.NoError(p.Validate(ctx, action.NewBidName(_bob, _carol, action.MustParseAsset("1.0000 SYS")), nil))
	// transfers belong to the token ledger
	require.NoError(p.Validate(ctx, action.NewTransfer(_bob, _carol, action.MustParseAsset("-1.0000 SYS"), ""), nil))
}

func TestGlobalState_Serialize(t *testing.T) {
	require := require.New(t)
	gs := GlobalState{
		BlockchainParameters:       action.DefaultBlockchainParameters(),
		MaxRAMSize:                 1 << 36,
		TotalRAMBytesReserved:      1 << 20,
		TotalRAMStake:              -5,
		NetworkUsageLevel:          10,
		LastProducerScheduleUpdate: _now,
		LastProducerScheduleSize:   21,
		IsProducerScheduleActive:   true,
	}
	data, err := gs.Serialize()
	require.NoError(err)
	var gs2 GlobalState
	require.NoError(gs2.Deserialize(data))
	require.Equal(gs, gs2)
	require.True(gs2.LastNameClose.IsZero())
	require.Equal(uint64(1<<36-1<<20), gs2.FreeRAM())

	gs2.TotalRAMBytesReserved = gs2.MaxRAMSize + 1
	require.Zero(gs2.FreeRAM())
	require.Error(gs2.Deserialize([]byte{0x01}))
}
