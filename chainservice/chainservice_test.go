// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package chainservice

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/facebookgo/clock"
	"github.com/iotexproject/go-pkgs/hash"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/worbli/sysgov/action"
	"github.com/worbli/sysgov/blockchain/genesis"
	"github.com/worbli/sysgov/config"
	"github.com/worbli/sysgov/db"
	"github.com/worbli/sysgov/name"
	"github.com/worbli/sysgov/test/identityset"
)

var (
	_bob   = identityset.Name(1)
	_carol = identityset.Name(2)
	_eosio = name.MustFromString("eosio")
	_names = name.MustFromString("eosio.names")
	_sys   = action.Symbol{Precision: 4, Code: "SYS"}
)

type unknownAction struct{}

func (unknownAction) Kind() string       { return "unknown" }
func (unknownAction) SanityCheck() error { return nil }

func testConfig() config.Config {
	cfg := config.Default
	cfg.Genesis = genesis.Default
	cfg.Genesis.InitAccounts = []string{_bob.String(), _carol.String()}
	cfg.Genesis.InitBalanceMap = map[string]string{
		_bob.String():   "100.0000 SYS",
		_carol.String(): "100.0000 SYS",
	}
	return cfg
}

func startService(t *testing.T, cfg config.Config, opts ...Option) *ChainService {
	require := require.New(t)
	ctx := context.Background()
	cs, err := New(cfg, opts...)
	require.NoError(err)
	require.NoError(cs.Start(ctx))
	return cs
}

func balance(t *testing.T, cs *ChainService, owner name.Name) int64 {
	ctx := cs.ReadContext(context.Background())
	b, err := cs.Token().Balance(ctx, cs.StateFactory(), owner, _sys)
	require.NoError(t, err)
	return b.Amount
}

func TestChainService_Genesis(t *testing.T) {
	require := require.New(t)
	cs := startService(t, testConfig(), WithTesting())
	defer func() { require.NoError(cs.Stop(context.Background())) }()

	height, err := cs.Height()
	require.NoError(err)
	require.Equal(uint64(1), height)
	ctx := cs.ReadContext(context.Background())
	for _, n := range []name.Name{_eosio, _names, _bob, _carol} {
		exist, err := cs.Native().AccountExists(ctx, cs.StateFactory(), n)
		require.NoError(err)
		require.True(exist, n.String())
	}
	gs, err := cs.System().GlobalState(ctx, cs.StateFactory())
	require.NoError(err)
	require.Equal(genesis.Default.MaxRAMSize, gs.MaxRAMSize)
	require.EqualValues(1000000, balance(t, cs, _bob))
	require.Len(cs.Registry().All(), 3)
}

func TestChainService_Execute(t *testing.T) {
	require := require.New(t)
	clk := clock.NewMock()
	clk.Add(time.Hour)
	cs := startService(t, testConfig(), WithTesting(), WithClock(clk))
	defer func() { require.NoError(cs.Stop(context.Background())) }()
	ctx := context.Background()
	target := name.MustFromString("wbi")

	receipt, err := cs.Execute(ctx, action.NewEnvelope(_bob, action.NewBidName(_bob, target, action.MustParseAsset("1.0000 SYS"))))
	require.NoError(err)
	require.Equal(uint64(2), receipt.BlockHeight)
	require.Equal(action.BidNameKind, receipt.ActionKind)
	require.Len(receipt.TransactionLogs(), 1)
	require.EqualValues(990000, balance(t, cs, _bob))
	b, err := cs.System().NameBid(cs.ReadContext(ctx), cs.StateFactory(), target)
	require.NoError(err)
	require.True(clk.Now().Equal(b.LastBidTime))

	// a rejected action commits nothing
	_, err = cs.Execute(ctx, action.NewEnvelope(_carol, action.NewBidName(_carol, target, action.MustParseAsset("1.0500 SYS"))))
	require.Equal(action.ErrInsufficientBid, errors.Cause(err))
	height, err := cs.Height()
	require.NoError(err)
	require.Equal(uint64(2), height)
	require.EqualValues(1000000, balance(t, cs, _carol))

	_, err = cs.Execute(ctx, action.NewEnvelope(_carol, action.NewSetRAM(1<<40)))
	require.Equal(action.ErrUnauthorized, errors.Cause(err))
	receipt, err = cs.Execute(ctx, action.NewEnvelope(_eosio, action.NewSetRAM(1<<40)))
	require.NoError(err)
	require.Equal(uint64(3), receipt.BlockHeight)
	require.NotEqual(hash.ZeroHash256, receipt.ActionHash)

	receipt, err = cs.Execute(ctx, action.NewEnvelope(_carol, action.NewTransfer(_carol, _bob, action.MustParseAsset("10.0000 SYS"), "thanks")))
	require.NoError(err)
	require.Equal(action.TransferKind, receipt.ActionKind)
	require.EqualValues(1090000, balance(t, cs, _bob))

	_, err = cs.Execute(ctx, action.NewEnvelope(_carol, action.NewTransfer(_carol, _bob, action.MustParseAsset("-1.0000 SYS"), "")))
	require.Equal(action.ErrInvalidAsset, errors.Cause(err))
	_, err = cs.Execute(ctx, action.NewEnvelope(0, action.NewSetRAM(1<<41)))
	require.Equal(action.ErrInvalidAction, errors.Cause(err))
	_, err = cs.Execute(ctx, action.NewEnvelope(_bob, unknownAction{}))
	require.Equal(ErrUnhandledAction, errors.Cause(err))

	height, err = cs.Height()
	require.NoError(err)
	require.Equal(uint64(4), height)
}

func TestChainService_Restart(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	for _, dbType := range []string{db.DBBolt, db.DBPebble} {
		t.Run(dbType, func(t *testing.T) {
			cfg := testConfig()
			cfg.DB.DBType = dbType
			cfg.DB.DbPath = filepath.Join(t.TempDir(), "chain.db")

			cs := startService(t, cfg)
			_, err := cs.Execute(ctx, action.NewEnvelope(_eosio, action.NewSetRAM(1<<40)))
			require.NoError(err)
			require.NoError(cs.Stop(ctx))

			cs = startService(t, cfg)
			defer func() { require.NoError(cs.Stop(ctx)) }()
			height, err := cs.Height()
			require.NoError(err)
			require.Equal(uint64(2), height)
			gs, err := cs.System().GlobalState(cs.ReadContext(ctx), cs.StateFactory())
			require.NoError(err)
			require.Equal(uint64(1<<40), gs.MaxRAMSize)
			require.EqualValues(1000000, balance(t, cs, _bob))
		})
	}
}

func TestNew(t *testing.T) {
	require := require.New(t)
	_, err := New(testConfig(), WithClock(nil))
	require.Error(err)

	cfg := testConfig()
	cfg.DB.DBType = "leveldb"
	cs, err := New(cfg)
	require.Nil(cs)
	require.Error(err)
}
