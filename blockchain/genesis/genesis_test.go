// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package genesis

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/worbli/sysgov/action"
	"github.com/worbli/sysgov/name"
)

const _testGenesis = `
blockchain:
  timestamp: 1600000000
system:
  usageAdmin: usage.admin
  networkUsageLevel: 5
token:
  symbol: "4,WBI"
  initBalances:
    bob: "5.0000 WBI"
    alice: "100.0000 WBI"
account:
  initAccounts: [carol]
`

func TestDefaultConfig(t *testing.T) {
	require := require.New(t)
	// construct a config without overriding
	cfg, err := New("")
	require.NoError(err)
	require.Equal(Default.Timestamp, cfg.Timestamp)
	require.Equal(Default.MaxRAMSize, cfg.MaxRAMSize)
	require.Equal(Default.NetworkUsageLevel, cfg.NetworkUsageLevel)
	require.Equal(Default.Params, cfg.Params)
	require.Equal(name.MustFromString("eosio"), cfg.SystemAccount())
	require.Equal(name.MustFromString("worbli.admin"), cfg.UsageAdmin())
	require.Equal(name.MustFromString("eosio"), cfg.ParamsAdmin())
	require.Equal(name.MustFromString("eosio.names"), cfg.NamesAccount())
	require.Equal(action.Symbol{Precision: 4, Code: "SYS"}, cfg.TokenSymbol())
	require.Equal(uint16(6), cfg.Params.MaxAuthorityDepth)
}

func TestNew(t *testing.T) {
	require := require.New(t)
	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(os.WriteFile(path, []byte(_testGenesis), 0600))

	g, err := New(path)
	require.NoError(err)
	require.Equal(int64(1600000000), g.Timestamp)
	require.Equal(uint8(5), g.NetworkUsageLevel)
	require.Equal(name.MustFromString("usage.admin"), g.UsageAdmin())
	// untouched values keep the default
	require.Equal(name.MustFromString("eosio"), g.SystemAccount())
	require.Equal(Default.MaxRAMSize, g.MaxRAMSize)
	require.Equal("4,WBI", g.TokenSymbol().String())

	owners, amounts := g.InitBalances()
	require.Equal([]name.Name{name.MustFromString("alice"), name.MustFromString("bob")}, owners)
	require.Equal("100.0000 WBI", amounts[0].String())
	require.Equal("5.0000 WBI", amounts[1].String())

	var accts []string
	for _, n := range g.Accounts() {
		accts = append(accts, n.String())
	}
	require.Equal([]string{"eosio", "usage.admin", "eosio.names", "carol", "alice", "bob"}, accts)

	_, err = New(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(err)
}

func TestValidate(t *testing.T) {
	for _, v := range []struct {
		desc   string
		modify func(*Genesis)
	}{
		{"zero usage level", func(g *Genesis) { g.NetworkUsageLevel = 0 }},
		{"usage level above max", func(g *Genesis) { g.NetworkUsageLevel = MaxUsageLevel + 1 }},
		{"zero max ram", func(g *Genesis) { g.MaxRAMSize = 0 }},
		{"unrealistic max ram", func(g *Genesis) { g.MaxRAMSize = action.MaxRAMSizeLimit }},
		{"low authority depth", func(g *Genesis) { g.Params.MaxAuthorityDepth = action.MinAuthorityDepth - 1 }},
		{"bad system account", func(g *Genesis) { g.SystemAccountStr = "EOSIO" }},
		{"empty names account", func(g *Genesis) { g.NamesAccountStr = "" }},
		{"bad symbol", func(g *Genesis) { g.SymbolStr = "4,sys" }},
		{"balance symbol mismatch", func(g *Genesis) { g.InitBalanceMap = map[string]string{"alice": "1.0000 ABC"} }},
		{"negative balance", func(g *Genesis) { g.InitBalanceMap = map[string]string{"alice": "-1.0000 SYS"} }},
		{"bad init account", func(g *Genesis) { g.InitAccounts = []string{"toolongaccountname"} }},
		{"bad producer key", func(g *Genesis) { g.Producers = []Producer{{OwnerStr: "prod1", KeyStr: "zz"}} }},
	} {
		t.Run(v.desc, func(t *testing.T) {
			g := defaultConfig()
			v.modify(&g)
			err := g.Validate()
			require.Equal(t, ErrInvalidGenesis, errors.Cause(err))
		})
	}
	g := defaultConfig()
	require.NoError(t, g.Validate())
}

func TestHash(t *testing.T) {
	require := require.New(t)
	g1 := defaultConfig()
	g2 := defaultConfig()
	require.Equal(g1.Hash(), g2.Hash())
	g2.MaxRAMSize++
	require.NotEqual(g1.Hash(), g2.Hash())
}

func TestGenesisContext(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	_, ok := ExtractGenesisContext(ctx)
	require.False(ok)
	require.Panics(func() { MustExtractGenesisContext(ctx) })

	ctx = WithGenesisContext(ctx, Default)
	g, ok := ExtractGenesisContext(ctx)
	require.True(ok)
	require.Equal(Default.SystemAccountStr, g.SystemAccountStr)
	require.NotPanics(func() { MustExtractGenesisContext(ctx) })
}
