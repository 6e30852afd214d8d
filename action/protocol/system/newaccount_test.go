// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package system

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/worbli/sysgov/action"
	"github.com/worbli/sysgov/name"
)

func TestProtocol_NewAccount(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)
	wbi := name.MustFromString("wbi")
	aliceWbi := name.MustFromString("alicexyz.wbi")

	newAccount := func(creator, newName name.Name) error {
		_, err := env.p.Handle(env.ctx(creator), action.NewNewAccount(creator, newName), env.ws)
		return err
	}

	_, err := env.p.Handle(env.ctx(_bob), action.NewBidName(_bob, wbi, sys(100)), env.ws)
	require.NoError(err)

	require.NoError(newAccount(_eosio, wbi))
	acct, err := env.native.Account(env.ctx(_eosio), env.ws, wbi)
	require.NoError(err)
	require.Equal(_eosio, acct.Creator)
	require.True(_now.Equal(acct.CreatedAt))
	require.False(acct.Privileged)

	res, err := env.p.UserResources(env.ctx(_eosio), env.ws, wbi)
	require.NoError(err)
	require.Equal(sys(0), res.NetWeight)
	require.Equal(sys(0), res.CPUWeight)
	require.Zero(res.RAMBytes)
	limits, err := env.native.ResourceLimits(env.ctx(_eosio), env.ws, wbi)
	require.NoError(err)
	require.Zero(limits.RAM)
	require.Zero(limits.Net)
	require.Zero(limits.CPU)

	// creating the account settles its auction
	b, err := env.p.NameBid(env.ctx(_eosio), env.ws, wbi)
	require.NoError(err)
	require.True(b.Closed)
	require.True(_now.Equal(env.globalState(t).LastNameClose))

	// only the suffix owner creates full length names under it
	err = newAccount(_dave, aliceWbi)
	require.Equal(action.ErrNamingPolicy, errors.Cause(err))
	require.Contains(err.Error(), "only suffix may create this account")
	// shorter names with a dot are reserved even for the suffix owner
	err = newAccount(wbi, name.MustFromString("bob.wbi"))
	require.Equal(action.ErrNamingPolicy, errors.Cause(err))
	require.Contains(err.Error(), "account names must be 12 characters")
	exist, err := env.native.AccountExists(env.ctx(_eosio), env.ws, name.MustFromString("bob.wbi"))
	require.NoError(err)
	require.False(exist)
	require.NoError(newAccount(wbi, aliceWbi))
	acct, err = env.native.Account(env.ctx(_eosio), env.ws, aliceWbi)
	require.NoError(err)
	require.Equal(wbi, acct.Creator)

	require.NoError(newAccount(_bob, name.MustFromString("abcdefghijkl")))

	for _, v := range []struct {
		desc    string
		caller  name.Name
		creator name.Name
		newName name.Name
		err     error
	}{
		{"short name", _bob, _bob, name.MustFromString("short"), action.ErrNamingPolicy},
		{"other suffix", _bob, _bob, name.MustFromString("x.wbi"), action.ErrNamingPolicy},
		{"other suffix full length", _bob, _bob, name.MustFromString("bobbobbo.wbi"), action.ErrNamingPolicy},
		{"short dotted name", _bob, _bob, name.MustFromString("b.bob"), action.ErrNamingPolicy},
		{"existing account", _eosio, _eosio, _carol, action.ErrNamingPolicy},
		{"empty name", _eosio, _eosio, 0, action.ErrNamingPolicy},
		{"unauthorized", _carol, _bob, name.MustFromString("bobbobbobbob"), action.ErrUnauthorized},
	} {
		t.Run(v.desc, func(t *testing.T) {
			_, err := env.p.Handle(env.ctx(v.caller), action.NewNewAccount(v.creator, v.newName), env.ws)
			require.Equal(v.err, errors.Cause(err))
			if v.newName.IsEmpty() {
				return
			}
			exist, err := env.native.AccountExists(env.ctx(_eosio), env.ws, v.newName)
			require.NoError(err)
			require.Equal(v.newName == _carol, exist)
		})
	}

	// the system account may create any name
	require.NoError(newAccount(_eosio, name.MustFromString("short")))
}
