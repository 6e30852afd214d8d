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
)

func TestProtocol_SetRAM(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)
	gs := env.globalState(t)
	gs.MaxRAMSize = 1000000
	gs.TotalRAMBytesReserved = 500000
	require.NoError(env.p.putGlobalState(env.ws, gs))

	receipt, err := env.p.Handle(env.ctx(_eosio), action.NewSetRAM(2000000), env.ws)
	require.NoError(err)
	require.Equal(action.SetRAMKind, receipt.ActionKind)
	require.Equal(action.SuccessReceiptStatus, receipt.Status)
	require.Equal(uint64(2000000), env.globalState(t).MaxRAMSize)

	for _, v := range []struct {
		desc       string
		maxRAMSize uint64
		err        error
	}{
		{"decrease", 1500000, action.ErrInvalidTransition},
		{"same", 2000000, action.ErrInvalidTransition},
		{"unrealistic", action.MaxRAMSizeLimit, action.ErrOutOfRange},
	} {
		t.Run(v.desc, func(t *testing.T) {
			_, err := env.p.Handle(env.ctx(_eosio), action.NewSetRAM(v.maxRAMSize), env.ws)
			require.Equal(v.err, errors.Cause(err))
			require.Equal(uint64(2000000), env.globalState(t).MaxRAMSize)
		})
	}

	_, err = env.p.Handle(env.ctx(_bob), action.NewSetRAM(3000000), env.ws)
	require.Equal(action.ErrUnauthorized, errors.Cause(err))
	_, err = env.p.Handle(env.ctx(_eosio), action.NewSetRAM(action.MaxRAMSizeLimit-1), env.ws)
	require.NoError(err)
	require.Equal(action.MaxRAMSizeLimit-1, env.globalState(t).MaxRAMSize)

	// the ceiling cannot go below the reserved bytes
	gs = env.globalState(t)
	gs.MaxRAMSize = 100
	gs.TotalRAMBytesReserved = 500
	require.NoError(env.p.putGlobalState(env.ws, gs))
	_, err = env.p.Handle(env.ctx(_eosio), action.NewSetRAM(400), env.ws)
	require.Equal(action.ErrOutOfRange, errors.Cause(err))
	_, err = env.p.Handle(env.ctx(_eosio), action.NewSetRAM(501), env.ws)
	require.NoError(err)
}

func TestProtocol_SetUsageLevel(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)
	require.Equal(uint8(1), env.globalState(t).NetworkUsageLevel)

	_, err := env.p.Handle(env.ctx(_admin), action.NewSetUsageLevel(5), env.ws)
	require.NoError(err)
	require.Equal(uint8(5), env.globalState(t).NetworkUsageLevel)

	for _, v := range []struct {
		desc  string
		level uint8
		err   error
	}{
		{"same", 5, action.ErrInvalidTransition},
		{"decrease", 3, action.ErrInvalidTransition},
		{"zero", 0, action.ErrInvalidTransition},
		{"above max", 101, action.ErrOutOfRange},
		{"max uint8", 255, action.ErrOutOfRange},
	} {
		t.Run(v.desc, func(t *testing.T) {
			_, err := env.p.Handle(env.ctx(_admin), action.NewSetUsageLevel(v.level), env.ws)
			require.Equal(v.err, errors.Cause(err))
			require.Equal(uint8(5), env.globalState(t).NetworkUsageLevel)
		})
	}

	// the system account is not the usage admin
	_, err = env.p.Handle(env.ctx(_eosio), action.NewSetUsageLevel(6), env.ws)
	require.Equal(action.ErrUnauthorized, errors.Cause(err))

	_, err = env.p.Handle(env.ctx(_admin), action.NewSetUsageLevel(100), env.ws)
	require.NoError(err)
	require.Equal(uint8(100), env.globalState(t).NetworkUsageLevel)
}

func TestProtocol_SetParams(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	params := action.DefaultBlockchainParameters()
	params.MaxAuthorityDepth = 2
	_, err := env.p.Handle(env.ctx(_eosio), action.NewSetParams(params), env.ws)
	require.Equal(action.ErrInvalidTransition, errors.Cause(err))
	require.Equal(env.g.Params, env.globalState(t).BlockchainParameters)
	// a rejected update leaves the loaded state untouched
	gs := env.globalState(t)
	require.Equal(action.ErrInvalidTransition, errors.Cause(env.p.SetParams(env.ctx(_eosio), env.ws, gs, params)))
	require.Equal(env.g.Params, gs.BlockchainParameters)

	params.MaxAuthorityDepth = 3
	params.ContextFreeDiscountNetUsageDen = 0
	_, err = env.p.Handle(env.ctx(_eosio), action.NewSetParams(params), env.ws)
	require.Equal(action.ErrOutOfRange, errors.Cause(err))
	require.Equal(env.g.Params, env.globalState(t).BlockchainParameters)
	require.Equal(action.ErrOutOfRange, errors.Cause(env.p.SetParams(env.ctx(_eosio), env.ws, gs, params)))
	require.Equal(env.g.Params, gs.BlockchainParameters)

	params.ContextFreeDiscountNetUsageDen = 100
	params.MaxInlineActionDepth = 8
	_, err = env.p.Handle(env.ctx(_admin), action.NewSetParams(params), env.ws)
	require.Equal(action.ErrUnauthorized, errors.Cause(err))
	_, err = env.p.Handle(env.ctx(_eosio), action.NewSetParams(params), env.ws)
	require.NoError(err)
	require.Equal(params, env.globalState(t).BlockchainParameters)
	applied, err := env.native.Parameters(env.ctx(_eosio), env.ws)
	require.NoError(err)
	require.Equal(params, applied)
}

func TestProtocol_SetPriv(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	_, err := env.p.Handle(env.ctx(_eosio), action.NewSetPriv(_bob, true), env.ws)
	require.NoError(err)
	acct, err := env.native.Account(env.ctx(_eosio), env.ws, _bob)
	require.NoError(err)
	require.True(acct.Privileged)

	_, err = env.p.Handle(env.ctx(_eosio), action.NewSetPriv(_bob, false), env.ws)
	require.NoError(err)
	acct, err = env.native.Account(env.ctx(_eosio), env.ws, _bob)
	require.NoError(err)
	require.False(acct.Privileged)

	_, err = env.p.Handle(env.ctx(_bob), action.NewSetPriv(_bob, true), env.ws)
	require.Equal(action.ErrUnauthorized, errors.Cause(err))
	_, err = env.p.Handle(env.ctx(_eosio), action.NewSetPriv(_producer1+1, true), env.ws)
	require.Equal(action.ErrNotFound, errors.Cause(err))
}
