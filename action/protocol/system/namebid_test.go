// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package system

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/worbli/sysgov/action"
	"github.com/worbli/sysgov/name"
	"github.com/worbli/sysgov/state"
	"github.com/worbli/sysgov/test/identityset"
	"github.com/worbli/sysgov/test/mock/mock_system"
)

func sys(amount int64) action.Asset {
	return action.NewAsset(amount, _sys)
}

func TestProtocol_BidName(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)
	alice := identityset.Name(0)

	bid := func(bidder name.Name, amount int64) (*action.Receipt, error) {
		return env.p.Handle(env.ctx(bidder), action.NewBidName(bidder, alice, sys(amount)), env.ws)
	}

	receipt, err := bid(_bob, 100)
	require.NoError(err)
	require.Equal(action.BidNameKind, receipt.ActionKind)
	logs := receipt.TransactionLogs()
	require.Len(logs, 1)
	require.Equal(_bob, logs[0].Sender)
	require.Equal(_names, logs[0].Recipient)
	require.Equal(sys(100), logs[0].Amount)
	require.Equal("bid name alice", logs[0].Memo)

	b, err := env.p.NameBid(env.ctx(_bob), env.ws, alice)
	require.NoError(err)
	require.Equal(_bob, b.HighBidder)
	require.EqualValues(100, b.HighBid)
	require.True(_now.Equal(b.LastBidTime))
	require.True(b.IsOpen())
	require.EqualValues(100, env.balance(t, _names))

	// an increase of exactly 10% is not enough
	_, err = bid(_carol, 110)
	require.Equal(action.ErrInsufficientBid, errors.Cause(err))
	_, err = bid(_carol, 109)
	require.Equal(action.ErrInsufficientBid, errors.Cause(err))
	require.EqualValues(10000000, env.balance(t, _carol))

	receipt, err = bid(_carol, 111)
	require.NoError(err)
	logs = receipt.TransactionLogs()
	require.Len(logs, 2)
	require.Equal(_names, logs[1].Sender)
	require.Equal(_bob, logs[1].Recipient)
	require.Equal(sys(100), logs[1].Amount)
	require.Equal("refund bid on name alice", logs[1].Memo)
	require.EqualValues(10000000, env.balance(t, _bob))
	require.EqualValues(10000000-111, env.balance(t, _carol))
	require.EqualValues(111, env.balance(t, _names))

	_, err = bid(_carol, 200)
	require.Equal(action.ErrSelfOutbid, errors.Cause(err))

	receipt, err = bid(_bob, 200)
	require.NoError(err)
	require.Len(receipt.TransactionLogs(), 2)
	b, err = env.p.NameBid(env.ctx(_bob), env.ws, alice)
	require.NoError(err)
	require.Equal(_bob, b.HighBidder)
	require.EqualValues(200, b.HighBid)
	require.EqualValues(200, env.balance(t, _names))

	bids, err := env.p.NameBids(env.ctx(_bob), env.ws)
	require.NoError(err)
	require.Len(bids, 1)
}

func TestProtocol_BidNameSmallIncrement(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)
	target := name.MustFromString("wbi")

	_, err := env.p.Handle(env.ctx(_bob), action.NewBidName(_bob, target, sys(9)), env.ws)
	require.NoError(err)
	// 9/10 rounds down so any increase is accepted
	_, err = env.p.Handle(env.ctx(_carol), action.NewBidName(_carol, target, sys(10)), env.ws)
	require.NoError(err)
	b, err := env.p.NameBid(env.ctx(_bob), env.ws, target)
	require.NoError(err)
	require.Equal(_carol, b.HighBidder)
}

func TestProtocol_BidNameError(t *testing.T) {
	env := newTestEnv(t)
	alice := identityset.Name(0)

	for _, v := range []struct {
		desc    string
		caller  name.Name
		bidder  name.Name
		newName name.Name
		bid     action.Asset
		err     error
	}{
		{"unauthorized", _carol, _bob, alice, sys(100), action.ErrUnauthorized},
		{"not top level", _bob, _bob, name.MustFromString("bob.x"), sys(100), action.ErrNamingPolicy},
		{"empty name", _bob, _bob, 0, sys(100), action.ErrNamingPolicy},
		{"existing account", _bob, _bob, _carol, sys(100), action.ErrNamingPolicy},
		{"13 characters", _bob, _bob, name.MustFromString("abcdefghijklj"), sys(100), action.ErrNamingPolicy},
		{"12 characters", _bob, _bob, name.MustFromString("abcdefghijkl"), sys(100), action.ErrNamingPolicy},
		{"other token", _bob, _bob, alice, action.MustParseAsset("1.0000 ABC"), action.ErrInvalidAsset},
		{"other precision", _bob, _bob, alice, action.MustParseAsset("1.00 SYS"), action.ErrInvalidAsset},
		{"zero bid", _bob, _bob, alice, sys(0), action.ErrInsufficientBid},
		{"negative bid", _bob, _bob, alice, sys(-1), action.ErrInsufficientBid},
		{"no funds", _dave, _dave, alice, sys(100), state.ErrNotEnoughBalance},
	} {
		t.Run(v.desc, func(t *testing.T) {
			require := require.New(t)
			_, err := env.p.Handle(env.ctx(v.caller), action.NewBidName(v.bidder, v.newName, v.bid), env.ws)
			require.Equal(v.err, errors.Cause(err))
			_, err = env.p.NameBid(env.ctx(v.caller), env.ws, v.newName)
			require.Equal(action.ErrNotFound, errors.Cause(err))
		})
	}
	require.EqualValues(t, 0, env.balance(t, _names))
}

func TestProtocol_CloseBid(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)
	alice := identityset.Name(0)

	_, err := env.p.Handle(env.ctx(_eosio), action.NewCloseBid(alice), env.ws)
	require.Equal(action.ErrNotFound, errors.Cause(err))

	_, err = env.p.Handle(env.ctx(_bob), action.NewBidName(_bob, alice, sys(100)), env.ws)
	require.NoError(err)
	_, err = env.p.Handle(env.ctx(_bob), action.NewCloseBid(alice), env.ws)
	require.Equal(action.ErrUnauthorized, errors.Cause(err))

	receipt, err := env.p.Handle(env.ctx(_eosio), action.NewCloseBid(alice), env.ws)
	require.NoError(err)
	require.Equal(action.CloseBidKind, receipt.ActionKind)
	b, err := env.p.NameBid(env.ctx(_eosio), env.ws, alice)
	require.NoError(err)
	require.True(b.Closed)
	require.False(b.IsOpen())
	require.Equal(_bob, b.HighBidder)
	require.True(_now.Equal(env.globalState(t).LastNameClose))

	_, err = env.p.Handle(env.ctx(_carol), action.NewBidName(_carol, alice, sys(1000)), env.ws)
	require.Equal(action.ErrAuctionClosed, errors.Cause(err))
	_, err = env.p.Handle(env.ctx(_eosio), action.NewCloseBid(alice), env.ws)
	require.Equal(action.ErrAuctionClosed, errors.Cause(err))
	require.EqualValues(100, env.balance(t, _names))
}

func TestProtocol_BidNameRefundFailure(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	transferer := mock_system.NewMockTransferer(ctrl)
	chain := mock_system.NewMockChainController(ctrl)
	p := NewProtocol(transferer, chain)
	g := testGenesis()
	ws := newWorkingSet(t)
	alice := identityset.Name(0)

	chain.EXPECT().AccountExists(gomock.Any(), gomock.Any(), alice).Return(false, nil).Times(2)
	gomock.InOrder(
		transferer.EXPECT().Transfer(gomock.Any(), gomock.Any(), _bob, _names, sys(100), "bid name alice").
			Return(&action.TransactionLog{Sender: _bob, Recipient: _names, Amount: sys(100)}, nil),
		transferer.EXPECT().Transfer(gomock.Any(), gomock.Any(), _carol, _names, sys(200), "bid name alice").
			Return(&action.TransactionLog{Sender: _carol, Recipient: _names, Amount: sys(200)}, nil),
		transferer.EXPECT().Transfer(gomock.Any(), gomock.Any(), _names, _bob, sys(100), "refund bid on name alice").
			Return(nil, errors.New("ledger failure")),
	)

	_, err := p.Handle(testContext(g, _bob), action.NewBidName(_bob, alice, sys(100)), ws)
	require.NoError(err)
	_, err = p.Handle(testContext(g, _carol), action.NewBidName(_carol, alice, sys(200)), ws)
	require.Error(err)
	require.True(strings.Contains(err.Error(), "ledger failure"))

	b, err := p.NameBid(testContext(g, _bob), ws, alice)
	require.NoError(err)
	require.Equal(_bob, b.HighBidder)
	require.EqualValues(100, b.HighBid)
}
