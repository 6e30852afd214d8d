// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package action

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/worbli/sysgov/name"
)

var (
	_alice = name.MustFromString("alice")
	_bob   = name.MustFromString("bob")
	_sys   = Symbol{Precision: 4, Code: "SYS"}
)

func TestEnvelope(t *testing.T) {
	r := require.New(t)

	elp := NewEnvelope(_alice, NewBidName(_alice, name.MustFromString("com"), NewAsset(1000000, _sys)))
	r.Equal(_alice, elp.Actor())
	r.Equal([]name.Name{_alice}, elp.Authorizers())
	r.Equal(BidNameKind, elp.Action().Kind())
	r.NoError(elp.SanityCheck())

	h1, err := elp.Hash()
	r.NoError(err)
	h2, err := NewEnvelope(_alice, NewBidName(_alice, name.MustFromString("com"), NewAsset(1000000, _sys))).Hash()
	r.NoError(err)
	r.Equal(h1, h2)
	h3, err := NewEnvelope(_alice, NewBidName(_alice, name.MustFromString("com"), NewAsset(1000001, _sys))).Hash()
	r.NoError(err)
	r.NotEqual(h1, h3)

	elp = NewEnvelope(_alice, NewSetRAM(1), _bob, _alice)
	r.Equal([]name.Name{_bob, _alice}, elp.Authorizers())

	r.Equal(ErrInvalidAction, errors.Cause(NewEnvelope(0, NewSetRAM(1)).SanityCheck()))
	r.Equal(ErrInvalidAction, errors.Cause(NewEnvelope(_alice, nil).SanityCheck()))
}

func TestActionsHash(t *testing.T) {
	r := require.New(t)
	for _, act := range []Action{
		NewSetRAM(1 << 30),
		NewSetUsageLevel(10),
		NewSetParams(DefaultBlockchainParameters()),
		NewSetPriv(_bob, true),
		NewRemoveProducer(_bob),
		NewSetProds([]byte{0xc0}),
		NewBidName(_alice, name.MustFromString("com"), NewAsset(1, _sys)),
		NewCloseBid(name.MustFromString("com")),
		NewNewAccount(_alice, _bob),
		NewTransfer(_alice, _bob, NewAsset(1, _sys), "memo"),
	} {
		_, err := NewEnvelope(_alice, act).Hash()
		r.NoError(err, act.Kind())
	}
}

func TestTransferSanityCheck(t *testing.T) {
	r := require.New(t)

	tsf := NewTransfer(_alice, _bob, NewAsset(10000, _sys), "hi")
	r.NoError(tsf.SanityCheck())
	r.Equal(_alice, tsf.From())
	r.Equal(_bob, tsf.To())
	r.Equal("hi", tsf.Memo())
	r.Equal(int64(10000), tsf.Quantity().Amount)

	r.Equal(ErrInvalidAsset, errors.Cause(NewTransfer(_alice, _bob, NewAsset(0, _sys), "").SanityCheck()))
	r.Equal(ErrInvalidAsset, errors.Cause(NewTransfer(_alice, _bob, NewAsset(1, Symbol{Code: "bad"}), "").SanityCheck()))
	memo := make([]byte, MaxMemoSize+1)
	r.Equal(ErrInvalidAction, errors.Cause(NewTransfer(_alice, _bob, NewAsset(1, _sys), string(memo)).SanityCheck()))
}

func TestReceipt(t *testing.T) {
	r := require.New(t)
	receipt := &Receipt{Status: SuccessReceiptStatus}
	receipt.AddTransactionLogs(
		&TransactionLog{Sender: _alice, Recipient: _bob, Amount: NewAsset(1, _sys)},
		&TransactionLog{Sender: _alice, Recipient: _bob, Amount: NewAsset(0, _sys)},
		nil,
	)
	r.Len(receipt.TransactionLogs(), 1)
}
