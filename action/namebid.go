// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package action

import (
	"io"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/worbli/sysgov/name"
)

type (
	// BidName places a bid on a premium name
	BidName struct {
		bidder  name.Name
		newName name.Name
		bid     Asset
	}

	// CloseBid closes the auction of a name
	CloseBid struct {
		newName name.Name
	}
)

// NewBidName returns a BidName action
func NewBidName(bidder, newName name.Name, bid Asset) *BidName {
	return &BidName{
		bidder:  bidder,
		newName: newName,
		bid:     bid,
	}
}

// Bidder returns the bidder
func (act *BidName) Bidder() name.Name { return act.bidder }

// NewName returns the name bid on
func (act *BidName) NewName() name.Name { return act.newName }

// Bid returns the bid
func (act *BidName) Bid() Asset { return act.bid }

// Kind returns the action name
func (act *BidName) Kind() string { return BidNameKind }

// SanityCheck validates the variables in the action
func (act *BidName) SanityCheck() error { return nil }

// EncodeRLP implements rlp.Encoder
func (act *BidName) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, []any{act.bidder.Uint64(), act.newName.Uint64(), act.bid})
}

// NewCloseBid returns a CloseBid action
func NewCloseBid(newName name.Name) *CloseBid {
	return &CloseBid{newName: newName}
}

// NewName returns the name whose auction is closed
func (act *CloseBid) NewName() name.Name { return act.newName }

// Kind returns the action name
func (act *CloseBid) Kind() string { return CloseBidKind }

// SanityCheck validates the variables in the action
func (act *CloseBid) SanityCheck() error { return nil }

// EncodeRLP implements rlp.Encoder
func (act *CloseBid) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, []any{act.newName.Uint64()})
}
