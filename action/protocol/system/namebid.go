// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package system

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/worbli/sysgov/action"
	"github.com/worbli/sysgov/action/protocol"
	"github.com/worbli/sysgov/blockchain/genesis"
	"github.com/worbli/sysgov/name"
	"github.com/worbli/sysgov/pkg/log"
	"github.com/worbli/sysgov/state"
)

// NameBid is the auction of a premium name
type NameBid struct {
	NewName     name.Name
	HighBidder  name.Name
	HighBid     int64
	LastBidTime time.Time
	Closed      bool
}

type nameBidRecord struct {
	NewName     uint64
	HighBidder  uint64
	HighBid     uint64
	LastBidTime uint64
	Closed      bool
}

// IsOpen returns true if the auction still accepts bids
func (b *NameBid) IsOpen() bool {
	return !b.Closed && b.HighBid > 0
}

// Serialize serializes name bid into bytes
func (b *NameBid) Serialize() ([]byte, error) {
	return rlp.EncodeToBytes(&nameBidRecord{
		NewName:     b.NewName.Uint64(),
		HighBidder:  b.HighBidder.Uint64(),
		HighBid:     uint64(b.HighBid),
		LastBidTime: toMicro(b.LastBidTime),
		Closed:      b.Closed,
	})
}

// Deserialize deserializes bytes into name bid
func (b *NameBid) Deserialize(data []byte) error {
	var r nameBidRecord
	if err := rlp.DecodeBytes(data, &r); err != nil {
		return errors.Wrap(state.ErrStateDeserialization, err.Error())
	}
	*b = NameBid{
		NewName:     name.Name(r.NewName),
		HighBidder:  name.Name(r.HighBidder),
		HighBid:     int64(r.HighBid),
		LastBidTime: fromMicro(r.LastBidTime),
		Closed:      r.Closed,
	}
	return nil
}

func nameBidOptions(n name.Name) []protocol.StateOption {
	return []protocol.StateOption{protocol.NamespaceOption(NameBidNameSpace), protocol.KeyOption(n.Bytes())}
}

// NameBid returns the auction of name n
func (p *Protocol) NameBid(_ context.Context, sr protocol.StateReader, n name.Name) (*NameBid, error) {
	b := NameBid{}
	if _, err := sr.State(&b, nameBidOptions(n)...); err != nil {
		if errors.Cause(err) == state.ErrStateNotExist {
			return nil, errors.Wrapf(action.ErrNotFound, "no bid on name %s", n)
		}
		return nil, err
	}
	return &b, nil
}

// NameBids returns all auctions in name order
func (p *Protocol) NameBids(_ context.Context, sr protocol.StateReader) ([]*NameBid, error) {
	_, iter, err := sr.States(protocol.NamespaceOption(NameBidNameSpace))
	if err != nil {
		return nil, err
	}
	bids := make([]*NameBid, 0, iter.Size())
	for i := 0; i < iter.Size(); i++ {
		b := &NameBid{}
		if _, err := iter.Next(b); err != nil {
			return nil, errors.Wrap(err, "failed to deserialize name bid")
		}
		bids = append(bids, b)
	}
	return bids, nil
}

func (p *Protocol) putNameBid(sm protocol.StateManager, b *NameBid) error {
	_, err := sm.PutState(b, nameBidOptions(b.NewName)...)
	return errors.Wrapf(err, "failed to store bid on name %s", b.NewName)
}

// BidName places a bid on a premium name, escrowing the bid and refunding the outbid bidder
func (p *Protocol) BidName(
	ctx context.Context,
	sm protocol.StateManager,
	bidder name.Name,
	newName name.Name,
	bid action.Asset,
) ([]*action.TransactionLog, error) {
	if err := protocol.RequireAuth(ctx, bidder); err != nil {
		return nil, err
	}
	if err := p.validateBidTarget(ctx, sm, newName); err != nil {
		return nil, err
	}
	g := genesis.MustExtractGenesisContext(ctx)
	if bid.Symbol != g.TokenSymbol() {
		return nil, errors.Wrapf(action.ErrInvalidAsset, "asset must be system token %s", g.TokenSymbol())
	}
	if bid.Amount <= 0 {
		return nil, errors.Wrap(action.ErrInsufficientBid, "insufficient bid")
	}

	current, err := p.NameBid(ctx, sm, newName)
	switch errors.Cause(err) {
	case nil:
		if !current.IsOpen() {
			return nil, errors.Wrapf(action.ErrAuctionClosed, "auction of name %s has already closed", newName)
		}
		if bid.Amount-current.HighBid <= current.HighBid/10 {
			return nil, errors.Wrapf(action.ErrInsufficientBid, "must increase bid by 10%%, current high bid %d", current.HighBid)
		}
		if current.HighBidder == bidder {
			return nil, errors.Wrapf(action.ErrSelfOutbid, "account %s is already highest bidder", bidder)
		}
	case action.ErrNotFound:
		current = nil
	default:
		return nil, err
	}

	escrow, err := p.transferer.Transfer(ctx, sm, bidder, g.NamesAccount(), bid, "bid name "+newName.String())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to escrow bid of %s", bidder)
	}
	logs := []*action.TransactionLog{escrow}
	now := protocol.MustGetBlockCtx(ctx).BlockTimeStamp
	if current == nil {
		current = &NameBid{NewName: newName}
	} else {
		refund, err := p.transferer.Transfer(
			ctx,
			sm,
			g.NamesAccount(),
			current.HighBidder,
			action.NewAsset(current.HighBid, bid.Symbol),
			"refund bid on name "+newName.String(),
		)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to refund previous bidder %s", current.HighBidder)
		}
		logs = append(logs, refund)
		log.L().Debug("Refunded outbid bidder.",
			zap.Stringer("name", newName),
			zap.Stringer("bidder", current.HighBidder),
			zap.Int64("amount", current.HighBid))
	}
	current.HighBidder = bidder
	current.HighBid = bid.Amount
	current.LastBidTime = now
	if err := p.putNameBid(sm, current); err != nil {
		return nil, err
	}
	log.L().Info("Accepted bid.", zap.Stringer("name", newName), zap.Stringer("bidder", bidder), zap.Stringer("bid", bid))
	return logs, nil
}

func (p *Protocol) validateBidTarget(ctx context.Context, sr protocol.StateReader, newName name.Name) error {
	if !newName.IsTopLevel() {
		return errors.Wrap(action.ErrNamingPolicy, "you can only bid on top-level suffix")
	}
	if newName.IsEmpty() {
		return errors.Wrap(action.ErrNamingPolicy, "the empty name is not a valid account name to bid on")
	}
	exist, err := p.chain.AccountExists(ctx, sr, newName)
	if err != nil {
		return err
	}
	if exist {
		return errors.Wrapf(action.ErrNamingPolicy, "account %s already exists", newName)
	}
	if newName.IsThirteenChar() {
		return errors.Wrap(action.ErrNamingPolicy, "13 character names are not valid account names to bid on")
	}
	if newName.IsTwelveChar() {
		return errors.Wrap(action.ErrNamingPolicy, "accounts with 12 character names and no dots can be created without bidding required")
	}
	return nil
}

// CloseBid closes the auction of a name
func (p *Protocol) CloseBid(ctx context.Context, sm protocol.StateManager, gs *GlobalState, newName name.Name) error {
	g := genesis.MustExtractGenesisContext(ctx)
	if err := protocol.RequireAuth(ctx, g.SystemAccount()); err != nil {
		return err
	}
	b, err := p.NameBid(ctx, sm, newName)
	if err != nil {
		return err
	}
	if b.Closed {
		return errors.Wrapf(action.ErrAuctionClosed, "auction of name %s has already closed", newName)
	}
	return p.closeBid(ctx, sm, gs, b)
}

func (p *Protocol) closeBid(ctx context.Context, sm protocol.StateManager, gs *GlobalState, b *NameBid) error {
	b.Closed = true
	if err := p.putNameBid(sm, b); err != nil {
		return err
	}
	gs.LastNameClose = protocol.MustGetBlockCtx(ctx).BlockTimeStamp
	log.L().Info("Closed auction.", zap.Stringer("name", b.NewName), zap.Stringer("winner", b.HighBidder))
	return nil
}
