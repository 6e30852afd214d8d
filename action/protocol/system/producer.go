// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package system

import (
	"context"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/iotexproject/go-pkgs/crypto"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/worbli/sysgov/action"
	"github.com/worbli/sysgov/action/protocol"
	"github.com/worbli/sysgov/blockchain/genesis"
	"github.com/worbli/sysgov/name"
	"github.com/worbli/sysgov/pkg/log"
	"github.com/worbli/sysgov/state"
)

const (
	// MaxProducers is the maximum size of a producer schedule
	MaxProducers = 125
	// MaxURLSize is the maximum length of a producer url
	MaxURLSize = 512
)

// Producer is a block producer known by the system account
type Producer struct {
	Owner       name.Name
	ProducerKey []byte
	URL         string
	Location    uint16
	IsActive    bool
}

type producerRecord struct {
	Owner       uint64
	ProducerKey []byte
	URL         string
	Location    uint16
	IsActive    bool
}

// Serialize serializes producer into bytes
func (prod *Producer) Serialize() ([]byte, error) {
	return rlp.EncodeToBytes(&producerRecord{
		Owner:       prod.Owner.Uint64(),
		ProducerKey: prod.ProducerKey,
		URL:         prod.URL,
		Location:    prod.Location,
		IsActive:    prod.IsActive,
	})
}

// Deserialize deserializes bytes into producer
func (prod *Producer) Deserialize(data []byte) error {
	var r producerRecord
	if err := rlp.DecodeBytes(data, &r); err != nil {
		return errors.Wrap(state.ErrStateDeserialization, err.Error())
	}
	*prod = Producer{
		Owner:       name.Name(r.Owner),
		ProducerKey: r.ProducerKey,
		URL:         r.URL,
		Location:    r.Location,
		IsActive:    r.IsActive,
	}
	return nil
}

func producerOptions(owner name.Name) []protocol.StateOption {
	return []protocol.StateOption{protocol.NamespaceOption(ProducerNameSpace), protocol.KeyOption(owner.Bytes())}
}

// RegisterProducer inserts or updates the producer of owner
func (p *Protocol) RegisterProducer(
	ctx context.Context,
	sm protocol.StateManager,
	owner name.Name,
	key []byte,
	url string,
	location uint16,
) error {
	if _, err := crypto.BytesToPublicKey(key); err != nil {
		return errors.Wrapf(action.ErrMalformedInput, "invalid public key of producer %s: %v", owner, err)
	}
	if len(url) >= MaxURLSize {
		return errors.Wrapf(action.ErrOutOfRange, "url of producer %s is too long", owner)
	}
	exist, err := p.chain.AccountExists(ctx, sm, owner)
	if err != nil {
		return err
	}
	if !exist {
		return errors.Wrapf(action.ErrNotFound, "account %s does not exist", owner)
	}
	prod := Producer{
		Owner:       owner,
		ProducerKey: key,
		URL:         url,
		Location:    location,
		IsActive:    true,
	}
	if _, err := sm.PutState(&prod, producerOptions(owner)...); err != nil {
		return errors.Wrapf(err, "failed to store producer %s", owner)
	}
	log.L().Debug("Registered producer.", zap.Stringer("owner", owner))
	return nil
}

// Producer returns the producer of owner
func (p *Protocol) Producer(_ context.Context, sr protocol.StateReader, owner name.Name) (*Producer, error) {
	prod := Producer{}
	if _, err := sr.State(&prod, producerOptions(owner)...); err != nil {
		if errors.Cause(err) == state.ErrStateNotExist {
			return nil, errors.Wrapf(action.ErrNotFound, "producer %s not found", owner)
		}
		return nil, err
	}
	return &prod, nil
}

// Producers returns all producers in owner order
func (p *Protocol) Producers(_ context.Context, sr protocol.StateReader) ([]*Producer, error) {
	_, iter, err := sr.States(protocol.NamespaceOption(ProducerNameSpace))
	if err != nil {
		return nil, err
	}
	prods := make([]*Producer, 0, iter.Size())
	for i := 0; i < iter.Size(); i++ {
		prod := &Producer{}
		if _, err := iter.Next(prod); err != nil {
			return nil, errors.Wrap(err, "failed to deserialize producer")
		}
		prods = append(prods, prod)
	}
	return prods, nil
}

// RemoveProducer erases the producer record
func (p *Protocol) RemoveProducer(ctx context.Context, sm protocol.StateManager, owner name.Name) error {
	g := genesis.MustExtractGenesisContext(ctx)
	if err := protocol.RequireAuth(ctx, g.SystemAccount()); err != nil {
		return err
	}
	if _, err := p.Producer(ctx, sm, owner); err != nil {
		return err
	}
	if _, err := sm.DelState(producerOptions(owner)...); err != nil {
		return errors.Wrapf(err, "failed to remove producer %s", owner)
	}
	log.L().Info("Removed producer.", zap.Stringer("owner", owner))
	return nil
}

// SetProds validates the encoded producer schedule and proposes it to the chain verbatim
func (p *Protocol) SetProds(ctx context.Context, sm protocol.StateManager, gs *GlobalState, raw []byte) error {
	g := genesis.MustExtractGenesisContext(ctx)
	if err := protocol.RequireAuth(ctx, g.SystemAccount()); err != nil {
		return err
	}
	keys, err := action.DecodeProducerSchedule(raw)
	if err != nil {
		return err
	}
	if err := validateSchedule(keys); err != nil {
		return err
	}
	version, err := p.chain.ProposeSchedule(ctx, sm, raw)
	if err != nil {
		return err
	}
	gs.LastProducerScheduleUpdate = protocol.MustGetBlockCtx(ctx).BlockTimeStamp
	gs.LastProducerScheduleSize = uint16(len(keys))
	log.L().Info("Proposed producer schedule.", zap.Uint32("version", version), zap.Int("size", len(keys)))
	return nil
}

func validateSchedule(keys []action.ProducerKey) error {
	if len(keys) == 0 {
		return errors.Wrap(action.ErrMalformedInput, "producer schedule is empty")
	}
	if len(keys) > MaxProducers {
		return errors.Wrapf(action.ErrMalformedInput, "producer schedule has more than %d producers", MaxProducers)
	}
	seen := make(map[name.Name]struct{}, len(keys))
	for _, k := range keys {
		if k.ProducerName.IsEmpty() {
			return errors.Wrap(action.ErrMalformedInput, "producer name cannot be empty")
		}
		if _, ok := seen[k.ProducerName]; ok {
			return errors.Wrapf(action.ErrMalformedInput, "duplicate producer %s in schedule", k.ProducerName)
		}
		seen[k.ProducerName] = struct{}{}
		if _, err := crypto.BytesToPublicKey(k.BlockSigningKey); err != nil {
			return errors.Wrapf(action.ErrMalformedInput, "invalid signing key of producer %s: %v", k.ProducerName, err)
		}
	}
	return nil
}
