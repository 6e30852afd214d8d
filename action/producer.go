// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package action

import (
	"io"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/worbli/sysgov/name"
)

type (
	// ProducerKey is an entry of a proposed producer schedule
	ProducerKey struct {
		ProducerName    name.Name
		BlockSigningKey []byte
	}

	// RemoveProducer deactivates a block producer
	RemoveProducer struct {
		producer name.Name
	}

	// SetProds proposes a new producer schedule given as encoded bytes
	SetProds struct {
		schedule []byte
	}
)

// EncodeProducerSchedule encodes the producer keys
func EncodeProducerSchedule(keys []ProducerKey) ([]byte, error) {
	return rlp.EncodeToBytes(keys)
}

// DecodeProducerSchedule decodes the producer keys, every byte of raw must be consumed
func DecodeProducerSchedule(raw []byte) ([]ProducerKey, error) {
	var keys []ProducerKey
	if err := rlp.DecodeBytes(raw, &keys); err != nil {
		return nil, errors.Wrapf(ErrMalformedInput, "failed to decode producer schedule: %v", err)
	}
	return keys, nil
}

// NewRemoveProducer returns a RemoveProducer action
func NewRemoveProducer(producer name.Name) *RemoveProducer {
	return &RemoveProducer{producer: producer}
}

// Producer returns the producer to remove
func (act *RemoveProducer) Producer() name.Name { return act.producer }

// Kind returns the action name
func (act *RemoveProducer) Kind() string { return RemoveProducerKind }

// SanityCheck validates the variables in the action
func (act *RemoveProducer) SanityCheck() error { return nil }

// EncodeRLP implements rlp.Encoder
func (act *RemoveProducer) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, []any{act.producer.Uint64()})
}

// NewSetProds returns a SetProds action
func NewSetProds(schedule []byte) *SetProds {
	return &SetProds{schedule: schedule}
}

// Schedule returns the encoded schedule
func (act *SetProds) Schedule() []byte { return act.schedule }

// Kind returns the action name
func (act *SetProds) Kind() string { return SetProdsKind }

// SanityCheck validates the variables in the action
func (act *SetProds) SanityCheck() error { return nil }

// EncodeRLP implements rlp.Encoder
func (act *SetProds) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, []any{act.schedule})
}
