// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package action

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/iotexproject/go-pkgs/hash"
	"github.com/pkg/errors"

	"github.com/worbli/sysgov/name"
)

// action kinds
const (
	SetRAMKind         = "setram"
	SetUsageLevelKind  = "setusagelvl"
	SetParamsKind      = "setparams"
	SetPrivKind        = "setpriv"
	RemoveProducerKind = "rmvproducer"
	SetProdsKind       = "setprods"
	BidNameKind        = "bidname"
	CloseBidKind       = "closebid"
	NewAccountKind     = "newaccount"
	TransferKind       = "transfer"
)

type (
	// Action is the action can be handled in protocols. The method is added to avoid mistakenly used empty interface as action.
	Action interface {
		// Kind returns the action name
		Kind() string
		SanityCheck() error
	}

	// Envelope wraps an action with the account executing it and the accounts that authorized it
	Envelope struct {
		actor       name.Name
		authorizers []name.Name
		action      Action
	}

	envelopeForHash struct {
		Kind        string
		Actor       uint64
		Authorizers []uint64
		Payload     Action
	}
)

// NewEnvelope returns an envelope, the actor authorizes the action unless other authorizers are given
func NewEnvelope(actor name.Name, act Action, authorizers ...name.Name) *Envelope {
	if len(authorizers) == 0 {
		authorizers = []name.Name{actor}
	}
	return &Envelope{
		actor:       actor,
		authorizers: authorizers,
		action:      act,
	}
}

// Actor returns the executing account
func (elp *Envelope) Actor() name.Name { return elp.actor }

// Authorizers returns the accounts which authorized the action
func (elp *Envelope) Authorizers() []name.Name { return elp.authorizers }

// Action returns the action
func (elp *Envelope) Action() Action { return elp.action }

// SanityCheck validates the envelope
func (elp *Envelope) SanityCheck() error {
	if elp.action == nil {
		return errors.Wrap(ErrInvalidAction, "nil action")
	}
	if elp.actor.IsEmpty() {
		return errors.Wrap(ErrInvalidAction, "empty actor")
	}
	return elp.action.SanityCheck()
}

// Hash returns the hash of the envelope
func (elp *Envelope) Hash() (hash.Hash256, error) {
	auths := make([]uint64, len(elp.authorizers))
	for i, a := range elp.authorizers {
		auths[i] = a.Uint64()
	}
	b, err := rlp.EncodeToBytes(&envelopeForHash{
		Kind:        elp.action.Kind(),
		Actor:       elp.actor.Uint64(),
		Authorizers: auths,
		Payload:     elp.action,
	})
	if err != nil {
		return hash.ZeroHash256, errors.Wrap(err, "failed to encode envelope")
	}
	return hash.Hash256b(b), nil
}
