// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package cmd

import (
	"encoding/hex"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/worbli/sysgov/action"
	"github.com/worbli/sysgov/name"
)

type (
	// actionSpec is one entry of an action file, only the fields of its action are read
	actionSpec struct {
		Actor       name.Name   `yaml:"actor"`
		Authorizers []name.Name `yaml:"authorizers"`
		Action      string      `yaml:"action"`

		MaxRAMSize uint64                       `yaml:"maxRAMSize"`
		Level      uint8                        `yaml:"level"`
		Params     *action.BlockchainParameters `yaml:"params"`
		Account    name.Name                    `yaml:"account"`
		IsPriv     bool                         `yaml:"isPriv"`
		Producer   name.Name                    `yaml:"producer"`
		Schedule   []producerKeySpec            `yaml:"schedule"`
		Bidder     name.Name                    `yaml:"bidder"`
		NewName    name.Name                    `yaml:"newName"`
		Bid        action.Asset                 `yaml:"bid"`
		Creator    name.Name                    `yaml:"creator"`
		From       name.Name                    `yaml:"from"`
		To         name.Name                    `yaml:"to"`
		Quantity   action.Asset                 `yaml:"quantity"`
		Memo       string                       `yaml:"memo"`
	}

	producerKeySpec struct {
		Producer name.Name `yaml:"producer"`
		Key      string    `yaml:"key"`
	}
)

func loadActionFile(path string) ([]actionSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read action file %s", path)
	}
	var specs []actionSpec
	if err := yaml.UnmarshalStrict(data, &specs); err != nil {
		return nil, errors.Wrapf(err, "failed to parse action file %s", path)
	}
	return specs, nil
}

func (s *actionSpec) envelope() (*action.Envelope, error) {
	act, err := s.build()
	if err != nil {
		return nil, err
	}
	return action.NewEnvelope(s.Actor, act, s.Authorizers...), nil
}

func (s *actionSpec) build() (action.Action, error) {
	switch s.Action {
	case action.SetRAMKind:
		return action.NewSetRAM(s.MaxRAMSize), nil
	case action.SetUsageLevelKind:
		return action.NewSetUsageLevel(s.Level), nil
	case action.SetParamsKind:
		if s.Params == nil {
			return nil, errors.Wrap(action.ErrInvalidAction, "setparams requires params")
		}
		return action.NewSetParams(*s.Params), nil
	case action.SetPrivKind:
		return action.NewSetPriv(s.Account, s.IsPriv), nil
	case action.RemoveProducerKind:
		return action.NewRemoveProducer(s.Producer), nil
	case action.SetProdsKind:
		keys := make([]action.ProducerKey, 0, len(s.Schedule))
		for _, k := range s.Schedule {
			key, err := hex.DecodeString(k.Key)
			if err != nil {
				return nil, errors.Wrapf(action.ErrMalformedInput, "invalid key of producer %s: %v", k.Producer, err)
			}
			keys = append(keys, action.ProducerKey{ProducerName: k.Producer, BlockSigningKey: key})
		}
		raw, err := action.EncodeProducerSchedule(keys)
		if err != nil {
			return nil, err
		}
		return action.NewSetProds(raw), nil
	case action.BidNameKind:
		return action.NewBidName(s.Bidder, s.NewName, s.Bid), nil
	case action.CloseBidKind:
		return action.NewCloseBid(s.NewName), nil
	case action.NewAccountKind:
		return action.NewNewAccount(s.Creator, s.NewName), nil
	case action.TransferKind:
		return action.NewTransfer(s.From, s.To, s.Quantity, s.Memo), nil
	default:
		return nil, errors.Wrapf(action.ErrInvalidAction, "unknown action %q", s.Action)
	}
}
