// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package protocol

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/worbli/sysgov/pkg/log"
)

// Registry is the hub of all protocols deployed on the chain, in the order they are registered
type Registry struct {
	ids       map[string]int
	protocols []Protocol
}

// NewRegistry create a new Registry
func NewRegistry() *Registry {
	return &Registry{
		ids:       make(map[string]int),
		protocols: make([]Protocol, 0),
	}
}

// Register registers the protocol with a unique ID
func (r *Registry) Register(id string, p Protocol) error {
	if _, exist := r.ids[id]; exist {
		return errors.Errorf("Protocol with ID %s is already registered", id)
	}
	r.ids[id] = len(r.protocols)
	r.protocols = append(r.protocols, p)
	log.L().Debug("protocol registered", zap.String("id", id))
	return nil
}

// Find finds a protocol by ID
func (r *Registry) Find(id string) (Protocol, bool) {
	idx, ok := r.ids[id]
	if !ok {
		return nil, false
	}
	return r.protocols[idx], true
}

// All returns all protocols
func (r *Registry) All() []Protocol {
	all := make([]Protocol, len(r.protocols))
	copy(all, r.protocols)
	return all
}

// CreateGenesisStates runs every protocol's genesis state creator in registration order
func (r *Registry) CreateGenesisStates(ctx context.Context, sm StateManager) error {
	for _, p := range r.protocols {
		if gsc, ok := p.(GenesisStateCreator); ok {
			if err := gsc.CreateGenesisStates(ctx, sm); err != nil {
				return errors.Wrapf(err, "failed to create genesis states for protocol %s", p.Name())
			}
		}
	}
	return nil
}
