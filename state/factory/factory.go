// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package factory

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/worbli/sysgov/action/protocol"
	"github.com/worbli/sysgov/db"
	"github.com/worbli/sysgov/db/batch"
	"github.com/worbli/sysgov/pkg/lifecycle"
	"github.com/worbli/sysgov/pkg/log"
	"github.com/worbli/sysgov/pkg/util/byteutil"
	"github.com/worbli/sysgov/state"
)

const (
	// AccountKVNamespace is the namespace of the factory metadata in underlying DB
	AccountKVNamespace = "Meta"
	// CurrentHeightKey indicates the key of current factory height in underlying DB
	CurrentHeightKey = "currentHeight"
)

var (
	// ErrWorkingSetVersion is the error that a working set is committed on top of another one
	ErrWorkingSetVersion = errors.New("working set height doesn't match factory height")
)

type (
	// Factory defines an interface for managing states
	Factory interface {
		lifecycle.StartStopper
		protocol.StateReader
		// NewWorkingSet returns a working set on top of the committed states, at the next height
		NewWorkingSet(context.Context) (WorkingSet, error)
	}

	// stateDB implements Factory interface, tracks changes to states and batch-commits to DB
	stateDB struct {
		lifecycle.Readiness
		mutex              sync.RWMutex
		currentChainHeight uint64
		dao                db.KVStore // the underlying DB for state storage
	}
)

// StateDBOption sets stateDB construction parameter
type StateDBOption func(*stateDB, db.Config) error

// DefaultStateDBOption creates the on-disk store from config for state db
func DefaultStateDBOption() StateDBOption {
	return func(sdb *stateDB, cfg db.Config) (err error) {
		sdb.dao, err = db.CreateKVStore(cfg, cfg.DbPath)
		return err
	}
}

// InMemStateDBOption creates in memory store for state db
func InMemStateDBOption() StateDBOption {
	return func(sdb *stateDB, cfg db.Config) error {
		sdb.dao = db.NewMemKVStore()
		return nil
	}
}

// KVStoreOption uses the given store for state db
func KVStoreOption(kv db.KVStore) StateDBOption {
	return func(sdb *stateDB, cfg db.Config) error {
		sdb.dao = kv
		return nil
	}
}

// NewStateDB creates a new state db
func NewStateDB(cfg db.Config, opts ...StateDBOption) (Factory, error) {
	sdb := stateDB{}
	for _, opt := range opts {
		if err := opt(&sdb, cfg); err != nil {
			log.S().Errorf("Failed to execute state factory creation option %p: %v", opt, err)
			return nil, err
		}
	}
	if sdb.dao == nil {
		return nil, errors.New("no underlying DB is set for state db")
	}
	return &sdb, nil
}

func (sdb *stateDB) Start(ctx context.Context) error {
	sdb.mutex.Lock()
	defer sdb.mutex.Unlock()
	if err := sdb.dao.Start(ctx); err != nil {
		return err
	}
	h, err := sdb.dao.Get(AccountKVNamespace, []byte(CurrentHeightKey))
	switch errors.Cause(err) {
	case nil:
		sdb.currentChainHeight = byteutil.BytesToUint64BigEndian(h)
	case db.ErrNotExist:
		sdb.currentChainHeight = 0
	default:
		return errors.Wrap(err, "failed to get factory's height from underlying DB")
	}
	log.L().Info("state db started", zap.Uint64("height", sdb.currentChainHeight))
	return sdb.TurnOn()
}

func (sdb *stateDB) Stop(ctx context.Context) error {
	sdb.mutex.Lock()
	defer sdb.mutex.Unlock()
	if err := sdb.TurnOff(); err != nil {
		return err
	}
	return sdb.dao.Stop(ctx)
}

// Height returns factory's height
func (sdb *stateDB) Height() (uint64, error) {
	sdb.mutex.RLock()
	defer sdb.mutex.RUnlock()
	return sdb.currentChainHeight, nil
}

// NewWorkingSet returns a working set at the next height
func (sdb *stateDB) NewWorkingSet(_ context.Context) (WorkingSet, error) {
	if !sdb.IsReady() {
		return nil, lifecycle.ErrWrongState
	}
	sdb.mutex.RLock()
	defer sdb.mutex.RUnlock()
	return newWorkingSet(sdb.currentChainHeight+1, sdb.dao, sdb.commit), nil
}

// State returns a committed state
func (sdb *stateDB) State(s any, opts ...protocol.StateOption) (uint64, error) {
	sdb.mutex.RLock()
	defer sdb.mutex.RUnlock()
	cfg, err := protocol.CreateStateConfig(opts...)
	if err != nil {
		return 0, err
	}
	if err := readState(sdb.dao, cfg.Namespace, cfg.Key, s); err != nil {
		return 0, err
	}
	return sdb.currentChainHeight, nil
}

// States returns all committed states of a namespace
func (sdb *stateDB) States(opts ...protocol.StateOption) (uint64, state.Iterator, error) {
	sdb.mutex.RLock()
	defer sdb.mutex.RUnlock()
	cfg, err := protocol.CreateStateConfig(opts...)
	if err != nil {
		return 0, nil, err
	}
	keys, values, err := readStates(sdb.dao, cfg.Namespace, nil)
	if err != nil {
		return 0, nil, err
	}
	iter, err := state.NewIterator(keys, values)
	if err != nil {
		return 0, nil, err
	}
	return sdb.currentChainHeight, iter, nil
}

func (sdb *stateDB) commit(height uint64, b batch.KVStoreBatch) error {
	sdb.mutex.Lock()
	defer sdb.mutex.Unlock()
	if height != sdb.currentChainHeight+1 {
		return errors.Wrapf(
			ErrWorkingSetVersion,
			"current state height %d, working set height %d",
			sdb.currentChainHeight,
			height,
		)
	}
	b.Put(AccountKVNamespace, []byte(CurrentHeightKey), byteutil.Uint64ToBytesBigEndian(height), "failed to update height in ns = %s")
	size := b.Size()
	if err := sdb.dao.WriteBatch(b); err != nil {
		return errors.Wrap(err, "failed to commit working set")
	}
	sdb.currentChainHeight = height
	log.L().Debug("working set committed", zap.Uint64("height", height), zap.Int("writes", size))
	return nil
}

func readState(dao db.KVStore, ns string, key []byte, s any) error {
	data, err := dao.Get(ns, key)
	if err != nil {
		if errors.Cause(err) == db.ErrNotExist {
			return errors.Wrapf(state.ErrStateNotExist, "failed to get state of ns = %s and key = %x", ns, key)
		}
		return err
	}
	return state.Deserialize(s, data)
}
