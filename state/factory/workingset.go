// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package factory

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/worbli/sysgov/action/protocol"
	"github.com/worbli/sysgov/db"
	"github.com/worbli/sysgov/db/batch"
	"github.com/worbli/sysgov/state"
)

var (
	_stateDBMtc = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sysgov_state_db",
			Help: "Sysgov State DB",
		},
		[]string{"type"},
	)
	_dbBatchSizeMtc = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sysgov_db_batch_size",
			Help: "DB batch size",
		},
		[]string{},
	)
)

func init() {
	prometheus.MustRegister(_stateDBMtc)
	prometheus.MustRegister(_dbBatchSizeMtc)
}

type (
	// WorkingSet stages state changes of a block on top of the committed states
	WorkingSet interface {
		protocol.StateManager
		// Commit persists the staged changes, the working set cannot be used afterwards
		Commit(context.Context) error
	}

	workingSet struct {
		height    uint64
		committed bool
		dao       db.KVStore
		flusher   batch.CachedBatch
		commitFn  func(uint64, batch.KVStoreBatch) error
	}
)

func newWorkingSet(height uint64, dao db.KVStore, commitFn func(uint64, batch.KVStoreBatch) error) *workingSet {
	return &workingSet{
		height:   height,
		dao:      dao,
		flusher:  batch.NewCachedBatch(),
		commitFn: commitFn,
	}
}

// Height returns the height of the block the working set stages
func (ws *workingSet) Height() (uint64, error) {
	return ws.height, nil
}

// Snapshot takes a snapshot of the staged changes
func (ws *workingSet) Snapshot() int {
	return ws.flusher.Snapshot()
}

// Revert discards the staged changes made after the snapshot
func (ws *workingSet) Revert(snapshot int) error {
	return ws.flusher.RevertSnapshot(snapshot)
}

// State pulls a state from the staged changes or the committed states
func (ws *workingSet) State(s any, opts ...protocol.StateOption) (uint64, error) {
	_stateDBMtc.WithLabelValues("get").Inc()
	cfg, err := protocol.CreateStateConfig(opts...)
	if err != nil {
		return ws.height, err
	}
	data, err := ws.flusher.Get(cfg.Namespace, cfg.Key)
	switch errors.Cause(err) {
	case nil:
		return ws.height, state.Deserialize(s, data)
	case batch.ErrAlreadyDeleted:
		return ws.height, errors.Wrapf(state.ErrStateNotExist, "state of ns = %s and key = %x was deleted", cfg.Namespace, cfg.Key)
	}
	return ws.height, readState(ws.dao, cfg.Namespace, cfg.Key, s)
}

// States returns all states of a namespace, staged changes applied
func (ws *workingSet) States(opts ...protocol.StateOption) (uint64, state.Iterator, error) {
	cfg, err := protocol.CreateStateConfig(opts...)
	if err != nil {
		return ws.height, nil, err
	}
	keys, values, err := readStates(ws.dao, cfg.Namespace, ws.flusher)
	if err != nil {
		return ws.height, nil, err
	}
	iter, err := state.NewIterator(keys, values)
	if err != nil {
		return ws.height, nil, err
	}
	return ws.height, iter, nil
}

// PutState stages a state
func (ws *workingSet) PutState(s any, opts ...protocol.StateOption) (uint64, error) {
	if ws.committed {
		return ws.height, errors.New("working set has been committed")
	}
	cfg, err := protocol.CreateStateConfig(opts...)
	if err != nil {
		return ws.height, err
	}
	_stateDBMtc.WithLabelValues("put").Inc()
	data, err := state.Serialize(s)
	if err != nil {
		return ws.height, errors.Wrapf(err, "failed to convert state %T to bytes", s)
	}
	ws.flusher.Put(cfg.Namespace, cfg.Key, data, "failed to put state of ns = %s")
	return ws.height, nil
}

// DelState stages the deletion of a state
func (ws *workingSet) DelState(opts ...protocol.StateOption) (uint64, error) {
	if ws.committed {
		return ws.height, errors.New("working set has been committed")
	}
	cfg, err := protocol.CreateStateConfig(opts...)
	if err != nil {
		return ws.height, err
	}
	ws.flusher.Delete(cfg.Namespace, cfg.Key, "failed to delete state of ns = %s")
	return ws.height, nil
}

// Commit persists the staged changes through the factory
func (ws *workingSet) Commit(_ context.Context) error {
	if ws.committed {
		return errors.New("working set has been committed")
	}
	ws.flusher.ResetSnapshots()
	_dbBatchSizeMtc.WithLabelValues().Set(float64(ws.flusher.Size()))
	if err := ws.commitFn(ws.height, ws.flusher); err != nil {
		return err
	}
	ws.committed = true
	return nil
}

// readStates returns the states of a namespace in ascending key order, with the writes of overlay applied
func readStates(dao db.KVStore, ns string, overlay batch.KVStoreBatch) ([][]byte, [][]byte, error) {
	merged := make(map[string][]byte)
	keys, values, err := dao.Filter(ns, func(k, v []byte) bool { return true }, nil, nil)
	switch errors.Cause(err) {
	case nil:
		for i := range keys {
			merged[string(keys[i])] = values[i]
		}
	case db.ErrNotExist, db.ErrBucketNotExist:
	default:
		return nil, nil, err
	}
	if overlay != nil {
		for i := 0; i < overlay.Size(); i++ {
			write, err := overlay.Entry(i)
			if err != nil {
				return nil, nil, err
			}
			if write.Namespace() != ns {
				continue
			}
			switch write.WriteType() {
			case batch.Put:
				merged[string(write.Key())] = write.Value()
			case batch.Delete:
				delete(merged, string(write.Key()))
			}
		}
	}
	sorted := make([]string, 0, len(merged))
	for k := range merged {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)
	keys = make([][]byte, len(sorted))
	values = make([][]byte, len(sorted))
	for i, k := range sorted {
		keys[i] = []byte(k)
		values[i] = merged[k]
	}
	return keys, values, nil
}
