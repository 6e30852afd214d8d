// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package db

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/worbli/sysgov/db/batch"
	"github.com/worbli/sysgov/pkg/lifecycle"
)

var (
	// ErrBucketNotExist indicates certain bucket does not exist in db
	ErrBucketNotExist = errors.New("bucket not exist in DB")
	// ErrNotExist indicates certain item does not exist in Blockchain database
	ErrNotExist = errors.New("not exist in DB")
	// ErrIO indicates the generic error of DB I/O operation
	ErrIO = errors.New("DB I/O operation error")
	// ErrDBNotStarted indicates the DB is used before Start or after Stop
	ErrDBNotStarted = errors.New("db has not started")
	// ErrInvalid indicates an invalid input
	ErrInvalid = errors.New("invalid input")
)

type (
	// Condition spells the condition for <k, v> to be filtered out
	Condition func(k, v []byte) bool

	// KVStoreBasic is the interface of basic KV store.
	KVStoreBasic interface {
		lifecycle.StartStopper

		// Put insert or update a record identified by (namespace, key)
		Put(string, []byte, []byte) error
		// Get gets a record by (namespace, key)
		Get(string, []byte) ([]byte, error)
		// Delete deletes a record by (namespace, key)
		Delete(string, []byte) error
	}

	// KVStore is a KVStore with WriteBatch API
	KVStore interface {
		KVStoreBasic
		// WriteBatch commits a batch
		WriteBatch(batch.KVStoreBatch) error
		// Filter returns <k, v> pair in a bucket that meet the condition, in ascending key order
		Filter(string, Condition, []byte, []byte) ([][]byte, [][]byte, error)
	}

	// memKVStore is the in-memory implementation of KVStore for testing purpose
	memKVStore struct {
		lock sync.RWMutex
		data map[string]map[string][]byte
	}
)

// NewMemKVStore instantiates an in-memory KV store
func NewMemKVStore() KVStore {
	return &memKVStore{
		data: make(map[string]map[string][]byte),
	}
}

func (m *memKVStore) Start(_ context.Context) error { return nil }

func (m *memKVStore) Stop(_ context.Context) error { return nil }

// Put inserts a <key, value> record
func (m *memKVStore) Put(namespace string, key, value []byte) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.put(namespace, key, value)
	return nil
}

func (m *memKVStore) put(namespace string, key, value []byte) {
	ns, ok := m.data[namespace]
	if !ok {
		ns = make(map[string][]byte)
		m.data[namespace] = ns
	}
	v := make([]byte, len(value))
	copy(v, value)
	ns[string(key)] = v
}

// Get retrieves a record
func (m *memKVStore) Get(namespace string, key []byte) ([]byte, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	ns, ok := m.data[namespace]
	if !ok {
		return nil, errors.Wrapf(ErrNotExist, "namespace = %s doesn't exist", namespace)
	}
	value, ok := ns[string(key)]
	if !ok {
		return nil, errors.Wrapf(ErrNotExist, "key = %x doesn't exist", key)
	}
	v := make([]byte, len(value))
	copy(v, value)
	return v, nil
}

// Delete deletes a record
func (m *memKVStore) Delete(namespace string, key []byte) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	if ns, ok := m.data[namespace]; ok {
		delete(ns, string(key))
	}
	return nil
}

// WriteBatch commits a batch
func (m *memKVStore) WriteBatch(b batch.KVStoreBatch) error {
	b.Lock()
	defer b.ClearAndUnlock()

	m.lock.Lock()
	defer m.lock.Unlock()
	for i := 0; i < b.Size(); i++ {
		write, err := b.Entry(i)
		if err != nil {
			return err
		}
		switch write.WriteType() {
		case batch.Put:
			m.put(write.Namespace(), write.Key(), write.Value())
		case batch.Delete:
			if ns, ok := m.data[write.Namespace()]; ok {
				delete(ns, string(write.Key()))
			}
		}
	}
	return nil
}

// Filter returns <k, v> pair in a bucket that meet the condition
func (m *memKVStore) Filter(namespace string, cond Condition, minKey, maxKey []byte) ([][]byte, [][]byte, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	ns, ok := m.data[namespace]
	if !ok {
		return nil, nil, errors.Wrapf(ErrBucketNotExist, "bucket = %s doesn't exist", namespace)
	}
	keys := make([]string, 0, len(ns))
	for k := range ns {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var fk, fv [][]byte
	for _, k := range keys {
		key := []byte(k)
		if len(minKey) > 0 && bytes.Compare(key, minKey) < 0 {
			continue
		}
		if len(maxKey) > 0 && bytes.Compare(key, maxKey) > 0 {
			break
		}
		v := ns[k]
		if cond(key, v) {
			value := make([]byte, len(v))
			copy(value, v)
			fk = append(fk, key)
			fv = append(fv, value)
		}
	}
	if len(fk) == 0 {
		return nil, nil, errors.Wrap(ErrNotExist, "filter returns no match")
	}
	return fk, fv, nil
}
