// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package execution

import (
	"sort"
	"sync"

	"github.com/aungmawjj/carbon-ledger/core"
)

type versionedGetter interface {
	GetState(key []byte) ([]byte, uint64, error)
}

// stateTracker buffers the writes of one transaction and
// records the committed version of every key it reads from the base store
type stateTracker struct {
	getter versionedGetter

	reads       map[string]uint64
	changes     map[string][]byte
	changedKeys []string

	mtx sync.RWMutex
}

func newStateTracker(getter versionedGetter) *stateTracker {
	return &stateTracker{
		getter:      getter,
		reads:       make(map[string]uint64),
		changes:     make(map[string][]byte),
		changedKeys: make([]string, 0),
	}
}

func (trk *stateTracker) GetState(key string) ([]byte, error) {
	trk.mtx.Lock()
	defer trk.mtx.Unlock()
	return trk.getState(key)
}

func (trk *stateTracker) SetState(key string, value []byte) {
	trk.mtx.Lock()
	defer trk.mtx.Unlock()
	trk.setState(key, value)
}

// getReadSet returns the versions observed by the tx, ordered by key
func (trk *stateTracker) getReadSet() []*core.ReadVersion {
	trk.mtx.RLock()
	defer trk.mtx.RUnlock()

	keys := make([]string, 0, len(trk.reads))
	for key := range trk.reads {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	ret := make([]*core.ReadVersion, len(keys))
	for i, key := range keys {
		ret[i] = &core.ReadVersion{Key: []byte(key), Version: trk.reads[key]}
	}
	return ret
}

// getStateChanges returns the latest value of each written key in order of first write
func (trk *stateTracker) getStateChanges() []*core.StateChange {
	trk.mtx.RLock()
	defer trk.mtx.RUnlock()

	scList := make([]*core.StateChange, len(trk.changedKeys))
	for i, key := range trk.changedKeys {
		scList[i] = core.NewStateChange().
			SetKey([]byte(key)).
			SetValue(trk.changes[key])
	}
	return scList
}

func (trk *stateTracker) getState(key string) ([]byte, error) {
	if value, ok := trk.changes[key]; ok {
		return value, nil
	}
	value, version, err := trk.getter.GetState([]byte(key))
	if err != nil {
		return nil, err
	}
	if _, ok := trk.reads[key]; !ok {
		trk.reads[key] = version
	}
	return value, nil
}

func (trk *stateTracker) setState(key string, value []byte) {
	_, tracked := trk.changes[key]
	trk.changes[key] = value
	if !tracked {
		trk.changedKeys = append(trk.changedKeys, key)
	}
}
