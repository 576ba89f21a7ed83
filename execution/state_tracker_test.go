// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package execution

import (
	"testing"

	"github.com/aungmawjj/carbon-ledger/core"
	"github.com/stretchr/testify/assert"
)

type mapStateStore struct {
	stateMap   map[string][]byte
	versionMap map[string]uint64
}

func newMapStateStore() *mapStateStore {
	return &mapStateStore{
		stateMap:   make(map[string][]byte),
		versionMap: make(map[string]uint64),
	}
}

func (store *mapStateStore) GetState(key []byte) ([]byte, uint64, error) {
	return store.stateMap[string(key)], store.versionMap[string(key)], nil
}

func (store *mapStateStore) SetState(key, value []byte) {
	store.stateMap[string(key)] = value
	store.versionMap[string(key)]++
}

func TestStateTracker_GetState(t *testing.T) {
	assert := assert.New(t)

	ms := newMapStateStore()
	ms.SetState([]byte("a"), []byte{200})
	trk := newStateTracker(ms)

	val, err := trk.GetState("a")
	assert.NoError(err)
	assert.Equal([]byte{200}, val)

	val, err = trk.GetState("b")
	assert.NoError(err)
	assert.Nil(val)

	trk.SetState("a", []byte{100})
	val, _ = trk.GetState("a")
	assert.Equal([]byte{100}, val, "get latest state")

	val, _, _ = ms.GetState([]byte("a"))
	assert.Equal([]byte{200}, val, "base store is untouched")
}

func TestStateTracker_ReadSet(t *testing.T) {
	assert := assert.New(t)

	ms := newMapStateStore()
	ms.SetState([]byte("b"), []byte{1})
	ms.SetState([]byte("b"), []byte{2})
	trk := newStateTracker(ms)

	trk.GetState("b")
	trk.GetState("a")
	ms.SetState([]byte("b"), []byte{3})
	trk.GetState("b")

	trk.SetState("c", []byte{1})
	trk.GetState("c")

	assert.Equal([]*core.ReadVersion{
		{Key: []byte("a"), Version: 0},
		{Key: []byte("b"), Version: 2},
	}, trk.getReadSet(), "first observed version, sorted, own writes excluded")
}

func TestStateTracker_StateChanges(t *testing.T) {
	assert := assert.New(t)

	trk := newStateTracker(newMapStateStore())
	trk.SetState("z", []byte{1})
	trk.SetState("a", []byte{2})
	trk.SetState("z", []byte{3})

	scList := trk.getStateChanges()
	if assert.Len(scList, 2) {
		assert.Equal([]byte("z"), scList[0].Key())
		assert.Equal([]byte{3}, scList[0].Value())
		assert.Equal([]byte("a"), scList[1].Key())
		assert.Equal([]byte{2}, scList[1].Value())
	}
}
