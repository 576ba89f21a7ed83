// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package storage

import (
	"testing"
	"time"

	"github.com/aungmawjj/carbon-ledger/core"
	"github.com/dgraph-io/badger/v3"
	"github.com/stretchr/testify/assert"
)

func createOnMemoryDB() *badger.DB {
	db, _ := NewDB("", Config{InMemory: true})
	return db
}

func newTestTx(nonce uint64, ts time.Time) *core.Transaction {
	return core.NewTransaction().
		SetNonce(nonce).
		SetTimestamp(ts).
		SetCodeID("carbon").
		Sign(core.GenerateKey(nil))
}

func TestStorage_StateZero(t *testing.T) {
	assert := assert.New(t)

	strg := New(createOnMemoryDB())
	val, version, err := strg.GetState([]byte("CERT:1"))
	assert.NoError(err)
	assert.Nil(val)
	assert.EqualValues(0, version)

	seq, err := strg.GetSequence()
	assert.NoError(err)
	assert.EqualValues(0, seq)

	history, err := strg.GetHistory([]byte("CERT:1"))
	assert.NoError(err)
	assert.Empty(history)
}

func TestStorage_Commit(t *testing.T) {
	assert := assert.New(t)

	strg := New(createOnMemoryDB())
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tx1 := newTestTx(1, ts)
	data := &CommitData{
		Tx:       tx1,
		TxCommit: core.NewTxCommit().SetHash(tx1.Hash()),
		ReadSet:  []*core.ReadVersion{{Key: []byte("CERT:1"), Version: 0}},
		StateChanges: []*core.StateChange{
			core.NewStateChange().SetKey([]byte("CERT:1")).SetValue([]byte("v1")),
			core.NewStateChange().SetKey([]byte("CERT:10")).SetValue([]byte("x1")),
		},
	}
	assert.NoError(strg.Commit(data))
	assert.EqualValues(1, data.TxCommit.Sequence())

	val, version, err := strg.GetState([]byte("CERT:1"))
	assert.NoError(err)
	assert.Equal([]byte("v1"), val)
	assert.EqualValues(1, version)

	assert.True(strg.HasTx(tx1.Hash()))
	tx, err := strg.GetTx(tx1.Hash())
	assert.NoError(err)
	assert.Equal(tx1.ID(), tx.ID())

	txc, err := strg.GetTxCommit(tx1.Hash())
	assert.NoError(err)
	assert.EqualValues(1, txc.Sequence())

	tx2 := newTestTx(2, ts.Add(time.Hour))
	data = &CommitData{
		Tx:       tx2,
		TxCommit: core.NewTxCommit().SetHash(tx2.Hash()),
		ReadSet:  []*core.ReadVersion{{Key: []byte("CERT:1"), Version: 1}},
		StateChanges: []*core.StateChange{
			core.NewStateChange().SetKey([]byte("CERT:1")).SetValue([]byte("v2")),
		},
	}
	assert.NoError(strg.Commit(data))

	history, err := strg.GetHistory([]byte("CERT:1"))
	assert.NoError(err)
	if assert.Len(history, 2, "history of CERT:10 must not leak in") {
		assert.Equal(tx1.ID(), history[0].TxID)
		assert.Equal([]byte("v1"), history[0].Value)
		assert.Equal(tx2.ID(), history[1].TxID)
		assert.Equal([]byte("v2"), history[1].Value)
		assert.True(ts.Add(time.Hour).Equal(history[1].Time()))
		assert.False(history[1].IsDelete)
	}

	seq, err := strg.GetSequence()
	assert.NoError(err)
	assert.EqualValues(2, seq)
}

func TestStorage_CommitVersionConflict(t *testing.T) {
	assert := assert.New(t)

	strg := New(createOnMemoryDB())
	ts := time.Now()

	tx1 := newTestTx(1, ts)
	assert.NoError(strg.Commit(&CommitData{
		Tx:       tx1,
		TxCommit: core.NewTxCommit().SetHash(tx1.Hash()),
		StateChanges: []*core.StateChange{
			core.NewStateChange().SetKey([]byte("COMPANY:CO-1")).SetValue([]byte("a")),
		},
	}))

	// tx2 was executed against the state before tx1
	tx2 := newTestTx(2, ts)
	err := strg.Commit(&CommitData{
		Tx:       tx2,
		TxCommit: core.NewTxCommit().SetHash(tx2.Hash()),
		ReadSet:  []*core.ReadVersion{{Key: []byte("COMPANY:CO-1"), Version: 0}},
		StateChanges: []*core.StateChange{
			core.NewStateChange().SetKey([]byte("COMPANY:CO-1")).SetValue([]byte("b")),
		},
	})
	assert.ErrorIs(err, ErrVersionConflict)
	assert.False(strg.HasTx(tx2.Hash()), "nothing persisted on conflict")

	val, _, _ := strg.GetState([]byte("COMPANY:CO-1"))
	assert.Equal([]byte("a"), val)
}

func TestStorage_CommitFailedTx(t *testing.T) {
	assert := assert.New(t)

	strg := New(createOnMemoryDB())
	tx := newTestTx(1, time.Now())
	err := strg.Commit(&CommitData{
		Tx:       tx,
		TxCommit: core.NewTxCommit().SetHash(tx.Hash()).SetError("not found"),
		StateChanges: []*core.StateChange{
			core.NewStateChange().SetKey([]byte("CERT:1")).SetValue([]byte("v")),
		},
	})
	assert.NoError(err)
	assert.True(strg.HasTx(tx.Hash()))

	val, version, _ := strg.GetState([]byte("CERT:1"))
	assert.Nil(val, "failed tx must not write state")
	assert.EqualValues(0, version)
}

func TestStorage_ScanState(t *testing.T) {
	assert := assert.New(t)

	strg := New(createOnMemoryDB())
	tx := newTestTx(1, time.Now())
	assert.NoError(strg.Commit(&CommitData{
		Tx:       tx,
		TxCommit: core.NewTxCommit().SetHash(tx.Hash()),
		StateChanges: []*core.StateChange{
			core.NewStateChange().SetKey([]byte("CERT:1")).SetValue([]byte("c1")),
			core.NewStateChange().SetKey([]byte("CERT:2")).SetValue([]byte("c2")),
			core.NewStateChange().SetKey([]byte("COMPANY:1")).SetValue([]byte("co")),
		},
	}))

	keys := make([]string, 0)
	err := strg.ScanState([]byte("CERT:"), func(key, value []byte) error {
		keys = append(keys, string(key))
		return nil
	})
	assert.NoError(err)
	assert.Equal([]string{"CERT:1", "CERT:2"}, keys)
}
