// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package storage

import (
	"errors"

	"github.com/aungmawjj/carbon-ledger/core"
	"github.com/dgraph-io/badger/v3"
)

// CommitData is everything a single transaction writes to the ledger
type CommitData struct {
	Tx           *core.Transaction
	TxCommit     *core.TxCommit
	ReadSet      []*core.ReadVersion
	StateChanges []*core.StateChange
}

type Storage struct {
	db         *badger.DB
	stateStore *stateStore
	txStore    *txStore
}

func New(db *badger.DB) *Storage {
	strg := new(Storage)
	strg.db = db
	strg.stateStore = &stateStore{db}
	strg.txStore = &txStore{db}
	return strg
}

// Commit writes tx, tx commit and state changes atomically.
// State changes are skipped when the tx commit carries an error.
func (strg *Storage) Commit(data *CommitData) error {
	err := strg.db.Update(func(txn *badger.Txn) error {
		return strg.commit(txn, data)
	})
	if errors.Is(err, badger.ErrConflict) {
		return ErrVersionConflict
	}
	return err
}

func (strg *Storage) GetState(key []byte) ([]byte, uint64, error) {
	return strg.stateStore.getState(key)
}

func (strg *Storage) GetHistory(key []byte) ([]*core.KeyModification, error) {
	return strg.stateStore.getHistory(key)
}

func (strg *Storage) ScanState(prefix []byte, fn func(key, value []byte) error) error {
	return strg.stateStore.scanState(prefix, fn)
}

func (strg *Storage) GetTx(hash []byte) (*core.Transaction, error) {
	return strg.txStore.getTx(hash)
}

func (strg *Storage) HasTx(hash []byte) bool {
	return strg.txStore.hasTx(hash)
}

func (strg *Storage) GetTxCommit(hash []byte) (*core.TxCommit, error) {
	return strg.txStore.getTxCommit(hash)
}

// GetSequence returns the number of committed transactions
func (strg *Storage) GetSequence() (uint64, error) {
	var seq uint64
	err := strg.db.View(func(txn *badger.Txn) error {
		var err error
		seq, err = strg.txStore.getSequence(txn)
		return err
	})
	return seq, err
}

func (strg *Storage) commit(txn *badger.Txn, data *CommitData) error {
	if data.TxCommit.Error() == "" {
		if err := strg.stateStore.verifyReadSet(data.ReadSet)(txn); err != nil {
			return err
		}
	}
	seq, err := strg.txStore.getSequence(txn)
	if err != nil {
		return err
	}
	seq++
	data.TxCommit.SetSequence(seq)

	updFns := make([]updateFunc, 0)
	if data.TxCommit.Error() == "" {
		updFns = append(updFns, strg.stateStore.commitStateChanges(
			data.StateChanges, data.Tx.ID(), data.Tx.Timestamp().UnixNano())...)
	}
	updFns = append(updFns, strg.txStore.setTx(data.Tx))
	updFns = append(updFns, strg.txStore.setTxCommit(data.TxCommit))
	updFns = append(updFns, strg.txStore.setSequence(seq))
	return applyUpdates(txn, updFns)
}
