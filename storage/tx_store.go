// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package storage

import (
	"github.com/aungmawjj/carbon-ledger/core"
	"github.com/aungmawjj/carbon-ledger/util"
	"github.com/dgraph-io/badger/v3"
)

type txStore struct {
	db *badger.DB
}

func (ts *txStore) getTx(hash []byte) (*core.Transaction, error) {
	b, err := viewValue(ts.db, util.ConcatBytes([]byte{colTxByHash}, hash))
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, badger.ErrKeyNotFound
	}
	tx := core.NewTransaction()
	return tx, tx.Unmarshal(b)
}

func (ts *txStore) hasTx(hash []byte) bool {
	return hasKey(ts.db, util.ConcatBytes([]byte{colTxByHash}, hash))
}

func (ts *txStore) getTxCommit(hash []byte) (*core.TxCommit, error) {
	b, err := viewValue(ts.db, util.ConcatBytes([]byte{colTxCommitByHash}, hash))
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, badger.ErrKeyNotFound
	}
	txc := core.NewTxCommit()
	return txc, txc.Unmarshal(b)
}

func (ts *txStore) getSequence(g getter) (uint64, error) {
	b, err := getValue(g, []byte{colCommitSequence})
	if err != nil {
		return 0, err
	}
	return util.BytesUint64(b), nil
}

func (ts *txStore) setTx(tx *core.Transaction) updateFunc {
	return func(txn *badger.Txn) error {
		val, err := tx.Marshal()
		if err != nil {
			return err
		}
		return txn.Set(util.ConcatBytes([]byte{colTxByHash}, tx.Hash()), val)
	}
}

func (ts *txStore) setTxCommit(txc *core.TxCommit) updateFunc {
	return func(txn *badger.Txn) error {
		val, err := txc.Marshal()
		if err != nil {
			return err
		}
		return txn.Set(util.ConcatBytes([]byte{colTxCommitByHash}, txc.Hash()), val)
	}
}

func (ts *txStore) setSequence(seq uint64) updateFunc {
	return func(txn *badger.Txn) error {
		return txn.Set([]byte{colCommitSequence}, util.Uint64Bytes(seq))
	}
}
