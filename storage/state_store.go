// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package storage

import (
	"errors"

	"github.com/aungmawjj/carbon-ledger/core"
	"github.com/aungmawjj/carbon-ledger/util"
	"github.com/dgraph-io/badger/v3"
)

// ErrVersionConflict is returned when a key read by a tx was changed before commit
var ErrVersionConflict = errors.New("state version conflict")

type stateStore struct {
	db *badger.DB
}

func (ss *stateStore) getState(key []byte) ([]byte, uint64, error) {
	var (
		val     []byte
		version uint64
	)
	err := ss.db.View(func(txn *badger.Txn) error {
		var err error
		if val, err = getValue(txn, stateValueKey(key)); err != nil {
			return err
		}
		version, err = ss.getVersion(txn, key)
		return err
	})
	return val, version, err
}

func (ss *stateStore) getVersion(g getter, key []byte) (uint64, error) {
	b, err := getValue(g, stateVersionKey(key))
	if err != nil {
		return 0, err
	}
	return util.BytesUint64(b), nil
}

// getHistory returns every version of key, oldest first
func (ss *stateStore) getHistory(key []byte) ([]*core.KeyModification, error) {
	ret := make([]*core.KeyModification, 0)
	prefix := historyPrefix(key)
	err := ss.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			b, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			km := new(core.KeyModification)
			if err := km.Unmarshal(b); err != nil {
				return err
			}
			ret = append(ret, km)
		}
		return nil
	})
	return ret, err
}

// scanState calls fn with each live key/value whose key starts with prefix
func (ss *stateStore) scanState(prefix []byte, fn func(key, value []byte) error) error {
	colPrefix := stateValueKey(prefix)
	return ss.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(colPrefix); it.ValidForPrefix(colPrefix); it.Next() {
			item := it.Item()
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := fn(item.KeyCopy(nil)[1:], val); err != nil {
				return err
			}
		}
		return nil
	})
}

func (ss *stateStore) verifyReadSet(readSet []*core.ReadVersion) updateFunc {
	return func(txn *badger.Txn) error {
		for _, rv := range readSet {
			version, err := ss.getVersion(txn, rv.Key)
			if err != nil {
				return err
			}
			if version != rv.Version {
				return ErrVersionConflict
			}
		}
		return nil
	}
}

func (ss *stateStore) commitStateChanges(
	scList []*core.StateChange, txID string, timestamp int64,
) []updateFunc {
	ret := make([]updateFunc, 0, len(scList))
	for _, sc := range scList {
		ret = append(ret, ss.updateState(sc, txID, timestamp))
	}
	return ret
}

// updateState writes the value, bumps the key version and appends a history record
func (ss *stateStore) updateState(sc *core.StateChange, txID string, timestamp int64) updateFunc {
	return func(txn *badger.Txn) error {
		version, err := ss.getVersion(txn, sc.Key())
		if err != nil {
			return err
		}
		version++
		km := &core.KeyModification{
			TxID:      txID,
			Timestamp: timestamp,
			IsDelete:  sc.Deleted(),
			Value:     sc.Value(),
		}
		b, err := km.Marshal()
		if err != nil {
			return err
		}
		if err := txn.Set(historyKey(sc.Key(), version), b); err != nil {
			return err
		}
		if err := txn.Set(stateVersionKey(sc.Key()), util.Uint64Bytes(version)); err != nil {
			return err
		}
		if sc.Deleted() {
			return txn.Delete(stateValueKey(sc.Key()))
		}
		return txn.Set(stateValueKey(sc.Key()), sc.Value())
	}
}

func stateValueKey(key []byte) []byte {
	return util.ConcatBytes([]byte{colStateValueByKey}, key)
}

func stateVersionKey(key []byte) []byte {
	return util.ConcatBytes([]byte{colStateVersionByKey}, key)
}

func historyPrefix(key []byte) []byte {
	return util.ConcatBytes([]byte{colHistoryByKeyVersion}, util.LengthPrefixed(key))
}

func historyKey(key []byte, version uint64) []byte {
	return util.ConcatBytes(historyPrefix(key), util.Uint64Bytes(version))
}
