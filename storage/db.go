// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package storage

import (
	"errors"

	"github.com/dgraph-io/badger/v3"
)

// data collection prefixes for different data collections
const (
	_                      byte = iota
	colStateValueByKey          // state value by state key
	colStateVersionByKey        // latest version number by state key
	colHistoryByKeyVersion      // key modification by state key and version
	colTxByHash                 // tx by hash
	colTxCommitByHash           // tx commit by tx hash
	colCommitSequence           // last commit sequence
)

type Config struct {
	InMemory   bool
	SyncWrites bool
}

var DefaultConfig = Config{
	SyncWrites: true,
}

// NewDB opens badger db, path is ignored for in-memory db
func NewDB(path string, config Config) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithSyncWrites(config.SyncWrites).
		WithLogger(nil)
	if config.InMemory {
		opts = opts.WithDir("").WithValueDir("").WithInMemory(true)
	}
	return badger.Open(opts)
}

type getter interface {
	Get(key []byte) (*badger.Item, error)
}

type updateFunc func(txn *badger.Txn) error

// getValue returns nil without error when key is absent
func getValue(g getter, key []byte) ([]byte, error) {
	item, err := g.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}

func viewValue(db *badger.DB, key []byte) ([]byte, error) {
	var val []byte
	err := db.View(func(txn *badger.Txn) error {
		var err error
		val, err = getValue(txn, key)
		return err
	})
	return val, err
}

func hasKey(db *badger.DB, key []byte) bool {
	err := db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		return err
	})
	return err == nil
}

func applyUpdates(txn *badger.Txn, fns []updateFunc) error {
	for _, fn := range fns {
		if err := fn(txn); err != nil {
			return err
		}
	}
	return nil
}
