// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package txpool

import (
	"errors"
	"fmt"

	"github.com/aungmawjj/carbon-ledger/core"
	"github.com/aungmawjj/carbon-ledger/logger"
)

var ErrInvalidTx = errors.New("invalid tx")

type Status struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
	Queue   int `json:"queue"`
}

type Storage interface {
	HasTx(hash []byte) bool
}

type Execution interface {
	VerifyTx(tx *core.Transaction) error
}

type TxStatus uint8

const (
	TxStatusNotFound TxStatus = iota
	TxStatusQueue
	TxStatusPending
	TxStatusCommitted
)

func (s TxStatus) String() string {
	switch s {
	case TxStatusQueue:
		return "queue"
	case TxStatusPending:
		return "pending"
	case TxStatusCommitted:
		return "committed"
	default:
		return "notfound"
	}
}

// TxPool holds submitted txs until the committer takes them in arrival order
type TxPool struct {
	storage   Storage
	execution Execution

	store *txStore
}

func New(storage Storage, execution Execution) *TxPool {
	return &TxPool{
		storage:   storage,
		execution: execution,
		store:     newTxStore(),
	}
}

func (pool *TxPool) SubmitTx(tx *core.Transaction) error {
	return pool.addNewTx(tx)
}

// Ready is signalled when txs are waiting in the queue
func (pool *TxPool) Ready() <-chan struct{} {
	return pool.store.ready
}

func (pool *TxPool) PopTxsFromQueue(max int) [][]byte {
	return pool.store.popTxsFromQueue(max)
}

func (pool *TxPool) PutTxsToQueue(hashes [][]byte) {
	pool.store.putTxsToQueue(hashes)
}

func (pool *TxPool) RemoveTxs(hashes [][]byte) {
	pool.store.removeTxs(hashes)
}

func (pool *TxPool) GetTx(hash []byte) *core.Transaction {
	return pool.store.getTx(hash)
}

func (pool *TxPool) GetTxStatus(hash []byte) TxStatus {
	return pool.getTxStatus(hash)
}

func (pool *TxPool) GetStatus() Status {
	return pool.store.getStatus()
}

func (pool *TxPool) addNewTx(tx *core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("%w, %v", ErrInvalidTx, err)
	}
	if pool.storage.HasTx(tx.Hash()) {
		return nil
	}
	if err := pool.execution.VerifyTx(tx); err != nil {
		return fmt.Errorf("%w, %v", ErrInvalidTx, err)
	}
	if pool.store.addNewTx(tx) {
		logger.I().Debugw("tx queued", "tx", tx.ID(), "code", tx.CodeID())
	}
	return nil
}

func (pool *TxPool) getTxStatus(hash []byte) TxStatus {
	status := pool.store.getTxStatus(hash)
	if status != TxStatusNotFound {
		return status
	}
	if pool.storage.HasTx(hash) {
		return TxStatusCommitted
	}
	return TxStatusNotFound
}
