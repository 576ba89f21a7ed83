// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package node

import (
	"errors"
	"time"

	"github.com/aungmawjj/carbon-ledger/core"
	"github.com/aungmawjj/carbon-ledger/emitter"
	"github.com/aungmawjj/carbon-ledger/execution"
	"github.com/aungmawjj/carbon-ledger/logger"
	"github.com/aungmawjj/carbon-ledger/storage"
	"github.com/aungmawjj/carbon-ledger/txpool"
)

const maxConflictRetry = 3

// committer executes and commits pooled txs one at a time, giving every tx
// a position in a single global commit order
type committer struct {
	txpool    *txpool.TxPool
	execution *execution.Execution
	storage   *storage.Storage
	emitter   *emitter.Emitter
	metrics   *metrics
	batch     int

	conflicts map[string]int

	stopCh chan struct{}
	doneCh chan struct{}
}

func (cm *committer) start() {
	cm.conflicts = make(map[string]int)
	cm.stopCh = make(chan struct{})
	cm.doneCh = make(chan struct{})
	go cm.run()
}

func (cm *committer) stop() {
	close(cm.stopCh)
	<-cm.doneCh
}

func (cm *committer) run() {
	defer close(cm.doneCh)
	for {
		select {
		case <-cm.stopCh:
			return
		case <-cm.txpool.Ready():
			cm.drainQueue()
		}
	}
}

func (cm *committer) drainQueue() {
	for {
		hashes := cm.txpool.PopTxsFromQueue(cm.batch)
		if len(hashes) == 0 {
			return
		}
		for i, hash := range hashes {
			select {
			case <-cm.stopCh:
				cm.txpool.PutTxsToQueue(hashes[i:])
				return
			default:
			}
			cm.commitTx(hash)
		}
	}
}

func (cm *committer) commitTx(hash []byte) {
	tx := cm.txpool.GetTx(hash)
	if tx == nil {
		return
	}
	// a resubmitted tx can reenter the pool while its first run commits
	if cm.storage.HasTx(hash) {
		logger.I().Debugw("skipped already committed tx", "tx", tx.ID())
		cm.txpool.RemoveTxs([][]byte{hash})
		return
	}
	res := cm.execution.Execute(tx)
	cm.metrics.txExecSeconds.Observe(res.TxCommit.Elapsed())

	err := cm.storage.Commit(&storage.CommitData{
		Tx:           tx,
		TxCommit:     res.TxCommit,
		ReadSet:      res.ReadSet,
		StateChanges: res.StateChanges,
	})
	if errors.Is(err, storage.ErrVersionConflict) {
		cm.onConflict(tx)
		return
	}
	delete(cm.conflicts, string(hash))
	if err != nil {
		cm.metrics.txCommitted.WithLabelValues("error").Inc()
		logger.I().Errorw("commit tx failed", "tx", tx.ID(), "error", err)
	} else {
		cm.onCommitted(tx, res.TxCommit)
	}
	// status turns committed once the tx leaves the pool
	cm.txpool.RemoveTxs([][]byte{hash})
}

// onConflict re-executes the tx against fresh state on a later round
func (cm *committer) onConflict(tx *core.Transaction) {
	cm.metrics.txConflicts.Inc()
	key := string(tx.Hash())
	cm.conflicts[key]++
	if cm.conflicts[key] > maxConflictRetry {
		delete(cm.conflicts, key)
		cm.txpool.RemoveTxs([][]byte{tx.Hash()})
		cm.metrics.txCommitted.WithLabelValues("error").Inc()
		logger.I().Warnw("dropped tx after repeated version conflicts", "tx", tx.ID())
		return
	}
	logger.I().Debugw("version conflict, retrying", "tx", tx.ID())
	cm.txpool.PutTxsToQueue([][]byte{tx.Hash()})
}

func (cm *committer) onCommitted(tx *core.Transaction, txc *core.TxCommit) {
	if txc.Error() != "" {
		cm.metrics.txCommitted.WithLabelValues("failed").Inc()
		logger.I().Infow("tx failed",
			"tx", tx.ID(), "seq", txc.Sequence(), "error", txc.Error())
		return
	}
	cm.metrics.txCommitted.WithLabelValues("success").Inc()
	logger.I().Debugw("tx committed", "tx", tx.ID(), "seq", txc.Sequence(),
		"elapsed", time.Duration(txc.Elapsed()*float64(time.Second)))

	for _, e := range txc.Events() {
		cm.metrics.eventsPublished.WithLabelValues(e.Name).Inc()
	}
	if dropped := cm.emitter.Emit(txc.Events()...); dropped > 0 {
		cm.metrics.eventsDropped.Add(float64(dropped))
	}
}
