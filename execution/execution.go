// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package execution

import (
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/aungmawjj/carbon-ledger/core"
	"github.com/aungmawjj/carbon-ledger/util"
	"golang.org/x/crypto/sha3"
)

type Config struct {
	ChannelID     string
	TxExecTimeout time.Duration
}

var DefaultConfig = Config{
	ChannelID:     "carbon-channel",
	TxExecTimeout: 10 * time.Second,
}

type StateStore interface {
	GetState(key []byte) ([]byte, uint64, error)
	GetHistory(key []byte) ([]*core.KeyModification, error)
	ScanState(prefix []byte, fn func(key, value []byte) error) error
}

type Execution struct {
	stateStore StateStore
	config     Config

	codeRegistry *codeRegistry
	querySeq     uint64
}

func New(stateStore StateStore, config Config) *Execution {
	exec := &Execution{
		stateStore: stateStore,
		config:     config,
	}
	exec.codeRegistry = newCodeRegistry()
	exec.codeRegistry.registerDriver(DriverTypeNative, newNativeCodeDriver())
	exec.codeRegistry.registerCode(NativeCodeIDCarbon, DriverTypeNative)
	return exec
}

// Result carries what the committer needs to persist an executed tx
type Result struct {
	TxCommit     *core.TxCommit
	ReadSet      []*core.ReadVersion
	StateChanges []*core.StateChange
}

// Execute runs tx against the current committed state.
// Writes are only buffered, a failed tx yields no state changes.
func (exec *Execution) Execute(tx *core.Transaction) *Result {
	txe := &txExecutor{
		codeRegistry: exec.codeRegistry,
		timeout:      exec.config.TxExecTimeout,
		channelID:    exec.config.ChannelID,
		trk:          newStateTracker(exec.stateStore),
		tx:           tx,
	}
	txc := txe.execute()
	res := &Result{TxCommit: txc}
	if txc.Error() == "" {
		res.ReadSet = txe.trk.getReadSet()
		res.StateChanges = txe.trk.getStateChanges()
	}
	return res
}

type QueryData struct {
	CodeID string `json:"codeId"`
	Input  []byte `json:"input"`
}

func (exec *Execution) Query(query *QueryData) (val []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	cc, err := exec.codeRegistry.getInstance(query.CodeID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return cc.Query(&callContextQuery{
		txID:        exec.readTxID(now, query.Input),
		timestamp:   now,
		channelID:   exec.config.ChannelID,
		input:       query.Input,
		queryEngine: &queryEngine{exec.stateStore},
	})
}

// VerifyTx rejects txs for unknown chaincodes before they enter the pool
func (exec *Execution) VerifyTx(tx *core.Transaction) error {
	_, err := exec.codeRegistry.getInstance(tx.CodeID())
	return err
}

// readTxID identifies a read only call, unique within the node process
func (exec *Execution) readTxID(ts time.Time, input []byte) string {
	seq := atomic.AddUint64(&exec.querySeq, 1)
	sum := sha3.Sum256(util.ConcatBytes(
		[]byte(exec.config.ChannelID),
		util.Uint64Bytes(seq),
		util.Uint64Bytes(uint64(ts.UnixNano())),
		input,
	))
	return hex.EncodeToString(sum[:])
}
