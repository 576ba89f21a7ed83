// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package execution

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aungmawjj/carbon-ledger/core"
	"github.com/aungmawjj/carbon-ledger/execution/chaincode"
)

var ErrExecTimeout = errors.New("tx execution timeout")

type txExecutor struct {
	codeRegistry *codeRegistry

	timeout   time.Duration
	channelID string
	trk       *stateTracker

	tx *core.Transaction
}

func (txe *txExecutor) execute() *core.TxCommit {
	start := time.Now()
	txc := core.NewTxCommit().
		SetHash(txe.tx.Hash()).
		SetTimestamp(start.UnixNano())

	resp, err := txe.executeWithTimeout()
	if err != nil {
		txc.SetError(err.Error())
	} else {
		txc.SetPayload(resp.Payload).
			SetEvents(txe.toCoreEvents(resp.Events))
	}
	txc.SetElapsed(time.Since(start).Seconds())
	return txc
}

type execResult struct {
	resp *chaincode.Response
	err  error
}

func (txe *txExecutor) executeWithTimeout() (*chaincode.Response, error) {
	resCh := make(chan execResult, 1)
	go func() {
		resp, err := txe.executeChaincode()
		resCh <- execResult{resp, err}
	}()

	select {
	case res := <-resCh:
		return res.resp, res.err

	case <-time.After(txe.timeout):
		return nil, ErrExecTimeout
	}
}

func (txe *txExecutor) executeChaincode() (resp *chaincode.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%+v", r)
		}
	}()
	cc, err := txe.codeRegistry.getInstance(txe.tx.CodeID())
	if err != nil {
		return nil, err
	}
	resp, err = cc.Invoke(&callContextTx{
		tx:           txe.tx,
		channelID:    txe.channelID,
		stateTracker: txe.trk,
	})
	if err != nil {
		return nil, err
	}
	if resp == nil {
		resp = new(chaincode.Response)
	}
	return resp, nil
}

func (txe *txExecutor) toCoreEvents(events []*chaincode.Event) []*core.Event {
	ret := make([]*core.Event, 0, len(events))
	for _, e := range events {
		if e == nil {
			continue
		}
		ret = append(ret, &core.Event{
			Name:    e.Name,
			TxID:    txe.tx.ID(),
			Payload: json.RawMessage(e.Payload),
		})
	}
	return ret
}
