// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package execution

import (
	"time"

	"github.com/aungmawjj/carbon-ledger/core"
	"github.com/aungmawjj/carbon-ledger/execution/chaincode"
)

type callContextTx struct {
	tx        *core.Transaction
	channelID string
	*stateTracker
}

var _ chaincode.WriteContext = (*callContextTx)(nil)

func (ctx *callContextTx) TxID() string {
	return ctx.tx.ID()
}

func (ctx *callContextTx) Timestamp() time.Time {
	return ctx.tx.Timestamp()
}

func (ctx *callContextTx) ChannelID() string {
	return ctx.channelID
}

func (ctx *callContextTx) Sender() string {
	if ctx.tx.Sender() == nil {
		return ""
	}
	return ctx.tx.Sender().String()
}

func (ctx *callContextTx) Input() []byte {
	return ctx.tx.Input()
}

type callContextQuery struct {
	txID      string
	timestamp time.Time
	channelID string
	input     []byte
	*queryEngine
}

var _ chaincode.ReadContext = (*callContextQuery)(nil)

func (ctx *callContextQuery) TxID() string         { return ctx.txID }
func (ctx *callContextQuery) Timestamp() time.Time { return ctx.timestamp }
func (ctx *callContextQuery) ChannelID() string    { return ctx.channelID }
func (ctx *callContextQuery) Input() []byte        { return ctx.input }
