// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package core

import (
	"encoding/json"

	"github.com/fxamacker/cbor/v2"
)

// Event is a named domain event emitted by a committed transaction
type Event struct {
	Name    string          `cbor:"1,keyasint" json:"name"`
	TxID    string          `cbor:"2,keyasint" json:"txId"`
	Payload json.RawMessage `cbor:"3,keyasint" json:"payload"`
}

type txCommitData struct {
	Hash      []byte   `cbor:"1,keyasint" json:"hash"`
	Sequence  uint64   `cbor:"2,keyasint" json:"sequence"`
	Timestamp int64    `cbor:"3,keyasint" json:"timestamp"`
	Elapsed   float64  `cbor:"4,keyasint" json:"elapsed"`
	Error     string   `cbor:"5,keyasint" json:"error,omitempty"`
	Payload   []byte   `cbor:"6,keyasint" json:"payload,omitempty"`
	Events    []*Event `cbor:"7,keyasint" json:"events,omitempty"`
}

// TxCommit is the execution result of a transaction
type TxCommit struct {
	data *txCommitData
}

func NewTxCommit() *TxCommit {
	return &TxCommit{
		data: new(txCommitData),
	}
}

func (txc *TxCommit) SetHash(val []byte) *TxCommit {
	txc.data.Hash = val
	return txc
}

func (txc *TxCommit) SetSequence(val uint64) *TxCommit {
	txc.data.Sequence = val
	return txc
}

func (txc *TxCommit) SetTimestamp(val int64) *TxCommit {
	txc.data.Timestamp = val
	return txc
}

func (txc *TxCommit) SetElapsed(val float64) *TxCommit {
	txc.data.Elapsed = val
	return txc
}

func (txc *TxCommit) SetError(val string) *TxCommit {
	txc.data.Error = val
	return txc
}

func (txc *TxCommit) SetPayload(val []byte) *TxCommit {
	txc.data.Payload = val
	return txc
}

func (txc *TxCommit) SetEvents(val []*Event) *TxCommit {
	txc.data.Events = val
	return txc
}

func (txc *TxCommit) Hash() []byte     { return txc.data.Hash }
func (txc *TxCommit) Sequence() uint64 { return txc.data.Sequence }
func (txc *TxCommit) Timestamp() int64 { return txc.data.Timestamp }
func (txc *TxCommit) Elapsed() float64 { return txc.data.Elapsed }
func (txc *TxCommit) Error() string    { return txc.data.Error }
func (txc *TxCommit) Payload() []byte  { return txc.data.Payload }
func (txc *TxCommit) Events() []*Event { return txc.data.Events }

// Marshal encodes tx commit as cbor
func (txc *TxCommit) Marshal() ([]byte, error) {
	return cbor.Marshal(txc.data)
}

// Unmarshal decodes tx commit from cbor
func (txc *TxCommit) Unmarshal(b []byte) error {
	data := new(txCommitData)
	if err := cbor.Unmarshal(b, data); err != nil {
		return err
	}
	txc.data = data
	return nil
}

func (txc *TxCommit) MarshalJSON() ([]byte, error) {
	return json.Marshal(txc.data)
}
