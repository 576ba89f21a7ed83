// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package chaincode

import (
	"time"
)

// TxInfo is supplied by the ledger runtime for every invocation
type TxInfo interface {
	TxID() string
	Timestamp() time.Time
	ChannelID() string
}

type ReadContext interface {
	TxInfo
	Input() []byte
	GetState(key string) ([]byte, error)
	// GetHistory returns every committed version of key, oldest first
	GetHistory(key string) ([]*KeyModification, error)
	// QueryState returns values under prefix matching selector, ordered by key
	QueryState(prefix string, selector Selector) ([][]byte, error)
}

type WriteContext interface {
	TxInfo
	// Sender is the invoker identity
	Sender() string
	Input() []byte

	GetState(key string) ([]byte, error)
	SetState(key string, value []byte)
}

// all chaincodes implements ChainCode interface
type ChainCode interface {
	Invoke(wc WriteContext) (*Response, error)

	Query(rc ReadContext) ([]byte, error)
}

type KeyModification struct {
	TxID      string
	Timestamp time.Time
	IsDelete  bool
	Value     []byte
}

// Event is returned to the runtime, which publishes it after commit
type Event struct {
	Name    string
	Payload []byte
}

type Response struct {
	Payload []byte
	Events  []*Event
}
