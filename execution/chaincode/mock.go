// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package chaincode

import (
	"sort"
	"strings"
	"time"
)

type MockState struct {
	StateMap   map[string][]byte
	HistoryMap map[string][]*KeyModification
}

func NewMockState() *MockState {
	return &MockState{
		StateMap:   make(map[string][]byte),
		HistoryMap: make(map[string][]*KeyModification),
	}
}

func (ms *MockState) GetState(key string) []byte {
	return ms.StateMap[key]
}

// SetState writes value and appends a history record for txID
func (ms *MockState) SetState(key string, value []byte, txID string, ts time.Time) {
	ms.StateMap[key] = value
	ms.HistoryMap[key] = append(ms.HistoryMap[key], &KeyModification{
		TxID:      txID,
		Timestamp: ts,
		IsDelete:  len(value) == 0,
		Value:     value,
	})
}

func (ms *MockState) query(prefix string, selector Selector) [][]byte {
	keys := make([]string, 0)
	for key := range ms.StateMap {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	ret := make([][]byte, 0)
	for _, key := range keys {
		if selector.Match(ms.StateMap[key]) {
			ret = append(ret, ms.StateMap[key])
		}
	}
	return ret
}

type MockReadContext struct {
	MockInput     []byte
	MockTxID      string
	MockTimestamp time.Time
	MockChannelID string
	GetStateError error
	State         *MockState
}

var _ ReadContext = (*MockReadContext)(nil)

func (rc *MockReadContext) Input() []byte        { return rc.MockInput }
func (rc *MockReadContext) TxID() string         { return rc.MockTxID }
func (rc *MockReadContext) Timestamp() time.Time { return rc.MockTimestamp }
func (rc *MockReadContext) ChannelID() string    { return rc.MockChannelID }

func (rc *MockReadContext) GetState(key string) ([]byte, error) {
	if rc.GetStateError != nil {
		return nil, rc.GetStateError
	}
	return rc.State.GetState(key), nil
}

func (rc *MockReadContext) GetHistory(key string) ([]*KeyModification, error) {
	if rc.GetStateError != nil {
		return nil, rc.GetStateError
	}
	return rc.State.HistoryMap[key], nil
}

func (rc *MockReadContext) QueryState(prefix string, selector Selector) ([][]byte, error) {
	if rc.GetStateError != nil {
		return nil, rc.GetStateError
	}
	return rc.State.query(prefix, selector), nil
}

type MockWriteContext struct {
	MockSender    string
	MockTxID      string
	MockTimestamp time.Time
	MockChannelID string
	MockInput     []byte
	State         *MockState
}

var _ WriteContext = (*MockWriteContext)(nil)

func (wc *MockWriteContext) Sender() string       { return wc.MockSender }
func (wc *MockWriteContext) TxID() string         { return wc.MockTxID }
func (wc *MockWriteContext) Timestamp() time.Time { return wc.MockTimestamp }
func (wc *MockWriteContext) ChannelID() string    { return wc.MockChannelID }
func (wc *MockWriteContext) Input() []byte        { return wc.MockInput }

func (wc *MockWriteContext) GetState(key string) ([]byte, error) {
	return wc.State.GetState(key), nil
}

func (wc *MockWriteContext) SetState(key string, value []byte) {
	wc.State.SetState(key, value, wc.MockTxID, wc.MockTimestamp)
}
