// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package core

import (
	"time"

	"github.com/fxamacker/cbor/v2"
)

// StateChange is a single key write produced by a transaction
type StateChange struct {
	key   []byte
	value []byte
}

func NewStateChange() *StateChange {
	return new(StateChange)
}

func (sc *StateChange) SetKey(val []byte) *StateChange {
	sc.key = val
	return sc
}

func (sc *StateChange) SetValue(val []byte) *StateChange {
	sc.value = val
	return sc
}

func (sc *StateChange) Key() []byte   { return sc.key }
func (sc *StateChange) Value() []byte { return sc.value }

// Deleted returns true when the change removes the key
func (sc *StateChange) Deleted() bool {
	return len(sc.value) == 0
}

// ReadVersion records the version of a key observed during execution.
// Version 0 means the key was absent.
type ReadVersion struct {
	Key     []byte
	Version uint64
}

// KeyModification is one historical version of a key
type KeyModification struct {
	TxID      string `cbor:"1,keyasint"`
	Timestamp int64  `cbor:"2,keyasint"`
	IsDelete  bool   `cbor:"3,keyasint"`
	Value     []byte `cbor:"4,keyasint"`
}

func (km *KeyModification) Time() time.Time {
	return time.Unix(0, km.Timestamp).UTC()
}

func (km *KeyModification) Marshal() ([]byte, error) {
	return cbor.Marshal(km)
}

func (km *KeyModification) Unmarshal(b []byte) error {
	return cbor.Unmarshal(b, km)
}
