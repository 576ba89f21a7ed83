// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package core

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/crypto/sha3"
)

// errors
var (
	ErrInvalidTxHash = errors.New("invalid tx hash")
	ErrNilTx         = errors.New("nil tx")
)

type txData struct {
	Nonce     uint64 `json:"nonce"`
	Timestamp int64  `json:"timestamp"`
	Sender    []byte `json:"sender"`
	CodeID    string `json:"codeID"`
	Input     []byte `json:"input"`
	Hash      []byte `json:"hash"`
	Signature []byte `json:"signature"`
}

// Transaction type
type Transaction struct {
	data   *txData
	sender *PublicKey
}

func NewTransaction() *Transaction {
	return &Transaction{
		data: new(txData),
	}
}

// Sum returns sha3 sum of transaction
func (tx *Transaction) Sum() []byte {
	h := sha3.New256()
	h.Write(uint64ToBytes(tx.data.Nonce))
	h.Write(uint64ToBytes(uint64(tx.data.Timestamp)))
	h.Write(tx.data.Sender)
	h.Write([]byte(tx.data.CodeID))
	h.Write(tx.data.Input)
	return h.Sum(nil)
}

// Validate transaction
func (tx *Transaction) Validate() error {
	if tx.data == nil {
		return ErrNilTx
	}
	if !bytes.Equal(tx.Sum(), tx.Hash()) {
		return ErrInvalidTxHash
	}
	sig, err := newSignature(tx.data.Signature, tx.data.Sender)
	if err != nil {
		return err
	}
	if !sig.Verify(tx.data.Hash) {
		return ErrInvalidSig
	}
	return nil
}

func (tx *Transaction) setData(data *txData) *Transaction {
	tx.data = data
	tx.sender, _ = NewPublicKey(tx.data.Sender)
	return tx
}

func (tx *Transaction) SetNonce(val uint64) *Transaction {
	tx.data.Nonce = val
	return tx
}

func (tx *Transaction) SetTimestamp(val time.Time) *Transaction {
	tx.data.Timestamp = val.UnixNano()
	return tx
}

func (tx *Transaction) SetCodeID(val string) *Transaction {
	tx.data.CodeID = val
	return tx
}

func (tx *Transaction) SetInput(val []byte) *Transaction {
	tx.data.Input = val
	return tx
}

func (tx *Transaction) Sign(priv *PrivateKey) *Transaction {
	tx.sender = priv.PublicKey()
	tx.data.Sender = priv.PublicKey().key
	tx.data.Hash = tx.Sum()
	tx.data.Signature = priv.Sign(tx.data.Hash).value
	return tx
}

func (tx *Transaction) Hash() []byte       { return tx.data.Hash }
func (tx *Transaction) Nonce() uint64      { return tx.data.Nonce }
func (tx *Transaction) Sender() *PublicKey { return tx.sender }
func (tx *Transaction) CodeID() string     { return tx.data.CodeID }
func (tx *Transaction) Input() []byte      { return tx.data.Input }

// Timestamp is the client proposed time, signed as part of the tx
func (tx *Transaction) Timestamp() time.Time {
	return time.Unix(0, tx.data.Timestamp).UTC()
}

// ID is the hex encoded hash, used as ledger transaction id
func (tx *Transaction) ID() string {
	return hex.EncodeToString(tx.data.Hash)
}

// Marshal encodes transaction as bytes
func (tx *Transaction) Marshal() ([]byte, error) {
	return json.Marshal(tx.data)
}

// Unmarshal decodes transaction from bytes
func (tx *Transaction) Unmarshal(b []byte) error {
	data := new(txData)
	if err := json.Unmarshal(b, data); err != nil {
		return err
	}
	tx.setData(data)
	return nil
}

func (tx *Transaction) MarshalJSON() ([]byte, error) {
	return tx.Marshal()
}

func (tx *Transaction) UnmarshalJSON(b []byte) error {
	return tx.Unmarshal(b)
}
