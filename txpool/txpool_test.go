// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package txpool

import (
	"fmt"
	"testing"

	"github.com/aungmawjj/carbon-ledger/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

var _ Storage = (*MockStorage)(nil)

func (m *MockStorage) HasTx(hash []byte) bool {
	args := m.Called(hash)
	return args.Bool(0)
}

type MockExecution struct {
	mock.Mock
}

var _ Execution = (*MockExecution)(nil)

func (m *MockExecution) VerifyTx(tx *core.Transaction) error {
	args := m.Called(tx)
	return args.Error(0)
}

func TestTxPool_SubmitTx(t *testing.T) {
	assert := assert.New(t)

	priv := core.GenerateKey(nil)

	storage := new(MockStorage)
	execution := new(MockExecution)
	pool := New(storage, execution)

	tx1 := core.NewTransaction().SetNonce(1).SetCodeID("carbon").Sign(priv)
	tx2 := core.NewTransaction().SetNonce(2).SetCodeID("unknown").Sign(priv)
	tx3 := core.NewTransaction().SetNonce(3).SetCodeID("carbon").Sign(priv)

	storage.On("HasTx", tx1.Hash()).Return(false)
	execution.On("VerifyTx", tx1).Return(nil)
	err := pool.SubmitTx(tx1)

	assert.NoError(err)
	storage.AssertExpectations(t)
	execution.AssertExpectations(t)

	storage.On("HasTx", tx2.Hash()).Return(false)
	execution.On("VerifyTx", tx2).Return(fmt.Errorf("unknown chaincode id"))
	err = pool.SubmitTx(tx2)

	assert.ErrorIs(err, ErrInvalidTx)
	storage.AssertExpectations(t)

	// tx3 is already committed
	storage.On("HasTx", tx3.Hash()).Return(true)
	err = pool.SubmitTx(tx3)

	assert.NoError(err)
	execution.AssertNotCalled(t, "VerifyTx", tx3)

	// only tx1 should be added to pool
	assert.Equal(1, pool.GetStatus().Queue)
	assert.Equal(TxStatusQueue, pool.GetTxStatus(tx1.Hash()))
	assert.Equal(TxStatusCommitted, pool.GetTxStatus(tx3.Hash()))
	assert.Equal(TxStatusNotFound, pool.GetTxStatus(tx2.Hash()))

	select {
	case <-pool.Ready():
	default:
		t.Error("pool should signal ready")
	}
}

func TestTxPool_SubmitInvalidTx(t *testing.T) {
	assert := assert.New(t)

	pool := New(new(MockStorage), new(MockExecution))

	tx := core.NewTransaction().SetNonce(1).Sign(core.GenerateKey(nil))
	tx.SetNonce(2) // hash no longer matches

	assert.ErrorIs(pool.SubmitTx(tx), ErrInvalidTx)
	assert.Equal(0, pool.GetStatus().Total)
}

func TestTxPool_CommitFlow(t *testing.T) {
	assert := assert.New(t)

	priv := core.GenerateKey(nil)
	storage := new(MockStorage)
	execution := new(MockExecution)
	pool := New(storage, execution)

	tx1 := core.NewTransaction().SetNonce(1).Sign(priv)
	tx2 := core.NewTransaction().SetNonce(2).Sign(priv)
	storage.On("HasTx", mock.Anything).Return(false).Times(2)
	execution.On("VerifyTx", mock.Anything).Return(nil)

	pool.SubmitTx(tx1)
	pool.SubmitTx(tx2)

	hashes := pool.PopTxsFromQueue(1)
	assert.Equal([][]byte{tx1.Hash()}, hashes)
	assert.Equal(TxStatusPending, pool.GetTxStatus(tx1.Hash()))
	assert.Equal(tx1, pool.GetTx(tx1.Hash()))

	pool.RemoveTxs(hashes)
	storage.On("HasTx", tx1.Hash()).Return(true)
	assert.Equal(TxStatusCommitted, pool.GetTxStatus(tx1.Hash()))
	assert.Nil(pool.GetTx(tx1.Hash()))

	assert.Equal(Status{Total: 1, Queue: 1}, pool.GetStatus())
	assert.Equal("queue", pool.GetTxStatus(tx2.Hash()).String())
}
