// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package execution

import (
	"testing"

	"github.com/aungmawjj/carbon-ledger/execution/chaincode"
	"github.com/stretchr/testify/assert"
)

const driverTypeTest DriverType = 100

type testCode struct {
	invoke func(wc chaincode.WriteContext) (*chaincode.Response, error)
}

func (tc *testCode) Invoke(wc chaincode.WriteContext) (*chaincode.Response, error) {
	return tc.invoke(wc)
}

func (tc *testCode) Query(rc chaincode.ReadContext) ([]byte, error) {
	return rc.GetState(string(rc.Input()))
}

type testDriver map[string]chaincode.ChainCode

func (drv testDriver) GetInstance(codeID string) (chaincode.ChainCode, error) {
	cc, ok := drv[codeID]
	if !ok {
		return nil, ErrUnknownCode
	}
	return cc, nil
}

func TestCodeRegistry(t *testing.T) {
	assert := assert.New(t)

	reg := newCodeRegistry()
	assert.Error(reg.registerCode(NativeCodeIDCarbon, DriverTypeNative), "driver not registered")

	assert.NoError(reg.registerDriver(DriverTypeNative, newNativeCodeDriver()))
	assert.Error(reg.registerDriver(DriverTypeNative, newNativeCodeDriver()))

	_, err := reg.getInstance(NativeCodeIDCarbon)
	assert.ErrorIs(err, ErrUnknownCode)

	assert.ErrorIs(reg.registerCode("token", DriverTypeNative), ErrUnknownCode)
	assert.NoError(reg.registerCode(NativeCodeIDCarbon, DriverTypeNative))

	cc, err := reg.getInstance(NativeCodeIDCarbon)
	assert.NoError(err)
	assert.NotNil(cc)
}

func TestNativeCodeDriver(t *testing.T) {
	assert := assert.New(t)

	drv := newNativeCodeDriver()
	cc, err := drv.GetInstance(NativeCodeIDCarbon)
	assert.NoError(err)
	assert.NotNil(cc)

	_, err = drv.GetInstance("unknown")
	assert.ErrorIs(err, ErrUnknownCode)
}
