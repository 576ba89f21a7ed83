// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package execution

import (
	"github.com/aungmawjj/carbon-ledger/execution/chaincode"
	"github.com/aungmawjj/carbon-ledger/execution/chaincode/carbon"
)

const (
	NativeCodeIDCarbon = "carbon"
)

type nativeCodeDriver struct{}

var _ CodeDriver = (*nativeCodeDriver)(nil)

func newNativeCodeDriver() *nativeCodeDriver {
	return new(nativeCodeDriver)
}

func (drv *nativeCodeDriver) GetInstance(codeID string) (chaincode.ChainCode, error) {
	switch codeID {
	case NativeCodeIDCarbon:
		return carbon.New(), nil
	default:
		return nil, ErrUnknownCode
	}
}
