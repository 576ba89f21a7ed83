// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package execution

import (
	"errors"
	"sync"

	"github.com/aungmawjj/carbon-ledger/execution/chaincode"
)

var ErrUnknownCode = errors.New("unknown chaincode id")

type CodeDriver interface {
	GetInstance(codeID string) (chaincode.ChainCode, error)
}

type DriverType uint8

const (
	DriverTypeNative DriverType = iota + 1
)

// codeRegistry resolves a code id to a chaincode instance through its driver
type codeRegistry struct {
	drivers map[DriverType]CodeDriver
	codes   map[string]DriverType
	mtx     sync.RWMutex
}

func newCodeRegistry() *codeRegistry {
	reg := new(codeRegistry)
	reg.drivers = make(map[DriverType]CodeDriver)
	reg.codes = make(map[string]DriverType)
	return reg
}

func (reg *codeRegistry) registerDriver(driverType DriverType, driver CodeDriver) error {
	reg.mtx.Lock()
	defer reg.mtx.Unlock()
	if _, found := reg.drivers[driverType]; found {
		return errors.New("driver already registered")
	}
	reg.drivers[driverType] = driver
	return nil
}

// registerCode checks that the driver can create the code before recording it
func (reg *codeRegistry) registerCode(codeID string, driverType DriverType) error {
	reg.mtx.Lock()
	defer reg.mtx.Unlock()
	driver, ok := reg.drivers[driverType]
	if !ok {
		return errors.New("unknown chaincode driver type")
	}
	if _, err := driver.GetInstance(codeID); err != nil {
		return err
	}
	reg.codes[codeID] = driverType
	return nil
}

func (reg *codeRegistry) getInstance(codeID string) (chaincode.ChainCode, error) {
	reg.mtx.RLock()
	defer reg.mtx.RUnlock()
	driverType, ok := reg.codes[codeID]
	if !ok {
		return nil, ErrUnknownCode
	}
	return reg.drivers[driverType].GetInstance(codeID)
}
