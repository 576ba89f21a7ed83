// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package execution

import (
	"github.com/aungmawjj/carbon-ledger/execution/chaincode"
)

// queryEngine serves read only calls directly from committed state
type queryEngine struct {
	store StateStore
}

func (qe *queryEngine) GetState(key string) ([]byte, error) {
	value, _, err := qe.store.GetState([]byte(key))
	return value, err
}

func (qe *queryEngine) GetHistory(key string) ([]*chaincode.KeyModification, error) {
	mods, err := qe.store.GetHistory([]byte(key))
	if err != nil {
		return nil, err
	}
	ret := make([]*chaincode.KeyModification, len(mods))
	for i, km := range mods {
		ret[i] = &chaincode.KeyModification{
			TxID:      km.TxID,
			Timestamp: km.Time(),
			IsDelete:  km.IsDelete,
			Value:     km.Value,
		}
	}
	return ret, nil
}

// QueryState evaluates selector against every live value under prefix
func (qe *queryEngine) QueryState(prefix string, selector chaincode.Selector) ([][]byte, error) {
	ret := make([][]byte, 0)
	err := qe.store.ScanState([]byte(prefix), func(key, value []byte) error {
		if selector.Match(value) {
			ret = append(ret, value)
		}
		return nil
	})
	return ret, err
}
