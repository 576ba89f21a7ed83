// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package carbon

import (
	"github.com/aungmawjj/carbon-ledger/execution/chaincode"
)

func registerCompany(wc chaincode.WriteContext, id, name string) (*Company, *chaincode.Event, error) {
	if err := requireID("company id", id); err != nil {
		return nil, nil, err
	}
	found, err := exists(wc, CompanyKey(id))
	if err != nil {
		return nil, nil, err
	}
	if found {
		return nil, nil, errorf(ErrAlreadyExists, "company %s", id)
	}
	company := &Company{
		ID:          id,
		Name:        name,
		LedgerStamp: newLedgerStamp(wc),
	}
	event, err := newEvent(EventCompanyRegistered, &CompanyEvent{
		CompanyID: id,
		Name:      name,
		Invoker:   wc.Sender(),
		TxID:      wc.TxID(),
		Timestamp: wc.Timestamp(),
	})
	if err != nil {
		return nil, nil, err
	}
	return company, event, putEntity(wc, CompanyKey(id), company)
}

// validateCompany overwrites validation metadata on repeated calls
func validateCompany(wc chaincode.WriteContext, id string) (*Company, *chaincode.Event, error) {
	if err := requireID("company id", id); err != nil {
		return nil, nil, err
	}
	company, err := loadCompany(wc, id)
	if err != nil {
		return nil, nil, err
	}
	company.ValidationStamp = newValidationStamp(wc)
	event, err := newEvent(EventCompanyValidated, &CompanyEvent{
		CompanyID: id,
		Name:      company.Name,
		Invoker:   wc.Sender(),
		TxID:      wc.TxID(),
		Timestamp: wc.Timestamp(),
	})
	if err != nil {
		return nil, nil, err
	}
	return company, event, putEntity(wc, CompanyKey(id), company)
}

func getCompany(rc chaincode.ReadContext, id string) (*Company, error) {
	if err := requireID("company id", id); err != nil {
		return nil, err
	}
	return loadCompany(rc, id)
}
