// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package carbon

import (
	"errors"

	"github.com/aungmawjj/carbon-ledger/execution/chaincode"
)

// registerProject requires the owning company to be validated
func registerProject(
	wc chaincode.WriteContext, id, companyID, title, description string,
) (*Project, *chaincode.Event, error) {
	if err := requireID("project id", id); err != nil {
		return nil, nil, err
	}
	if err := requireID("company id", companyID); err != nil {
		return nil, nil, err
	}
	found, err := exists(wc, ProjectKey(id))
	if err != nil {
		return nil, nil, err
	}
	if found {
		return nil, nil, errorf(ErrAlreadyExists, "project %s", id)
	}
	company, err := loadCompany(wc, companyID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil, errorf(ErrPreconditionFailed, "company %s is not registered", companyID)
	}
	if err != nil {
		return nil, nil, err
	}
	if !company.RegulatorValidated {
		return nil, nil, errorf(ErrPreconditionFailed, "company %s is not validated", companyID)
	}
	project := &Project{
		ID:          id,
		CompanyID:   companyID,
		Title:       title,
		Description: description,
		LedgerStamp: newLedgerStamp(wc),
	}
	event, err := newEvent(EventProjectRegistered, &ProjectEvent{
		ProjectID: id,
		CompanyID: companyID,
		Title:     title,
		Invoker:   wc.Sender(),
		TxID:      wc.TxID(),
		Timestamp: wc.Timestamp(),
	})
	if err != nil {
		return nil, nil, err
	}
	return project, event, putEntity(wc, ProjectKey(id), project)
}

func validateProject(wc chaincode.WriteContext, id string) (*Project, *chaincode.Event, error) {
	if err := requireID("project id", id); err != nil {
		return nil, nil, err
	}
	project, err := loadProject(wc, id)
	if err != nil {
		return nil, nil, err
	}
	project.ValidationStamp = newValidationStamp(wc)
	event, err := newEvent(EventProjectValidated, &ProjectEvent{
		ProjectID: id,
		CompanyID: project.CompanyID,
		Title:     project.Title,
		Invoker:   wc.Sender(),
		TxID:      wc.TxID(),
		Timestamp: wc.Timestamp(),
	})
	if err != nil {
		return nil, nil, err
	}
	return project, event, putEntity(wc, ProjectKey(id), project)
}

func getProject(rc chaincode.ReadContext, id string) (*Project, error) {
	if err := requireID("project id", id); err != nil {
		return nil, err
	}
	return loadProject(rc, id)
}
