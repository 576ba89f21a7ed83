// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package carbon

import (
	"encoding/json"
	"fmt"

	"github.com/aungmawjj/carbon-ledger/execution/chaincode"
)

type stateGetter interface {
	GetState(key string) ([]byte, error)
}

// getEntity decodes the record at key into v, found is false for absent keys
func getEntity(sg stateGetter, key string, v interface{}) (bool, error) {
	b, err := sg.GetState(key)
	if err != nil {
		return false, err
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("cannot decode %s, %w", key, err)
	}
	return true, nil
}

// putEntity writes the whole record, there are no partial field updates
func putEntity(wc chaincode.WriteContext, key string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	wc.SetState(key, b)
	return nil
}

func loadCompany(sg stateGetter, id string) (*Company, error) {
	company := new(Company)
	found, err := getEntity(sg, CompanyKey(id), company)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errorf(ErrNotFound, "company %s", id)
	}
	return company, nil
}

func loadProject(sg stateGetter, id string) (*Project, error) {
	project := new(Project)
	found, err := getEntity(sg, ProjectKey(id), project)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errorf(ErrNotFound, "project %s", id)
	}
	return project, nil
}

func loadCertificate(sg stateGetter, id string) (*Certificate, error) {
	cert := new(Certificate)
	found, err := getEntity(sg, CertificateKey(id), cert)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errorf(ErrNotFound, "certificate %s", id)
	}
	return cert, nil
}

func loadRetirementRequest(sg stateGetter, id string) (*RetirementRequest, error) {
	req := new(RetirementRequest)
	found, err := getEntity(sg, RetirementRequestKey(id), req)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errorf(ErrNotFound, "retirement request %s", id)
	}
	return req, nil
}

func exists(sg stateGetter, key string) (bool, error) {
	b, err := sg.GetState(key)
	return len(b) > 0, err
}
