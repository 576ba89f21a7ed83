// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package carbon

import (
	"encoding/json"
	"time"

	"github.com/aungmawjj/carbon-ledger/execution/chaincode"
)

// invoke methods
const (
	MethodRegisterCompany   = "registerCompany"
	MethodValidateCompany   = "validateCompany"
	MethodRegisterProject   = "registerProject"
	MethodValidateProject   = "validateProject"
	MethodIssueCertificate  = "issueCertificate"
	MethodListCertificate   = "listCertificate"
	MethodBuyCertificate    = "buyCertificate"
	MethodRetireCertificate = "retireCertificate"
	MethodRequestRetirement = "requestRetirement"
	MethodApproveRetirement = "approveRetirement"
)

// query methods
const (
	MethodGetCompany              = "getCompany"
	MethodGetProject              = "getProject"
	MethodGetCertificate          = "getCertificate"
	MethodGetCertificateWithProof = "getCertificateWithProof"
	MethodGetBlockchainMetadata   = "getBlockchainMetadata"
	MethodVerifyCertificate       = "verifyCertificate"
	MethodQueryAvailable          = "queryAvailable"
	MethodQueryByOwner            = "queryByOwner"
	MethodHistoryOf               = "historyOf"
	MethodGetRetirementRequest    = "getRetirementRequest"
)

type Input struct {
	Method string `json:"method"`

	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	CompanyID   string `json:"companyId,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	CertID       string     `json:"certId,omitempty"`
	ProjectID    string     `json:"projectId,omitempty"`
	OwnerID      string     `json:"ownerId,omitempty"`
	BuyerID      string     `json:"buyerId,omitempty"`
	Amount       float64    `json:"amount,omitempty"`
	PricePerUnit *float64   `json:"pricePerUnit,omitempty"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`

	RequestID   string  `json:"requestId,omitempty"`
	Reason      *string `json:"reason,omitempty"`
	Beneficiary *string `json:"beneficiary,omitempty"`
}

// Carbon chaincode, issues and trades carbon reduction certificates
type Carbon struct{}

var _ chaincode.ChainCode = (*Carbon)(nil)

func New() *Carbon {
	return new(Carbon)
}

func (c *Carbon) Invoke(wc chaincode.WriteContext) (*chaincode.Response, error) {
	input, err := parseInput(wc.Input())
	if err != nil {
		return nil, err
	}
	var (
		result interface{}
		event  *chaincode.Event
	)
	switch input.Method {

	case MethodRegisterCompany:
		result, event, err = registerCompany(wc, input.ID, input.Name)

	case MethodValidateCompany:
		result, event, err = validateCompany(wc, input.ID)

	case MethodRegisterProject:
		result, event, err = registerProject(wc, input.ID, input.CompanyID, input.Title, input.Description)

	case MethodValidateProject:
		result, event, err = validateProject(wc, input.ID)

	case MethodIssueCertificate:
		result, event, err = issueCertificate(wc, &issueParams{
			CertID:       input.CertID,
			ProjectID:    input.ProjectID,
			OwnerID:      input.OwnerID,
			Amount:       input.Amount,
			PricePerUnit: input.PricePerUnit,
			ExpiresAt:    input.ExpiresAt,
		})

	case MethodListCertificate:
		result, event, err = listCertificate(wc, input.CertID, input.PricePerUnit)

	case MethodBuyCertificate:
		result, event, err = buyCertificate(wc, input.CertID, input.BuyerID)

	case MethodRetireCertificate:
		result, event, err = retireCertificate(wc, input.CertID, input.Reason, input.Beneficiary)

	case MethodRequestRetirement:
		result, event, err = requestRetirement(wc, input.RequestID, input.CertID, input.Reason, input.Beneficiary)

	case MethodApproveRetirement:
		result, event, err = approveRetirement(wc, input.RequestID)

	default:
		return nil, errorf(ErrMethodNotFound, "%q", input.Method)
	}
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	return &chaincode.Response{
		Payload: payload,
		Events:  []*chaincode.Event{event},
	}, nil
}

func (c *Carbon) Query(rc chaincode.ReadContext) ([]byte, error) {
	input, err := parseInput(rc.Input())
	if err != nil {
		return nil, err
	}
	var result interface{}
	switch input.Method {

	case MethodGetCompany:
		result, err = getCompany(rc, input.ID)

	case MethodGetProject:
		result, err = getProject(rc, input.ID)

	case MethodGetCertificate:
		result, err = getCertificate(rc, input.CertID)

	case MethodGetCertificateWithProof:
		result, err = getCertificateWithProof(rc, input.CertID)

	case MethodGetBlockchainMetadata:
		result, err = getBlockchainMetadata(rc, input.CertID)

	case MethodVerifyCertificate:
		result, err = verifyCertificate(rc, input.CertID)

	case MethodQueryAvailable:
		result, err = queryAvailable(rc)

	case MethodQueryByOwner:
		result, err = queryByOwner(rc, input.OwnerID)

	case MethodHistoryOf:
		result, err = historyOf(rc, input.CertID)

	case MethodGetRetirementRequest:
		result, err = getRetirementRequest(rc, input.RequestID)

	default:
		return nil, errorf(ErrMethodNotFound, "%q", input.Method)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(result)
}

func parseInput(b []byte) (*Input, error) {
	input := new(Input)
	err := json.Unmarshal(b, input)
	if err != nil {
		return nil, errorf(ErrInvalidArgument, "failed to parse input: %v", err)
	}
	return input, nil
}
