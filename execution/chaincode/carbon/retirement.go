// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package carbon

import (
	"github.com/aungmawjj/carbon-ledger/execution/chaincode"
)

// requestRetirement records a pending request, the certificate is untouched until approval
func requestRetirement(
	wc chaincode.WriteContext, requestID, certID string, reason, beneficiary *string,
) (*RetirementRequest, *chaincode.Event, error) {
	if err := requireID("request id", requestID); err != nil {
		return nil, nil, err
	}
	if err := requireID("certificate id", certID); err != nil {
		return nil, nil, err
	}
	found, err := exists(wc, RetirementRequestKey(requestID))
	if err != nil {
		return nil, nil, err
	}
	if found {
		return nil, nil, errorf(ErrAlreadyExists, "retirement request %s", requestID)
	}
	cert, err := loadCertificate(wc, certID)
	if err != nil {
		return nil, nil, err
	}
	if cert.Status == StatusRetired {
		return nil, nil, errorf(ErrInvalidState, "certificate %s is already retired", certID)
	}
	req := &RetirementRequest{
		RequestID:   requestID,
		CertID:      certID,
		RequestedBy: wc.Sender(),
		Reason:      reason,
		Beneficiary: beneficiary,
		Status:      RequestPending,
		LedgerStamp: newLedgerStamp(wc),
	}
	payload := newCertificateEvent(wc, cert)
	payload.RequestID = requestID
	payload.Reason = reason
	payload.Beneficiary = beneficiary
	event, err := newEvent(EventRetirementRequested, payload)
	if err != nil {
		return nil, nil, err
	}
	return req, event, putEntity(wc, RetirementRequestKey(requestID), req)
}

// approveRetirement retires the certificate with the reason and beneficiary of the request
func approveRetirement(
	wc chaincode.WriteContext, requestID string,
) (*RetirementRequest, *chaincode.Event, error) {
	if err := requireID("request id", requestID); err != nil {
		return nil, nil, err
	}
	req, err := loadRetirementRequest(wc, requestID)
	if err != nil {
		return nil, nil, err
	}
	if req.Status != RequestPending {
		return nil, nil, errorf(ErrInvalidState, "retirement request %s is %s", requestID, req.Status)
	}
	cert, err := loadCertificate(wc, req.CertID)
	if err != nil {
		return nil, nil, err
	}
	event, err := retire(wc, cert, req.Reason, req.Beneficiary, requestID)
	if err != nil {
		return nil, nil, err
	}
	ts := wc.Timestamp()
	req.Status = RequestApproved
	req.ApprovedAt = &ts
	req.ApprovedBy = wc.Sender()
	req.ApprovedTxID = wc.TxID()
	return req, event, putEntity(wc, RetirementRequestKey(requestID), req)
}

func getRetirementRequest(rc chaincode.ReadContext, requestID string) (*RetirementRequest, error) {
	if err := requireID("request id", requestID); err != nil {
		return nil, err
	}
	return loadRetirementRequest(rc, requestID)
}
