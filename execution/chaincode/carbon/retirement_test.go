// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package carbon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRetirementRequest(t *testing.T) {
	assert := assert.New(t)
	l := newTestLedger(t)
	l.setupValidatedProject("CO-1", "PRJ-1")

	request := &Input{
		Method: MethodRequestRetirement, RequestID: "REQ-1", CertID: "CERT-1",
		Reason: text("scope 1 offset"), Beneficiary: text("Acme"),
	}
	_, err := l.invoke("CO-1", request)
	assert.ErrorIs(err, ErrNotFound)

	l.issue("CERT-1", 100)
	resp := l.mustInvoke("CO-1", request)
	assert.Equal(EventRetirementRequested, resp.Events[0].Name)

	_, err = l.invoke("CO-1", request)
	assert.ErrorIs(err, ErrAlreadyExists)

	req := new(RetirementRequest)
	assert.NoError(l.query(&Input{Method: MethodGetRetirementRequest, RequestID: "REQ-1"}, req))
	assert.Equal(RequestPending, req.Status)
	assert.Equal("CO-1", req.RequestedBy)
	assert.Equal(StatusIssued, l.certificate("CERT-1").Status, "request alone does not retire")

	resp = l.mustInvoke(regulator, &Input{Method: MethodApproveRetirement, RequestID: "REQ-1"})
	assert.Equal(EventCertificateRetired, resp.Events[0].Name)

	assert.NoError(l.query(&Input{Method: MethodGetRetirementRequest, RequestID: "REQ-1"}, req))
	assert.Equal(RequestApproved, req.Status)
	assert.Equal(regulator, req.ApprovedBy)

	cert := l.certificate("CERT-1")
	assert.Equal(StatusRetired, cert.Status)
	assert.Equal("scope 1 offset", *cert.RetirementReason)
	assert.Equal("Acme", *cert.RetirementBeneficiary)
	assert.Equal(req.ApprovedTxID, cert.RetiredTxID)

	_, err = l.invoke(regulator, &Input{Method: MethodApproveRetirement, RequestID: "REQ-1"})
	assert.ErrorIs(err, ErrInvalidState)

	_, err = l.invoke("CO-1", &Input{Method: MethodRequestRetirement, RequestID: "REQ-2", CertID: "CERT-1"})
	assert.ErrorIs(err, ErrInvalidState)

	_, err = l.invoke(regulator, &Input{Method: MethodApproveRetirement, RequestID: "REQ-9"})
	assert.ErrorIs(err, ErrNotFound)
}

func TestRetirementRequest_CertRetiredMeanwhile(t *testing.T) {
	assert := assert.New(t)
	l := newTestLedger(t)
	l.setupValidatedProject("CO-1", "PRJ-1")
	l.issue("CERT-1", 100)

	l.mustInvoke("CO-1", &Input{Method: MethodRequestRetirement, RequestID: "REQ-1", CertID: "CERT-1"})
	l.mustInvoke("CO-1", &Input{Method: MethodRetireCertificate, CertID: "CERT-1"})

	_, err := l.invoke(regulator, &Input{Method: MethodApproveRetirement, RequestID: "REQ-1"})
	assert.ErrorIs(err, ErrInvalidState)

	req := new(RetirementRequest)
	assert.NoError(l.query(&Input{Method: MethodGetRetirementRequest, RequestID: "REQ-1"}, req))
	assert.Equal(RequestPending, req.Status)
}
