// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package carbon

import (
	"encoding/json"
	"time"

	"github.com/aungmawjj/carbon-ledger/execution/chaincode"
)

// event names
const (
	EventCompanyRegistered    = "CompanyRegistered"
	EventCompanyValidated     = "CompanyValidated"
	EventProjectRegistered    = "ProjectRegistered"
	EventProjectValidated     = "ProjectValidated"
	EventCertificateCreated   = "CertificateCreated"
	EventCertificateListed    = "CertificateListed"
	EventCertificatePurchased = "CertificatePurchased"
	EventCertificateRetired   = "CertificateRetired"
	EventRetirementRequested  = "RetirementRequested"
)

type CompanyEvent struct {
	CompanyID string    `json:"companyId"`
	Name      string    `json:"name"`
	Invoker   string    `json:"invoker"`
	TxID      string    `json:"txId"`
	Timestamp time.Time `json:"timestamp"`
}

type ProjectEvent struct {
	ProjectID string    `json:"projectId"`
	CompanyID string    `json:"companyId"`
	Title     string    `json:"title"`
	Invoker   string    `json:"invoker"`
	TxID      string    `json:"txId"`
	Timestamp time.Time `json:"timestamp"`
}

type CertificateEvent struct {
	CertID          string    `json:"certId"`
	ProjectID       string    `json:"projectId"`
	OwnerID         string    `json:"ownerId"`
	Amount          float64   `json:"amount"`
	PricePerUnit    *float64  `json:"pricePerUnit,omitempty"`
	CertificateHash string    `json:"certificateHash,omitempty"`
	PreviousOwnerID string    `json:"previousOwnerId,omitempty"`
	RequestID       string    `json:"requestId,omitempty"`
	Reason          *string   `json:"reason,omitempty"`
	Beneficiary     *string   `json:"beneficiary,omitempty"`
	Invoker         string    `json:"invoker"`
	TxID            string    `json:"txId"`
	Timestamp       time.Time `json:"timestamp"`
}

func newCertificateEvent(wc chaincode.WriteContext, cert *Certificate) *CertificateEvent {
	return &CertificateEvent{
		CertID:       cert.CertID,
		ProjectID:    cert.ProjectID,
		OwnerID:      cert.OwnerID,
		Amount:       cert.Amount,
		PricePerUnit: cert.PricePerUnit,
		Invoker:      wc.Sender(),
		TxID:         wc.TxID(),
		Timestamp:    wc.Timestamp(),
	}
}

func newEvent(name string, payload interface{}) (*chaincode.Event, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &chaincode.Event{Name: name, Payload: b}, nil
}
