// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package carbon

import (
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/aungmawjj/carbon-ledger/execution/chaincode"
	"github.com/jinzhu/copier"
)

type issueParams struct {
	CertID       string
	ProjectID    string
	OwnerID      string
	Amount       float64
	PricePerUnit *float64
	ExpiresAt    *time.Time
}

func (p *issueParams) validate(now time.Time) error {
	if err := requireID("certificate id", p.CertID); err != nil {
		return err
	}
	if err := requireID("project id", p.ProjectID); err != nil {
		return err
	}
	if err := requireID("owner id", p.OwnerID); err != nil {
		return err
	}
	if !positive(p.Amount) {
		return errorf(ErrInvalidArgument, "amount must be positive")
	}
	if p.PricePerUnit != nil && !positive(*p.PricePerUnit) {
		return errorf(ErrInvalidArgument, "price per unit must be positive")
	}
	if p.ExpiresAt != nil && !p.ExpiresAt.After(now) {
		return errorf(ErrInvalidArgument, "expiry must be after issuance")
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// issueCertificate requires a validated project and binds the issuance facts with a hash
func issueCertificate(wc chaincode.WriteContext, p *issueParams) (*Certificate, *chaincode.Event, error) {
	if err := p.validate(wc.Timestamp()); err != nil {
		return nil, nil, err
	}
	found, err := exists(wc, CertificateKey(p.CertID))
	if err != nil {
		return nil, nil, err
	}
	if found {
		return nil, nil, errorf(ErrAlreadyExists, "certificate %s", p.CertID)
	}
	project, err := loadProject(wc, p.ProjectID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil, errorf(ErrPreconditionFailed, "project %s is not registered", p.ProjectID)
	}
	if err != nil {
		return nil, nil, err
	}
	if !project.RegulatorValidated {
		return nil, nil, errorf(ErrPreconditionFailed, "project %s is not validated", p.ProjectID)
	}
	cert := &Certificate{
		CertID:           p.CertID,
		ProjectID:        p.ProjectID,
		OwnerID:          p.OwnerID,
		IssuedTo:         p.OwnerID,
		Amount:           p.Amount,
		PricePerUnit:     p.PricePerUnit,
		Status:           StatusIssued,
		IssuedAt:         wc.Timestamp(),
		ExpiresAt:        p.ExpiresAt,
		OwnershipHistory: make([]OwnershipRecord, 0),
		LedgerStamp:      newLedgerStamp(wc),
	}
	if cert.CertificateHash, err = ComputeHash(cert); err != nil {
		return nil, nil, err
	}
	payload := newCertificateEvent(wc, cert)
	payload.CertificateHash = cert.CertificateHash
	event, err := newEvent(EventCertificateCreated, payload)
	if err != nil {
		return nil, nil, err
	}
	return cert, event, putEntity(wc, CertificateKey(cert.CertID), cert)
}

// listCertificate offers the certificate for sale, relisting updates the price
func listCertificate(
	wc chaincode.WriteContext, certID string, price *float64,
) (*Certificate, *chaincode.Event, error) {
	if err := requireID("certificate id", certID); err != nil {
		return nil, nil, err
	}
	if price == nil || !positive(*price) {
		return nil, nil, errorf(ErrInvalidArgument, "price per unit must be positive")
	}
	cert, err := loadCertificate(wc, certID)
	if err != nil {
		return nil, nil, err
	}
	if cert.Status == StatusRetired {
		return nil, nil, errorf(ErrInvalidState, "certificate %s is retired", certID)
	}
	ts := wc.Timestamp()
	cert.Listed = true
	cert.Status = StatusListed
	cert.PricePerUnit = price
	cert.ListedAt = &ts
	cert.ListedTxID = wc.TxID()

	event, err := newEvent(EventCertificateListed, newCertificateEvent(wc, cert))
	if err != nil {
		return nil, nil, err
	}
	return cert, event, putEntity(wc, CertificateKey(certID), cert)
}

// buyCertificate transfers a listed certificate to buyerID
func buyCertificate(
	wc chaincode.WriteContext, certID, buyerID string,
) (*Certificate, *chaincode.Event, error) {
	if err := requireID("certificate id", certID); err != nil {
		return nil, nil, err
	}
	if err := requireID("buyer id", buyerID); err != nil {
		return nil, nil, err
	}
	cert, err := loadCertificate(wc, certID)
	if err != nil {
		return nil, nil, err
	}
	if !cert.Listed {
		return nil, nil, errorf(ErrUnavailable, "certificate %s is not listed", certID)
	}
	if cert.OwnerID == buyerID {
		return nil, nil, errorf(ErrInvalidState, "%s already owns certificate %s", buyerID, certID)
	}
	var price float64
	if cert.PricePerUnit != nil {
		price = *cert.PricePerUnit
	}
	ts := wc.Timestamp()
	prevOwner := cert.OwnerID
	cert.OwnershipHistory = append(cert.OwnershipHistory, OwnershipRecord{
		From:      prevOwner,
		To:        buyerID,
		TxID:      wc.TxID(),
		Timestamp: ts,
		Price:     price,
		Amount:    cert.Amount,
	})
	cert.OwnerID = buyerID
	cert.Listed = false
	cert.Status = StatusOwned
	cert.LastTransferAt = &ts
	cert.LastTransferTxID = wc.TxID()

	payload := newCertificateEvent(wc, cert)
	payload.PreviousOwnerID = prevOwner
	event, err := newEvent(EventCertificatePurchased, payload)
	if err != nil {
		return nil, nil, err
	}
	return cert, event, putEntity(wc, CertificateKey(certID), cert)
}

func retireCertificate(
	wc chaincode.WriteContext, certID string, reason, beneficiary *string,
) (*Certificate, *chaincode.Event, error) {
	if err := requireID("certificate id", certID); err != nil {
		return nil, nil, err
	}
	cert, err := loadCertificate(wc, certID)
	if err != nil {
		return nil, nil, err
	}
	event, err := retire(wc, cert, reason, beneficiary, "")
	if err != nil {
		return nil, nil, err
	}
	return cert, event, nil
}

// retire is terminal, retirement fields are never overwritten
func retire(
	wc chaincode.WriteContext, cert *Certificate, reason, beneficiary *string, requestID string,
) (*chaincode.Event, error) {
	if cert.Status == StatusRetired {
		return nil, errorf(ErrInvalidState, "certificate %s is already retired", cert.CertID)
	}
	ts := wc.Timestamp()
	cert.Status = StatusRetired
	cert.Listed = false
	cert.RetiredAt = &ts
	cert.RetiredTxID = wc.TxID()
	cert.RetiredBy = wc.Sender()
	cert.RetirementReason = reason
	cert.RetirementBeneficiary = beneficiary

	payload := newCertificateEvent(wc, cert)
	payload.Reason = reason
	payload.Beneficiary = beneficiary
	payload.RequestID = requestID
	event, err := newEvent(EventCertificateRetired, payload)
	if err != nil {
		return nil, err
	}
	return event, putEntity(wc, CertificateKey(cert.CertID), cert)
}

func getCertificate(rc chaincode.ReadContext, certID string) (*Certificate, error) {
	if err := requireID("certificate id", certID); err != nil {
		return nil, err
	}
	return loadCertificate(rc, certID)
}

// getCertificateWithProof adds the read transaction as an audit artifact
func getCertificateWithProof(rc chaincode.ReadContext, certID string) (*CertificateProof, error) {
	cert, err := getCertificate(rc, certID)
	if err != nil {
		return nil, err
	}
	return &CertificateProof{
		Certificate:   cert,
		ReadTxID:      rc.TxID(),
		ReadTimestamp: rc.Timestamp(),
		ChannelID:     rc.ChannelID(),
	}, nil
}

func getBlockchainMetadata(rc chaincode.ReadContext, certID string) (*CertificateMetadata, error) {
	cert, err := getCertificate(rc, certID)
	if err != nil {
		return nil, err
	}
	meta := new(CertificateMetadata)
	if err := copier.CopyWithOption(meta, cert, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	return meta, nil
}

func verifyCertificate(rc chaincode.ReadContext, certID string) (*VerifyResult, error) {
	cert, err := getCertificate(rc, certID)
	if err != nil {
		return nil, err
	}
	return Verify(cert)
}

func queryAvailable(rc chaincode.ReadContext) ([]*Certificate, error) {
	return queryCertificates(rc, chaincode.Selector{
		"listed": true,
		"status": StatusListed,
	})
}

func queryByOwner(rc chaincode.ReadContext, ownerID string) ([]*Certificate, error) {
	if err := requireID("owner id", ownerID); err != nil {
		return nil, err
	}
	return queryCertificates(rc, chaincode.Selector{"ownerId": ownerID})
}

func queryCertificates(rc chaincode.ReadContext, selector chaincode.Selector) ([]*Certificate, error) {
	values, err := rc.QueryState(PrefixCertificate, selector)
	if err != nil {
		return nil, err
	}
	certs := make([]*Certificate, 0, len(values))
	for _, b := range values {
		cert := new(Certificate)
		if err := json.Unmarshal(b, cert); err != nil {
			return nil, err
		}
		certs = append(certs, cert)
	}
	return certs, nil
}
