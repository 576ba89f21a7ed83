// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package carbon

import (
	"time"

	"github.com/aungmawjj/carbon-ledger/execution/chaincode"
)

// Status of a certificate
type Status string

const (
	StatusIssued  Status = "ISSUED"
	StatusListed  Status = "LISTED"
	StatusOwned   Status = "OWNED"
	StatusRetired Status = "RETIRED"
)

// LedgerStamp records the transaction that created an entity
type LedgerStamp struct {
	CreatedAt   time.Time `json:"createdAt"`
	CreatedTxID string    `json:"createdTxId"`
	CreatedBy   string    `json:"createdBy"`
	ChannelID   string    `json:"channelId"`
}

func newLedgerStamp(wc chaincode.WriteContext) LedgerStamp {
	return LedgerStamp{
		CreatedAt:   wc.Timestamp(),
		CreatedTxID: wc.TxID(),
		CreatedBy:   wc.Sender(),
		ChannelID:   wc.ChannelID(),
	}
}

// ValidationStamp is empty until a regulator validates the entity
type ValidationStamp struct {
	RegulatorValidated bool       `json:"regulatorValidated"`
	ValidatedAt        *time.Time `json:"validatedAt"`
	ValidatedBy        string     `json:"validatedBy,omitempty"`
	ValidationTxID     string     `json:"validationTxId,omitempty"`
}

func newValidationStamp(wc chaincode.WriteContext) ValidationStamp {
	ts := wc.Timestamp()
	return ValidationStamp{
		RegulatorValidated: true,
		ValidatedAt:        &ts,
		ValidatedBy:        wc.Sender(),
		ValidationTxID:     wc.TxID(),
	}
}

type Company struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	ValidationStamp
	LedgerStamp
}

type Project struct {
	ID          string `json:"id"`
	CompanyID   string `json:"companyId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ValidationStamp
	LedgerStamp
}

// OwnershipRecord is one transfer, never edited once appended
type OwnershipRecord struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	TxID      string    `json:"txId"`
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
	Amount    float64   `json:"amount"`
}

type Certificate struct {
	CertID    string `json:"certId"`
	ProjectID string `json:"projectId"`
	OwnerID   string `json:"ownerId"`
	// IssuedTo is the owner at issuance, bound by CertificateHash
	IssuedTo     string     `json:"issuedTo"`
	Amount       float64    `json:"amount"`
	PricePerUnit *float64   `json:"pricePerUnit"`
	Status       Status     `json:"status"`
	Listed       bool       `json:"listed"`
	IssuedAt     time.Time  `json:"issuedAt"`
	ExpiresAt    *time.Time `json:"expiresAt"`

	CertificateHash  string            `json:"certificateHash"`
	OwnershipHistory []OwnershipRecord `json:"ownershipHistory"`

	LedgerStamp
	ListedAt         *time.Time `json:"listedAt,omitempty"`
	ListedTxID       string     `json:"listedTxId,omitempty"`
	LastTransferAt   *time.Time `json:"lastTransferAt,omitempty"`
	LastTransferTxID string     `json:"lastTransferTxId,omitempty"`

	RetiredAt             *time.Time `json:"retiredAt,omitempty"`
	RetiredTxID           string     `json:"retiredTxId,omitempty"`
	RetiredBy             string     `json:"retiredBy,omitempty"`
	RetirementReason      *string    `json:"retirementReason,omitempty"`
	RetirementBeneficiary *string    `json:"retirementBeneficiary,omitempty"`
}

// CertificateMetadata is the audit subset of a certificate for external reporting
type CertificateMetadata struct {
	CertID           string            `json:"certId"`
	ChannelID        string            `json:"channelId"`
	CreatedTxID      string            `json:"createdTxId"`
	ListedTxID       string            `json:"listedTxId,omitempty"`
	LastTransferTxID string            `json:"lastTransferTxId,omitempty"`
	RetiredTxID      string            `json:"retiredTxId,omitempty"`
	CertificateHash  string            `json:"certificateHash"`
	OwnershipHistory []OwnershipRecord `json:"ownershipHistory"`
}

// CertificateProof pairs a certificate with the read transaction that served it
type CertificateProof struct {
	Certificate   *Certificate `json:"certificate"`
	ReadTxID      string       `json:"readTxId"`
	ReadTimestamp time.Time    `json:"readTimestamp"`
	ChannelID     string       `json:"channelId"`
}

type VerifyResult struct {
	CertID       string `json:"certId"`
	Valid        bool   `json:"valid"`
	StoredHash   string `json:"storedHash"`
	ComputedHash string `json:"computedHash"`
}

type RawTimestamp struct {
	Seconds int64 `json:"seconds"`
	Nanos   int32 `json:"nanos"`
}

// HistoryRecord is one committed version of a certificate
type HistoryRecord struct {
	TxID         string       `json:"txId"`
	IsDelete     bool         `json:"isDelete"`
	Timestamp    RawTimestamp `json:"timestamp"`
	TimestampISO string       `json:"timestampIso"`
	Value        *Certificate `json:"value"`
}

type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
)

type RetirementRequest struct {
	RequestID   string        `json:"requestId"`
	CertID      string        `json:"certId"`
	RequestedBy string        `json:"requestedBy"`
	Reason      *string       `json:"reason,omitempty"`
	Beneficiary *string       `json:"beneficiary,omitempty"`
	Status      RequestStatus `json:"status"`
	LedgerStamp
	ApprovedAt   *time.Time `json:"approvedAt,omitempty"`
	ApprovedBy   string     `json:"approvedBy,omitempty"`
	ApprovedTxID string     `json:"approvedTxId,omitempty"`
}
