// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package carbon

import (
	"encoding/hex"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/sha3"
)

// issuanceFacts are the only fields bound by the certificate hash
type issuanceFacts struct {
	_         struct{} `cbor:",toarray"`
	CertID    string
	ProjectID string
	Amount    float64
	OwnerID   string
	IssuedAt  int64
}

var canonicalEncMode cbor.EncMode

func init() {
	var err error
	canonicalEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
}

// ComputeHash returns hex encoded sha3-256 over the canonical cbor encoding of
// certId, projectId, amount, issuance owner and issuedAt
func ComputeHash(cert *Certificate) (string, error) {
	b, err := canonicalEncMode.Marshal(&issuanceFacts{
		CertID:    cert.CertID,
		ProjectID: cert.ProjectID,
		Amount:    cert.Amount,
		OwnerID:   cert.IssuedTo,
		IssuedAt:  cert.IssuedAt.UnixNano(),
	})
	if err != nil {
		return "", err
	}
	sum := sha3.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// Verify recomputes the hash from issuance fields and compares with the stored one
func Verify(cert *Certificate) (*VerifyResult, error) {
	computed, err := ComputeHash(cert)
	if err != nil {
		return nil, err
	}
	return &VerifyResult{
		CertID:       cert.CertID,
		Valid:        computed == cert.CertificateHash,
		StoredHash:   cert.CertificateHash,
		ComputedHash: computed,
	}, nil
}
