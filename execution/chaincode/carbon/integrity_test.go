// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package carbon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newHashedCert(t *testing.T) *Certificate {
	cert := &Certificate{
		CertID:    "CERT-1",
		ProjectID: "PRJ-1",
		OwnerID:   "CO-1",
		IssuedTo:  "CO-1",
		Amount:    100,
		IssuedAt:  time.Date(2024, 1, 2, 3, 4, 5, 6, time.UTC),
	}
	hash, err := ComputeHash(cert)
	assert.NoError(t, err)
	cert.CertificateHash = hash
	return cert
}

func TestComputeHash(t *testing.T) {
	assert := assert.New(t)

	cert := newHashedCert(t)
	assert.Len(cert.CertificateHash, 64)

	again, err := ComputeHash(cert)
	assert.NoError(err)
	assert.Equal(cert.CertificateHash, again, "hash is deterministic")

	local := *cert
	local.IssuedAt = cert.IssuedAt.In(time.FixedZone("ICT", 7*3600))
	h, _ := ComputeHash(&local)
	assert.Equal(cert.CertificateHash, h, "timezone does not matter")

	other := *cert
	other.CertID = "CERT-2"
	h, _ = ComputeHash(&other)
	assert.NotEqual(cert.CertificateHash, h)
}

func TestVerify(t *testing.T) {
	assert := assert.New(t)

	cert := newHashedCert(t)
	res, err := Verify(cert)
	assert.NoError(err)
	assert.True(res.Valid)
	assert.Equal("CERT-1", res.CertID)

	p := 60000.0
	cert.OwnerID = "CO-2"
	cert.Status = StatusRetired
	cert.PricePerUnit = &p
	cert.OwnershipHistory = append(cert.OwnershipHistory, OwnershipRecord{From: "CO-1", To: "CO-2"})
	res, _ = Verify(cert)
	assert.True(res.Valid, "mutable fields are not bound")

	cert.Amount = 1000
	res, _ = Verify(cert)
	assert.False(res.Valid)
	assert.NotEqual(res.StoredHash, res.ComputedHash)

	cert = newHashedCert(t)
	cert.IssuedTo = "CO-9"
	res, _ = Verify(cert)
	assert.False(res.Valid)

	cert = newHashedCert(t)
	cert.IssuedAt = cert.IssuedAt.Add(time.Nanosecond)
	res, _ = Verify(cert)
	assert.False(res.Valid)
}

func TestKeys(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("COMPANY:CO-1", CompanyKey("CO-1"))
	assert.Equal("PROJECT:PRJ-1", ProjectKey("PRJ-1"))
	assert.Equal("CERT:CERT-1", CertificateKey("CERT-1"))
	assert.Equal("RETREQ:REQ-1", RetirementRequestKey("REQ-1"))
}
