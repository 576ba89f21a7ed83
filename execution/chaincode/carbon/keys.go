// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package carbon

// key namespaces, shared with off-chain readers of the ledger
const (
	PrefixCompany           = "COMPANY:"
	PrefixProject           = "PROJECT:"
	PrefixCertificate       = "CERT:"
	PrefixRetirementRequest = "RETREQ:"
)

func CompanyKey(id string) string           { return PrefixCompany + id }
func ProjectKey(id string) string           { return PrefixProject + id }
func CertificateKey(id string) string       { return PrefixCertificate + id }
func RetirementRequestKey(id string) string { return PrefixRetirementRequest + id }
