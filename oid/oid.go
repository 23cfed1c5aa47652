// Package oid maps well-known ASN.1 object identifiers to the short names
// the fact schema uses, in the style of the teacher's xpki/oid package: a
// table of registered values plus total lookup functions, falling back to
// dotted-decimal string form for anything unregistered.
package oid

import "encoding/asn1"

// Certificate extension OIDs (RFC 5280).
var (
	BasicConstraints    = asn1.ObjectIdentifier{2, 5, 29, 19}
	KeyUsage            = asn1.ObjectIdentifier{2, 5, 29, 15}
	SubjectAltName      = asn1.ObjectIdentifier{2, 5, 29, 17}
	NameConstraints     = asn1.ObjectIdentifier{2, 5, 29, 30}
	CertificatePolicies = asn1.ObjectIdentifier{2, 5, 29, 32}
	ExtendedKeyUsage    = asn1.ObjectIdentifier{2, 5, 29, 37}
)

// Extended key usage purpose OIDs (RFC 5280 §4.2.1.12).
var (
	AnyExtendedKeyUsage = asn1.ObjectIdentifier{2, 5, 29, 37, 0}
	ServerAuth          = asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 3, 1}
	ClientAuth          = asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 3, 2}
	CodeSigning         = asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 3, 3}
	EmailProtection     = asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 3, 4}
	TimeStamping        = asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 3, 8}
	OCSPSigning         = asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 3, 9}
)

// Directory (attribute-type) OIDs (RFC 4519 / X.520), used both for the
// subject/issuer RDN and for GeneralName's Directory variant.
var (
	CountryName          = asn1.ObjectIdentifier{2, 5, 4, 6}
	OrganizationName     = asn1.ObjectIdentifier{2, 5, 4, 10}
	OrganizationalUnit   = asn1.ObjectIdentifier{2, 5, 4, 11}
	OrganizationalIdent  = asn1.ObjectIdentifier{2, 5, 4, 97}
	CommonName           = asn1.ObjectIdentifier{2, 5, 4, 3}
	SurName              = asn1.ObjectIdentifier{2, 5, 4, 4}
	StateName            = asn1.ObjectIdentifier{2, 5, 4, 8}
	StreetAddress        = asn1.ObjectIdentifier{2, 5, 4, 9}
	LocalityName         = asn1.ObjectIdentifier{2, 5, 4, 7}
	PostalCode           = asn1.ObjectIdentifier{2, 5, 4, 17}
	GivenName            = asn1.ObjectIdentifier{2, 5, 4, 42}
	DomainComponent      = asn1.ObjectIdentifier{0, 9, 2342, 19200300, 100, 1, 25}
)

var dirNameByOID = map[string]string{
	CountryName.String():         "country",
	OrganizationName.String():    "organization",
	OrganizationalUnit.String():  "organizational unit",
	OrganizationalIdent.String(): "organizational identifier",
	CommonName.String():          "common name",
	SurName.String():             "surname",
	StateName.String():           "state",
	StreetAddress.String():       "street address",
	LocalityName.String():        "locality",
	PostalCode.String():          "postal code",
	GivenName.String():           "given name",
	DomainComponent.String():     "domain component",
}

// ToName maps a directory attribute-type OID to the short label used inside
// Directory-name tags ("Directory/<label>"). Unregistered OIDs map to
// "UNKNOWN". Total function, never fails.
func ToName(id asn1.ObjectIdentifier) string {
	if name, ok := dirNameByOID[id.String()]; ok {
		return name
	}
	return "UNKNOWN"
}

// ToString is the dotted-decimal fallback used when an EKU purpose or
// certificate policy OID has no registered short name.
func ToString(id asn1.ObjectIdentifier) string {
	return id.String()
}

// Equal reports whether two object identifiers name the same arc sequence.
func Equal(a, b asn1.ObjectIdentifier) bool {
	return a.Equal(b)
}
