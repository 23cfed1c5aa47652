// Package certmodel is the borrowed, read-only view onto a parsed X.509
// certificate that the fact-extraction core consumes. Parsing the raw DER
// into a *x509.Certificate is the out-of-scope ASN.1/DER step (an external
// collaborator, here crypto/x509.ParseCertificate); decoding the body of the
// six path-validation extensions from their raw bytes is the in-scope work
// this package does.
package certmodel

import (
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"

	"github.com/juju/errors"
)

// Certificate is a borrowed view onto one parsed certificate: its TBS
// fields, signature algorithm, and typed extensions. It never mutates the
// underlying *x509.Certificate and outlives nothing it did not borrow.
type Certificate struct {
	cert       *x509.Certificate
	extensions []Extension
}

// ExtensionParam is the closed sum type of decoded extension bodies. A
// decoder either produces the concrete variant its OID names, or falls back
// to Other when the OID is unregistered or the DER body doesn't match the
// expected shape.
type ExtensionParam interface {
	isExtensionParam()
}

// BasicConstraintsParam is RFC 5280 §4.2.1.9.
type BasicConstraintsParam struct {
	IsCA    bool
	PathLen *int
}

func (BasicConstraintsParam) isExtensionParam() {}

// KeyUsageParam is RFC 5280 §4.2.1.3, the raw bit string.
type KeyUsageParam struct {
	Bits asn1.BitString
}

func (KeyUsageParam) isExtensionParam() {}

// Bit reports whether bit i (counting from the most significant bit, per
// RFC 5280's KeyUsage numbering) is set. Out-of-range bits are unset.
func (k KeyUsageParam) Bit(i int) bool {
	if i < 0 || i >= k.Bits.BitLength {
		return false
	}
	return k.Bits.At(i) == 1
}

// ExtendedKeyUsageParam is RFC 5280 §4.2.1.12.
type ExtendedKeyUsageParam struct {
	Usages []asn1.ObjectIdentifier
}

func (ExtendedKeyUsageParam) isExtensionParam() {}

// SubjectAltNameParam is RFC 5280 §4.2.1.6.
type SubjectAltNameParam struct {
	Names []GeneralName
}

func (SubjectAltNameParam) isExtensionParam() {}

// GeneralSubtree is one element of a NameConstraints permitted/excluded
// list; minimum/maximum distances are not part of the fact schema and are
// not retained.
type GeneralSubtree struct {
	Base GeneralName
}

// NameConstraintsParam is RFC 5280 §4.2.1.10. Permitted/Excluded are nil
// when the corresponding optional field was absent, distinct from present
// but empty.
type NameConstraintsParam struct {
	Permitted []GeneralSubtree
	Excluded  []GeneralSubtree
}

func (NameConstraintsParam) isExtensionParam() {}

// PolicyInfo is one element of CertificatePolicies; qualifiers are decoded
// by nothing downstream of this package and are discarded, per spec.
type PolicyInfo struct {
	PolicyID asn1.ObjectIdentifier
}

// CertificatePoliciesParam is RFC 5280 §4.2.1.4.
type CertificatePoliciesParam struct {
	Policies []PolicyInfo
}

func (CertificatePoliciesParam) isExtensionParam() {}

// OtherParam is the catch-all for unrecognized OIDs and for bodies that
// fail to parse as their OID's expected shape — the latter is how a
// present-but-malformed extension collapses to the same "absent" sentinel
// as a truly-missing one.
type OtherParam struct {
	Raw []byte
}

func (OtherParam) isExtensionParam() {}

// Extension is one certificate extension: its OID, criticality, and
// decoded body.
type Extension struct {
	ID       asn1.ObjectIdentifier
	Critical bool
	Param    ExtensionParam
}

// ParseCertificate parses DER bytes into a Certificate, decoding the six
// known extensions eagerly so that downstream fact producers never fail on
// a well-formed certificate they've already accepted.
func ParseCertificate(der []byte) (*Certificate, error) {
	c, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, errors.Annotate(err, "parse certificate")
	}
	return NewCertificate(c), nil
}

// NewCertificate wraps an already-parsed *x509.Certificate.
func NewCertificate(c *x509.Certificate) *Certificate {
	return &Certificate{cert: c, extensions: decodeExtensions(c.Extensions)}
}

// Raw returns the underlying stdlib certificate, for callers (the
// basic-cert fact producer, LikelyIssued, VerifySignature) that need fields
// this package doesn't otherwise expose.
func (c *Certificate) Raw() *x509.Certificate {
	return c.cert
}

// Extensions returns the certificate's extensions in their original order.
func (c *Certificate) Extensions() []Extension {
	return c.extensions
}

// GetExtension returns the first extension matching id, mirroring the
// external get_extension(cert, oid) collaborator.
func (c *Certificate) GetExtension(id asn1.ObjectIdentifier) (*Extension, bool) {
	for i := range c.extensions {
		if c.extensions[i].ID.Equal(id) {
			return &c.extensions[i], true
		}
	}
	return nil, false
}

// SubjectRDNs decodes the subject Name into its RDN sequence, reusing the
// same decoder the GeneralName/Directory flattener uses.
func (c *Certificate) SubjectRDNs() ([]RDN, bool) {
	return decodeRDNSequenceDER(c.cert.RawSubject)
}

// IssuerRDNs decodes the issuer Name into its RDN sequence.
func (c *Certificate) IssuerRDNs() ([]RDN, bool) {
	return decodeRDNSequenceDER(c.cert.RawIssuer)
}

func decodeExtensions(exts []pkix.Extension) []Extension {
	out := make([]Extension, len(exts))
	for i, e := range exts {
		out[i] = Extension{
			ID:       e.Id,
			Critical: e.Critical,
			Param:    decodeExtensionParam(e.Id, e.Value),
		}
	}
	return out
}
