// Package certfacts is the per-certificate fact producer (C5): for one
// indexed certificate it emits the basic-cert fact block followed by each
// of the six extension decoders in their fixed order. This is the one
// place the schema for the "basic" block — left as a given, unspecified
// adjacent component by spec.md — is pinned down; see SPEC_FULL.md §4.
package certfacts

import (
	"github.com/go-phorce/chainfacts/certmodel"
	"github.com/go-phorce/chainfacts/extfacts"
	"github.com/go-phorce/chainfacts/term"
)

func keyAlgorithmAtom(cert *certmodel.Certificate) term.Atom {
	switch cert.Raw().PublicKeyAlgorithm.String() {
	case "RSA":
		return term.Atom("RSA")
	case "ECDSA":
		return term.Atom("ECDSA")
	case "Ed25519":
		return term.Atom("Ed25519")
	default:
		return term.Atom("unknown")
	}
}

// Basic emits the basic-cert fact block: subject, issuerName, notBefore,
// notAfter, version, serial, subjectKeyAlgorithm, then one subjectName fact
// per flattened subject RDN attribute.
func Basic(i int64, cert *certmodel.Certificate) []term.Rule {
	raw := cert.Raw()
	rules := []term.Rule{
		term.Fact("subject", term.Cert(i), term.Str(raw.Subject.String())),
		term.Fact("issuerName", term.Cert(i), term.Str(raw.Issuer.String())),
		term.Fact("notBefore", term.Cert(i), term.Int(raw.NotBefore.Unix())),
		term.Fact("notAfter", term.Cert(i), term.Int(raw.NotAfter.Unix())),
		term.Fact("version", term.Cert(i), term.Int(int64(raw.Version))),
		term.Fact("serial", term.Cert(i), term.Str(raw.SerialNumber.String())),
		term.Fact("subjectKeyAlgorithm", term.Cert(i), keyAlgorithmAtom(cert)),
	}

	if rdns, ok := cert.SubjectRDNs(); ok {
		for _, pair := range certmodel.FlattenRDNs(rdns) {
			rules = append(rules, term.Fact("subjectName", term.Cert(i), term.Str(pair.Tag), pair.Value))
		}
	}
	return rules
}

// Certificate emits the full per-certificate fact block (C5): the basic
// block followed by BasicConstraints, KeyUsage, SubjectAltName,
// NameConstraints, CertificatePolicies, ExtendedKeyUsage — in that fixed
// order, matching spec.md §4.5.
func Certificate(i int64, cert *certmodel.Certificate) []term.Rule {
	rules := Basic(i, cert)
	rules = append(rules, extfacts.BasicConstraints(i, cert)...)
	rules = append(rules, extfacts.KeyUsage(i, cert)...)
	rules = append(rules, extfacts.SubjectAltName(i, cert)...)
	rules = append(rules, extfacts.NameConstraints(i, cert)...)
	rules = append(rules, extfacts.CertificatePolicies(i, cert)...)
	rules = append(rules, extfacts.ExtendedKeyUsage(i, cert)...)
	return rules
}
