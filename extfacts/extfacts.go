// Package extfacts wires each of certmodel's six decoded extension bodies
// to its exact fact-schema predicate names and argument ordering. This is
// the bit-for-bit contract the downstream policy evaluator depends on:
// predicate names, argument shapes, and emission order here are not free
// to refactor.
package extfacts

import (
	"encoding/asn1"

	"github.com/go-phorce/chainfacts/certmodel"
	"github.com/go-phorce/chainfacts/oid"
	"github.com/go-phorce/chainfacts/term"
)

// keyUsageNames is the fixed 9-bit table (RFC 5280 §4.2.1.3 bit order).
// Bit strings longer than 9 bits have their higher bits silently ignored;
// this is the only table consulted.
var keyUsageNames = [9]string{
	"digitalSignature",
	"nonRepudiation",
	"keyEncipherment",
	"dataEncipherment",
	"keyAgreement",
	"keyCertSign",
	"cRLSign",
	"encipherOnly",
	"decipherOnly",
}

var ekuNameByOID = map[string]string{
	oid.ServerAuth.String():      "serverAuth",
	oid.ClientAuth.String():      "clientAuth",
	oid.CodeSigning.String():     "codeSigning",
	oid.EmailProtection.String(): "emailProtection",
	oid.TimeStamping.String():    "timeStamping",
	oid.OCSPSigning.String():     "oCSPSigning",
}

// BasicConstraints emits basicConstraintsExt/basicConstraintsCritical and,
// if present, isCA/pathLimit for the certificate at index i.
func BasicConstraints(i int64, cert *certmodel.Certificate) []term.Rule {
	ext, found := cert.GetExtension(oid.BasicConstraints)
	if !found {
		return []term.Rule{absent("basicConstraintsExt", i)}
	}
	bc, ok := ext.Param.(certmodel.BasicConstraintsParam)
	if !ok {
		return []term.Rule{absent("basicConstraintsExt", i)}
	}

	rules := []term.Rule{
		present("basicConstraintsExt", i),
		criticality("basicConstraintsCritical", i, ext.Critical),
		term.Fact("isCA", term.Cert(i), term.Bool(bc.IsCA)),
	}
	if bc.PathLen != nil {
		rules = append(rules, term.Fact("pathLimit", term.Cert(i), term.Int(int64(*bc.PathLen))))
	} else {
		rules = append(rules, term.Fact("pathLimit", term.Cert(i), term.Atom("none")))
	}
	return rules
}

// KeyUsage emits keyUsageExt/keyUsageCritical and one keyUsage fact per set
// bit, in ascending bit-position order.
func KeyUsage(i int64, cert *certmodel.Certificate) []term.Rule {
	ext, found := cert.GetExtension(oid.KeyUsage)
	if !found {
		return []term.Rule{absent("keyUsageExt", i)}
	}
	ku, ok := ext.Param.(certmodel.KeyUsageParam)
	if !ok {
		return []term.Rule{absent("keyUsageExt", i)}
	}

	rules := []term.Rule{
		present("keyUsageExt", i),
		criticality("keyUsageCritical", i, ext.Critical),
	}
	for bit, name := range keyUsageNames {
		if ku.Bit(bit) {
			rules = append(rules, term.Fact("keyUsage", term.Cert(i), term.Atom(name)))
		}
	}
	return rules
}

// ExtendedKeyUsage emits extendedKeyUsageExt/extendedKeyUsageCritical and
// one extendedKeyUsage fact per OID, in the order they appeared.
func ExtendedKeyUsage(i int64, cert *certmodel.Certificate) []term.Rule {
	ext, found := cert.GetExtension(oid.ExtendedKeyUsage)
	if !found {
		return []term.Rule{absent("extendedKeyUsageExt", i)}
	}
	eku, ok := ext.Param.(certmodel.ExtendedKeyUsageParam)
	if !ok {
		return []term.Rule{absent("extendedKeyUsageExt", i)}
	}

	rules := []term.Rule{
		present("extendedKeyUsageExt", i),
		criticality("extendedKeyUsageCritical", i, ext.Critical),
	}
	for _, purpose := range eku.Usages {
		rules = append(rules, term.Fact("extendedKeyUsage", term.Cert(i), extendedKeyUsageTerm(purpose)))
	}
	return rules
}

// extendedKeyUsageTerm maps one EKU purpose OID to its fact-schema term:
// Atom("any") for anyExtendedKeyUsage, Atom(name) for a recognized purpose,
// or Str(dotted-decimal) for anything else.
func extendedKeyUsageTerm(id asn1.ObjectIdentifier) term.Term {
	if id.Equal(oid.AnyExtendedKeyUsage) {
		return term.Atom("any")
	}
	if name, ok := ekuNameByOID[id.String()]; ok {
		return term.Atom(name)
	}
	return term.Str(oid.ToString(id))
}

// SubjectAltName runs the general-name flattener over the decoded names
// and emits one san fact per (tag, term) pair, discarding the tag.
func SubjectAltName(i int64, cert *certmodel.Certificate) []term.Rule {
	ext, found := cert.GetExtension(oid.SubjectAltName)
	if !found {
		return []term.Rule{absent("sanExt", i)}
	}
	san, ok := ext.Param.(certmodel.SubjectAltNameParam)
	if !ok {
		return []term.Rule{absent("sanExt", i)}
	}

	rules := []term.Rule{
		present("sanExt", i),
		criticality("sanCritical", i, ext.Critical),
	}
	for _, pair := range certmodel.FlattenGeneralNames(san.Names) {
		rules = append(rules, term.Fact("san", term.Cert(i), pair.Value))
	}
	return rules
}

// NameConstraints emits nameConstraintsExt/nameConstraintsCritical, then
// flattens permitted subtrees (each emitting nameConstraintsPermited —
// the single-t spelling is the wire contract, not a typo to fix) followed
// by excluded subtrees (each emitting nameConstraintsExcluded).
func NameConstraints(i int64, cert *certmodel.Certificate) []term.Rule {
	ext, found := cert.GetExtension(oid.NameConstraints)
	if !found {
		return []term.Rule{absent("nameConstraintsExt", i)}
	}
	nc, ok := ext.Param.(certmodel.NameConstraintsParam)
	if !ok {
		return []term.Rule{absent("nameConstraintsExt", i)}
	}

	rules := []term.Rule{
		present("nameConstraintsExt", i),
		criticality("nameConstraintsCritical", i, ext.Critical),
	}
	for _, subtree := range nc.Permitted {
		for _, pair := range certmodel.FlattenGeneralName(subtree.Base) {
			rules = append(rules, term.Fact("nameConstraintsPermited", term.Cert(i), term.Str(pair.Tag), pair.Value))
		}
	}
	for _, subtree := range nc.Excluded {
		for _, pair := range certmodel.FlattenGeneralName(subtree.Base) {
			rules = append(rules, term.Fact("nameConstraintsExcluded", term.Cert(i), term.Str(pair.Tag), pair.Value))
		}
	}
	return rules
}

// CertificatePolicies emits certificatePoliciesExt/certificatePoliciesCritical
// and one certificatePolicies fact per policy; qualifiers are not part of
// the decoded param and so are unconditionally discarded.
func CertificatePolicies(i int64, cert *certmodel.Certificate) []term.Rule {
	ext, found := cert.GetExtension(oid.CertificatePolicies)
	if !found {
		return []term.Rule{absent("certificatePoliciesExt", i)}
	}
	cp, ok := ext.Param.(certmodel.CertificatePoliciesParam)
	if !ok {
		return []term.Rule{absent("certificatePoliciesExt", i)}
	}

	rules := []term.Rule{
		present("certificatePoliciesExt", i),
		criticality("certificatePoliciesCritical", i, ext.Critical),
	}
	for _, p := range cp.Policies {
		rules = append(rules, term.Fact("certificatePolicies", term.Cert(i), term.Str(oid.ToString(p.PolicyID))))
	}
	return rules
}

func absent(kind string, i int64) term.Rule {
	return term.Fact(kind, term.Cert(i), term.Bool(false))
}

func present(kind string, i int64) term.Rule {
	return term.Fact(kind, term.Cert(i), term.Bool(true))
}

func criticality(kind string, i int64, critical bool) term.Rule {
	return term.Fact(kind, term.Cert(i), term.Bool(critical))
}
