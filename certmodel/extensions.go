package certmodel

import (
	"encoding/asn1"

	"github.com/go-phorce/chainfacts/oid"
	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

// decodeExtensionParam dispatches on the extension's OID and decodes its
// DER body into the matching ExtensionParam variant. An unrecognized OID,
// or a body that doesn't match the shape its OID promises, both fall back
// to OtherParam: to the fact producers that read Param via a type
// assertion, a malformed extension and an absent one look identical.
func decodeExtensionParam(id asn1.ObjectIdentifier, value []byte) ExtensionParam {
	var (
		param ExtensionParam
		ok    bool
	)
	switch {
	case id.Equal(oid.BasicConstraints):
		param, ok = decodeBasicConstraints(value)
	case id.Equal(oid.KeyUsage):
		param, ok = decodeKeyUsage(value)
	case id.Equal(oid.ExtendedKeyUsage):
		param, ok = decodeExtendedKeyUsage(value)
	case id.Equal(oid.SubjectAltName):
		param, ok = decodeSubjectAltName(value)
	case id.Equal(oid.NameConstraints):
		param, ok = decodeNameConstraints(value)
	case id.Equal(oid.CertificatePolicies):
		param, ok = decodeCertificatePolicies(value)
	}
	if !ok {
		return OtherParam{Raw: value}
	}
	return param
}

func decodeBasicConstraints(value []byte) (ExtensionParam, bool) {
	input := cryptobyte.String(value)
	var body cryptobyte.String
	if !input.ReadASN1(&body, cbasn1.SEQUENCE) {
		return nil, false
	}
	var isCA bool
	if body.PeekASN1Tag(cbasn1.BOOLEAN) {
		if !body.ReadASN1Boolean(&isCA) {
			return nil, false
		}
	}
	var pathLen *int
	if !body.Empty() {
		var pl int
		if !body.ReadASN1Integer(&pl) {
			return nil, false
		}
		pathLen = &pl
	}
	return BasicConstraintsParam{IsCA: isCA, PathLen: pathLen}, true
}

func decodeKeyUsage(value []byte) (ExtensionParam, bool) {
	input := cryptobyte.String(value)
	var bits asn1.BitString
	if !input.ReadASN1BitString(&bits) {
		return nil, false
	}
	return KeyUsageParam{Bits: bits}, true
}

func decodeExtendedKeyUsage(value []byte) (ExtensionParam, bool) {
	input := cryptobyte.String(value)
	var seq cryptobyte.String
	if !input.ReadASN1(&seq, cbasn1.SEQUENCE) {
		return nil, false
	}
	var usages []asn1.ObjectIdentifier
	for !seq.Empty() {
		var id asn1.ObjectIdentifier
		if !seq.ReadASN1ObjectIdentifier(&id) {
			return nil, false
		}
		usages = append(usages, id)
	}
	return ExtendedKeyUsageParam{Usages: usages}, true
}

func decodeSubjectAltName(value []byte) (ExtensionParam, bool) {
	input := cryptobyte.String(value)
	var seq cryptobyte.String
	if !input.ReadASN1(&seq, cbasn1.SEQUENCE) {
		return nil, false
	}
	names, ok := decodeGeneralNames(seq)
	if !ok {
		return nil, false
	}
	return SubjectAltNameParam{Names: names}, true
}

var (
	tagPermittedSubtrees = cbasn1.Tag(0).ContextSpecific().Constructed()
	tagExcludedSubtrees  = cbasn1.Tag(1).ContextSpecific().Constructed()
)

func decodeNameConstraints(value []byte) (ExtensionParam, bool) {
	input := cryptobyte.String(value)
	var body cryptobyte.String
	if !input.ReadASN1(&body, cbasn1.SEQUENCE) {
		return nil, false
	}
	var param NameConstraintsParam
	if body.PeekASN1Tag(tagPermittedSubtrees) {
		var subtrees cryptobyte.String
		if !body.ReadASN1(&subtrees, tagPermittedSubtrees) {
			return nil, false
		}
		permitted, ok := decodeGeneralSubtrees(subtrees)
		if !ok {
			return nil, false
		}
		param.Permitted = permitted
	}
	if body.PeekASN1Tag(tagExcludedSubtrees) {
		var subtrees cryptobyte.String
		if !body.ReadASN1(&subtrees, tagExcludedSubtrees) {
			return nil, false
		}
		excluded, ok := decodeGeneralSubtrees(subtrees)
		if !ok {
			return nil, false
		}
		param.Excluded = excluded
	}
	return param, true
}

// decodeGeneralSubtrees reads a GeneralSubtrees ::= SEQUENCE OF
// GeneralSubtree body, keeping only each subtree's base name; the
// minimum/maximum distance fields are not part of the fact schema.
func decodeGeneralSubtrees(s cryptobyte.String) ([]GeneralSubtree, bool) {
	var out []GeneralSubtree
	for !s.Empty() {
		var subtree cryptobyte.String
		if !s.ReadASN1(&subtree, cbasn1.SEQUENCE) {
			return nil, false
		}
		base, ok := decodeGeneralName(&subtree)
		if !ok {
			return nil, false
		}
		out = append(out, GeneralSubtree{Base: base})
	}
	return out, true
}

func decodeCertificatePolicies(value []byte) (ExtensionParam, bool) {
	input := cryptobyte.String(value)
	var seq cryptobyte.String
	if !input.ReadASN1(&seq, cbasn1.SEQUENCE) {
		return nil, false
	}
	var policies []PolicyInfo
	for !seq.Empty() {
		var info cryptobyte.String
		if !seq.ReadASN1(&info, cbasn1.SEQUENCE) {
			return nil, false
		}
		var policyID asn1.ObjectIdentifier
		if !info.ReadASN1ObjectIdentifier(&policyID) {
			return nil, false
		}
		// policyQualifiers, if present, are intentionally not decoded.
		policies = append(policies, PolicyInfo{PolicyID: policyID})
	}
	return CertificatePoliciesParam{Policies: policies}, true
}
