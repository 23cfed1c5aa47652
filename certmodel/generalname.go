package certmodel

import (
	"encoding/asn1"

	"github.com/go-phorce/chainfacts/oid"
	"github.com/go-phorce/chainfacts/term"
	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

// GeneralNameKind is the GeneralName CHOICE tag (RFC 5280 §4.2.1.6).
type GeneralNameKind int

const (
	GeneralNameOther GeneralNameKind = iota
	GeneralNameRFC822
	GeneralNameDNS
	GeneralNameX400
	GeneralNameDirectory
	GeneralNameEDIParty
	GeneralNameURI
	GeneralNameIP
	GeneralNameRegisteredID
	// GeneralNameUnreachable marks a well-formed name whose CHOICE tag is
	// none of the nine known ones. (A name with malformed contents fails
	// the whole extension's decoding instead.) It flattens to zero
	// (tag, value) pairs, the same as a GeneralName variant with nothing
	// left to say.
	GeneralNameUnreachable
)

// GeneralName is the decoded form of one GeneralName CHOICE value. Only the
// field matching Kind is meaningful.
type GeneralName struct {
	Kind      GeneralNameKind
	Str       string // RFC822, DNS, URI
	Directory []RDN  // Directory
}

// AttributeTypeAndValue is one SET element of an RDN: an attribute-type OID
// and its (still string-tagged) value.
type AttributeTypeAndValue struct {
	Type  asn1.ObjectIdentifier
	Value DirectoryString
}

// RDN is a RelativeDistinguishedName: a SET of AttributeTypeAndValue,
// almost always a singleton in practice.
type RDN []AttributeTypeAndValue

// DirectoryString is an attribute value together with the ASN.1 string
// type it was tagged with, since DirStringToString's success depends on
// that tag.
type DirectoryString struct {
	Tag cbasn1.Tag
	Raw []byte
}

// DirStringToString decodes a DirectoryString to UTF-8 text. It succeeds
// for the string types whose contents are already UTF-8-compatible bytes
// (UTF8String, PrintableString, IA5String) and fails for the legacy
// multi-byte/8-bit encodings (TeletexString, BMPString, UniversalString)
// that need a charset conversion this package does not perform — mirroring
// the external dir_string_to_string collaborator's partiality.
func DirStringToString(ds DirectoryString) (string, bool) {
	switch ds.Tag {
	case cbasn1.UTF8String, cbasn1.PrintableString, cbasn1.IA5String:
		return string(ds.Raw), true
	default:
		return "", false
	}
}

var unsupported = term.Atom("unsupported")

// FlattenGeneralName turns a decoded GeneralName into the (tag, term) pairs
// the SubjectAltName/NameConstraints fact producers emit. RFC822/DNS/URI
// carry their string through; Directory emits one "Directory/<attr>" pair
// per attribute across every RDN in the name, in encounter order, each
// with a decoded string or Atom("unsupported") if its directory-string
// type doesn't decode to UTF-8; every other recognized kind emits a single
// ("<Kind>", Atom("unsupported")) placeholder pair; only Unreachable — a
// name this package could not decode at all — contributes zero pairs.
func FlattenGeneralName(gn GeneralName) []GeneralNamePair {
	switch gn.Kind {
	case GeneralNameRFC822:
		return []GeneralNamePair{{Tag: "RFC822", Value: term.Str(gn.Str)}}
	case GeneralNameDNS:
		return []GeneralNamePair{{Tag: "DNS", Value: term.Str(gn.Str)}}
	case GeneralNameURI:
		return []GeneralNamePair{{Tag: "URI", Value: term.Str(gn.Str)}}
	case GeneralNameOther:
		return []GeneralNamePair{{Tag: "Other", Value: unsupported}}
	case GeneralNameX400:
		return []GeneralNamePair{{Tag: "X400", Value: unsupported}}
	case GeneralNameEDIParty:
		return []GeneralNamePair{{Tag: "EDIParty", Value: unsupported}}
	case GeneralNameIP:
		return []GeneralNamePair{{Tag: "IP", Value: unsupported}}
	case GeneralNameRegisteredID:
		return []GeneralNamePair{{Tag: "RegisteredID", Value: unsupported}}
	case GeneralNameDirectory:
		return FlattenRDNs(gn.Directory)
	default:
		// GeneralNameUnreachable.
		return nil
	}
}

// FlattenRDNs flattens an RDN sequence the same way FlattenGeneralName
// flattens a Directory name: one ("Directory/<attr>", term) pair per
// AttributeTypeAndValue, across every RDN, in encounter order. The basic
// certificate fact producer's subjectName block reuses this directly so
// subject/issuer names and GeneralName::Directory share one tagging shape.
func FlattenRDNs(rdns []RDN) []GeneralNamePair {
	var pairs []GeneralNamePair
	for _, rdn := range rdns {
		for _, atv := range rdn {
			v := term.Term(unsupported)
			if s, ok := DirStringToString(atv.Value); ok {
				v = term.Str(s)
			}
			pairs = append(pairs, GeneralNamePair{
				Tag:   "Directory/" + oid.ToName(atv.Type),
				Value: v,
			})
		}
	}
	return pairs
}

// FlattenGeneralNames flattens a sequence of general names by concatenating
// the per-element flattenings in input order (invariant 9, §8).
func FlattenGeneralNames(names []GeneralName) []GeneralNamePair {
	var pairs []GeneralNamePair
	for _, gn := range names {
		pairs = append(pairs, FlattenGeneralName(gn)...)
	}
	return pairs
}

// GeneralNamePair is one flattened (tag, value) pair produced from a
// GeneralName.
type GeneralNamePair struct {
	Tag   string
	Value term.Term
}

// decodeGeneralName reads one GeneralName element from s, advancing past
// it. Returns ok=false only when the DER itself is malformed; an
// unrecognized but well-formed CHOICE tag decodes successfully to
// GeneralNameUnreachable.
func decodeGeneralName(s *cryptobyte.String) (GeneralName, bool) {
	var tag cbasn1.Tag
	var contents cryptobyte.String
	if !s.ReadAnyASN1(&contents, &tag) {
		return GeneralName{Kind: GeneralNameUnreachable}, false
	}

	switch int(tag) & 0x1f {
	case 0:
		return GeneralName{Kind: GeneralNameOther}, true
	case 1:
		return GeneralName{Kind: GeneralNameRFC822, Str: string(contents)}, true
	case 2:
		return GeneralName{Kind: GeneralNameDNS, Str: string(contents)}, true
	case 3:
		return GeneralName{Kind: GeneralNameX400}, true
	case 4:
		// directoryName is [4] EXPLICIT Name (Name is a CHOICE, so the tag
		// is explicit): contents is the inner RDNSequence SEQUENCE's TLV.
		var inner cryptobyte.String
		if !contents.ReadASN1(&inner, cbasn1.SEQUENCE) {
			return GeneralName{Kind: GeneralNameUnreachable}, false
		}
		rdns, ok := decodeRDNSequence(inner)
		if !ok {
			return GeneralName{Kind: GeneralNameUnreachable}, false
		}
		return GeneralName{Kind: GeneralNameDirectory, Directory: rdns}, true
	case 5:
		return GeneralName{Kind: GeneralNameEDIParty}, true
	case 6:
		return GeneralName{Kind: GeneralNameURI, Str: string(contents)}, true
	case 7:
		return GeneralName{Kind: GeneralNameIP}, true
	case 8:
		return GeneralName{Kind: GeneralNameRegisteredID}, true
	default:
		return GeneralName{Kind: GeneralNameUnreachable}, true
	}
}

// decodeGeneralNames reads a GeneralNames SEQUENCE OF GeneralName body.
func decodeGeneralNames(seq cryptobyte.String) ([]GeneralName, bool) {
	var names []GeneralName
	for !seq.Empty() {
		gn, ok := decodeGeneralName(&seq)
		if !ok {
			return nil, false
		}
		names = append(names, gn)
	}
	return names, true
}

// decodeRDNSequence reads a RDNSequence ::= SEQUENCE OF
// RelativeDistinguishedName body (the contents of the outer SEQUENCE, not
// including its own tag/length).
func decodeRDNSequence(s cryptobyte.String) ([]RDN, bool) {
	var rdns []RDN
	for !s.Empty() {
		var rdnSet cryptobyte.String
		if !s.ReadASN1(&rdnSet, cbasn1.SET) {
			return nil, false
		}
		var rdn RDN
		for !rdnSet.Empty() {
			var atv cryptobyte.String
			if !rdnSet.ReadASN1(&atv, cbasn1.SEQUENCE) {
				return nil, false
			}
			var typOID asn1.ObjectIdentifier
			if !atv.ReadASN1ObjectIdentifier(&typOID) {
				return nil, false
			}
			var valTag cbasn1.Tag
			var valBytes cryptobyte.String
			if !atv.ReadAnyASN1(&valBytes, &valTag) {
				return nil, false
			}
			rdn = append(rdn, AttributeTypeAndValue{
				Type:  typOID,
				Value: DirectoryString{Tag: valTag, Raw: []byte(valBytes)},
			})
		}
		rdns = append(rdns, rdn)
	}
	return rdns, true
}

// decodeRDNSequenceDER decodes a full Name (the plain, untagged
// RDNSequence SEQUENCE found in TBSCertificate.subject/issuer).
func decodeRDNSequenceDER(der []byte) ([]RDN, bool) {
	s := cryptobyte.String(der)
	var seq cryptobyte.String
	if !s.ReadASN1(&seq, cbasn1.SEQUENCE) {
		return nil, false
	}
	return decodeRDNSequence(seq)
}
