package certmodel

import "bytes"

// LikelyIssued is the external likely_issued(issuer, subject) collaborator:
// a cheap structural check (subject's issuer Name matches issuer's subject
// Name, and authority/subject key identifiers agree when both are present)
// used by the chain-building step upstream of fact extraction. It does not
// verify the signature.
func LikelyIssued(issuer, subject *Certificate) bool {
	is, su := issuer.Raw(), subject.Raw()
	if !bytes.Equal(su.RawIssuer, is.RawSubject) {
		return false
	}
	if len(su.AuthorityKeyId) > 0 && len(is.SubjectKeyId) > 0 {
		return bytes.Equal(su.AuthorityKeyId, is.SubjectKeyId)
	}
	return true
}

// VerifySignature is the external verify_signature(issuer, subject)
// collaborator: does subject's signature actually validate under issuer's
// public key.
func VerifySignature(issuer, subject *Certificate) bool {
	return subject.Raw().CheckSignatureFrom(issuer.Raw()) == nil
}
