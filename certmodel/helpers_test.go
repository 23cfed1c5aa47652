package certmodel_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"math/big"
	"testing"

	"github.com/go-phorce/chainfacts/certmodel"
	"github.com/go-phorce/chainfacts/oid"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

func bigOne() *big.Int {
	return big.NewInt(1)
}

func pkixName() pkix.Name {
	return pkix.Name{CommonName: "test"}
}

// selfSign builds and signs a certificate from template against itself,
// for tests that need an ExtraExtensions shape testca.Extensions cannot
// express (x509.Certificate.Extensions is parse-only; generation uses
// ExtraExtensions).
func selfSign(t *testing.T, template *x509.Certificate) ([]byte, *rsa.PrivateKey) {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, priv.Public(), priv)
	if err != nil {
		t.Fatal(err)
	}
	return der, priv
}

type asn1GeneralSubtree struct {
	Base asn1.RawValue
}

func generalSubtreesDNS(dns string) []asn1GeneralSubtree {
	return []asn1GeneralSubtree{
		{Base: asn1.RawValue{Class: asn1.ClassContextSpecific, Tag: 2, Bytes: []byte(dns)}},
	}
}

// appendContextTag implicitly re-tags a marshaled SEQUENCE OF's bytes as
// [tagNum] constructed, per X.690 implicit-tagging rules (replace the tag,
// keep length and content), and appends the result to dst.
func appendContextTag(dst []byte, tagNum int, sequenceDER []byte) []byte {
	var raw asn1.RawValue
	if _, err := asn1.Unmarshal(sequenceDER, &raw); err != nil {
		panic(err)
	}
	wrapped, err := asn1.Marshal(asn1.RawValue{Class: asn1.ClassContextSpecific, Tag: tagNum, IsCompound: true, Bytes: raw.Bytes})
	if err != nil {
		panic(err)
	}
	return append(dst, wrapped...)
}

func buildRDNSequence(t *testing.T) ([]certmodel.RDN, bool) {
	t.Helper()
	rdn := certmodel.RDN{
		{Type: oid.CommonName, Value: certmodel.DirectoryString{Tag: cbasn1.UTF8String, Raw: []byte("Test CA")}},
	}
	return []certmodel.RDN{rdn}, true
}
