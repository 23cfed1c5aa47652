package main

import (
	"bytes"
	"encoding/pem"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-phorce/chainfacts/testify/testca"
	"github.com/stretchr/testify/suite"
)

type testSuite struct {
	suite.Suite
	dir string
	out bytes.Buffer
}

func Test_ChainFactsCtlSuite(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.out.Reset()
}

func (s *testSuite) writePEM(name string, der []byte) string {
	path := filepath.Join(s.dir, name)
	block := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	s.Require().NoError(os.WriteFile(path, block, 0o644))
	return path
}

func (s *testSuite) hasText(t string) {
	s.True(strings.Contains(s.out.String(), t), "expecting to find %q in %q", t, s.out.String())
}

func (s *testSuite) Test_Facts_LeafOnly() {
	leaf := testca.NewEntity(testca.DNSName("a.test"))
	leafPath := s.writePEM("leaf.pem", leaf.Certificate.Raw)

	rc := realMain([]string{"facts", "--chain", leafPath, "--domain", "a.test", "--now", "1700000000"}, &s.out)
	s.Equal(0, rc)
	s.hasText(`san(cert(0), "a.test")`)
	s.hasText(`envDomain(`)
}

func (s *testSuite) Test_Facts_MissingChainFile() {
	rc := realMain([]string{"facts", "--chain", filepath.Join(s.dir, "nope.pem"), "--domain", "a.test"}, &s.out)
	s.Equal(1, rc)
	s.hasText("error:")
}

func (s *testSuite) Test_Facts_RequiresDomain() {
	rc := realMain([]string{"facts", "--chain", s.dir + "/x.pem"}, &s.out)
	s.Equal(1, rc)
}
