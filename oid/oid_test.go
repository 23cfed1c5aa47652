package oid_test

import (
	"testing"

	"github.com/go-phorce/chainfacts/oid"
	"github.com/stretchr/testify/assert"
)

func TestToName(t *testing.T) {
	assert.Equal(t, "country", oid.ToName(oid.CountryName))
	assert.Equal(t, "common name", oid.ToName(oid.CommonName))
	assert.Equal(t, "domain component", oid.ToName(oid.DomainComponent))
	assert.Equal(t, "UNKNOWN", oid.ToName(oid.ServerAuth))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "1.3.6.1.5.5.7.3.1", oid.ToString(oid.ServerAuth))
}
