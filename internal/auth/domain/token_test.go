package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClaims_ExpiredAt(t *testing.T) {
	exp := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	claims := Claims{ExpiresAt: exp}

	assert.False(t, claims.ExpiredAt(exp.Add(-time.Nanosecond)))
	assert.True(t, claims.ExpiredAt(exp))
	assert.True(t, claims.ExpiredAt(exp.Add(time.Second)))
}

func TestRevocationRecord_ActiveAt(t *testing.T) {
	exp := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	record := RevocationRecord{TokenHash: "abc", ExpiresAt: exp}

	assert.True(t, record.ActiveAt(exp.Add(-time.Second)))
	assert.False(t, record.ActiveAt(exp))
	assert.False(t, record.ActiveAt(exp.Add(time.Second)))
}
