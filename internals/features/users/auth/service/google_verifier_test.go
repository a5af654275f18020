package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGoogleVerifierDisabledWithoutClientID(t *testing.T) {
	assert.Nil(t, NewGoogleVerifier(""))
	assert.Nil(t, NewGoogleVerifier("   "))
}

func TestGoogleVerifierRejectsGarbageToken(t *testing.T) {
	v := NewGoogleVerifier("client-id.apps.googleusercontent.com")
	require.NotNil(t, v)

	ident, err := v.Verify("")
	assert.Nil(t, ident)
	assert.ErrorIs(t, err, ErrGoogleTokenInvalid)

	if testing.Short() {
		t.Skip("butuh akses sertifikat Google")
	}
	ident, err = v.Verify("bukan.token.google")
	assert.Nil(t, ident)
	assert.ErrorIs(t, err, ErrGoogleTokenInvalid)
}
