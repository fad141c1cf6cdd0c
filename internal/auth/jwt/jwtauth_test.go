package jwt

import (
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken(t *testing.T) {
	jwtAuth := jwtauth.New("HS256", []byte("secret"), nil)
	tok, err := NewTokenWithSubject(jwtAuth, time.Hour, "ops")
	require.NoError(t, err)

	sub, err := VerifyToken(jwtAuth, tok)
	assert.NoError(t, err)
	assert.Equal(t, "ops", sub)
}

func TestVerifyTokenRejects(t *testing.T) {
	jwtAuth := jwtauth.New("HS256", []byte("secret"), nil)

	expired, err := NewToken(jwtAuth, -time.Hour)
	require.NoError(t, err)
	_, err = VerifyToken(jwtAuth, expired)
	assert.Error(t, err)

	other, err := NewToken(jwtauth.New("HS256", []byte("other"), nil), time.Hour)
	require.NoError(t, err)
	_, err = VerifyToken(jwtAuth, other)
	assert.Error(t, err)

	_, err = VerifyToken(jwtAuth, "")
	assert.Error(t, err)
}
