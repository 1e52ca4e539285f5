package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("API_SECRET", "test-secret")

	token, err := CreateToken(42)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	req, err := http.NewRequest(http.MethodGet, "/", nil)
	assert.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	assert.NoError(t, TokenValid(req))

	uid, err := ExtractTokenID(req)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), uid)
}

func TestTokenFromQueryParam(t *testing.T) {
	t.Setenv("API_SECRET", "test-secret")

	token, err := CreateToken(7)
	assert.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, "/?token="+token, nil)
	assert.NoError(t, err)

	uid, err := ExtractTokenID(req)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), uid)
}

func TestTokenRejectsTampering(t *testing.T) {
	t.Setenv("API_SECRET", "test-secret")

	token, err := CreateToken(42)
	assert.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, "/", nil)
	assert.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token+"junk")

	assert.Error(t, TokenValid(req))

	_, err = ExtractTokenID(req)
	assert.Error(t, err)
}
