package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 64 hex chars = 32 bytes = valid AES-256 key
const testKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func TestNewAesGcmService_ValidKey(t *testing.T) {
	svc, err := NewAesGcmService(testKey)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestNewAesGcmService_InvalidHex(t *testing.T) {
	svc, err := NewAesGcmService("zzzz")
	assert.Error(t, err)
	assert.Nil(t, svc)
}

func TestAesGcmService_RoundTrip(t *testing.T) {
	svc, err := NewAesGcmService(testKey)
	require.NoError(t, err)

	tokens := []string{
		"",
		"abc",
		"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.payload.sig",
	}
	for _, token := range tokens {
		sealed, err := svc.Encrypt(token)
		require.NoError(t, err)

		plain, err := svc.Decrypt(sealed)
		require.NoError(t, err)
		assert.Equal(t, token, plain)
	}
}

func TestAesGcmService_UniqueNonces(t *testing.T) {
	svc, err := NewAesGcmService(testKey)
	require.NoError(t, err)

	a, err := svc.Encrypt("same plaintext")
	require.NoError(t, err)
	b, err := svc.Encrypt("same plaintext")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestAesGcmService_DecryptGarbage(t *testing.T) {
	svc, err := NewAesGcmService(testKey)
	require.NoError(t, err)

	_, err = svc.Decrypt("not-hex")
	assert.Error(t, err)

	_, err = svc.Decrypt("abcd") // shorter than a nonce
	assert.Error(t, err)
}

func TestNoopService_Passthrough(t *testing.T) {
	svc := NoopService{}

	sealed, err := svc.Encrypt("plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", sealed)

	plain, err := svc.Decrypt("plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", plain)
}
