package passhash

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify_RoundTrip(t *testing.T) {
	for _, password := range []string{"secret123", "", "päss wörd", "a very long password with spaces and ümlauts"} {
		credential, err := Hash(password)
		require.NoError(t, err)

		assert.True(t, Verify(password, credential))
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	credential, err := Hash("correct-password")
	require.NoError(t, err)

	assert.False(t, Verify("wrong-password", credential))
	assert.False(t, Verify("", credential))
}

func TestHash_SaltIsRandom(t *testing.T) {
	first, err := Hash("same-password")
	require.NoError(t, err)
	second, err := Hash("same-password")
	require.NoError(t, err)

	// Fresh salt per call means identical passwords never share a credential.
	assert.NotEqual(t, first, second)
	assert.True(t, Verify("same-password", first))
	assert.True(t, Verify("same-password", second))
}

func TestVerify_MalformedCredential(t *testing.T) {
	assert.False(t, Verify("password", "not-base64!!!"))
	assert.False(t, Verify("password", ""))
	// Valid base64 but wrong length.
	short := base64.StdEncoding.EncodeToString([]byte("too short"))
	assert.False(t, Verify("password", short))
}
