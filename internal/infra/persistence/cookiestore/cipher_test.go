package cookiestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCipher_SealOpenRoundTrip(t *testing.T) {
	cipher, err := newRecordCipher("test-secret")
	require.NoError(t, err)

	sealed, err := cipher.seal([]byte("plaintext value"))
	require.NoError(t, err)
	assert.NotEqual(t, "plaintext value", sealed)

	opened, err := cipher.open(sealed)
	require.NoError(t, err)
	assert.Equal(t, []byte("plaintext value"), opened)
}

func TestRecordCipher_OpenRejectsTamperedValue(t *testing.T) {
	cipher, err := newRecordCipher("test-secret")
	require.NoError(t, err)

	_, err = cipher.open("bm90IGEgc2VhbGVkIHZhbHVlIGF0IGFsbCwganVzdCBiYXNlNjQ=")
	assert.Error(t, err)
}

func TestRecordCipher_OpenRejectsWrongKey(t *testing.T) {
	sealer, err := newRecordCipher("secret-a")
	require.NoError(t, err)
	opener, err := newRecordCipher("secret-b")
	require.NoError(t, err)

	sealed, err := sealer.seal([]byte("plaintext value"))
	require.NoError(t, err)

	_, err = opener.open(sealed)
	assert.Error(t, err)
}

func TestRecordCipher_NoSecretIsPassthrough(t *testing.T) {
	cipher, err := newRecordCipher("")
	require.NoError(t, err)

	sealed, err := cipher.seal([]byte("plaintext value"))
	require.NoError(t, err)
	assert.Equal(t, "plaintext value", sealed)

	opened, err := cipher.open(sealed)
	require.NoError(t, err)
	assert.Equal(t, []byte("plaintext value"), opened)
}
