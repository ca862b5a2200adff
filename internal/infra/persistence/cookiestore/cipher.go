package cookiestore

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

// scrypt parameters for deriving the sealing key from the configured secret.
const (
	scryptN      = 1 << 15
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = chacha20poly1305.KeySize
)

// keySalt is fixed: the secret itself is per-installation, the salt only
// separates this derivation from other uses of the same secret.
var keySalt = []byte("healthmate.cookiestore.v1")

// recordCipher seals cookie values at rest. With no secret configured it
// degrades to plaintext passthrough, matching shells that leave profile
// cookies unencrypted.
type recordCipher struct {
	key []byte
}

func newRecordCipher(secret string) (*recordCipher, error) {
	if secret == "" {
		return &recordCipher{}, nil
	}

	key, err := scrypt.Key([]byte(secret), keySalt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive cookie sealing key")
	}

	return &recordCipher{key: key}, nil
}

func (c *recordCipher) seal(plaintext []byte) (string, error) {
	if c.key == nil {
		return string(plaintext), nil
	}

	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", errors.Wrap(err, "failed to initialize cipher")
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", errors.Wrap(err, "failed to generate nonce")
	}

	sealed := aead.Seal(nonce, nonce, plaintext, nil)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (c *recordCipher) open(value string) ([]byte, error) {
	if c.key == nil {
		return []byte(value), nil
	}

	sealed, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode sealed value")
	}

	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize cipher")
	}

	if len(sealed) < aead.NonceSize() {
		return nil, errors.New("sealed value is too short")
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sealed value")
	}

	return plaintext, nil
}
