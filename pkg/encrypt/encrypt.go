/*
encrypt seals secret setting values with a passphrase so that they can be
kept in a settings file. A sealed value is a printable string:

	enc:<base64 of salt || nonce || ciphertext>

The key is derived from the passphrase with Argon2id and the value is
encrypted with AES-256-GCM.
*/
package encrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"strings"

	// Packages
	toolcall "github.com/mutablelogic/go-toolcall"
	argon2 "golang.org/x/crypto/argon2"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Key is a 256-bit key derived from a passphrase
type Key []byte

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Prefix marks a sealed value
	Prefix = "enc:"

	// SaltSize is the length of the random salt in bytes
	SaltSize = 16

	// MinPassphraseLen is the shortest passphrase accepted
	MinPassphraseLen = 8
)

const (
	argonTime    = 3
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4
	argonKeyLen  = 32
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ValidatePassphrase returns an error if the passphrase is too short
func ValidatePassphrase(passphrase string) error {
	if trimmed := strings.TrimSpace(passphrase); trimmed == "" {
		return toolcall.ErrBadParameter.With("passphrase is empty")
	} else if len(trimmed) < MinPassphraseLen {
		return toolcall.ErrBadParameter.Withf("passphrase must be at least %d characters", MinPassphraseLen)
	}
	return nil
}

// IsSealed returns true if the value was produced by Seal
func IsSealed(value string) bool {
	return strings.HasPrefix(value, Prefix)
}

// Seal encrypts a value with a fresh salt
func Seal(passphrase, value string) (string, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	ct, err := DeriveKey(passphrase, salt).Encrypt([]byte(value))
	if err != nil {
		return "", err
	}
	return Prefix + base64.StdEncoding.EncodeToString(append(salt, ct...)), nil
}

// Open decrypts a sealed value
func Open(passphrase, sealed string) (string, error) {
	if !IsSealed(sealed) {
		return "", toolcall.ErrBadParameter.With("value is not sealed")
	}
	blob, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(sealed, Prefix))
	if err != nil {
		return "", toolcall.ErrParse.With("sealed value: ", err)
	} else if len(blob) < SaltSize {
		return "", toolcall.ErrParse.With("sealed value is too short")
	}
	plaintext, err := DeriveKey(passphrase, blob[:SaltSize]).Decrypt(blob[SaltSize:])
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// DeriveKey derives a key from a passphrase and salt
func DeriveKey(passphrase string, salt []byte) Key {
	return Key(argon2.IDKey([]byte(passphrase), salt, argonTime, argonMemory, argonThreads, argonKeyLen))
}

// Encrypt returns nonce || ciphertext for the plaintext
func (k Key) Encrypt(plaintext []byte) ([]byte, error) {
	gcm, err := k.aead()
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt reverses Encrypt. A wrong key fails authentication.
func (k Key) Decrypt(ciphertext []byte) ([]byte, error) {
	gcm, err := k.aead()
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, toolcall.ErrParse.With("ciphertext is too short")
	}
	nonce, data := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, data, nil)
	if err != nil {
		return nil, toolcall.ErrBadParameter.With("cannot decrypt: ", err)
	}
	return plaintext, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (k Key) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(k)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
