package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Envelope layout: version | salt | nonce | ciphertext, base64 encoded.
const (
	envelopeVersion = 1
	saltSize        = 16
	keySize         = 32

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// ErrDecrypt is returned when the ciphertext cannot be opened, usually
// because the passphrase is wrong.
var ErrDecrypt = errors.New("failed to decrypt: wrong passphrase or corrupted ciphertext")

// deriveKey stretches passphrase into a 32-byte AES key with Argon2id.
func deriveKey(passphrase string, salt []byte) []byte {
	return argon2.IDKey([]byte(passphrase), salt, argonTime, argonMemory, argonThreads, keySize)
}

func newGCM(passphrase string, salt []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(deriveKey(passphrase, salt))
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// Encrypt seals plaintext with AES-256-GCM under a key derived from
// passphrase and a random salt. Salt and nonce travel in the envelope.
func Encrypt(plaintext string, passphrase string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	envelope := make([]byte, 0, 1+saltSize+len(nonce)+len(plaintext)+gcm.Overhead())
	envelope = append(envelope, envelopeVersion)
	envelope = append(envelope, salt...)
	envelope = append(envelope, nonce...)
	envelope = gcm.Seal(envelope, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(envelope), nil
}

// Decrypt reverses Encrypt.
func Decrypt(encryptedB64 string, passphrase string) (string, error) {
	envelope, err := base64.StdEncoding.DecodeString(encryptedB64)
	if err != nil {
		return "", fmt.Errorf("failed to base64 decode ciphertext: %w", err)
	}

	if len(envelope) < 1+saltSize {
		return "", fmt.Errorf("ciphertext is too short")
	}
	if envelope[0] != envelopeVersion {
		return "", fmt.Errorf("unsupported ciphertext version %d", envelope[0])
	}
	salt := envelope[1 : 1+saltSize]
	sealed := envelope[1+saltSize:]

	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(sealed) < nonceSize+gcm.Overhead() {
		return "", fmt.Errorf("ciphertext is too short")
	}

	plaintext, err := gcm.Open(nil, sealed[:nonceSize], sealed[nonceSize:], nil)
	if err != nil {
		return "", ErrDecrypt
	}

	return string(plaintext), nil
}
