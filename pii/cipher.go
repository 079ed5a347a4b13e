// Package pii implements the decryption side of the snapshot pipeline:
// entity payloads are stored as AES-256-GCM ciphertext wrapping a
// msgpack-encoded record, and are opened into plain entity structs before
// they ever reach the cache.
package pii

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// KeySize is the required key length in bytes (AES-256).
const KeySize = 32

var (
	// ErrInvalidKey reports a key of the wrong length.
	ErrInvalidKey = errors.New("pii: key must be 32 bytes")

	// ErrCiphertextTooShort reports a payload too small to carry a nonce.
	ErrCiphertextTooShort = errors.New("pii: ciphertext shorter than nonce")
)

// Cipher seals and opens entity payloads. Safe for concurrent use.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher creates a Cipher from a 32-byte key.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("pii: init cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("pii: init gcm: %w", err)
	}
	return &Cipher{aead: aead}, nil
}

// Seal msgpack-encodes v and encrypts the payload. The random nonce is
// prepended to the returned ciphertext.
func (c *Cipher) Seal(v any) ([]byte, error) {
	payload, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("pii: encode payload: %w", err)
	}
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("pii: generate nonce: %w", err)
	}
	return c.aead.Seal(nonce, nonce, payload, nil), nil
}

// Open decrypts data produced by Seal and msgpack-decodes the payload into v.
func (c *Cipher) Open(data []byte, v any) error {
	size := c.aead.NonceSize()
	if len(data) < size {
		return ErrCiphertextTooShort
	}
	payload, err := c.aead.Open(nil, data[:size], data[size:], nil)
	if err != nil {
		return fmt.Errorf("pii: decrypt payload: %w", err)
	}
	if err := msgpack.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("pii: decode payload: %w", err)
	}
	return nil
}
