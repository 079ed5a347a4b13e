package pii

import (
	"fmt"

	"github.com/goliatone/go-tenant-cache/entity"
)

// RecordDecryptor opens encrypted entity rows into decrypted entities of
// type T. One instance per entity kind, sharing a single Cipher.
type RecordDecryptor[T any] struct {
	cipher *Cipher
}

// NewRecordDecryptor creates a decryptor backed by cipher.
func NewRecordDecryptor[T any](cipher *Cipher) *RecordDecryptor[T] {
	return &RecordDecryptor[T]{cipher: cipher}
}

// Decrypt implements resolvercache.Decryptor.
func (d *RecordDecryptor[T]) Decrypt(record entity.EncryptedRecord) (T, error) {
	var out T
	if err := d.cipher.Open(record.Ciphertext, &out); err != nil {
		return out, fmt.Errorf("pii: record %s: %w", record.ID, err)
	}
	return out, nil
}
