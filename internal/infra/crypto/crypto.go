// Package crypto encrypts stored values at rest.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/runoshun/bugtrack/internal/domain"
)

const (
	// NonceSize is the size of the nonce for AES-GCM (12 bytes).
	NonceSize = 12
	// KeySize is the size of the AES-256 key (32 bytes).
	KeySize = 32
)

var (
	// ErrInvalidKey is returned when the encryption key is invalid.
	ErrInvalidKey = errors.New("invalid encryption key: must be 32 bytes (64 hex characters)")
	// ErrDecryptionFailed is returned when a value cannot be opened with the key.
	ErrDecryptionFailed = errors.New("decryption failed: wrong key or corrupted value")
)

// Encryptor seals values with AES-256-GCM.
// Sealing the same plaintext twice in one process returns the same ciphertext,
// so unchanged values don't produce new blobs in the git backend.
type Encryptor struct {
	gcm    cipher.AEAD
	sealed map[[sha256.Size]byte][]byte
	mu     sync.Mutex
}

// NewEncryptor creates an Encryptor from a 64 character hex key.
func NewEncryptor(hexKey string) (*Encryptor, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil || len(key) != KeySize {
		return nil, ErrInvalidKey
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}

	return &Encryptor{gcm: gcm, sealed: make(map[[sha256.Size]byte][]byte)}, nil
}

// Encrypt returns nonce + ciphertext + tag.
func (e *Encryptor) Encrypt(plaintext []byte) ([]byte, error) {
	sum := sha256.Sum256(plaintext)

	e.mu.Lock()
	defer e.mu.Unlock()
	if cached, ok := e.sealed[sum]; ok {
		return slices.Clone(cached), nil
	}

	nonce := make([]byte, NonceSize, NonceSize+len(plaintext)+e.gcm.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	out := e.gcm.Seal(nonce, nonce, plaintext, nil)
	e.sealed[sum] = out
	return slices.Clone(out), nil
}

// Decrypt opens a value produced by Encrypt.
func (e *Encryptor) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < NonceSize+e.gcm.Overhead() {
		return nil, ErrDecryptionFailed
	}
	plaintext, err := e.gcm.Open(nil, ciphertext[:NonceSize], ciphertext[NonceSize:], nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

// Store wraps a domain.KVStore and encrypts every value it writes.
// Sealed values are stored as JSON strings of base64 so every backend can hold them.
// Keys stay in plain text so the backend can still list them.
type Store struct {
	kv  domain.KVStore
	enc *Encryptor
}

// Wrap returns kv with values encrypted by enc.
func Wrap(kv domain.KVStore, enc *Encryptor) *Store {
	return &Store{kv: kv, enc: enc}
}

// Get decrypts the value stored under key.
func (s *Store) Get(key string) ([]byte, bool, error) {
	raw, ok, err := s.kv.Get(key)
	if err != nil || !ok {
		return nil, ok, err
	}
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, ErrDecryptionFailed)
	}
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, ErrDecryptionFailed)
	}
	value, err := s.enc.Decrypt(sealed)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return value, true, nil
}

// Set encrypts value and stores it under key.
func (s *Store) Set(key string, value []byte) error {
	sealed, err := s.enc.Encrypt(value)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(base64.StdEncoding.EncodeToString(sealed))
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.kv.Set(key, encoded)
}

// Delete removes key.
func (s *Store) Delete(key string) error {
	return s.kv.Delete(key)
}

// Keys returns all stored keys in sorted order.
func (s *Store) Keys() ([]string, error) {
	return s.kv.Keys()
}
