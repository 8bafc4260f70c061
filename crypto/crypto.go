// Package crypto provides the reversible token encryption and the
// one-way password hashing used by the account lifecycle. The service
// is constructed once in main and injected; nothing here is global.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrDecryption is returned for any malformed, truncated or foreign
// ciphertext. Callers treat it as "invalid token", never as fatal.
var ErrDecryption = errors.New("crypto: decryption failed")

const PasswordHashCost = bcrypt.DefaultCost

type Service struct {
	key []byte
}

// NewService derives a 256-bit AES key from the configured secret.
func NewService(secret string) *Service {
	key := sha256.Sum256([]byte(secret))
	return &Service{key: key[:]}
}

// Encrypt seals the plaintext with AES-GCM under a fresh 12-byte nonce
// and returns base64url(nonce || ciphertext), safe to embed in URLs.
func (s *Service) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return "", err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := aesgcm.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (s *Service) Decrypt(token string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", ErrDecryption
	}

	block, err := aes.NewCipher(s.key)
	if err != nil {
		return "", err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	if len(raw) < aesgcm.NonceSize() {
		return "", ErrDecryption
	}

	nonce, ciphertext := raw[:aesgcm.NonceSize()], raw[aesgcm.NonceSize():]

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrDecryption
	}

	return string(plaintext), nil
}

// EncryptJSON marshals v and encrypts the result.
func (s *Service) EncryptJSON(v any) (string, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return "", err
	}

	return s.Encrypt(string(payload))
}

// DecryptJSON decrypts the token and unmarshals the payload into v.
// Unparseable payloads count as decryption failures.
func (s *Service) DecryptJSON(token string, v any) error {
	plaintext, err := s.Decrypt(token)
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(plaintext), v); err != nil {
		return ErrDecryption
	}

	return nil
}

func (s *Service) HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordHashCost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

func (s *Service) CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
