// Package cryptox implements the credential hasher: random salts and a salted
// one-way digest of passwords, encoded as lowercase hex.
package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"

	"golang.org/x/crypto/sha3"
)

// SaltSize is the width of every generated salt, in bytes.
const SaltSize = 16

// Digest names the one-way function applied to salt||password.
// A store must be written and read with the same digest.
type Digest string

const (
	DigestSHA256  Digest = "sha256"
	DigestSHA3256 Digest = "sha3-256"
)

var ErrUnknownDigest = errors.New("unknown digest")

// ParseDigest validates a digest name coming from configuration.
func ParseDigest(name string) (Digest, error) {
	switch d := Digest(name); d {
	case DigestSHA256, DigestSHA3256:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDigest, name)
	}
}

// Hasher computes and checks password hashes with a fixed digest.
type Hasher struct {
	newHash func() hash.Hash
}

// NewHasher returns a Hasher for d. Unknown digests fall back to SHA-256.
func NewHasher(d Digest) *Hasher {
	if d == DigestSHA3256 {
		return &Hasher{newHash: sha3.New256}
	}
	return &Hasher{newHash: sha256.New}
}

// Hash returns hex(digest(salt || password)). It is a pure function of its inputs.
func (h *Hasher) Hash(password, salt []byte) string {
	d := h.newHash()
	d.Write(salt)
	d.Write(password)
	return hex.EncodeToString(d.Sum(nil))
}

// Check reports whether password hashed with salt reproduces stored.
func (h *Hasher) Check(password, salt []byte, stored string) bool {
	candidate := h.Hash(password, salt)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(stored)) == 1
}

// NewSalt returns SaltSize fresh random bytes.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}
