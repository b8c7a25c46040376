package crypto

import (
	"crypto/sha512"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// DeriveKey derives a key using HKDF-SHA-512.
//
// Parameters:
//   - secret: the input key material (e.g., shared secret from KEM)
//   - salt: optional salt value; if empty, a zero-filled salt is used
//   - info: context/application-specific info for domain separation
//   - length: desired output key length in bytes
func DeriveKey(secret, salt, info []byte, length int) ([]byte, error) {
	if len(salt) == 0 {
		salt = make([]byte, sha512.Size)
	}

	reader := hkdf.New(sha512.New, secret, salt, info)
	key := make([]byte, length)

	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	return key, nil
}

// ExpandSeed stretches a branch seed to the key-generation seed size of the
// named scheme. Different names give unrelated outputs for the same branch.
func ExpandSeed(branch []byte, name string, size int) ([]byte, error) {
	if len(branch) != BranchSeedSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidSeedSize, len(branch), BranchSeedSize)
	}
	return DeriveKey(branch, nil, []byte(KeygenContext+name), size)
}
