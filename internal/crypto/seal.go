package crypto

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// SealedOverhead is the number of bytes Seal adds besides the KEM ciphertext.
const SealedOverhead = 4 + AESNonceSize + AESTagSize

// Seal encrypts plaintext under a combined KEM shared secret.
//
// The output is:
//
//	[len(kemCiphertext): 4, BE][kemCiphertext][nonce: 12][AES-GCM ciphertext || tag]
//
// The AES key is bound to the KEM ciphertext and to aad; see deriveKey.
func Seal(sharedSecret, kemCiphertext, plaintext, aad []byte) ([]byte, error) {
	key, err := deriveKey(sharedSecret, aad, kemCiphertext)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	defer Wipe(key)

	nonce, err := RandomBytes(AESNonceSize)
	if err != nil {
		return nil, err
	}

	ct, err := encryptAESGCM(key, nonce, aad, plaintext)
	if err != nil {
		return nil, fmt.Errorf("encrypt: %w", err)
	}

	out := make([]byte, 4, 4+len(kemCiphertext)+AESNonceSize+len(ct))
	binary.BigEndian.PutUint32(out, uint32(len(kemCiphertext)))
	out = append(out, kemCiphertext...)
	out = append(out, nonce...)
	return append(out, ct...), nil
}

// SplitSealed returns the KEM ciphertext, nonce and AEAD ciphertext of a
// sealed message without decrypting it.
func SplitSealed(sealed []byte) (kemCiphertext, nonce, ciphertext []byte, err error) {
	if len(sealed) < SealedOverhead {
		return nil, nil, nil, fmt.Errorf("%w: %d bytes is too short", ErrInvalidPayload, len(sealed))
	}
	n := binary.BigEndian.Uint32(sealed[:4])
	if uint64(n) > uint64(len(sealed)-SealedOverhead) {
		return nil, nil, nil, fmt.Errorf("%w: kem ciphertext length %d exceeds payload", ErrInvalidPayload, n)
	}
	rest := sealed[4:]
	kemCiphertext = rest[:n]
	rest = rest[n:]
	return kemCiphertext, rest[:AESNonceSize], rest[AESNonceSize:], nil
}

// Open decrypts the AEAD part of a sealed message whose KEM ciphertext has
// already been decapsulated to sharedSecret.
func Open(sharedSecret, kemCiphertext, nonce, ciphertext, aad []byte) ([]byte, error) {
	key, err := deriveKey(sharedSecret, aad, kemCiphertext)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	defer Wipe(key)

	return decryptAESGCM(key, nonce, aad, ciphertext)
}

// deriveKey performs HKDF-SHA-512 key derivation for sealed messages.
//
// The key derivation uses:
//   - IKM (input key material): the combined KEM shared secret
//   - Salt: SHA-256 hash of the combined KEM ciphertext
//   - Info: context string || AAD length (4 bytes BE) || AAD
//
// This produces a 256-bit key suitable for AES-256-GCM.
func deriveKey(sharedSecret, aad, kemCiphertext []byte) ([]byte, error) {
	saltHash := sha256.Sum256(kemCiphertext)

	contextBytes := []byte(HKDFContext)
	info := make([]byte, 0, len(contextBytes)+4+len(aad))
	info = append(info, contextBytes...)
	info = binary.BigEndian.AppendUint32(info, uint32(len(aad)))
	info = append(info, aad...)

	return DeriveKey(sharedSecret, saltHash[:], info, AESKeySize)
}
