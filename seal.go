package hybrid

import (
	"time"

	"github.com/vaultsandbox/hybrid-go/internal/crypto"
)

// Seal encrypts plaintext to the holder of a combined KEM public key. It
// performs a hybrid encapsulation and encrypts with AES-256-GCM under a key
// derived from the combined secret. aad is authenticated but not encrypted.
func (s *Suite) Seal(peerCPK, plaintext, aad []byte) (sealed []byte, err error) {
	defer func(start time.Time) { s.metrics.Observe(opSeal, start, err) }(time.Now())

	ss, ct, err := s.Encapsulate(peerCPK)
	if err != nil {
		return nil, err
	}
	defer crypto.Wipe(ss)

	return crypto.Seal(ss, ct, plaintext, aad)
}

// Open decrypts a message produced by Seal for the seed's KEM public key.
func (s *Suite) Open(seedBlob, sealed, aad []byte) (plaintext []byte, err error) {
	defer func(start time.Time) { s.metrics.Observe(opOpen, start, err) }(time.Now())

	kemCT, nonce, ct, err := crypto.SplitSealed(sealed)
	if err != nil {
		return nil, wrapError("parse", err)
	}

	ss, err := s.Decapsulate(seedBlob, kemCT)
	if err != nil {
		return nil, err
	}
	defer crypto.Wipe(ss)

	plaintext, err = crypto.Open(ss, kemCT, nonce, ct, aad)
	if err != nil {
		return nil, wrapError("aead", err)
	}
	return plaintext, nil
}
