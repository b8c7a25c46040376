package crypto

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/vaultsandbox/hybrid-go/scheme"
)

const (
	secp256k1PrivateKeySize = 32
	secp256k1PublicKeySize  = 33 // compressed
	// DER signatures are at most 72 bytes, so a one-byte prefix is enough.
	secp256k1PrefixWidth = 1
)

// secp256k1Signer signs SHA-256 digests with RFC 6979 ECDSA and emits DER
// signatures, which are variable length.
type secp256k1Signer struct{}

// NewSecp256k1Signer returns the secp256k1 ECDSA adapter.
func NewSecp256k1Signer() scheme.Signer {
	return secp256k1Signer{}
}

func (secp256k1Signer) Name() string { return Secp256k1ECDSA }

func (secp256k1Signer) Info() scheme.Info {
	return scheme.Info{
		PublicKey: scheme.FixedSize(secp256k1PublicKeySize),
		Payload:   scheme.VariableSize(secp256k1PrefixWidth),
	}
}

func (secp256k1Signer) GenerateKeypair(seed []byte) (*scheme.Keypair, error) {
	ks, err := ExpandSeed(seed, Secp256k1ECDSA, secp256k1PrivateKeySize)
	if err != nil {
		return nil, err
	}
	defer Wipe(ks)

	priv := secp256k1.PrivKeyFromBytes(ks)
	defer priv.Zero()
	if priv.Key.IsZero() {
		return nil, errors.New("secp256k1-ecdsa: derived scalar is zero")
	}

	return &scheme.Keypair{
		PublicKey: priv.PubKey().SerializeCompressed(),
		SecretKey: priv.Serialize(),
	}, nil
}

func (secp256k1Signer) Sign(secretKey, message []byte) ([]byte, error) {
	if len(secretKey) != secp256k1PrivateKeySize {
		return nil, fmt.Errorf("secp256k1-ecdsa: %w: got %d, want %d", ErrInvalidSecretKeySize, len(secretKey), secp256k1PrivateKeySize)
	}
	priv := secp256k1.PrivKeyFromBytes(secretKey)
	defer priv.Zero()

	digest := sha256.Sum256(message)
	return ecdsa.Sign(priv, digest[:]).Serialize(), nil
}

func (secp256k1Signer) Verify(message, signature, publicKey []byte) bool {
	pub, err := secp256k1.ParsePubKey(publicKey)
	if err != nil {
		return false
	}
	sig, err := ecdsa.ParseDERSignature(signature)
	if err != nil {
		return false
	}
	digest := sha256.Sum256(message)
	return sig.Verify(digest[:], pub)
}
