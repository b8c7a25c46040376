package crypto

import (
	"fmt"

	"github.com/cloudflare/circl/kem"

	"github.com/vaultsandbox/hybrid-go/scheme"
)

// circlKEM adapts a circl KEM. Encapsulation randomness is drawn from the
// package random source so tests can make it reproducible.
type circlKEM struct {
	name string
	s    kem.Scheme
}

// NewCirclKEM wraps a circl KEM under a registry name.
func NewCirclKEM(name string, s kem.Scheme) scheme.KEM {
	return &circlKEM{name: name, s: s}
}

func (c *circlKEM) Name() string { return c.name }

func (c *circlKEM) Info() scheme.Info {
	return scheme.Info{
		PublicKey: scheme.FixedSize(c.s.PublicKeySize()),
		Payload:   scheme.FixedSize(c.s.CiphertextSize()),
	}
}

func (c *circlKEM) GenerateKeypair(seed []byte) (*scheme.Keypair, error) {
	ks, err := ExpandSeed(seed, c.name, c.s.SeedSize())
	if err != nil {
		return nil, err
	}
	defer Wipe(ks)

	pk, sk := c.s.DeriveKeyPair(ks)
	pkBytes, err := pk.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("%s: marshal public key: %w", c.name, err)
	}
	skBytes, err := sk.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("%s: marshal private key: %w", c.name, err)
	}
	return &scheme.Keypair{PublicKey: pkBytes, SecretKey: skBytes}, nil
}

func (c *circlKEM) Encapsulate(publicKey []byte) (sharedSecret, ciphertext []byte, err error) {
	if len(publicKey) != c.s.PublicKeySize() {
		return nil, nil, fmt.Errorf("%s: %w: got %d, want %d", c.name, ErrInvalidPublicKeySize, len(publicKey), c.s.PublicKeySize())
	}
	pk, err := c.s.UnmarshalBinaryPublicKey(publicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: unmarshal public key: %w", c.name, err)
	}

	eseed, err := RandomBytes(c.s.EncapsulationSeedSize())
	if err != nil {
		return nil, nil, err
	}
	defer Wipe(eseed)

	ct, ss, err := c.s.EncapsulateDeterministically(pk, eseed)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: encapsulate: %w", c.name, err)
	}
	return ss, ct, nil
}

func (c *circlKEM) Decapsulate(ciphertext, secretKey []byte) ([]byte, error) {
	if len(ciphertext) != c.s.CiphertextSize() {
		return nil, fmt.Errorf("%s: %w: got %d, want %d", c.name, ErrInvalidCiphertextSize, len(ciphertext), c.s.CiphertextSize())
	}
	sk, err := c.s.UnmarshalBinaryPrivateKey(secretKey)
	if err != nil {
		return nil, fmt.Errorf("%s: unmarshal private key: %w", c.name, err)
	}
	ss, err := c.s.Decapsulate(sk, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%s: decapsulate: %w", c.name, err)
	}
	return ss, nil
}
