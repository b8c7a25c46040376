package crypto

import (
	"fmt"

	"github.com/cloudflare/circl/sign"

	"github.com/vaultsandbox/hybrid-go/scheme"
)

// circlSigner adapts a circl signature scheme. Signing uses the scheme's
// default options, so ML-DSA signs deterministically with an empty context.
type circlSigner struct {
	name string
	s    sign.Scheme
}

// NewCirclSigner wraps a circl signature scheme under a registry name.
func NewCirclSigner(name string, s sign.Scheme) scheme.Signer {
	return &circlSigner{name: name, s: s}
}

func (c *circlSigner) Name() string { return c.name }

func (c *circlSigner) Info() scheme.Info {
	return scheme.Info{
		PublicKey: scheme.FixedSize(c.s.PublicKeySize()),
		Payload:   scheme.FixedSize(c.s.SignatureSize()),
	}
}

func (c *circlSigner) GenerateKeypair(seed []byte) (*scheme.Keypair, error) {
	ks, err := ExpandSeed(seed, c.name, c.s.SeedSize())
	if err != nil {
		return nil, err
	}
	defer Wipe(ks)

	pk, sk := c.s.DeriveKey(ks)
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

func (c *circlSigner) Sign(secretKey, message []byte) ([]byte, error) {
	if len(secretKey) != c.s.PrivateKeySize() {
		return nil, fmt.Errorf("%s: %w: got %d, want %d", c.name, ErrInvalidSecretKeySize, len(secretKey), c.s.PrivateKeySize())
	}
	sk, err := c.s.UnmarshalBinaryPrivateKey(secretKey)
	if err != nil {
		return nil, fmt.Errorf("%s: unmarshal private key: %w", c.name, err)
	}
	return c.s.Sign(sk, message, nil), nil
}

func (c *circlSigner) Verify(message, signature, publicKey []byte) bool {
	if len(publicKey) != c.s.PublicKeySize() || len(signature) != c.s.SignatureSize() {
		return false
	}
	pk, err := c.s.UnmarshalBinaryPublicKey(publicKey)
	if err != nil {
		return false
	}
	return c.s.Verify(pk, message, signature, nil)
}
