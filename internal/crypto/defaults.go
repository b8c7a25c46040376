package crypto

import (
	"github.com/cloudflare/circl/hpke"
	"github.com/cloudflare/circl/kem/mlkem/mlkem1024"
	"github.com/cloudflare/circl/kem/mlkem/mlkem512"
	"github.com/cloudflare/circl/kem/mlkem/mlkem768"
	"github.com/cloudflare/circl/kem/xwing"
	"github.com/cloudflare/circl/sign/ed25519"
	"github.com/cloudflare/circl/sign/ed448"
	"github.com/cloudflare/circl/sign/mldsa/mldsa44"
	"github.com/cloudflare/circl/sign/mldsa/mldsa65"
	"github.com/cloudflare/circl/sign/mldsa/mldsa87"

	"github.com/vaultsandbox/hybrid-go/scheme"
)

// DefaultSignatureEntries returns the built-in signature algorithms.
func DefaultSignatureEntries() []scheme.Entry {
	return []scheme.Entry{
		{Descriptor: MLDSA44Descriptor, Scheme: NewCirclSigner(MLDSA44, mldsa44.Scheme())},
		{Descriptor: MLDSA65Descriptor, Scheme: NewCirclSigner(MLDSA65, mldsa65.Scheme())},
		{Descriptor: MLDSA87Descriptor, Scheme: NewCirclSigner(MLDSA87, mldsa87.Scheme())},
		{Descriptor: Ed25519Descriptor, Scheme: NewCirclSigner(Ed25519, ed25519.Scheme())},
		{Descriptor: Ed448Descriptor, Scheme: NewCirclSigner(Ed448, ed448.Scheme())},
		{Descriptor: Secp256k1ECDSADescriptor, Scheme: NewSecp256k1Signer()},
	}
}

// DefaultKEMEntries returns the built-in key-encapsulation algorithms.
func DefaultKEMEntries() []scheme.Entry {
	return []scheme.Entry{
		{Descriptor: MLKEM512Descriptor, Scheme: NewCirclKEM(MLKEM512, mlkem512.Scheme())},
		{Descriptor: MLKEM768Descriptor, Scheme: NewCirclKEM(MLKEM768, mlkem768.Scheme())},
		{Descriptor: MLKEM1024Descriptor, Scheme: NewCirclKEM(MLKEM1024, mlkem1024.Scheme())},
		{Descriptor: X25519Descriptor, Scheme: NewCirclKEM(X25519, hpke.KEM_X25519_HKDF_SHA256.Scheme())},
		{Descriptor: XWingDescriptor, Scheme: NewCirclKEM(XWing, xwing.Scheme())},
	}
}
