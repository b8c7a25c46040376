package crypto

import "github.com/vaultsandbox/hybrid-go/scheme"

const (
	// HKDFContext is the context string used when deriving AES keys for
	// sealed messages.
	HKDFContext = "hybrid-go:seal:v1"

	// KeygenContext prefixes the HKDF info used to stretch a branch seed to
	// the seed size an adapter needs. The scheme name follows it.
	KeygenContext = "hybrid-go:keygen:v1:"

	// MnemonicContext is the HKDF info used to turn a BIP-39 seed into
	// seed entropy.
	MnemonicContext = "hybrid-go:mnemonic:v1"

	// BranchSeedSize is the size of a seed branch in bytes.
	BranchSeedSize = 32

	// SharedSecretSize is the size of a combined KEM shared secret in bytes.
	SharedSecretSize = 32

	// AddressSize is the size of an address digest in bytes.
	AddressSize = 32

	// AddressTag is the domain tag hashed in front of a combined public key.
	AddressTag byte = 0x01

	// AESKeySize is the size of an AES-256 key in bytes.
	AESKeySize = 32
	// AESNonceSize is the size of an AES-GCM nonce in bytes.
	AESNonceSize = 12
	// AESTagSize is the size of an AES-GCM authentication tag in bytes.
	AESTagSize = 16
)

// CombinerSalt keys the hash that combines per-algorithm KEM shared secrets.
// It is public: SHA-384("hybrid-go: public salt for combining per-algorithm
// KEM shared secrets").
var CombinerSalt = [48]byte{
	0x55, 0x9f, 0xee, 0x88, 0x9c, 0x06, 0x72, 0x9d,
	0x2d, 0x2d, 0x6a, 0x27, 0x37, 0x32, 0x72, 0x20,
	0xef, 0x5e, 0x17, 0x08, 0x5e, 0xb1, 0xc3, 0x85,
	0x09, 0x8f, 0xd1, 0xcb, 0x87, 0x95, 0x57, 0xdf,
	0xda, 0x84, 0x6e, 0x86, 0x36, 0xab, 0x3e, 0xf5,
	0x43, 0xec, 0x06, 0x65, 0x55, 0xc1, 0xd6, 0x60,
}

// Registry names of the built-in algorithms.
const (
	MLDSA44        = "ml-dsa-44"
	MLDSA65        = "ml-dsa-65"
	MLDSA87        = "ml-dsa-87"
	Ed25519        = "ed25519"
	Ed448          = "ed448"
	Secp256k1ECDSA = "secp256k1-ecdsa"

	MLKEM512  = "ml-kem-512"
	MLKEM768  = "ml-kem-768"
	MLKEM1024 = "ml-kem-1024"
	X25519    = "x25519"
	XWing     = "x-wing"
)

// Wire descriptors of the built-in algorithms. The id names the algorithm
// family and the config its parameter set.
var (
	MLDSA44Descriptor        = scheme.Descriptor{ID: 0, Config: 0}
	MLDSA65Descriptor        = scheme.Descriptor{ID: 0, Config: 1}
	MLDSA87Descriptor        = scheme.Descriptor{ID: 0, Config: 2}
	Ed25519Descriptor        = scheme.Descriptor{ID: 1, Config: 0}
	Ed448Descriptor          = scheme.Descriptor{ID: 2, Config: 0}
	Secp256k1ECDSADescriptor = scheme.Descriptor{ID: 3, Config: 0}

	MLKEM512Descriptor  = scheme.Descriptor{ID: 0, Config: 0}
	MLKEM768Descriptor  = scheme.Descriptor{ID: 0, Config: 1}
	MLKEM1024Descriptor = scheme.Descriptor{ID: 0, Config: 2}
	X25519Descriptor    = scheme.Descriptor{ID: 1, Config: 0}
	XWingDescriptor     = scheme.Descriptor{ID: 2, Config: 0}
)
