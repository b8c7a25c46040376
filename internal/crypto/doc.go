// Package crypto provides the cryptographic building blocks of the hybrid
// composition layer: primitive adapters, seed branching, the KEM secret
// combiner and the sealing construction.
//
// # Algorithm Suite
//
// Signature adapters:
//
//   - ML-DSA-44/65/87 (NIST FIPS 204), via circl.
//   - Ed25519 and Ed448 (RFC 8032), via circl.
//   - ECDSA over secp256k1 with RFC 6979 nonces and DER signatures, via
//     decred's secp256k1 package. Its signatures are variable length.
//
// KEM adapters:
//
//   - ML-KEM-512/768/1024 (NIST FIPS 203), via circl.
//   - DHKEM(X25519, HKDF-SHA256) (RFC 9180), via circl's HPKE package.
//   - X-Wing, via circl.
//
// # Key Derivation
//
// Every keypair is a pure function of the seed entropy. [BranchSeed] hashes
// the purpose tag, the descriptor and the entropy with BLAKE3 into a 32-byte
// branch; adapters stretch the branch with HKDF-SHA-512 ([ExpandSeed]) to the
// exact seed size their algorithm needs. Secret keys are never stored and
// should be wiped with [Wipe] once used.
//
// # Combining
//
// [Combiner] hashes per-algorithm shared secrets with BLAKE3, keyed by the
// public [CombinerSalt], in ciphertext wire order.
//
// # Sealing
//
// [Seal] and [Open] layer AES-256-GCM over a combined shared secret. The AES
// key is derived with HKDF-SHA-512 using SHA-256 of the KEM ciphertext as
// salt and the associated data in the info string.
package crypto
