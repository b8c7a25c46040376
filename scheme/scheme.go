// Package scheme defines the contract between the hybrid composition layer
// and the primitive algorithms it combines.
//
// A primitive is registered under a [Descriptor] (a one-byte scheme id and a
// one-byte configuration id) for exactly one [Purpose]. The descriptor is what
// travels on the wire; names are only used when building seeds.
package scheme

import (
	"fmt"
)

// Purpose separates signature algorithms from key-encapsulation algorithms.
// Descriptors are only unique within a purpose.
type Purpose uint8

const (
	// Signature selects the signature registry. Its branch tag is 0.
	Signature Purpose = iota
	// KeyEncapsulation selects the KEM registry. Its branch tag is 1.
	KeyEncapsulation
)

// Tag returns the byte mixed into seed branching for this purpose.
func (p Purpose) Tag() byte {
	return byte(p)
}

func (p Purpose) String() string {
	switch p {
	case Signature:
		return "signature"
	case KeyEncapsulation:
		return "kem"
	default:
		return fmt.Sprintf("purpose(%d)", uint8(p))
	}
}

// Valid reports whether p is a known purpose.
func (p Purpose) Valid() bool {
	return p == Signature || p == KeyEncapsulation
}

// Descriptor identifies a primitive algorithm and its parameter set.
type Descriptor struct {
	ID     byte
	Config byte
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%d/%d", d.ID, d.Config)
}

// SizeKind says whether a field has a fixed width or carries a length prefix.
type SizeKind uint8

const (
	// Fixed fields are always exactly SizeInfo.Fixed bytes long.
	Fixed SizeKind = iota
	// Variable fields are preceded by a little-endian length of
	// SizeInfo.PrefixWidth bytes.
	Variable
)

func (k SizeKind) String() string {
	if k == Variable {
		return "variable"
	}
	return "fixed"
}

// MaxPrefixWidth is the widest length prefix a variable field may use.
const MaxPrefixWidth = 8

// SizeInfo describes the encoded size of a public key or payload.
type SizeInfo struct {
	Kind        SizeKind
	Fixed       int
	PrefixWidth int
}

// FixedSize returns a SizeInfo for a field of exactly n bytes.
func FixedSize(n int) SizeInfo {
	return SizeInfo{Kind: Fixed, Fixed: n}
}

// VariableSize returns a SizeInfo for a length-prefixed field whose prefix
// is width bytes wide.
func VariableSize(width int) SizeInfo {
	return SizeInfo{Kind: Variable, PrefixWidth: width}
}

// Validate checks that the SizeInfo is usable by the wire codec.
func (s SizeInfo) Validate() error {
	switch s.Kind {
	case Fixed:
		if s.Fixed <= 0 {
			return fmt.Errorf("%w: fixed size must be positive, got %d", ErrInvalidSizeInfo, s.Fixed)
		}
		if s.PrefixWidth != 0 {
			return fmt.Errorf("%w: fixed size must not declare a prefix width", ErrInvalidSizeInfo)
		}
	case Variable:
		if s.PrefixWidth < 1 || s.PrefixWidth > MaxPrefixWidth {
			return fmt.Errorf("%w: prefix width %d outside [1,%d]", ErrInvalidSizeInfo, s.PrefixWidth, MaxPrefixWidth)
		}
	default:
		return fmt.Errorf("%w: unknown size kind %d", ErrInvalidSizeInfo, s.Kind)
	}
	return nil
}

// MaxLength returns the largest payload length the field can carry.
func (s SizeInfo) MaxLength() uint64 {
	if s.Kind == Fixed {
		return uint64(s.Fixed)
	}
	if s.PrefixWidth >= MaxPrefixWidth {
		return ^uint64(0)
	}
	return 1<<(8*uint(s.PrefixWidth)) - 1
}

func (s SizeInfo) String() string {
	if s.Kind == Variable {
		return fmt.Sprintf("variable(prefix=%d)", s.PrefixWidth)
	}
	return fmt.Sprintf("fixed(%d)", s.Fixed)
}

// Info is the static size description of a primitive. Payload is the
// signature for signers and the ciphertext for KEMs.
type Info struct {
	PublicKey SizeInfo
	Payload   SizeInfo
}

// Keypair is a transient keypair derived from a seed branch. It must not be
// retained beyond the call that derived it.
type Keypair struct {
	PublicKey []byte
	SecretKey []byte
}

// Wipe zeroes both halves of the keypair.
func (k *Keypair) Wipe() {
	if k == nil {
		return
	}
	wipe(k.SecretKey)
	wipe(k.PublicKey)
}

// Scheme is implemented by every primitive adapter.
type Scheme interface {
	// Name is the registry name, for example "ml-dsa-65".
	Name() string
	Info() Info
	// GenerateKeypair deterministically derives a keypair from a 32-byte
	// branch seed.
	GenerateKeypair(seed []byte) (*Keypair, error)
}

// Signer is a signature primitive.
type Signer interface {
	Scheme
	Sign(secretKey, message []byte) ([]byte, error)
	// Verify never panics; malformed keys or signatures simply fail.
	Verify(message, signature, publicKey []byte) bool
}

// KEM is a key-encapsulation primitive.
type KEM interface {
	Scheme
	Encapsulate(publicKey []byte) (sharedSecret, ciphertext []byte, err error)
	Decapsulate(ciphertext, secretKey []byte) ([]byte, error)
}

// wipe is kept local so this package has no internal imports.
//
//go:noinline
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
