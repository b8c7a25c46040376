package hybrid

import (
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/vaultsandbox/hybrid-go/internal/crypto"
)

// AddressSize is the length of an address in bytes.
const AddressSize = crypto.AddressSize

// Address is a fixed-size digest identifying a combined public key:
// BLAKE3-256 over a one-byte tag followed by the key.
type Address [AddressSize]byte

// AddressOf returns the address of a combined public key. The key is not
// decoded.
func AddressOf(cpk []byte) Address {
	return Address(crypto.AddressHash(cpk))
}

// Address derives the address of the combined public key for p.
func (s *Suite) Address(p Purpose, seedBlob []byte) (Address, error) {
	cpk, err := s.CombinedPublicKey(p, seedBlob)
	if err != nil {
		return Address{}, err
	}
	return AddressOf(cpk), nil
}

// String returns the base58 form of the address.
func (a Address) String() string {
	return base58.Encode(a[:])
}

// Bytes returns a copy of the address digest.
func (a Address) Bytes() []byte {
	out := make([]byte, AddressSize)
	copy(out, a[:])
	return out
}

// ParseAddress decodes the base58 form produced by String.
func ParseAddress(s string) (Address, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(b) != AddressSize {
		return Address{}, fmt.Errorf("%w: decoded %d bytes, want %d", ErrInvalidAddress, len(b), AddressSize)
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
