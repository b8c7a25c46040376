package wire

import (
	"fmt"

	"github.com/vaultsandbox/hybrid-go/scheme"
)

// EntropySize is the length of the secret entropy at the end of every seed.
const EntropySize = 48

// MaxSignatureSchemes is the largest signature selection the one-byte count
// can describe.
const MaxSignatureSchemes = 255

// minSeedSize is a seed with no schemes selected.
const minSeedSize = 1 + EntropySize

// Seed is the parsed form of a seed blob:
//
//	[N: 1][sig descriptors: 2N][kem descriptors: 2M][entropy: 48]
//
// M is implied by the blob length.
type Seed struct {
	Signature []scheme.Descriptor
	KEM       []scheme.Descriptor
	Entropy   [EntropySize]byte
}

// Selection returns the descriptors selected for purpose.
func (s *Seed) Selection(p scheme.Purpose) []scheme.Descriptor {
	if p == scheme.KeyEncapsulation {
		return s.KEM
	}
	return s.Signature
}

// Selects reports whether d is selected for purpose p.
func (s *Seed) Selects(p scheme.Purpose, d scheme.Descriptor) bool {
	for _, sel := range s.Selection(p) {
		if sel == d {
			return true
		}
	}
	return false
}

// Wipe zeroes the entropy.
func (s *Seed) Wipe() {
	for i := range s.Entropy {
		s.Entropy[i] = 0
	}
}

// EncodeSeed serializes s.
func EncodeSeed(s *Seed) ([]byte, error) {
	if len(s.Signature) > MaxSignatureSchemes {
		return nil, &scheme.SeedError{Reason: fmt.Sprintf("%d signature schemes exceed the limit of %d", len(s.Signature), MaxSignatureSchemes)}
	}
	if err := checkUnique(s.Signature); err != nil {
		return nil, &scheme.SeedError{Reason: "signature selection: " + err.Error()}
	}
	if err := checkUnique(s.KEM); err != nil {
		return nil, &scheme.SeedError{Reason: "kem selection: " + err.Error()}
	}

	out := make([]byte, 0, minSeedSize+2*len(s.Signature)+2*len(s.KEM))
	out = append(out, byte(len(s.Signature)))
	for _, d := range s.Signature {
		out = append(out, d.ID, d.Config)
	}
	for _, d := range s.KEM {
		out = append(out, d.ID, d.Config)
	}
	return append(out, s.Entropy[:]...), nil
}

// ParseSeed validates the layout of b and splits it. Descriptors are not
// resolved here.
func ParseSeed(b []byte) (*Seed, error) {
	if len(b) < minSeedSize {
		return nil, &scheme.SeedError{Length: len(b), Reason: fmt.Sprintf("shorter than the minimum of %d bytes", minSeedSize)}
	}

	n := int(b[0])
	rest := len(b) - minSeedSize - 2*n
	if rest < 0 {
		return nil, &scheme.SeedError{Length: len(b), Reason: fmt.Sprintf("too short for %d signature descriptors", n)}
	}
	if rest%2 != 0 {
		return nil, &scheme.SeedError{Length: len(b), Reason: "odd number of bytes in kem selection"}
	}
	m := rest / 2

	s := &Seed{
		Signature: make([]scheme.Descriptor, n),
		KEM:       make([]scheme.Descriptor, m),
	}
	off := 1
	for i := range s.Signature {
		s.Signature[i] = scheme.Descriptor{ID: b[off], Config: b[off+1]}
		off += 2
	}
	for i := range s.KEM {
		s.KEM[i] = scheme.Descriptor{ID: b[off], Config: b[off+1]}
		off += 2
	}
	copy(s.Entropy[:], b[off:])

	if err := checkUnique(s.Signature); err != nil {
		return nil, &scheme.SeedError{Length: len(b), Reason: "signature selection: " + err.Error()}
	}
	if err := checkUnique(s.KEM); err != nil {
		return nil, &scheme.SeedError{Length: len(b), Reason: "kem selection: " + err.Error()}
	}
	return s, nil
}

func checkUnique(ds []scheme.Descriptor) error {
	seen := make(map[scheme.Descriptor]struct{}, len(ds))
	for _, d := range ds {
		if _, ok := seen[d]; ok {
			return fmt.Errorf("descriptor %s repeated", d)
		}
		seen[d] = struct{}{}
	}
	return nil
}
