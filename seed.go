package hybrid

import (
	"fmt"

	"github.com/vaultsandbox/hybrid-go/internal/crypto"
	"github.com/vaultsandbox/hybrid-go/internal/wire"
	"github.com/vaultsandbox/hybrid-go/scheme"
)

// EntropySize is the number of secret bytes in every seed.
const EntropySize = wire.EntropySize

// Seed is a parsed seed: the ordered algorithm selections and the entropy.
type Seed = wire.Seed

// WrapSeed builds a seed blob from algorithm names and entropy. Names are
// resolved in order, and the first unknown name is reported.
func (s *Suite) WrapSeed(signatureNames, kemNames []string, entropy [EntropySize]byte) ([]byte, error) {
	sigs, err := resolveNames(s.signatures, signatureNames)
	if err != nil {
		return nil, err
	}
	kems, err := resolveNames(s.kems, kemNames)
	if err != nil {
		return nil, err
	}

	return wire.EncodeSeed(&Seed{Signature: sigs, KEM: kems, Entropy: entropy})
}

// GenerateSeed is WrapSeed with fresh entropy from the operating system.
func (s *Suite) GenerateSeed(signatureNames, kemNames []string) ([]byte, error) {
	buf, err := crypto.RandomBytes(EntropySize)
	if err != nil {
		return nil, fmt.Errorf("generate seed entropy: %w", err)
	}
	defer crypto.Wipe(buf)

	var entropy [EntropySize]byte
	copy(entropy[:], buf)
	defer crypto.Wipe(entropy[:])

	return s.WrapSeed(signatureNames, kemNames, entropy)
}

// ParseSeed validates a seed blob and checks that every selected algorithm
// is registered. The caller should Wipe the result when done.
func (s *Suite) ParseSeed(b []byte) (*Seed, error) {
	seed, err := wire.ParseSeed(b)
	if err != nil {
		return nil, err
	}
	for _, d := range seed.Signature {
		if _, err := s.signatures.Resolve(d); err != nil {
			seed.Wipe()
			return nil, err
		}
	}
	for _, d := range seed.KEM {
		if _, err := s.kems.Resolve(d); err != nil {
			seed.Wipe()
			return nil, err
		}
	}
	return seed, nil
}

// SeedAlgorithms returns the names selected by a seed for p, in seed order.
func (s *Suite) SeedAlgorithms(p Purpose, b []byte) ([]string, error) {
	seed, err := s.ParseSeed(b)
	if err != nil {
		return nil, err
	}
	defer seed.Wipe()

	sel := seed.Selection(p)
	names := make([]string, len(sel))
	for i, d := range sel {
		names[i] = s.AlgorithmName(p, d)
	}
	return names, nil
}

func resolveNames(r *scheme.Registry, names []string) ([]Descriptor, error) {
	out := make([]Descriptor, 0, len(names))
	for _, name := range names {
		e, err := r.Lookup(name)
		if err != nil {
			return nil, err
		}
		out = append(out, e.Descriptor)
	}
	return out, nil
}

// deriveKeypair re-derives the keypair of one selected algorithm. The caller
// must Wipe it.
func deriveKeypair(seed *Seed, p Purpose, e scheme.Entry) (*scheme.Keypair, error) {
	branch := crypto.BranchSeed(seed.Entropy[:], p, e.Descriptor)
	defer crypto.Wipe(branch[:])

	kp, err := e.Scheme.GenerateKeypair(branch[:])
	if err != nil {
		return nil, fmt.Errorf("derive %s keypair: %w", e.Scheme.Name(), err)
	}
	return kp, nil
}
