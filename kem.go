package hybrid

import (
	"time"

	"github.com/vaultsandbox/hybrid-go/internal/crypto"
	"github.com/vaultsandbox/hybrid-go/internal/wire"
	"github.com/vaultsandbox/hybrid-go/scheme"
)

// SharedSecretSize is the size of a combined shared secret.
const SharedSecretSize = crypto.SharedSecretSize

// Encapsulate encapsulates to every algorithm in the peer's combined KEM
// public key. Ciphertext records follow the order of peerCPK, and the
// shared secret combines the per-algorithm secrets in that same order.
func (s *Suite) Encapsulate(peerCPK []byte) (sharedSecret, ciphertext []byte, err error) {
	defer func(start time.Time) { s.metrics.Observe(opEncapsulate, start, err) }(time.Now())

	keys, err := s.decodePublicKey(KeyEncapsulation, peerCPK)
	if err != nil {
		return nil, nil, err
	}

	combiner := crypto.NewCombiner()
	for _, key := range keys {
		k, err := s.kems.KEM(key.Descriptor)
		if err != nil {
			return nil, nil, err
		}
		ss, ct, err := k.Encapsulate(key.Payload)
		if err != nil {
			return nil, nil, err
		}
		combiner.Add(ss)
		crypto.Wipe(ss)

		if ciphertext, err = wire.AppendRecord(ciphertext, wire.Record{Descriptor: key.Descriptor, Payload: ct}, k.Info().Payload); err != nil {
			return nil, nil, err
		}
	}

	s.log.Debug().
		Int("schemes", combiner.Len()).
		Int("bytes", len(ciphertext)).
		Msg("encapsulated")
	return combiner.Sum(), ciphertext, nil
}

// Decapsulate recovers the combined shared secret from a combined
// ciphertext. Every record must belong to a KEM the seed selects. Records
// are processed in wire order.
func (s *Suite) Decapsulate(seedBlob, ciphertext []byte) (sharedSecret []byte, err error) {
	defer func(start time.Time) { s.metrics.Observe(opDecapsulate, start, err) }(time.Now())

	seed, err := s.ParseSeed(seedBlob)
	if err != nil {
		return nil, err
	}
	defer seed.Wipe()

	parts, err := wire.DecodeRecords(ciphertext, KeyEncapsulation, s.kems.PayloadSize)
	if err != nil {
		return nil, err
	}
	for _, part := range parts {
		if !seed.Selects(KeyEncapsulation, part.Descriptor) {
			return nil, &scheme.MissingKeyError{Purpose: KeyEncapsulation, Descriptor: part.Descriptor}
		}
	}

	combiner := crypto.NewCombiner()
	for _, part := range parts {
		e, err := s.kems.Resolve(part.Descriptor)
		if err != nil {
			return nil, err
		}
		k, err := s.kems.KEM(part.Descriptor)
		if err != nil {
			return nil, err
		}

		kp, err := deriveKeypair(seed, KeyEncapsulation, e)
		if err != nil {
			return nil, err
		}
		ss, err := k.Decapsulate(part.Payload, kp.SecretKey)
		kp.Wipe()
		if err != nil {
			return nil, err
		}
		combiner.Add(ss)
		crypto.Wipe(ss)
	}

	s.log.Debug().
		Int("schemes", combiner.Len()).
		Msg("decapsulated")
	return combiner.Sum(), nil
}
