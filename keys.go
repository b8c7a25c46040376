package hybrid

import (
	"time"

	"github.com/vaultsandbox/hybrid-go/internal/wire"
)

// CombinedPublicKey derives the combined public key of every algorithm the
// seed selects for p, in seed order.
func (s *Suite) CombinedPublicKey(p Purpose, seedBlob []byte) (cpk []byte, err error) {
	defer func(start time.Time) { s.metrics.Observe(opPublicKey, start, err) }(time.Now())

	r, err := s.Registry(p)
	if err != nil {
		return nil, err
	}
	seed, err := s.ParseSeed(seedBlob)
	if err != nil {
		return nil, err
	}
	defer seed.Wipe()

	sel := seed.Selection(p)
	if len(sel) == 0 {
		return nil, ErrNoSchemesSelected
	}

	for _, d := range sel {
		e, err := r.Resolve(d)
		if err != nil {
			return nil, err
		}
		kp, err := deriveKeypair(seed, p, e)
		if err != nil {
			return nil, err
		}
		cpk, err = wire.AppendRecord(cpk, wire.Record{Descriptor: d, Payload: kp.PublicKey}, e.Scheme.Info().PublicKey)
		kp.Wipe()
		if err != nil {
			return nil, err
		}
	}

	s.log.Debug().
		Stringer("purpose", p).
		Int("schemes", len(sel)).
		Int("bytes", len(cpk)).
		Msg("derived combined public key")
	return cpk, nil
}

// PublicKeyAlgorithms decodes a combined public key and returns the names of
// the algorithms it contains, in wire order.
func (s *Suite) PublicKeyAlgorithms(p Purpose, cpk []byte) ([]string, error) {
	records, err := s.decodePublicKey(p, cpk)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(records))
	for i, rec := range records {
		names[i] = s.AlgorithmName(p, rec.Descriptor)
	}
	return names, nil
}

func (s *Suite) decodePublicKey(p Purpose, cpk []byte) ([]wire.Record, error) {
	r, err := s.Registry(p)
	if err != nil {
		return nil, err
	}
	return wire.DecodeRecords(cpk, p, r.PublicKeySize)
}
