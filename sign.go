package hybrid

import (
	"time"

	"github.com/vaultsandbox/hybrid-go/internal/wire"
	"github.com/vaultsandbox/hybrid-go/scheme"
)

// Sign signs message with every signature algorithm the seed selects and
// returns the combined signature, with records in seed order.
func (s *Suite) Sign(seedBlob, message []byte) (sig []byte, err error) {
	defer func(start time.Time) { s.metrics.Observe(opSign, start, err) }(time.Now())

	seed, err := s.ParseSeed(seedBlob)
	if err != nil {
		return nil, err
	}
	defer seed.Wipe()

	if len(seed.Signature) == 0 {
		return nil, ErrNoSchemesSelected
	}

	for _, d := range seed.Signature {
		e, err := s.signatures.Resolve(d)
		if err != nil {
			return nil, err
		}
		signer, err := s.signatures.Signer(d)
		if err != nil {
			return nil, err
		}

		kp, err := deriveKeypair(seed, Signature, e)
		if err != nil {
			return nil, err
		}
		part, err := signer.Sign(kp.SecretKey, message)
		kp.Wipe()
		if err != nil {
			return nil, err
		}

		if sig, err = wire.AppendRecord(sig, wire.Record{Descriptor: d, Payload: part}, e.Scheme.Info().Payload); err != nil {
			return nil, err
		}
	}

	s.log.Debug().
		Int("schemes", len(seed.Signature)).
		Int("bytes", len(sig)).
		Msg("signed message")
	return sig, nil
}

// VerifySignature checks a combined signature against a combined public key.
//
// Every signature record must have a key in cpk and must verify, and every
// key in cpk must have a signature record. The first failure is returned.
func (s *Suite) VerifySignature(message, cpk, sig []byte) (err error) {
	defer func(start time.Time) { s.metrics.Observe(opVerify, start, err) }(time.Now())

	keys, err := s.decodePublicKey(Signature, cpk)
	if err != nil {
		return err
	}
	parts, err := wire.DecodeRecords(sig, Signature, s.signatures.PayloadSize)
	if err != nil {
		return err
	}

	keyIndex := wire.Index(keys)
	sigIndex := wire.Index(parts)

	for _, part := range parts {
		if _, ok := keyIndex[part.Descriptor]; !ok {
			return &scheme.MissingKeyError{Purpose: Signature, Descriptor: part.Descriptor}
		}
	}
	for _, key := range keys {
		if _, ok := sigIndex[key.Descriptor]; !ok {
			return &scheme.MissingSignatureError{Descriptor: key.Descriptor}
		}
	}

	for _, part := range parts {
		signer, err := s.signatures.Signer(part.Descriptor)
		if err != nil {
			return err
		}
		if !signer.Verify(message, part.Payload, keyIndex[part.Descriptor]) {
			s.log.Debug().
				Str("scheme", signer.Name()).
				Msg("constituent signature rejected")
			return &scheme.SignatureError{Scheme: signer.Name(), Descriptor: part.Descriptor}
		}
	}
	return nil
}

// Verify reports whether VerifySignature accepts the signature.
func (s *Suite) Verify(message, cpk, sig []byte) bool {
	return s.VerifySignature(message, cpk, sig) == nil
}
