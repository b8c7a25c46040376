package hybrid

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vaultsandbox/hybrid-go/internal/crypto"
	"github.com/vaultsandbox/hybrid-go/internal/metrics"
	"github.com/vaultsandbox/hybrid-go/scheme"
)

// Purpose selects between the signature and KEM algorithm sets.
type Purpose = scheme.Purpose

// Descriptor identifies an algorithm on the wire.
type Descriptor = scheme.Descriptor

const (
	// Signature is the purpose of signature algorithms.
	Signature = scheme.Signature
	// KeyEncapsulation is the purpose of KEM algorithms.
	KeyEncapsulation = scheme.KeyEncapsulation
)

// Operation names used in metrics.
const (
	opSign        = "sign"
	opVerify      = "verify"
	opEncapsulate = "encapsulate"
	opDecapsulate = "decapsulate"
	opPublicKey   = "public_key"
	opSeal        = "seal"
	opOpen        = "open"
)

// Suite holds the algorithm registries and performs hybrid operations.
// A Suite is immutable and safe for concurrent use.
type Suite struct {
	signatures *scheme.Registry
	kems       *scheme.Registry
	log        zerolog.Logger
	metrics    *metrics.Metrics
}

// New creates a suite with the built-in algorithms plus any registered
// through options.
func New(opts ...Option) (*Suite, error) {
	cfg := &suiteConfig{
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var sigEntries, kemEntries []scheme.Entry
	if !cfg.noDefaults {
		sigEntries = crypto.DefaultSignatureEntries()
		kemEntries = crypto.DefaultKEMEntries()
	}
	sigEntries = append(sigEntries, cfg.signatures...)
	kemEntries = append(kemEntries, cfg.kems...)

	sigs, err := scheme.NewRegistry(scheme.Signature, sigEntries...)
	if err != nil {
		return nil, err
	}
	kems, err := scheme.NewRegistry(scheme.KeyEncapsulation, kemEntries...)
	if err != nil {
		return nil, err
	}

	s := &Suite{
		signatures: sigs,
		kems:       kems,
		log:        cfg.logger,
	}
	if cfg.registerer != nil {
		if s.metrics, err = metrics.New(cfg.registerer); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}

	s.log.Debug().
		Strs("signature", sigs.Names()).
		Strs("kem", kems.Names()).
		Msg("hybrid suite ready")
	return s, nil
}

var defaultSuite = sync.OnceValue(func() *Suite {
	s, err := New()
	if err != nil {
		panic(fmt.Sprintf("hybrid: built-in algorithms do not form a valid suite: %v", err))
	}
	return s
})

// Default returns a shared suite with the built-in algorithms.
func Default() *Suite {
	return defaultSuite()
}

// Registry returns the algorithm registry for p.
func (s *Suite) Registry(p Purpose) (*scheme.Registry, error) {
	switch p {
	case Signature:
		return s.signatures, nil
	case KeyEncapsulation:
		return s.kems, nil
	}
	return nil, fmt.Errorf("%w: unknown purpose %d", ErrUnknownAlgorithm, uint8(p))
}

// Algorithms returns the registered algorithm names for p.
func (s *Suite) Algorithms(p Purpose) []string {
	r, err := s.Registry(p)
	if err != nil {
		return nil
	}
	return r.Names()
}

// AlgorithmName returns the registry name of d, or its numeric form when d
// is not registered.
func (s *Suite) AlgorithmName(p Purpose, d Descriptor) string {
	r, err := s.Registry(p)
	if err != nil {
		return d.String()
	}
	e, err := r.Resolve(d)
	if err != nil {
		return d.String()
	}
	return e.Scheme.Name()
}
