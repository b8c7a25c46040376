package hybrid

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/vaultsandbox/hybrid-go/scheme"
)

// suiteConfig holds configuration for a suite.
type suiteConfig struct {
	signatures []scheme.Entry
	kems       []scheme.Entry
	noDefaults bool
	logger     zerolog.Logger
	registerer prometheus.Registerer
}

// Option configures a suite.
type Option func(*suiteConfig)

// WithSignatureScheme registers an additional signature algorithm under d.
func WithSignatureScheme(d Descriptor, s scheme.Signer) Option {
	return func(c *suiteConfig) {
		c.signatures = append(c.signatures, scheme.Entry{Descriptor: d, Scheme: s})
	}
}

// WithKEMScheme registers an additional KEM under d.
func WithKEMScheme(d Descriptor, k scheme.KEM) Option {
	return func(c *suiteConfig) {
		c.kems = append(c.kems, scheme.Entry{Descriptor: d, Scheme: k})
	}
}

// WithoutDefaultSchemes starts from empty registries instead of the
// built-in algorithms. Use it with WithSignatureScheme and WithKEMScheme.
func WithoutDefaultSchemes() Option {
	return func(c *suiteConfig) {
		c.noDefaults = true
	}
}

// WithLogger sets the logger used for debug output. Secret material is never
// logged. Default: zerolog.Nop()
func WithLogger(logger zerolog.Logger) Option {
	return func(c *suiteConfig) {
		c.logger = logger
	}
}

// WithMetrics registers operation counters and latency histograms on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *suiteConfig) {
		c.registerer = reg
	}
}
