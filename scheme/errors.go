package scheme

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrUnknownAlgorithm is returned when a name or descriptor does not
	// resolve in the registry for its purpose.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// ErrMalformedSeed is returned when a seed blob violates its layout.
	ErrMalformedSeed = errors.New("malformed seed")

	// ErrMalformedEncoding is returned when a combined key, signature or
	// ciphertext is truncated or otherwise structurally invalid.
	ErrMalformedEncoding = errors.New("malformed encoding")

	// ErrMissingKeyForScheme is returned when a signature or ciphertext record
	// refers to a scheme the key material does not cover.
	ErrMissingKeyForScheme = errors.New("no key for scheme")

	// ErrMissingSignature is returned when a combined public key contains a
	// scheme for which the combined signature carries no record.
	ErrMissingSignature = errors.New("missing signature for scheme")

	// ErrSignatureInvalid is returned when a constituent signature fails.
	ErrSignatureInvalid = errors.New("signature verification failed")

	// ErrNoSchemesSelected is returned when an operation has nothing to combine.
	ErrNoSchemesSelected = errors.New("no schemes selected")

	// ErrDuplicateScheme is returned when a name or descriptor appears twice.
	ErrDuplicateScheme = errors.New("duplicate scheme")

	// ErrInvalidSizeInfo is returned when an adapter declares unusable sizes.
	ErrInvalidSizeInfo = errors.New("invalid size info")

	// ErrPurposeMismatch is returned when an adapter is registered for a
	// purpose it cannot serve.
	ErrPurposeMismatch = errors.New("adapter does not match registry purpose")

	// ErrDecryptionFailed is returned when a sealed message cannot be opened.
	ErrDecryptionFailed = errors.New("decryption failed")
)

// HybridError is implemented by all typed errors of this module.
type HybridError interface {
	error
	HybridError() // marker method
}

// UnknownAlgorithmError names the algorithm that failed to resolve.
type UnknownAlgorithmError struct {
	Purpose    Purpose
	Name       string
	Descriptor Descriptor
}

func (e *UnknownAlgorithmError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("unknown %s algorithm %q", e.Purpose, e.Name)
	}
	return fmt.Sprintf("unknown %s algorithm %s", e.Purpose, e.Descriptor)
}

// Is implements errors.Is for sentinel error matching.
func (e *UnknownAlgorithmError) Is(target error) bool {
	return target == ErrUnknownAlgorithm
}

// HybridError implements the HybridError interface.
func (e *UnknownAlgorithmError) HybridError() {}

// EncodingError reports where a combined encoding went wrong.
type EncodingError struct {
	Purpose Purpose
	Offset  int
	Reason  string
	Err     error
}

func (e *EncodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed %s encoding at offset %d: %s: %v", e.Purpose, e.Offset, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed %s encoding at offset %d: %s", e.Purpose, e.Offset, e.Reason)
}

// Unwrap returns the underlying error.
func (e *EncodingError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *EncodingError) Is(target error) bool {
	return target == ErrMalformedEncoding
}

// HybridError implements the HybridError interface.
func (e *EncodingError) HybridError() {}

// SeedError describes a seed layout violation.
type SeedError struct {
	Length int
	Reason string
}

func (e *SeedError) Error() string {
	if e.Length == 0 {
		return fmt.Sprintf("malformed seed: %s", e.Reason)
	}
	return fmt.Sprintf("malformed seed (%d bytes): %s", e.Length, e.Reason)
}

// Is implements errors.Is for sentinel error matching.
func (e *SeedError) Is(target error) bool {
	return target == ErrMalformedSeed
}

// HybridError implements the HybridError interface.
func (e *SeedError) HybridError() {}

// MissingKeyError is returned when a record has no matching key.
type MissingKeyError struct {
	Purpose    Purpose
	Descriptor Descriptor
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("no %s key for scheme %s", e.Purpose, e.Descriptor)
}

// Is implements errors.Is for sentinel error matching.
func (e *MissingKeyError) Is(target error) bool {
	return target == ErrMissingKeyForScheme
}

// HybridError implements the HybridError interface.
func (e *MissingKeyError) HybridError() {}

// MissingSignatureError is returned when a public key has no signature record.
type MissingSignatureError struct {
	Descriptor Descriptor
}

func (e *MissingSignatureError) Error() string {
	return fmt.Sprintf("no signature for scheme %s", e.Descriptor)
}

// Is implements errors.Is for sentinel error matching.
func (e *MissingSignatureError) Is(target error) bool {
	return target == ErrMissingSignature
}

// HybridError implements the HybridError interface.
func (e *MissingSignatureError) HybridError() {}

// SignatureError identifies the constituent signature that failed.
type SignatureError struct {
	Scheme     string
	Descriptor Descriptor
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("signature verification failed: %s (%s)", e.Scheme, e.Descriptor)
}

// Is implements errors.Is for sentinel error matching.
func (e *SignatureError) Is(target error) bool {
	return target == ErrSignatureInvalid
}

// HybridError implements the HybridError interface.
func (e *SignatureError) HybridError() {}

// RegistryError is returned when a registry cannot be built.
type RegistryError struct {
	Purpose Purpose
	Name    string
	Err     error
}

func (e *RegistryError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s registry: %s: %v", e.Purpose, e.Name, e.Err)
	}
	return fmt.Sprintf("%s registry: %v", e.Purpose, e.Err)
}

// Unwrap returns the underlying error.
func (e *RegistryError) Unwrap() error {
	return e.Err
}

// HybridError implements the HybridError interface.
func (e *RegistryError) HybridError() {}
