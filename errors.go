package hybrid

import (
	"errors"
	"fmt"

	"github.com/vaultsandbox/hybrid-go/internal/crypto"
	"github.com/vaultsandbox/hybrid-go/scheme"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrUnknownAlgorithm is returned when a name or descriptor is not registered.
	ErrUnknownAlgorithm = scheme.ErrUnknownAlgorithm

	// ErrMalformedSeed is returned when a seed blob violates its layout.
	ErrMalformedSeed = scheme.ErrMalformedSeed

	// ErrMalformedEncoding is returned when a combined public key, signature
	// or ciphertext cannot be decoded.
	ErrMalformedEncoding = scheme.ErrMalformedEncoding

	// ErrMissingKeyForScheme is returned when a record has no matching key.
	ErrMissingKeyForScheme = scheme.ErrMissingKeyForScheme

	// ErrMissingSignature is returned when a public key has no signature record.
	ErrMissingSignature = scheme.ErrMissingSignature

	// ErrSignatureInvalid is returned when signature verification fails.
	ErrSignatureInvalid = scheme.ErrSignatureInvalid

	// ErrNoSchemesSelected is returned when a seed selects nothing for the
	// requested purpose.
	ErrNoSchemesSelected = scheme.ErrNoSchemesSelected

	// ErrDecryptionFailed is returned when a sealed message cannot be opened.
	ErrDecryptionFailed = scheme.ErrDecryptionFailed

	// ErrInvalidMnemonic is returned when a recovery phrase fails validation.
	ErrInvalidMnemonic = errors.New("invalid mnemonic")

	// ErrInvalidAddress is returned when an address string cannot be parsed.
	ErrInvalidAddress = errors.New("invalid address")
)

// HybridError is implemented by all typed errors of this package.
type HybridError = scheme.HybridError

// Typed errors returned by the suite.
type (
	UnknownAlgorithmError = scheme.UnknownAlgorithmError
	EncodingError         = scheme.EncodingError
	SeedError             = scheme.SeedError
	MissingKeyError       = scheme.MissingKeyError
	MissingSignatureError = scheme.MissingSignatureError
	SignatureError        = scheme.SignatureError
	RegistryError         = scheme.RegistryError
)

// DecryptionError represents a failure to open a sealed message.
type DecryptionError struct {
	Stage   string // "parse", "kem", "aead"
	Message string
	Err     error
}

func (e *DecryptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decryption failed at %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("decryption failed at %s: %s", e.Stage, e.Message)
}

// Unwrap returns the underlying error.
func (e *DecryptionError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *DecryptionError) Is(target error) bool {
	return target == ErrDecryptionFailed
}

// HybridError implements the HybridError interface.
func (e *DecryptionError) HybridError() {}

// wrapError converts internal crypto errors to public errors.
// This ensures that errors.Is() checks work with public sentinel errors.
func wrapError(stage string, err error) error {
	if err == nil {
		return nil
	}

	var he HybridError
	if errors.As(err, &he) {
		return err
	}

	switch {
	case errors.Is(err, crypto.ErrDecryptionFailed),
		errors.Is(err, crypto.ErrInvalidPayload),
		errors.Is(err, crypto.ErrInvalidCiphertextSize):
		return &DecryptionError{Stage: stage, Err: err}
	}
	return err
}
