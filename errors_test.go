package hybrid

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/vaultsandbox/hybrid-go/internal/crypto"
)

func TestSentinelErrors(t *testing.T) {
	sentinels := []struct {
		name string
		err  error
	}{
		{"ErrUnknownAlgorithm", ErrUnknownAlgorithm},
		{"ErrMalformedSeed", ErrMalformedSeed},
		{"ErrMalformedEncoding", ErrMalformedEncoding},
		{"ErrMissingKeyForScheme", ErrMissingKeyForScheme},
		{"ErrMissingSignature", ErrMissingSignature},
		{"ErrSignatureInvalid", ErrSignatureInvalid},
		{"ErrNoSchemesSelected", ErrNoSchemesSelected},
		{"ErrDecryptionFailed", ErrDecryptionFailed},
		{"ErrInvalidMnemonic", ErrInvalidMnemonic},
		{"ErrInvalidAddress", ErrInvalidAddress},
	}

	for _, s := range sentinels {
		t.Run(s.name, func(t *testing.T) {
			if s.err == nil {
				t.Fatal("sentinel error is nil")
			}
			if s.err.Error() == "" {
				t.Error("sentinel error has empty message")
			}
		})
	}
}

func TestDecryptionError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *DecryptionError
		want string
	}{
		{
			name: "with underlying error",
			err:  &DecryptionError{Stage: "aead", Err: errors.New("tag mismatch")},
			want: "decryption failed at aead: tag mismatch",
		},
		{
			name: "with message",
			err:  &DecryptionError{Stage: "parse", Message: "too short"},
			want: "decryption failed at parse: too short",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecryptionError_Is(t *testing.T) {
	err := &DecryptionError{Stage: "aead", Err: crypto.ErrDecryptionFailed}

	if !errors.Is(err, ErrDecryptionFailed) {
		t.Error("DecryptionError should match ErrDecryptionFailed")
	}
	if !errors.Is(err, crypto.ErrDecryptionFailed) {
		t.Error("DecryptionError should unwrap to the internal error")
	}
	if errors.Is(err, ErrSignatureInvalid) {
		t.Error("DecryptionError should not match ErrSignatureInvalid")
	}

	var he HybridError
	if !errors.As(err, &he) {
		t.Error("DecryptionError should implement HybridError")
	}
}

func TestTypedErrors_Is(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"UnknownAlgorithmError", &UnknownAlgorithmError{Purpose: Signature, Name: "rsa"}, ErrUnknownAlgorithm},
		{"EncodingError", &EncodingError{Purpose: KeyEncapsulation, Reason: "truncated"}, ErrMalformedEncoding},
		{"SeedError", &SeedError{Reason: "too short"}, ErrMalformedSeed},
		{"MissingKeyError", &MissingKeyError{Purpose: Signature}, ErrMissingKeyForScheme},
		{"MissingSignatureError", &MissingSignatureError{}, ErrMissingSignature},
		{"SignatureError", &SignatureError{Scheme: "ed25519"}, ErrSignatureInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.sentinel)
			}
			wrapped := fmt.Errorf("context: %w", tt.err)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Error("sentinel should match through a wrapped chain")
			}
			var he HybridError
			if !errors.As(tt.err, &he) {
				t.Error("typed error should implement HybridError")
			}
		})
	}
}

func TestWrapError_Nil(t *testing.T) {
	if err := wrapError("aead", nil); err != nil {
		t.Errorf("wrapError(nil) = %v, want nil", err)
	}
}

func TestWrapError_ConvertsCryptoErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"decryption failed", crypto.ErrDecryptionFailed},
		{"invalid payload", crypto.ErrInvalidPayload},
		{"invalid ciphertext size", fmt.Errorf("%w: got 3 bytes", crypto.ErrInvalidCiphertextSize)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := wrapError("aead", tt.err)

			var de *DecryptionError
			if !errors.As(wrapped, &de) {
				t.Fatalf("wrapError(%v) = %T, want *DecryptionError", tt.err, wrapped)
			}
			if de.Stage != "aead" {
				t.Errorf("Stage = %q, want %q", de.Stage, "aead")
			}
			if !errors.Is(wrapped, ErrDecryptionFailed) {
				t.Error("wrapped error should match ErrDecryptionFailed")
			}
			if !errors.Is(wrapped, tt.err) {
				t.Error("wrapped error should still match the original error")
			}
		})
	}
}

func TestWrapError_PreservesHybridErrors(t *testing.T) {
	orig := &EncodingError{Purpose: KeyEncapsulation, Offset: 2, Reason: "truncated record"}

	wrapped := wrapError("parse", orig)
	if wrapped != error(orig) {
		t.Errorf("wrapError should return typed errors unchanged, got %v", wrapped)
	}
}

func TestWrapError_PassesThroughOther(t *testing.T) {
	other := errors.New("some other error")

	wrapped := wrapError("kem", other)
	if wrapped != other {
		t.Errorf("wrapError should pass through unknown errors, got %v", wrapped)
	}
	if strings.Contains(wrapped.Error(), "decryption failed") {
		t.Error("unknown errors should not be reported as decryption failures")
	}
}
