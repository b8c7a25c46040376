package crypto

import (
	"bytes"
	"strings"
	"testing"
)

func TestBase64URLRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"simple", []byte("hello")},
		{"binary mixed", []byte{0x00, 0xff, 0x7f, 0x80}},
		{"url unsafe chars", []byte{0xfb, 0xf0}}, // Would produce + or / in standard base64
		{"large data", make([]byte, 10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := ToBase64URL(tt.data)
			if strings.ContainsAny(encoded, "+/=") {
				t.Errorf("encoded string is not raw URL-safe: %s", encoded)
			}
			decoded, err := DecodeBase64(encoded)
			if err != nil {
				t.Fatalf("DecodeBase64() error = %v", err)
			}
			if !bytes.Equal(decoded, tt.data) {
				t.Errorf("round trip failed: got %v, want %v", decoded, tt.data)
			}
		})
	}
}

func TestDecodeBase64_MultipleFormats(t *testing.T) {
	original := []byte("hello world")

	tests := []struct {
		name    string
		encoded string
	}{
		{"raw url encoding", "aGVsbG8gd29ybGQ"},
		{"url encoding with padding", "aGVsbG8gd29ybGQ="},
		{"standard encoding", "aGVsbG8gd29ybGQ="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := DecodeBase64(tt.encoded)
			if err != nil {
				t.Fatalf("DecodeBase64() error = %v", err)
			}
			if !bytes.Equal(decoded, original) {
				t.Errorf("DecodeBase64() = %v, want %v", decoded, original)
			}
		})
	}
}

func TestDecodeBase64_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"invalid chars", "!!!invalid!!!"},
		{"spaces in middle", "aGVs bG8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeBase64(tt.input); err == nil {
				t.Error("expected error for invalid input")
			}
		})
	}
}
