package crypto

import (
	"bytes"
	"errors"
	"testing"
)

func TestSealOpen_RoundTrip(t *testing.T) {
	ss := bytes.Repeat([]byte{9}, SharedSecretSize)
	kemCT := []byte("combined kem ciphertext")

	tests := []struct {
		name      string
		plaintext []byte
		aad       []byte
	}{
		{"empty", nil, nil},
		{"text", []byte("hello"), nil},
		{"with aad", []byte("hello"), []byte("context")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sealed, err := Seal(ss, kemCT, tt.plaintext, tt.aad)
			if err != nil {
				t.Fatalf("Seal() error = %v", err)
			}
			if len(sealed) != SealedOverhead+len(kemCT)+len(tt.plaintext) {
				t.Errorf("len(sealed) = %d", len(sealed))
			}

			gotCT, nonce, ct, err := SplitSealed(sealed)
			if err != nil {
				t.Fatalf("SplitSealed() error = %v", err)
			}
			if !bytes.Equal(gotCT, kemCT) {
				t.Error("SplitSealed() returned the wrong kem ciphertext")
			}

			pt, err := Open(ss, gotCT, nonce, ct, tt.aad)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if !bytes.Equal(pt, tt.plaintext) {
				t.Errorf("Open() = %q, want %q", pt, tt.plaintext)
			}
		})
	}
}

func TestOpen_BindsKEMCiphertextAndAAD(t *testing.T) {
	ss := bytes.Repeat([]byte{9}, SharedSecretSize)
	sealed, err := Seal(ss, []byte("kem-ct"), []byte("payload"), []byte("aad"))
	if err != nil {
		t.Fatal(err)
	}
	kemCT, nonce, ct, err := SplitSealed(sealed)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Open(ss, []byte("kem-cu"), nonce, ct, []byte("aad")); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("Open(other kem ct) error = %v, want ErrDecryptionFailed", err)
	}
	if _, err := Open(ss, kemCT, nonce, ct, []byte("aae")); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("Open(other aad) error = %v, want ErrDecryptionFailed", err)
	}
	other := bytes.Repeat([]byte{8}, SharedSecretSize)
	if _, err := Open(other, kemCT, nonce, ct, []byte("aad")); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("Open(other secret) error = %v, want ErrDecryptionFailed", err)
	}
}

func TestSplitSealed_Errors(t *testing.T) {
	tests := []struct {
		name   string
		sealed []byte
	}{
		{"empty", nil},
		{"too short", make([]byte, SealedOverhead-1)},
		{"length overflow", append([]byte{0xff, 0xff, 0xff, 0xff}, make([]byte, SealedOverhead)...)},
		{"length past tag", append([]byte{0, 0, 0, 2}, make([]byte, SealedOverhead-4+1)...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, _, err := SplitSealed(tt.sealed); !errors.Is(err, ErrInvalidPayload) {
				t.Errorf("SplitSealed() error = %v, want ErrInvalidPayload", err)
			}
		})
	}
}

func TestSeal_RandReaderFailure(t *testing.T) {
	restore := SetRandReaderForTesting(bytes.NewReader(nil))
	defer restore()

	if _, err := Seal(make([]byte, 32), []byte("ct"), []byte("p"), nil); err == nil {
		t.Error("Seal() should fail when the random source is exhausted")
	}
}
