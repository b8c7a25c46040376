package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	hybrid "github.com/vaultsandbox/hybrid-go"
	"github.com/vaultsandbox/hybrid-go/internal/crypto"
)

var zeroMnemonic = strings.Repeat("abandon ", 23) + "art"

// isolate points the tool at an empty environment.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(envProfile, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv(envSeed, "")
}

func runCmd(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cfg := &Config{
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
	}
	err := run(append([]string{"hybridctl"}, args...), cfg)
	return stdout.String(), stderr.String(), err
}

func mustRun(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	out, stderr, err := runCmd(t, stdin, args...)
	if err != nil {
		t.Fatalf("hybridctl %s: %v\nstderr: %s", strings.Join(args, " "), err, stderr)
	}
	return strings.TrimSpace(out)
}

func newSeed(t *testing.T, args ...string) string {
	t.Helper()
	seed := mustRun(t, "", append([]string{"seed", "new"}, args...)...)
	t.Setenv(envSeed, seed)
	return seed
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Stdin != os.Stdin {
		t.Error("DefaultConfig().Stdin should be os.Stdin")
	}
	if cfg.Stdout != os.Stdout {
		t.Error("DefaultConfig().Stdout should be os.Stdout")
	}
	if cfg.Stderr != os.Stderr {
		t.Error("DefaultConfig().Stderr should be os.Stderr")
	}
}

func TestRun_NoArgs(t *testing.T) {
	isolate(t)

	out, _, err := runCmd(t, "")
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(out, "hybridctl") {
		t.Errorf("help output should mention hybridctl, got %q", out)
	}
}

func TestRun_NilStreams(t *testing.T) {
	isolate(t)

	if err := run([]string{"hybridctl", "algorithms"}, &Config{}); err != nil {
		t.Errorf("run() with nil streams error = %v", err)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	isolate(t)

	_, _, err := runCmd(t, "", "unknown-command")
	if err == nil {
		t.Fatal("run() should return error for unknown command")
	}
	if !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("error should contain 'unknown command', got %v", err)
	}
}

func TestRun_Algorithms(t *testing.T) {
	isolate(t)

	out := mustRun(t, "", "algorithms")
	for _, want := range []string{"signature:", "kem:", "ml-dsa-65", "secp256k1-ecdsa", "variable(prefix=1)", "x-wing", "fixed(1088)"} {
		if !strings.Contains(out, want) {
			t.Errorf("algorithms output missing %q:\n%s", want, out)
		}
	}
}

func TestRun_SeedNewAndInspect(t *testing.T) {
	isolate(t)
	newSeed(t, "--signature", "ed25519,ml-dsa-44", "--kem", "x25519")

	out := mustRun(t, "", "seed", "inspect")
	want := "signature: ed25519, ml-dsa-44\nkem: x25519"
	if out != want {
		t.Errorf("inspect = %q, want %q", out, want)
	}
}

func TestRun_SeedNew_ProfileDefaults(t *testing.T) {
	isolate(t)
	newSeed(t)

	out := mustRun(t, "", "seed", "inspect")
	want := "signature: ml-dsa-65, ed25519\nkem: ml-kem-768, x25519"
	if out != want {
		t.Errorf("inspect = %q, want %q", out, want)
	}
}

func TestRun_SeedNew_UnknownAlgorithm(t *testing.T) {
	isolate(t)

	_, _, err := runCmd(t, "", "seed", "new", "--signature", "rsa")
	if !errors.Is(err, hybrid.ErrUnknownAlgorithm) {
		t.Errorf("error = %v, want ErrUnknownAlgorithm", err)
	}
}

func TestRun_SeedFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "seed")

	_, stderr, err := runCmd(t, "", "seed", "new", "--signature", "ed25519", "--kem", "", "--out", path)
	if err != nil {
		t.Fatalf("seed new error = %v", err)
	}
	if !strings.Contains(stderr, "wrote seed") {
		t.Errorf("stderr should log the write, got %q", stderr)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat seed file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("seed file mode = %o, want 600", perm)
	}

	out := mustRun(t, "", "--seed-file", path, "seed", "inspect")
	if !strings.HasPrefix(out, "signature: ed25519\n") {
		t.Errorf("inspect = %q", out)
	}
}

func TestRun_NoSeed(t *testing.T) {
	isolate(t)

	_, _, err := runCmd(t, "msg", "sign")
	if err == nil || !strings.Contains(err.Error(), "no seed") {
		t.Errorf("error = %v, want no seed", err)
	}
}

func TestRun_BadSeed(t *testing.T) {
	isolate(t)
	t.Setenv(envSeed, crypto.ToBase64URL([]byte{1, 2, 3}))

	_, _, err := runCmd(t, "msg", "sign")
	if !errors.Is(err, hybrid.ErrMalformedSeed) {
		t.Errorf("error = %v, want ErrMalformedSeed", err)
	}
}

func TestRun_SignVerify(t *testing.T) {
	isolate(t)
	newSeed(t, "--signature", "ml-dsa-44,secp256k1-ecdsa")

	pub := mustRun(t, "", "pubkey")
	sig := mustRun(t, "hello", "sign")

	if out := mustRun(t, "hello", "verify", "--pubkey", pub, "--signature", sig); out != "valid" {
		t.Errorf("verify = %q, want valid", out)
	}

	_, _, err := runCmd(t, "hellp", "verify", "--pubkey", pub, "--signature", sig)
	if !errors.Is(err, hybrid.ErrSignatureInvalid) {
		t.Errorf("verify(altered message) error = %v, want ErrSignatureInvalid", err)
	}

	_, _, err = runCmd(t, "hello", "verify", "--pubkey", pub)
	if err == nil {
		t.Error("verify without --signature should fail")
	}
}

func TestRun_EncapsulateDecapsulate(t *testing.T) {
	isolate(t)
	newSeed(t, "--kem", "ml-kem-512,x-wing")

	pub := mustRun(t, "", "pubkey", "--purpose", "kem")
	out := mustRun(t, "", "encapsulate", "--pubkey", pub)

	var enc EncapsulateOutput
	if err := json.Unmarshal([]byte(out), &enc); err != nil {
		t.Fatalf("parse encapsulate output: %v", err)
	}

	ss := mustRun(t, "", "decapsulate", "--ciphertext", enc.Ciphertext)
	if ss != enc.SharedSecret {
		t.Errorf("decapsulated secret %q, want %q", ss, enc.SharedSecret)
	}
}

func TestRun_SealOpen(t *testing.T) {
	isolate(t)
	newSeed(t, "--kem", "ml-kem-768,x25519")

	pub := mustRun(t, "", "pubkey", "--purpose", "kem")
	sealed := mustRun(t, "attack at dawn", "seal", "--pubkey", pub, "--aad", "ctx")

	if out := mustRun(t, sealed, "open", "--aad", "ctx"); out != "attack at dawn" {
		t.Errorf("open = %q, want %q", out, "attack at dawn")
	}

	_, _, err := runCmd(t, sealed, "open", "--aad", "other")
	if !errors.Is(err, hybrid.ErrDecryptionFailed) {
		t.Errorf("open(wrong aad) error = %v, want ErrDecryptionFailed", err)
	}
}

func TestRun_Address(t *testing.T) {
	isolate(t)
	newSeed(t, "--signature", "ed448")

	fromSeed := mustRun(t, "", "address")
	pub := mustRun(t, "", "pubkey")
	fromKey := mustRun(t, "", "address", "--pubkey", pub)

	if fromSeed != fromKey {
		t.Errorf("address from seed %q != address from pubkey %q", fromSeed, fromKey)
	}
	if _, err := hybrid.ParseAddress(fromSeed); err != nil {
		t.Errorf("ParseAddress(%q) error = %v", fromSeed, err)
	}
}

func TestRun_BadPurpose(t *testing.T) {
	isolate(t)
	newSeed(t)

	_, _, err := runCmd(t, "", "pubkey", "--purpose", "encryption")
	if err == nil || !strings.Contains(err.Error(), "unknown purpose") {
		t.Errorf("error = %v, want unknown purpose", err)
	}
}

func TestRun_Mnemonic(t *testing.T) {
	isolate(t)

	out := mustRun(t, "", "seed", "mnemonic")
	if n := len(strings.Fields(out)); n != 24 {
		t.Errorf("mnemonic has %d words, want 24", n)
	}
}

func TestRun_SeedRecover(t *testing.T) {
	isolate(t)

	a := mustRun(t, zeroMnemonic+"\n", "seed", "recover", "--signature", "ed25519", "--kem", "x25519")
	b := mustRun(t, "  "+strings.ReplaceAll(zeroMnemonic, " ", "\n"), "seed", "recover", "--signature", "ed25519", "--kem", "x25519")
	if a != b {
		t.Error("the same phrase should recover the same seed")
	}

	c := mustRun(t, zeroMnemonic, "seed", "recover", "--signature", "ed25519", "--kem", "x25519", "--passphrase", "extra")
	if a == c {
		t.Error("a passphrase should change the recovered seed")
	}

	_, _, err := runCmd(t, "not a mnemonic", "seed", "recover")
	if !errors.Is(err, hybrid.ErrInvalidMnemonic) {
		t.Errorf("error = %v, want ErrInvalidMnemonic", err)
	}
}

func TestRun_Profile(t *testing.T) {
	dir := t.TempDir()
	seedPath := filepath.Join(dir, "seed")
	profilePath := filepath.Join(dir, "profile.yaml")

	yaml := "signature: [ed448]\nkem: [x-wing]\nseedFile: " + seedPath + "\nlogLevel: debug\n"
	if err := os.WriteFile(profilePath, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(envProfile, profilePath)
	t.Setenv(envSeed, "")

	mustRun(t, "", "seed", "new", "--out", seedPath)

	out, stderr, err := runCmd(t, "", "seed", "inspect")
	if err != nil {
		t.Fatalf("inspect error = %v", err)
	}
	if want := "signature: ed448\nkem: x-wing\n"; out != want {
		t.Errorf("inspect = %q, want %q", out, want)
	}
	if !strings.Contains(stderr, "loaded profile") {
		t.Errorf("debug log missing from stderr: %q", stderr)
	}
}

func TestRun_InvalidProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte("signature: [ed25519, ed25519]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, _, err := runCmd(t, "", "--profile", path, "algorithms")
	if err == nil || !strings.Contains(err.Error(), "listed twice") {
		t.Errorf("error = %v, want duplicate name error", err)
	}
}

func TestRun_InvalidLogLevel(t *testing.T) {
	isolate(t)

	_, _, err := runCmd(t, "", "--log-level", "loud", "algorithms")
	if err == nil || !strings.Contains(err.Error(), "log level") {
		t.Errorf("error = %v, want log level error", err)
	}
}

func TestRun_Metrics(t *testing.T) {
	isolate(t)
	newSeed(t, "--signature", "ed25519")

	_, stderr, err := runCmd(t, "msg", "--metrics", "sign")
	if err != nil {
		t.Fatalf("sign error = %v", err)
	}
	for _, want := range []string{"hybrid_operations_total", `operation="sign"`, "hybrid_operation_duration_seconds"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestParsePurpose(t *testing.T) {
	tests := []struct {
		input   string
		want    hybrid.Purpose
		wantErr bool
	}{
		{"signature", hybrid.Signature, false},
		{"SIG", hybrid.Signature, false},
		{"kem", hybrid.KeyEncapsulation, false},
		{"key-encapsulation", hybrid.KeyEncapsulation, false},
		{"", 0, true},
		{"aead", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parsePurpose(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePurpose(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parsePurpose(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFatal(t *testing.T) {
	originalExitFunc := exitFunc
	defer func() { exitFunc = originalExitFunc }()

	var exitCode int
	exitFunc = func(code int) {
		exitCode = code
	}

	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	fatal("error %d: %s", 42, "something went wrong")

	w.Close()
	os.Stderr = oldStderr
	var buf bytes.Buffer
	buf.ReadFrom(r)

	if exitCode != 1 {
		t.Errorf("exitCode = %d, want 1", exitCode)
	}
	if want := "error 42: something went wrong\n"; buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
