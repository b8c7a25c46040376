// Package profile loads the YAML profiles used by the command-line tool.
//
// A profile names the algorithms a new seed selects and where seeds are
// kept:
//
//	signature: [ml-dsa-65, ed25519]
//	kem: [ml-kem-768, x25519]
//	seedFile: ~/.hybrid/seed
//	logLevel: info
package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile is the on-disk profile format.
type Profile struct {
	Signature []string `yaml:"signature"`
	KEM       []string `yaml:"kem"`
	SeedFile  string   `yaml:"seedFile"`
	LogLevel  string   `yaml:"logLevel"`
}

// Default returns the profile used when none is configured: one
// post-quantum and one classical algorithm per purpose.
func Default() Profile {
	return Profile{
		Signature: []string{"ml-dsa-65", "ed25519"},
		KEM:       []string{"ml-kem-768", "x25519"},
		LogLevel:  "info",
	}
}

// Parse decodes a profile. Fields missing from data keep their defaults.
func Parse(data []byte) (Profile, error) {
	p := Default()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parse profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Load reads and parses the profile at path. A missing file yields the
// default profile.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(expandHome(path))
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}
	return Parse(data)
}

// Validate checks for empty or repeated algorithm names.
func (p Profile) Validate() error {
	if err := checkNames("signature", p.Signature); err != nil {
		return err
	}
	return checkNames("kem", p.KEM)
}

// SeedPath returns SeedFile with a leading ~ expanded.
func (p Profile) SeedPath() string {
	return expandHome(p.SeedFile)
}

func checkNames(field string, names []string) error {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			return fmt.Errorf("profile: empty %s algorithm name", field)
		}
		if seen[n] {
			return fmt.Errorf("profile: %s algorithm %q listed twice", field, n)
		}
		seen[n] = true
	}
	return nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
