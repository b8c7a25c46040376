package hybrid

import (
	"fmt"

	"github.com/tyler-smith/go-bip39"

	"github.com/vaultsandbox/hybrid-go/internal/crypto"
)

// mnemonicEntropyBits gives a 24-word phrase.
const mnemonicEntropyBits = 256

// NewMnemonic returns a fresh 24-word BIP-39 recovery phrase.
func NewMnemonic() (string, error) {
	entropy, err := crypto.RandomBytes(mnemonicEntropyBits / 8)
	if err != nil {
		return "", err
	}
	defer crypto.Wipe(entropy)

	return bip39.NewMnemonic(entropy)
}

// EntropyFromMnemonic derives seed entropy from a BIP-39 phrase and an
// optional passphrase. The same phrase and passphrase always give the same
// entropy.
func EntropyFromMnemonic(mnemonic, passphrase string) ([EntropySize]byte, error) {
	var entropy [EntropySize]byte

	bipSeed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return entropy, fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
	}
	defer crypto.Wipe(bipSeed)

	derived, err := crypto.DeriveKey(bipSeed, nil, []byte(crypto.MnemonicContext), EntropySize)
	if err != nil {
		return entropy, err
	}
	copy(entropy[:], derived)
	crypto.Wipe(derived)
	return entropy, nil
}

// SeedFromMnemonic builds a seed whose entropy comes from a recovery phrase.
func (s *Suite) SeedFromMnemonic(mnemonic, passphrase string, signatureNames, kemNames []string) ([]byte, error) {
	entropy, err := EntropyFromMnemonic(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}
	defer crypto.Wipe(entropy[:])

	return s.WrapSeed(signatureNames, kemNames, entropy)
}
