package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	hybrid "github.com/vaultsandbox/hybrid-go"
	"github.com/vaultsandbox/hybrid-go/internal/crypto"
)

// EncapsulateOutput is the JSON printed by the encapsulate command.
type EncapsulateOutput struct {
	SharedSecret string `json:"sharedSecret"`
	Ciphertext   string `json:"ciphertext"`
}

func (a *app) algorithmsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List the registered algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range []hybrid.Purpose{hybrid.Signature, hybrid.KeyEncapsulation} {
				r, err := a.suite.Registry(p)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.cfg.Stdout, "%s:\n", p)
				for _, e := range r.Entries() {
					info := e.Scheme.Info()
					fmt.Fprintf(a.cfg.Stdout, "  %-5s %-16s public key %-20s payload %s\n",
						e.Descriptor, e.Scheme.Name(), info.PublicKey, info.Payload)
				}
			}
			return nil
		},
	}
}

func (a *app) seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create, recover and inspect seeds",
	}
	cmd.AddCommand(a.seedNewCmd(), a.seedMnemonicCmd(), a.seedRecoverCmd(), a.seedInspectCmd())
	return cmd
}

func (a *app) seedNewCmd() *cobra.Command {
	var sel selection
	var out string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Generate a seed with fresh entropy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sigs, kems := sel.resolve(a)
			seed, err := a.suite.GenerateSeed(sigs, kems)
			if err != nil {
				return err
			}
			defer crypto.Wipe(seed)
			return a.writeSeed(seed, out)
		},
	}
	sel.bind(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the seed to this file instead of stdout")
	return cmd
}

func (a *app) seedMnemonicCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mnemonic",
		Short: "Generate a 24-word recovery phrase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := hybrid.NewMnemonic()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.cfg.Stdout, m)
			return nil
		},
	}
}

func (a *app) seedRecoverCmd() *cobra.Command {
	var sel selection
	var out, passphrase string

	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Rebuild a seed from a recovery phrase read on stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			phrase, err := io.ReadAll(a.cfg.Stdin)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			sigs, kems := sel.resolve(a)
			mnemonic := strings.Join(strings.Fields(string(phrase)), " ")
			seed, err := a.suite.SeedFromMnemonic(mnemonic, passphrase, sigs, kems)
			if err != nil {
				return err
			}
			defer crypto.Wipe(seed)
			return a.writeSeed(seed, out)
		},
	}
	sel.bind(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the seed to this file instead of stdout")
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "optional BIP-39 passphrase")
	return cmd
}

func (a *app) seedInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Show the algorithms a seed selects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := a.loadSeed()
			if err != nil {
				return err
			}
			defer crypto.Wipe(seed)

			for _, p := range []hybrid.Purpose{hybrid.Signature, hybrid.KeyEncapsulation} {
				names, err := a.suite.SeedAlgorithms(p, seed)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.cfg.Stdout, "%s: %s\n", p, strings.Join(names, ", "))
			}
			return nil
		},
	}
}

func (a *app) pubkeyCmd() *cobra.Command {
	var purpose string

	cmd := &cobra.Command{
		Use:   "pubkey",
		Short: "Print the combined public key of the seed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePurpose(purpose)
			if err != nil {
				return err
			}
			seed, err := a.loadSeed()
			if err != nil {
				return err
			}
			defer crypto.Wipe(seed)

			cpk, err := a.suite.CombinedPublicKey(p, seed)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.cfg.Stdout, crypto.ToBase64URL(cpk))
			return nil
		},
	}
	cmd.Flags().StringVar(&purpose, "purpose", "signature", "signature or kem")
	return cmd
}

func (a *app) addressCmd() *cobra.Command {
	var purpose, pubkey string

	cmd := &cobra.Command{
		Use:   "address",
		Short: "Print the address of the seed, or of --pubkey",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pubkey != "" {
				cpk, err := decodeFlag("pubkey", pubkey)
				if err != nil {
					return err
				}
				fmt.Fprintln(a.cfg.Stdout, hybrid.AddressOf(cpk))
				return nil
			}

			p, err := parsePurpose(purpose)
			if err != nil {
				return err
			}
			seed, err := a.loadSeed()
			if err != nil {
				return err
			}
			defer crypto.Wipe(seed)

			addr, err := a.suite.Address(p, seed)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.cfg.Stdout, addr)
			return nil
		},
	}
	cmd.Flags().StringVar(&purpose, "purpose", "signature", "signature or kem")
	cmd.Flags().StringVar(&pubkey, "pubkey", "", "combined public key (base64url)")
	return cmd
}

func (a *app) signCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sign",
		Short: "Sign the message read on stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := a.loadSeed()
			if err != nil {
				return err
			}
			defer crypto.Wipe(seed)

			msg, err := io.ReadAll(a.cfg.Stdin)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			sig, err := a.suite.Sign(seed, msg)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.cfg.Stdout, crypto.ToBase64URL(sig))
			return nil
		},
	}
}

func (a *app) verifyCmd() *cobra.Command {
	var pubkey, signature string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a combined signature over the message read on stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cpk, err := decodeFlag("pubkey", pubkey)
			if err != nil {
				return err
			}
			sig, err := decodeFlag("signature", signature)
			if err != nil {
				return err
			}
			msg, err := io.ReadAll(a.cfg.Stdin)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}

			if err := a.suite.VerifySignature(msg, cpk, sig); err != nil {
				return err
			}
			fmt.Fprintln(a.cfg.Stdout, "valid")
			return nil
		},
	}
	cmd.Flags().StringVar(&pubkey, "pubkey", "", "combined signature public key (base64url)")
	cmd.Flags().StringVar(&signature, "signature", "", "combined signature (base64url)")
	_ = cmd.MarkFlagRequired("pubkey")
	_ = cmd.MarkFlagRequired("signature")
	return cmd
}

func (a *app) encapsulateCmd() *cobra.Command {
	var pubkey string

	cmd := &cobra.Command{
		Use:   "encapsulate",
		Short: "Encapsulate a fresh shared secret to a combined KEM public key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cpk, err := decodeFlag("pubkey", pubkey)
			if err != nil {
				return err
			}
			ss, ct, err := a.suite.Encapsulate(cpk)
			if err != nil {
				return err
			}
			defer crypto.Wipe(ss)

			out := EncapsulateOutput{
				SharedSecret: crypto.ToBase64URL(ss),
				Ciphertext:   crypto.ToBase64URL(ct),
			}
			if err := json.NewEncoder(a.cfg.Stdout).Encode(out); err != nil {
				return fmt.Errorf("encode output: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pubkey, "pubkey", "", "combined KEM public key (base64url)")
	_ = cmd.MarkFlagRequired("pubkey")
	return cmd
}

func (a *app) decapsulateCmd() *cobra.Command {
	var ciphertext string

	cmd := &cobra.Command{
		Use:   "decapsulate",
		Short: "Recover the shared secret of a combined KEM ciphertext",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := decodeFlag("ciphertext", ciphertext)
			if err != nil {
				return err
			}
			seed, err := a.loadSeed()
			if err != nil {
				return err
			}
			defer crypto.Wipe(seed)

			ss, err := a.suite.Decapsulate(seed, ct)
			if err != nil {
				return err
			}
			defer crypto.Wipe(ss)
			fmt.Fprintln(a.cfg.Stdout, crypto.ToBase64URL(ss))
			return nil
		},
	}
	cmd.Flags().StringVar(&ciphertext, "ciphertext", "", "combined KEM ciphertext (base64url)")
	_ = cmd.MarkFlagRequired("ciphertext")
	return cmd
}

func (a *app) sealCmd() *cobra.Command {
	var pubkey, aad string

	cmd := &cobra.Command{
		Use:   "seal",
		Short: "Encrypt stdin to a combined KEM public key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cpk, err := decodeFlag("pubkey", pubkey)
			if err != nil {
				return err
			}
			plaintext, err := io.ReadAll(a.cfg.Stdin)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			sealed, err := a.suite.Seal(cpk, plaintext, []byte(aad))
			if err != nil {
				return err
			}
			fmt.Fprintln(a.cfg.Stdout, crypto.ToBase64URL(sealed))
			return nil
		},
	}
	cmd.Flags().StringVar(&pubkey, "pubkey", "", "recipient combined KEM public key (base64url)")
	cmd.Flags().StringVar(&aad, "aad", "", "additional authenticated data")
	_ = cmd.MarkFlagRequired("pubkey")
	return cmd
}

func (a *app) openCmd() *cobra.Command {
	var aad string

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Decrypt a sealed message read on stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := a.loadSeed()
			if err != nil {
				return err
			}
			defer crypto.Wipe(seed)

			input, err := io.ReadAll(a.cfg.Stdin)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			sealed, err := decodeFlag("sealed message", strings.TrimSpace(string(input)))
			if err != nil {
				return err
			}
			plaintext, err := a.suite.Open(seed, sealed, []byte(aad))
			if err != nil {
				return err
			}
			_, err = a.cfg.Stdout.Write(plaintext)
			return err
		},
	}
	cmd.Flags().StringVar(&aad, "aad", "", "additional authenticated data")
	return cmd
}

// selection holds the --signature and --kem flags of seed commands.
type selection struct {
	signature []string
	kem       []string
}

func (s *selection) bind(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&s.signature, "signature", nil, "signature algorithms (default from profile)")
	cmd.Flags().StringSliceVar(&s.kem, "kem", nil, "KEM algorithms (default from profile)")
}

func (s *selection) resolve(a *app) (sigs, kems []string) {
	sigs, kems = s.signature, s.kem
	if sigs == nil {
		sigs = a.profile.Signature
	}
	if kems == nil {
		kems = a.profile.KEM
	}
	return sigs, kems
}

// loadSeed returns the seed from --seed-file, $HYBRID_SEED or the profile,
// in that order.
func (a *app) loadSeed() ([]byte, error) {
	var encoded, source string
	switch {
	case a.seedFile != "":
		data, err := os.ReadFile(a.seedFile)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		encoded, source = string(data), a.seedFile
	case os.Getenv(envSeed) != "":
		encoded, source = os.Getenv(envSeed), envSeed
	case a.profile.SeedFile != "":
		data, err := os.ReadFile(a.profile.SeedPath())
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		encoded, source = string(data), a.profile.SeedPath()
	default:
		return nil, errors.New("no seed: use --seed-file, $" + envSeed + " or a profile seedFile")
	}

	seed, err := crypto.DecodeBase64(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode seed from %s: %w", source, err)
	}
	a.log.Debug().Str("source", source).Msg("loaded seed")
	return seed, nil
}

func (a *app) writeSeed(seed []byte, path string) error {
	encoded := crypto.ToBase64URL(seed)
	if path == "" {
		fmt.Fprintln(a.cfg.Stdout, encoded)
		return nil
	}
	if err := os.WriteFile(path, []byte(encoded+"\n"), 0o600); err != nil {
		return fmt.Errorf("write seed: %w", err)
	}
	a.log.Info().Str("path", path).Msg("wrote seed")
	return nil
}

func parsePurpose(s string) (hybrid.Purpose, error) {
	switch strings.ToLower(s) {
	case "signature", "sig":
		return hybrid.Signature, nil
	case "kem", "key-encapsulation":
		return hybrid.KeyEncapsulation, nil
	}
	return 0, fmt.Errorf("unknown purpose %q: want signature or kem", s)
}

func decodeFlag(name, value string) ([]byte, error) {
	if value == "" {
		return nil, fmt.Errorf("%s is empty", name)
	}
	b, err := crypto.DecodeBase64(value)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return b, nil
}
