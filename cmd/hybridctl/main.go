// Command hybridctl exposes the hybrid suite on the command line.
//
// Binary values (seeds, public keys, signatures, ciphertexts) are read and
// written as URL-safe base64. Messages and plaintexts are raw bytes on stdin
// and stdout.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	hybrid "github.com/vaultsandbox/hybrid-go"
	"github.com/vaultsandbox/hybrid-go/internal/profile"
)

// Environment variables read by the tool. A .env file in the working
// directory is loaded first when present.
const (
	envSeed    = "HYBRID_SEED"
	envProfile = "HYBRID_PROFILE"
)

const defaultProfilePath = "~/.hybrid/profile.yaml"

// Config holds the I/O streams used by run.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultConfig returns a Config wired to the process streams.
func DefaultConfig() *Config {
	return &Config{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// exitFunc is replaced in tests.
var exitFunc = os.Exit

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	exitFunc(1)
}

// app is the state shared by every subcommand of one invocation.
type app struct {
	cfg *Config

	profilePath string
	seedFile    string
	logLevel    string
	dumpMetrics bool

	profile  profile.Profile
	log      zerolog.Logger
	registry *prometheus.Registry
	suite    *hybrid.Suite
}

func run(args []string, cfg *Config) error {
	if cfg.Stdin == nil {
		cfg.Stdin = strings.NewReader("")
	}
	if cfg.Stdout == nil {
		cfg.Stdout = io.Discard
	}
	if cfg.Stderr == nil {
		cfg.Stderr = io.Discard
	}

	// A missing .env file is not an error.
	_ = godotenv.Load()

	a := &app{cfg: cfg}
	root := a.rootCmd()
	if len(args) > 1 {
		root.SetArgs(args[1:])
	} else {
		root.SetArgs([]string{})
	}
	root.SetIn(cfg.Stdin)
	root.SetOut(cfg.Stdout)
	root.SetErr(cfg.Stderr)

	err := root.Execute()
	if a.dumpMetrics && a.registry != nil {
		if merr := a.writeMetrics(); merr != nil && err == nil {
			err = merr
		}
	}
	return err
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hybridctl",
		Short:         "Hybrid post-quantum and classical signatures and key encapsulation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.profilePath, "profile", "", "profile file (default $"+envProfile+" or "+defaultProfilePath+")")
	flags.StringVar(&a.seedFile, "seed-file", "", "seed file (default $"+envSeed+" or the profile seedFile)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (default from profile)")
	flags.BoolVar(&a.dumpMetrics, "metrics", false, "print operation metrics to stderr on exit")

	root.AddCommand(
		a.algorithmsCmd(),
		a.seedCmd(),
		a.pubkeyCmd(),
		a.addressCmd(),
		a.signCmd(),
		a.verifyCmd(),
		a.encapsulateCmd(),
		a.decapsulateCmd(),
		a.sealCmd(),
		a.openCmd(),
	)
	return root
}

// setup loads the profile and builds the logger and suite.
func (a *app) setup() error {
	path := a.profilePath
	if path == "" {
		path = os.Getenv(envProfile)
	}
	if path == "" {
		path = defaultProfilePath
	}
	p, err := profile.Load(path)
	if err != nil {
		return err
	}
	a.profile = p

	levelName := a.logLevel
	if levelName == "" {
		levelName = p.LogLevel
	}
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		return fmt.Errorf("log level %q: %w", levelName, err)
	}
	a.log = zerolog.New(zerolog.ConsoleWriter{Out: a.cfg.Stderr, TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Logger().
		Level(level)

	opts := []hybrid.Option{hybrid.WithLogger(a.log)}
	if a.dumpMetrics {
		a.registry = prometheus.NewRegistry()
		opts = append(opts, hybrid.WithMetrics(a.registry))
	}
	a.suite, err = hybrid.New(opts...)
	if err != nil {
		return err
	}

	a.log.Debug().
		Str("profile", path).
		Strs("signature", p.Signature).
		Strs("kem", p.KEM).
		Msg("loaded profile")
	return nil
}

func (a *app) writeMetrics() error {
	families, err := a.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(a.cfg.Stderr, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
