// Package cli implements the lindle command line.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"lindle/internal/config"
	"lindle/internal/lindle"
	"lindle/internal/logger"
)

const defaultConfigFile = "config.yaml"

var (
	version   = "dev"
	buildTime = "unknown"
)

// SetVersion sets the version reported by the version command.
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
}

// skipInit marks commands that run without configuration.
const skipInit = "skip-init"

// state is shared by all commands of one invocation.
type state struct {
	cfgFile string
	output  string

	cfg    *config.Config
	log    *logger.Logger
	client lindle.ClientInterface
	stderr io.Writer
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	s := &state{}

	rootCmd := &cobra.Command{
		Use:   "lindle",
		Short: "Command line client for the Lindle bookmarking service",
		Long: `lindle talks to the Lindle API: list your folders and links, manage
them, export them as a browser bookmark file, or serve them over a local
read-only gateway.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipInit] == "true" {
				return nil
			}
			return s.initialize(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&s.cfgFile, "config", "", "config file (default is ./config.yaml if present)")
	rootCmd.PersistentFlags().StringVarP(&s.output, "output", "o", "json", "output format: json or yaml")

	rootCmd.AddCommand(
		newUserCmd(s),
		newLinksCmd(s),
		newFoldersCmd(s),
		newSyncCmd(s),
		newLinkCmd(s),
		newFolderCmd(s),
		newExportCmd(s),
		newImportCmd(s),
		newServeCmd(s),
		newEncryptKeyCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// initialize loads the configuration and creates the logger and client.
func (s *state) initialize(cmd *cobra.Command) error {
	if s.output != "json" && s.output != "yaml" {
		return fmt.Errorf("invalid output format %q: must be json or yaml", s.output)
	}

	path := s.cfgFile
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	s.cfg = cfg

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	s.stderr = cmd.ErrOrStderr()
	s.log = logger.NewWithWriter(level, cfg.LogFormat, s.stderr)

	apiKey, err := cfg.APIKey(os.Getenv(config.EnvPrefix + "PASSPHRASE"))
	if err != nil {
		return err
	}

	opts := []lindle.Option{
		lindle.WithBaseURL(cfg.Lindle.Host),
		lindle.WithJourneyBaseURL(cfg.Lindle.JourneyHost),
		lindle.WithTimeout(cfg.Lindle.Timeout),
		lindle.WithLogger(s.log.Zerolog()),
	}
	if !cfg.Lindle.Strict {
		opts = append(opts, lindle.WithLenientDecoding())
	}

	client, err := lindle.NewClient(apiKey, opts...)
	if err != nil {
		return fmt.Errorf("failed to create Lindle client: %w", err)
	}
	s.client = client

	s.log.Debugf("Using Lindle API at %s", cfg.Lindle.Host)
	return nil
}

// print writes v to the command's output in the selected format.
func (s *state) print(cmd *cobra.Command, v any) error {
	out := cmd.OutOrStdout()
	if s.output == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

// ErrRejected is returned when Lindle answers a write with result=false.
var ErrRejected = errors.New("request rejected by Lindle")

// printResult prints an APIResult and turns a business failure into an
// error so the process exits non-zero.
func (s *state) printResult(cmd *cobra.Command, result *lindle.APIResult) error {
	if err := s.print(cmd, result); err != nil {
		return err
	}
	if !result.Result {
		return fmt.Errorf("%w: %s", ErrRejected, result.Message)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipInit: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lindle %s (built %s)\n", version, buildTime)
		},
	}
}
