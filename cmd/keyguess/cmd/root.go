// Package cmd implements the keyguess command line.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/guileen/keyguess/config"
	"github.com/guileen/keyguess/errors"
	"github.com/guileen/keyguess/logger"
)

const (
	outputJSON = "json"
	outputText = "text"
)

// app carries the global flags and the loaded configuration to subcommands.
type app struct {
	configPath string
	envFile    string
	logLevel   string
	output     string

	cfg *config.Config
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "keyguess",
		Short: "Decode and encode TiDB/TiKV keys and values",
		Long: `keyguess reads the binary encodings used by TiDB and TiKV: memcomparable
byte groups, row keys, varints, fixed-width integers and MVCC write records.

Inputs may be written as a Rust debug print ([1, 2, 3]), a Go print
([1 2 3]) or hex (010203).`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file with KEYGUESS_* overrides")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVarP(&a.output, "output", "o", outputJSON, "output format: json or text")

	root.AddCommand(
		newEncodeCmd(a),
		newDecodeCmd(a),
		newRecordCmd(a),
		newWriteCmd(a),
		newGuessCmd(a),
		newScanCmd(a),
		newServeCmd(a),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.output != outputJSON && a.output != outputText {
		return errors.Errorf(errors.ErrCodeValidation, "unknown output format %q", a.output)
	}

	cfg, err := config.Load(a.configPath, a.envFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg

	lc := cfg.LoggerConfig()
	lc.Writer = cmd.ErrOrStderr()
	logger.NewLoggerFactory(lc).Install()
	return nil
}

// print writes v as indented JSON, or calls text in text mode.
func (a *app) print(cmd *cobra.Command, v any, text func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	if a.output == outputText {
		text(w)
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
