// Package cmd provides CLI command implementations
package cmd

import (
	"fmt"
	"strings"

	"github.com/ChrisMcGann/pepcomb/pkg/config"
	"github.com/ChrisMcGann/pepcomb/pkg/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	// settings from flags, PEPCOMB_ env variables and the config file
	v = viper.New()

	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "pepcomb",
	Short: "pepcomb - Peptide mass combination search tool",
	Long: `pepcomb finds the combinations of residue masses that account for an
observed mass and maps them back to sequences.

Two searches are available:
- sequence: which substrings of a known reference sequence can be built
  from a subset of its residues under a mass bound
- mass: de novo candidates whose residue mass falls inside a tolerance
  band, expanded into all of their contiguous fragments

Both searches enumerate every combination (2^n - 1 for n residues), so keep
the reference sequence or alphabet small or cap --max-size.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	config.SetDefaults(v)

	rootCmd.AddCommand(sequenceCmd)
	rootCmd.AddCommand(massCmd)
	rootCmd.AddCommand(alphabetCmd)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (yaml, json or toml)")
	flags.String("alphabet", "", "Alphabet CSV file (symbol,mass) replacing the standard residues")
	flags.StringP("out", "o", "", "Output file; .xlsx, .db or .csv (default depends on the command)")
	flags.Bool("no-export", false, "Print the result without writing an output file")
	flags.Int("max-size", 0, "Largest combination size (0 = no limit)")
	flags.Int("workers", 1, "Number of combination sizes searched concurrently")
	flags.BoolP("verbose", "v", false, "Verbose logging")
	flags.Bool("json-log", false, "Log as JSON")

	bindFlags(flags, map[string]string{
		"alphabet-file": "alphabet",
		"out":           "out",
		"no-export":     "no-export",
		"max-size":      "max-size",
		"workers":       "workers",
		"verbose":       "verbose",
		"json-log":      "json-log",
	})
}

// bindFlags binds each viper key to the named flag
func bindFlags(flags *pflag.FlagSet, keys map[string]string) {
	for key, flag := range keys {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", flag, err))
		}
	}
}

// initConfig reads the config file and environment
func initConfig() error {
	v.SetEnvPrefix("pepcomb")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}

// loadConfig decodes the settings and creates the logger
func loadConfig() (config.Config, logging.Logger, error) {
	c, err := config.New(v)
	if err != nil {
		return c, nil, err
	}

	logger, err := logging.New(logging.Options{
		Verbose: c.Verbose,
		JSON:    c.JSONLog,
	})
	if err != nil {
		return c, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	if cfgFile != "" {
		logger.Debug("using config file", "path", cfgFile)
	}
	return c, logger, nil
}
