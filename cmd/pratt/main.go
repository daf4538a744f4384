package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/pratt/config"
)

const version = "0.1.0"

// cfg is loaded before any subcommand runs.
var cfg = config.Default()

func main() {
	var configPath string
	var verbose int

	rootCmd := &cobra.Command{
		Use:     "pratt",
		Short:   "Parse, evaluate and format integer expressions",
		Version: version,

		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			load := config.LoadDefault
			if configPath != "" {
				load = func() (*config.Config, error) { return config.Load(configPath) }
			}
			loaded, err := load()
			if err != nil {
				return err
			}
			cfg = loaded
			cfg.Log.Verbosity += verbose
			commonlog.Configure(cfg.Log.Verbosity, cfg.LogFile())
			if cfg.Path != "" {
				commonlog.GetLogger("pratt.cli").Debugf("using config %s", cfg.Path)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: $"+config.EnvVar+" or ./pratt.toml)")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newEvalCmd())
	rootCmd.AddCommand(newHashCmd())
	rootCmd.AddCommand(newFmtCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newREPLCmd())
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newUICmd())

	if err := rootCmd.Execute(); err != nil {
		var r reportedError
		if !errors.As(err, &r) {
			fmt.Fprintln(os.Stderr, newStyles(cfg.Output.NoColor).Error.Render("error:"), err)
		}
		os.Exit(1)
	}
}

// reportedError marks an error that has already been shown to the user.
type reportedError struct {
	error
}

func (r reportedError) Unwrap() error { return r.error }
