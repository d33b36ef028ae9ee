// Command loonengine calculates Dutch monthly payroll from the command line
// and serves the same engine over HTTP.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/loonengine/payroll-engine/internal/calculation"
	"github.com/loonengine/payroll-engine/internal/config"
	"github.com/loonengine/payroll-engine/internal/logging"
	"github.com/loonengine/payroll-engine/internal/output"
	"github.com/loonengine/payroll-engine/internal/ratetable"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// rootOptions are the persistent flags shared by every subcommand. Empty
// values fall back to the LOONENGINE_* environment.
type rootOptions struct {
	envFile  string
	ratesDir string
	format   string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "loonengine",
		Short:         "Dutch payroll calculation engine",
		Long:          "loonengine computes net salary, employee insurance contributions, wage tax and holiday allowance for Dutch monthly payroll.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.envFile, "env-file", ".env", "optional .env file with LOONENGINE_* settings")
	flags.StringVar(&opts.ratesDir, "rates-dir", "", "directory of extra rate table YAML files (overrides built-in years)")
	flags.StringVarP(&opts.format, "format", "f", "console", fmt.Sprintf("output format %v", output.AvailableFormatterNames()))
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")

	cmd.AddCommand(
		newCalculateCmd(opts),
		newYTDCmd(opts),
		newValidateCmd(),
		newRateTableCmd(opts),
		newServeCmd(opts),
		newExampleCmd(),
	)
	return cmd
}

// settings loads the environment and applies flag overrides.
func (o *rootOptions) settings() (*config.Config, error) {
	cfg, err := config.Load(o.envFile)
	if err != nil {
		return nil, err
	}
	if o.ratesDir != "" {
		cfg.RatesDir = o.ratesDir
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	return cfg, cfg.Validate()
}

func loadRates(cfg *config.Config) (*ratetable.Registry, error) {
	rates, err := ratetable.Builtin()
	if err != nil {
		return nil, err
	}
	if cfg.RatesDir == "" {
		return rates, nil
	}
	return ratetable.LoadDir(cfg.RatesDir, rates)
}

func newLogger(cfg *config.Config, w io.Writer) (zerolog.Logger, error) {
	return logging.New(w, cfg.LogLevel, cfg.LogFormat)
}

func newEngine(cfg *config.Config, rates *ratetable.Registry, log zerolog.Logger) *calculation.Engine {
	engine := calculation.NewEngine(rates)
	engine.TaxProration = cfg.TaxProration
	engine.SetLogger(logging.NewAdapter(log, "engine"))
	return engine
}

func formatter(name string) (output.Formatter, error) {
	return output.Resolve(name)
}
