// Package cli provides the command-line interface for polydec.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/polydec"
	"github.com/gogpu/polydec/internal/config"
)

// Version is set at build time.
var Version = polydec.Version

// app is the state shared by one command invocation.
type app struct {
	cfg     config.Config
	cleanup func() error

	configPath string
	logLevel   string
	logFile    string
	verbose    bool
}

// printer formats counts for humans, e.g. 12,345.
var printer = message.NewPrinter(language.English)

// NewRootCmd builds the polydec command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "polydec",
		Short: "Polyline decimation",
		Long: `polydec reduces the number of points in polyline meshes while keeping
the shape, removing the points whose removal changes it least.

Settings come from POLYDEC_* environment variables, then an optional YAML
file given with --config, then command-line flags.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.cleanup != nil {
				return a.cleanup()
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML settings file")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "",
		"set the logging level (can be one of: debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "also write JSON logs to this file")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "shorthand for --log-level debug")

	cmd.AddCommand(newDecimateCmd(a))
	cmd.AddCommand(newInspectCmd(a))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// setup loads settings and installs the library logger.
func (a *app) setup(cmd *cobra.Command) error {
	a.cfg = config.Load()
	if a.configPath != "" {
		cfg, err := a.cfg.Overlay(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	flags := cmd.Flags()
	if flags.Changed("log-file") {
		a.cfg.LogFile = a.logFile
	}
	if flags.Changed("log-level") {
		level, err := parseLevel(a.logLevel)
		if err != nil {
			return err
		}
		a.cfg.LogLevel = level
	}
	if a.verbose {
		a.cfg.LogLevel = slog.LevelDebug
	}

	logger, cleanup := config.SetupLogger(cmd.ErrOrStderr(), a.cfg.LogFile, a.cfg.LogLevel)
	a.cleanup = cleanup
	polydec.SetLogger(logger)
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// Execute runs the root command and reports errors on stderr.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
