package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/harrison/claudestream/internal/config"
	"github.com/harrison/claudestream/internal/logger"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for claudestream
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claudestream",
		Short: "Inspect assistant execution results and stream updates",
		Long: `claudestream reads execution results and stream updates that an
execution layer has already written as JSON, checks them against their
field contract, and prints the values derived from them (error state,
error message, tool names, progress).`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: .claudestream/config.yaml)")
	cmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.PersistentFlags().Bool("strict", false, "Reject stream updates with unknown types")
	cmd.PersistentFlags().String("color", "", "Color output: auto, always, never")

	cmd.AddCommand(NewInspectCommand())
	cmd.AddCommand(NewResultCommand())
	cmd.AddCommand(NewSampleCommand())

	return cmd
}

// loadConfig resolves the config file and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.LoadConfig(path)
	} else {
		cfg, err = config.LoadConfigFromDir(".")
	}
	if err != nil {
		return nil, err
	}

	var logLevel, color *string
	var strict *bool
	if cmd.Flags().Changed("log-level") {
		v, _ := cmd.Flags().GetString("log-level")
		logLevel = &v
	}
	if cmd.Flags().Changed("strict") {
		v, _ := cmd.Flags().GetBool("strict")
		strict = &v
	}
	if cmd.Flags().Changed("color") {
		v, _ := cmd.Flags().GetString("color")
		color = &v
	}
	cfg.MergeWithFlags(logLevel, strict, color)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the console logger for a command, honouring the color mode.
func newLogger(cfg *config.Config, w io.Writer) *logger.ConsoleLogger {
	cl := logger.NewConsoleLogger(w, cfg.LogLevel)
	cl.SetColor(useColor(cfg.Color, w))
	return cl
}

// useColor decides whether w should receive ANSI colors.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
