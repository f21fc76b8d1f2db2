package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/docpubgo/internal/app"
	"github.com/vk/docpubgo/internal/switcher"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("docpubgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
docpubgo - versioned documentation publishing.

Usage:
  docpubgo --add <version> <repo> <registry_path>
  docpubgo [options] MANIFEST_PATH

Arguments:
  <version>       Sanitized version identifier ([A-Za-z0-9._-] only).
  <repo>          org/repo identifier of the hosting repository.
  <registry_path> Path to the switcher registry JSON file.
  MANIFEST_PATH   Path to a publish manifest .hcl file or a directory of them.

Options:
`)
		flagSet.PrintDefaults()
	}

	addFlag := flagSet.Bool("add", false, "Add or replace one version in the switcher registry.")
	manifestFlag := flagSet.String("manifest", "", "Path to the publish manifest file or directory.")
	orderFlag := flagSet.String("order", "newest-first", "Registry ordering policy. Options: 'newest-first' or 'semver'.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	order, err := switcher.ParseOrder(strings.ToLower(*orderFlag))
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("CLI parameter validation complete.")

	cfg := app.Config{
		Order:     order,
		LogFormat: logFormat,
		LogLevel:  logLevel,
	}

	if *addFlag {
		if flagSet.NArg() != 3 {
			return nil, false, &ExitError{Code: 2, Message: "--add requires exactly three arguments: <version> <repo> <registry_path>"}
		}
		cfg.Mode = app.ModeAdd
		cfg.Version = flagSet.Arg(0)
		cfg.Repo = flagSet.Arg(1)
		cfg.RegistryPath = flagSet.Arg(2)
	} else {
		path := *manifestFlag
		if path == "" && flagSet.NArg() > 0 {
			path = flagSet.Arg(0)
		}
		if path == "" {
			slog.Debug("No manifest path provided, printing usage and exiting.")
			flagSet.Usage()
			return nil, true, nil
		}
		cfg.Mode = app.ModePipeline
		cfg.ManifestPath = path
	}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}
