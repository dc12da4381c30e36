package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/bindery/internal/app"
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
	flagSet := flag.NewFlagSet("bindery", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
Bindery - composable configuration bundles for an extensible parsing pipeline.

Usage:
  bindery [options] [BUNDLES_PATH]

Arguments:
  BUNDLES_PATH
    Path to a single .hcl file or a directory containing .hcl bundle definitions.

Options:
`)
		flagSet.PrintDefaults()
	}

	bundlesFlag := flagSet.String("bundles", "", "Path to the bundle definition file or directory.")
	bFlag := flagSet.String("b", "", "Path to the bundle definition file or directory (shorthand).")
	listFlag := flagSet.Bool("list", false, "List all registered bundle names.")
	showFlag := flagSet.String("show", "", "Render the named bundle and exit.")
	useFlag := flagSet.String("use", "", "Comma-separated bundle names to compose into an effective configuration.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *bundlesFlag != "" {
		path = *bundlesFlag
	} else if *bFlag != "" {
		path = *bFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Bundles path determined.", "path", path)

	if !*listFlag && *showFlag == "" && *useFlag == "" && path == "" {
		slog.Debug("No operation requested, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	if *showFlag != "" && *useFlag != "" {
		return nil, false, &ExitError{Code: 2, Message: "-show and -use are mutually exclusive"}
	}

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
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		BundlesPath: path,
		List:        *listFlag,
		Show:        *showFlag,
		Use:         splitNames(*useFlag),
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// splitNames splits a comma-separated bundle list, trimming whitespace and
// dropping empty entries.
func splitNames(s string) []string {
	if s == "" {
		return nil
	}
	var names []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
