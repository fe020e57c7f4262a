package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/k2700go/internal/app"
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

// Parse processes command-line arguments. It returns a populated
// app.Config, a boolean indicating if the program should exit cleanly,
// or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("k2700", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
k2700 - drive a Keithley Multimeter 2700 over RS-232 or TCP.

Usage:
  k2700 [options] [SESSION_PATH]

Arguments:
  SESSION_PATH
    Path to a session .hcl file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	sessionFlag := flagSet.String("session", "", "Path to the session file or directory.")
	sFlag := flagSet.String("s", "", "Path to the session file or directory (shorthand).")
	probeFlag := flagSet.Bool("probe", false, "Test connectivity: open the port and ask the instrument to identify itself.")
	listPortsFlag := flagSet.Bool("list-ports", false, "List the serial ports visible to the OS and exit.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	statusPortFlag := flagSet.Int("status-port", -1, "Override the session's status server port. 0 disables the server.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *sessionFlag != "" {
		path = *sessionFlag
	} else if *sFlag != "" {
		path = *sFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Session path determined.", "path", path)

	if path == "" && !*listPortsFlag {
		slog.Debug("No session path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
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

	if *probeFlag && *listPortsFlag {
		return nil, false, &ExitError{Code: 2, Message: "-probe and -list-ports are mutually exclusive"}
	}

	if *statusPortFlag > 65535 {
		return nil, false, &ExitError{Code: 2, Message: "invalid status-port: must be at most 65535"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		SessionPath: path,
		Probe:       *probeFlag,
		ListPorts:   *listPortsFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
		StatusPort:  *statusPortFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
