package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/pulsartime/internal/app"
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
	flagSet := flag.NewFlagSet("pulsartime", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
pulsartime - Evaluate a composable pulsar timing model.

Usage:
  pulsartime [options] [MODEL_PATH]

Arguments:
  MODEL_PATH
    Path to a .hcl, .toml or .yaml model file, or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	modelFlag := flagSet.String("model", "", "Path to the model file or directory.")
	mFlag := flagSet.String("m", "", "Path to the model file or directory (shorthand).")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	startFlag := flagSet.Float64("start", 55000, "First epoch of the evaluation grid, in MJD.")
	endFlag := flagSet.Float64("end", 55001, "Last epoch of the evaluation grid, in MJD.")
	pointsFlag := flagSet.Int("points", 5, "Number of grid epochs.")
	freqFlag := flagSet.Float64("freq", 1400, "Observing frequency of the grid, in MHz.")
	listTypesFlag := flagSet.Bool("list-types", false, "Print the registered component types and exit.")
	emitFlag := flagSet.String("emit", app.EmitTable, "Output. Options: 'table', 'hcl', 'toml' or 'yaml'.")
	watchFlag := flagSet.Bool("watch", false, "Re-run every time the model changes on disk.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *modelFlag != "" {
		path = *modelFlag
	} else if *mFlag != "" {
		path = *mFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Model path determined.", "path", path)

	if path == "" && !*listTypesFlag {
		slog.Debug("No model path provided, printing usage and exiting.")
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

	emit := strings.ToLower(*emitFlag)
	switch emit {
	case app.EmitTable, app.EmitHCL, app.EmitTOML, app.EmitYAML:
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid emit: must be 'table', 'hcl', 'toml', or 'yaml'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ModelPath: path,
		LogFormat: logFormat,
		LogLevel:  logLevel,
		Start:     *startFlag,
		End:       *endFlag,
		Points:    *pointsFlag,
		FreqMHz:   *freqFlag,
		ListTypes: *listTypesFlag,
		Emit:      emit,
		Watch:     *watchFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
