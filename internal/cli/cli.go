package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/karelplanken/pourbaix/internal/app"
	"github.com/karelplanken/pourbaix/internal/pourbaix"
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
	flagSet := flag.NewFlagSet("pourbaix", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
pourbaix - potential-vs-pH stability diagrams from materials database entries.

Usage:
  pourbaix [options] ELEMENT [ELEMENT...]
  pourbaix [options] -f JOB_PATH

Arguments:
  ELEMENT
    One or more element symbols, for example Fe, or Fe Cu for a combined
    diagram. Fetched entries are cached; only missing elements hit the
    network.

Options:
`)
		flagSet.PrintDefaults()
	}

	jobFlag := flagSet.String("job", "", "Path to an HCL job file or a directory of job files.")
	fFlag := flagSet.String("f", "", "Path to an HCL job file or a directory of job files (shorthand).")
	entriesDirFlag := flagSet.String("entries-dir", app.DefaultEntriesDir, "Directory for cached entry files.")
	diagramsDirFlag := flagSet.String("diagrams-dir", app.DefaultDiagramsDir, "Directory for rendered diagrams.")
	concentrationFlag := flagSet.Float64("concentration", app.DefaultConcentration, "Assumed molar concentration of dissolved species.")
	showFlag := flagSet.Bool("show", false, "Open a window with the rendered diagram after the run.")
	noFilterFlag := flagSet.Bool("no-filter-solids", false, "Keep solid phases that are nowhere the most stable solid.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	jobPath := *jobFlag
	if jobPath == "" {
		jobPath = *fFlag
	}

	// Cache files and the output name are derived from the symbols, so
	// unknown or unsafe ones are refused before anything runs.
	elements := flagSet.Args()
	for _, symbol := range elements {
		if !pourbaix.KnownElement(symbol) {
			return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown element symbol %q", symbol)}
		}
	}

	if len(elements) == 0 && jobPath == "" {
		slog.Debug("No elements and no job path provided, printing usage.")
		flagSet.Usage()
		return nil, false, &ExitError{Code: 1, Message: "add at least one element symbol, or pass a job file with -f"}
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
		Elements:       elements,
		JobPath:        jobPath,
		EntriesDir:     *entriesDirFlag,
		DiagramsDir:    *diagramsDirFlag,
		Concentration:  *concentrationFlag,
		NoFilterSolids: *noFilterFlag,
		Show:           *showFlag,
		LogFormat:      logFormat,
		LogLevel:       logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
