// Package cli runs the calculators from the command line with JSON in and JSON out.
package cli

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"calorie-workers/internal/common/errors"
	"calorie-workers/internal/common/logger"
	"calorie-workers/internal/nutrition"
	"calorie-workers/pkg/catalogfile"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitUsage       = 1
	ExitCalculation = 2
)

// errUsage marks failures that are the caller's fault rather than the calculator's.
var errUsage = stderrors.New("usage error")

type env struct {
	catalog nutrition.Catalog
	log     logger.Logger
}

type command struct {
	summary string
	// noInput commands ignore -input/-file/stdin.
	noInput bool
	run     func(e *env, raw []byte) (interface{}, error)
}

var commands = map[string]command{
	"intake":   {summary: `{"frequencies":[...]} -> consumed calories`, run: runIntake},
	"burn":     {summary: `{"durations":[...]} -> burned calories`, run: runBurn},
	"bmi":      {summary: `{"heightUnit","heightPrimary","heightSecondary","weightUnit","weightValue"} -> BMI`, run: runBMI},
	"net":      {summary: `{"consumedCalories","burnedCalories"} -> net calorie feedback`, run: runNet},
	"pipeline": {summary: `{"frequencies","durations","measurement"?} -> daily report`, run: runPipeline},
	"catalog":  {summary: "print the active catalog", noInput: true, run: runCatalog},
}

// Run executes one subcommand and returns the process exit code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		usage(stderr)
		if len(args) == 0 {
			return ExitUsage
		}
		return ExitOK
	}

	name := args[0]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", name)
		usage(stderr)
		return ExitUsage
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	input := fs.String("input", "", "JSON input inline")
	file := fs.String("file", "", "Read JSON input from a file ('-' for stdin)")
	catalogPath := fs.String("catalog", "", "Catalog file (default: built-in catalog)")
	logLevel := fs.String("log-level", "error", "Log level for diagnostics on stderr")
	pretty := fs.Bool("pretty", false, "Indent JSON output")
	if err := fs.Parse(args[1:]); err != nil {
		if stderrors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}

	log := logger.NewStructured(*logLevel, "console").WithFields(map[string]interface{}{"command": name})

	catalog, err := catalogfile.LoadCatalog(*catalogPath)
	if err != nil {
		fmt.Fprintf(stderr, "load catalog: %v\n", err)
		return ExitUsage
	}
	log.Debug("catalog loaded", map[string]interface{}{
		"foods":      len(catalog.Foods),
		"activities": len(catalog.Activities),
		"path":       *catalogPath,
	})

	var raw []byte
	if !cmd.noInput {
		raw, err = readInput(*input, *file, stdin)
		if err != nil {
			fmt.Fprintf(stderr, "read input: %v\n", err)
			return ExitUsage
		}
	}

	result, err := cmd.run(&env{catalog: catalog, log: log}, raw)
	if err != nil {
		return reportError(stderr, log, err)
	}

	enc := json.NewEncoder(stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(stderr, "write output: %v\n", err)
		return ExitUsage
	}
	return ExitOK
}

func readInput(inline, file string, stdin io.Reader) ([]byte, error) {
	switch {
	case inline != "" && file != "":
		return nil, fmt.Errorf("use either -input or -file, not both")
	case inline != "":
		return []byte(inline), nil
	case file != "" && file != "-":
		return os.ReadFile(file)
	default:
		return io.ReadAll(stdin)
	}
}

// decode is strict so a misspelled field fails loudly instead of reading as zero.
func decode(raw []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: decode input: %v", errUsage, err)
	}
	return nil
}

func reportError(stderr io.Writer, log logger.Logger, err error) int {
	if stderrors.Is(err, errUsage) {
		fmt.Fprintln(stderr, err.Error())
		return ExitUsage
	}

	stdErr := errors.FromCalculationError(err)
	log.Debug("calculation failed", map[string]interface{}{"error": err})

	_ = json.NewEncoder(stderr).Encode(map[string]string{
		"error":   string(stdErr.Code),
		"message": stdErr.Details,
	})

	switch stdErr.Code {
	case errors.ErrCodeDimensionMismatch, errors.ErrCodeInvalidMeasurement:
		return ExitCalculation
	default:
		return ExitUsage
	}
}

func usage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "Usage: calorie-cli <command> [-input JSON | -file PATH] [-catalog PATH] [-pretty]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, name := range names {
		fmt.Fprintf(w, "  %-9s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 ok, 1 usage or parse error, 2 dimension mismatch or invalid measurement")
}
