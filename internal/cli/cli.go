package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/simforge/internal/app"
	"github.com/spf13/cobra"
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

func usageError(err error) *ExitError {
	return &ExitError{Code: 2, Message: err.Error()}
}

// options holds the raw flag values before they are validated into an
// app.Config.
type options struct {
	input           string
	logFormat       string
	logLevel        string
	healthcheckPort int
	unused          string
	errorOverride   bool
	sortAlpha       bool
	dumpSyntax      bool
	meshOnly        bool
}

func newRootCommand(opts *options, run func(args []string) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simforge [flags] [INPUT] [path/key=value ...]",
		Short: "simforge - builds a simulation object graph from an input file",
		Long: `simforge reads a hierarchical HCL or YAML input file, builds every
simulation object it describes in dependency order and hands the result to
the executioner.

Positional arguments containing '=' override input parameters, e.g.
  simforge -i input.hcl Mesh/nx=20 Executioner/num_steps=5`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "", "Path to the input file (.hcl, .yaml or .yml).")
	f.StringVar(&opts.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	f.StringVar(&opts.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	f.IntVar(&opts.healthcheckPort, "healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	f.StringVar(&opts.unused, "unused", "warn", "Policy for unused input parameters: 'ignore', 'warn' or 'error'.")
	f.BoolVar(&opts.errorOverride, "error-override", false, "Fail when a parameter is assigned more than once.")
	f.BoolVar(&opts.sortAlpha, "sort-alpha", false, "Sort the syntax dump alphabetically.")
	f.BoolVar(&opts.dumpSyntax, "dump-syntax", false, "Print every registered syntax and object type, then exit.")
	f.BoolVar(&opts.meshOnly, "mesh-only", false, "Stop after the mesh has been set up.")
	return cmd
}

// splitArgs separates the optional input path from the overrides.
func splitArgs(input string, args []string) (string, []string, error) {
	var overrides []string
	for _, arg := range args {
		if strings.Contains(arg, "=") {
			overrides = append(overrides, arg)
			continue
		}
		if input != "" {
			return "", nil, fmt.Errorf("unexpected argument %q: input is already %q", arg, input)
		}
		input = arg
	}
	return input, overrides, nil
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	opts := &options{}
	var config *app.Config

	cmd := newRootCommand(opts, func(rest []string) error {
		input, overrides, err := splitArgs(opts.input, rest)
		if err != nil {
			return usageError(err)
		}
		if input == "" && !opts.dumpSyntax {
			return errNoInput
		}

		cfg, err := app.NewConfig(app.Config{
			InputPath:       input,
			Overrides:       overrides,
			LogFormat:       strings.ToLower(opts.logFormat),
			LogLevel:        strings.ToLower(opts.logLevel),
			HealthcheckPort: opts.healthcheckPort,
			Unused:          strings.ToLower(opts.unused),
			ErrorOverride:   opts.errorOverride,
			SortAlpha:       opts.sortAlpha,
			DumpSyntax:      opts.dumpSyntax,
			MeshOnly:        opts.meshOnly,
		})
		if err != nil {
			return usageError(err)
		}
		config = cfg
		return nil
	})
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	err := cmd.Execute()
	var exitErr *ExitError
	switch {
	case errors.Is(err, errNoInput):
		slog.Debug("No input provided, printing usage and exiting.")
		_ = cmd.Usage()
		return nil, true, nil
	case errors.As(err, &exitErr):
		return nil, false, exitErr
	case err != nil:
		return nil, false, usageError(err)
	case config == nil:
		// --help was handled by cobra.
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

var errNoInput = errors.New("no input file given")
