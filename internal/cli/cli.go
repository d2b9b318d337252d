package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/specialistvlad/skymodel/internal/app"
	"github.com/specialistvlad/skymodel/internal/document"
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	CodeFailure = 1
	CodeUsage   = 2
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

// options collects the persistent flags shared by every command.
type options struct {
	logLevel  string
	logFormat string
	s3        document.S3Config
	overrides []string
	metrics   bool
}

// Execute runs the command line in args. Results go to outW, logs and usage
// messages to errW. Any returned error is an *ExitError.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	cmd := NewRootCommand(outW, errW)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	// Anything cobra rejects before a command runs is a usage problem.
	return &ExitError{Code: CodeUsage, Message: err.Error()}
}

// NewRootCommand builds the skymodel command tree.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	opts := &options{s3: document.S3ConfigFromEnv()}

	root := &cobra.Command{
		Use:   "skymodel",
		Short: "Inspect and validate astrophysical sky models",
		Long: `skymodel loads sky model documents (YAML or JSON, local or s3://bucket/key)
into a tree of sources, spectral components and parameters, resolves the
links between parameters and reports on the result.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flags.StringVar(&opts.s3.Region, "s3-region", opts.s3.Region, "Region of the S3 bucket holding s3:// models.")
	flags.StringVar(&opts.s3.Endpoint, "s3-endpoint", opts.s3.Endpoint, "Custom S3 endpoint, such as a local MinIO.")
	flags.BoolVar(&opts.s3.PathStyle, "s3-path-style", opts.s3.PathStyle, "Use path-style S3 addressing.")
	flags.StringArrayVar(&opts.overrides, "set", nil, "Override a parameter after loading, as path=value. Repeatable.")
	flags.BoolVar(&opts.metrics, "metrics", false, "Print load metrics after the command.")

	root.AddCommand(
		showCommand(opts, outW, errW),
		paramsCommand(opts, outW, errW),
		getCommand(opts, outW, errW),
		fluxCommand(opts, outW, errW),
		checkCommand(opts, outW, errW),
		functionsCommand(opts, outW, errW),
	)
	return root
}

// newApp validates the options and builds the application for modelPath.
func newApp(opts *options, modelPath string, outW, errW io.Writer) (*app.App, error) {
	slog.Debug("Building application.", "model", modelPath)
	cfg, err := app.NewConfig(app.Config{
		ModelPath: modelPath,
		LogLevel:  opts.logLevel,
		LogFormat: opts.logFormat,
		S3:        opts.s3,
		Overrides: opts.overrides,
		Metrics:   opts.metrics,
	})
	if err != nil {
		return nil, &ExitError{Code: CodeUsage, Message: err.Error()}
	}
	a, err := app.NewApp(outW, errW, cfg, nil)
	if err != nil {
		return nil, &ExitError{Code: CodeFailure, Message: err.Error()}
	}
	return a, nil
}

// run executes fn against a freshly built application and maps its error.
func run(cmd *cobra.Command, opts *options, modelPath string, outW, errW io.Writer, fn func(context.Context, *app.App) error) error {
	a, err := newApp(opts, modelPath, outW, errW)
	if err != nil {
		return err
	}
	ctx := a.Context(cmd.Context())
	if err := fn(ctx, a); err != nil {
		return &ExitError{Code: CodeFailure, Message: err.Error()}
	}
	if opts.metrics {
		if err := a.WriteMetrics(); err != nil {
			return &ExitError{Code: CodeFailure, Message: err.Error()}
		}
	}
	return nil
}

func showCommand(opts *options, outW, errW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "show MODEL",
		Short: "Print the model tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args[0], outW, errW, func(ctx context.Context, a *app.App) error {
				return a.Show(ctx)
			})
		},
	}
}

func paramsCommand(opts *options, outW, errW io.Writer) *cobra.Command {
	var freeOnly bool
	cmd := &cobra.Command{
		Use:   "params MODEL",
		Short: "List the model parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args[0], outW, errW, func(ctx context.Context, a *app.App) error {
				return a.Params(ctx, freeOnly)
			})
		},
	}
	cmd.Flags().BoolVar(&freeOnly, "free", false, "Only list free parameters.")
	return cmd
}

func getCommand(opts *options, outW, errW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "get MODEL PATH",
		Short: "Print the value of a parameter or the element at a path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args[0], outW, errW, func(ctx context.Context, a *app.App) error {
				return a.Get(ctx, args[1])
			})
		},
	}
}

func fluxCommand(opts *options, outW, errW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "flux MODEL SOURCE ENERGY...",
		Short: "Evaluate the differential flux of a source",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			energies := make([]float64, 0, len(args)-2)
			for _, raw := range args[2:] {
				e, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return &ExitError{Code: CodeUsage, Message: fmt.Sprintf("invalid energy '%s': %v", raw, err)}
				}
				energies = append(energies, e)
			}
			return run(cmd, opts, args[0], outW, errW, func(ctx context.Context, a *app.App) error {
				return a.Flux(ctx, args[1], energies)
			})
		},
	}
}

func checkCommand(opts *options, outW, errW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "check DIR",
		Short: "Parse every model document under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, "", outW, errW, func(ctx context.Context, a *app.App) error {
				return a.Check(ctx, args[0])
			})
		},
	}
}

func functionsCommand(opts *options, outW, errW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "functions",
		Short: "List the function catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, "", outW, errW, func(_ context.Context, a *app.App) error {
				return a.Functions()
			})
		},
	}
}
