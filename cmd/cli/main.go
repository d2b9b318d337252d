package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/skymodel/internal/cli"
)

// main is the entrypoint for the skymodel application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, errW io.Writer, args []string) (err error) {
	// A panic past this point is a bug; report it as a failure instead of a
	// stack trace.
	defer func() {
		if r := recover(); r != nil {
			err = &cli.ExitError{Code: cli.CodeFailure, Message: fmt.Sprintf("application panicked: %v", r)}
		}
	}()
	return cli.Execute(context.Background(), args, outW, errW)
}
