package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/karelplanken/pourbaix/internal/app"
	"github.com/karelplanken/pourbaix/internal/cli"
	"github.com/karelplanken/pourbaix/internal/jobfile"
)

// main is the entrypoint for the pourbaix application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// An optional .env file in the working directory supplies MP_API_KEY.
	// Its values win over the inherited environment.
	_ = godotenv.Overload()

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// A panic anywhere in the pipeline surfaces as a clean error instead of
	// a crash.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application panicked: %v", r)
		}
	}()

	loader := jobfile.NewLoader()
	pourbaixApp := app.NewApp(outW, appConfig, loader)

	return pourbaixApp.Run(context.Background())
}
