package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/goliatone/gitscm/pkg/config"
	"github.com/goliatone/gitscm/pkg/di"
)

// Global variables for CLI state
var (
	container di.Container
	cfg       *config.Config

	// extraOptions are appended to the container options; tests use it to
	// swap the remote lister, admin client and store.
	extraOptions []di.Option
)

func main() {
	// A missing .env file is not an error
	_ = godotenv.Load()

	if err := execute(os.Args[1:]); err != nil {
		var cliErr *CLIError
		if errors.As(err, &cliErr) {
			fmt.Fprintf(os.Stderr, "gitscm: %s\n", cliErr.Message)
			if cliErr.Cause != nil {
				fmt.Fprintf(os.Stderr, "  Cause: %v\n", cliErr.Cause)
			}
			os.Exit(cliErr.ExitCode())
		}

		fmt.Fprintf(os.Stderr, "gitscm: %v\n", err)
		os.Exit(ExitGenericError)
	}
}

// execute builds the root command and runs it with args.
func execute(args []string) error {
	rootCmd := newRootCommand()
	rootCmd.SetArgs(args)
	// PersistentPostRun is skipped when a command fails
	defer cleanupContainer()
	return executeContext(rootCmd)
}
