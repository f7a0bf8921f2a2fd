package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/gitscm/pkg/config"
	"github.com/goliatone/gitscm/pkg/di"
)

// newRootCommand creates the root cobra command with all subcommands
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gitscm",
		Short: "Validate and search Git repositories for SCM subscriptions",
		Long: `gitscm checks Git repositories attached to project subscriptions.
It lists remote references the way git ls-remote does, probes the
server admin index page, and searches that index for repositories.
The same operations are exposed over HTTP with the serve command.

Configuration Sources (in precedence order):
  1. Command-line flags (highest priority)
  2. Environment variables (GITSCM_*)
  3. Configuration files (~/.config/gitscm/config.yaml)
  4. Built-in defaults (lowest priority)

Exit Codes:
  0  - Success
  1  - Generic error
  2  - Configuration error
  3  - Validation error (repository or admin check failed)
  4  - Network error (server could not listen)
  5  - File system error (store could not be written)
  6  - Unknown node or subscription
  7  - Usage error (missing or malformed arguments)
  9  - User interruption (SIGINT, SIGTERM)

Examples:
  gitscm validate --url https://scm.example.com/ --repository plugin --user junit --password secret
  gitscm status --url https://scm.example.com/ --index
  gitscm link 42 --store /var/lib/gitscm/store.yaml
  gitscm search service:scm:git:dig plug
  gitscm serve --addr :8080`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !needsContainer(cmd) {
				return nil
			}
			return initializeContainer(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			cleanupContainer()
		},
	}

	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return newUsageError("invalid flag usage", err)
	})

	config.AddFlags(cmd)

	cmd.AddCommand(
		newValidateCommand(),
		newStatusCommand(),
		newSubscriptionStatusCommand(),
		newLinkCommand(),
		newSearchCommand(),
		newConfigCommand(),
		newServeCommand(),
		newVersionCommand(),
	)

	return cmd
}

// executeContext runs the root command until done or interrupted.
func executeContext(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cmd.ExecuteContext(ctx)
	if err != nil && ctx.Err() != nil {
		return &CLIError{Code: ExitInterruptError, Message: "interrupted", Cause: err}
	}
	return err
}

func needsContainer(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help":
		return false
	}
	return true
}

// initializeContainer builds configuration from all sources and wires services.
func initializeContainer(cmd *cobra.Command) error {
	start := time.Now()

	var configFile string
	if cmd.Flags().Changed("config") {
		configFile, _ = cmd.Flags().GetString("config")
	}

	builder := config.NewBuilder().
		FromFile(configFile).
		FromEnv().
		FromFlags(cmd)

	var err error
	cfg, err = builder.Build()
	if err != nil {
		return newConfigError("failed to build configuration", err)
	}

	opts := []di.Option{di.WithConfig(cfg)}
	if cfg.Logging.Level == "debug" {
		opts = append(opts, di.WithInstrumentation())
	}
	opts = append(opts, extraOptions...)

	container, err = di.New(opts...)
	if err != nil {
		return newConfigError("failed to initialize dependencies", err)
	}

	commandName := cmd.Name()
	if cmd.Parent() != nil && cmd.Parent().Parent() != nil {
		commandName = cmd.Parent().Name() + " " + cmd.Name()
	}
	container.Logger().Debug("CLI container initialized",
		"command", commandName,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return nil
}

func cleanupContainer() {
	if container == nil {
		return
	}
	if err := container.Close(); err != nil {
		if logger := container.Logger(); logger != nil {
			logger.Warn("Container cleanup errors", "error", err)
		} else {
			fmt.Fprintf(os.Stderr, "gitscm: container cleanup warning: %v\n", err)
		}
	}
	container = nil
}
