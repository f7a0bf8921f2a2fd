package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newConfigCommand manages platform configuration values held in the store,
// such as service:scm:git:sslVerify.
func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write platform configuration values in the store",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print a configuration value",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				value, ok, err := container.Store().Configuration(args[0])
				if err != nil {
					return classifyError("failed to read configuration", err)
				}
				if !ok {
					return &CLIError{Code: ExitNotFoundError, Message: fmt.Sprintf("configuration %q is not set", args[0])}
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Store a configuration value",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := container.Store().SetConfiguration(args[0], args[1]); err != nil {
					return newFileError("failed to write configuration", err)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "unset <key>",
			Short: "Remove a configuration value",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := container.Store().DeleteConfiguration(args[0]); err != nil {
					return newFileError("failed to write configuration", err)
				}
				return nil
			},
		},
	)

	return cmd
}
