package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	var pf *parameterFlags
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "List the remote references of a repository",
		Long: `Validate lists the references advertised by <url>/<repository>, like
git ls-remote. The repository is rejected when it cannot be listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := pf.resolve(cmd)
			if err != nil {
				return err
			}

			listing, err := container.Plugin().ValidateRepository(cmd.Context(), params)
			if err != nil {
				return classifyError("repository validation failed", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), listing)
			return nil
		},
	}
	pf = addParameterFlags(cmd)
	return cmd
}

func newStatusCommand() *cobra.Command {
	var pf *parameterFlags
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Probe the server admin index page",
		Long: `Status fetches the admin index page of the server when --index is set
and the URL is http or https. Other servers are reported up without a probe.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := pf.resolve(cmd)
			if err != nil {
				return err
			}

			if _, err := container.Plugin().CheckStatus(cmd.Context(), params); err != nil {
				return classifyError("admin check failed", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "up")
			return nil
		},
	}
	pf = addParameterFlags(cmd)
	return cmd
}

func newSubscriptionStatusCommand() *cobra.Command {
	var pf *parameterFlags
	cmd := &cobra.Command{
		Use:   "subscription-status",
		Short: "Summarize the references of a subscribed repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := pf.resolve(cmd)
			if err != nil {
				return err
			}

			status, err := container.Plugin().CheckSubscriptionStatus(cmd.Context(), params)
			if err != nil {
				return classifyError("subscription status failed", err)
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(status)
		},
	}
	pf = addParameterFlags(cmd)
	return cmd
}
