package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLinkCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "link <subscription>",
		Aliases: []string{"create"},
		Short:   "Validate the repository of a stored subscription",
		Long: `Link loads the parameters of a stored subscription, merged over its
node parameters, and validates the repository they point at.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSubscriptionID(args[0])
			if err != nil {
				return err
			}

			if err := container.Plugin().Link(cmd.Context(), id); err != nil {
				return classifyError(fmt.Sprintf("failed to link subscription %d", id), err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "subscription %d linked\n", id)
			return nil
		},
	}
}

func newSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <node> <criteria>",
		Short: "Search the admin index of a node for repositories",
		Long: `Search fetches the admin index page of a stored node and prints the
repositories whose name contains criteria, ignoring case.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			beans, err := container.Plugin().FindAllByName(cmd.Context(), args[0], args[1])
			if err != nil {
				return classifyError("search failed", err)
			}

			out := cmd.OutOrStdout()
			for _, bean := range beans {
				fmt.Fprintln(out, bean.Name)
			}
			return nil
		},
	}
}
