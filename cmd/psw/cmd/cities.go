package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func citiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cities [filter]",
		Short: "List supported cities",
		Long:  "Lists the cities the API server accepts, optionally filtered by a case-insensitive substring.",
		Example: `  psw cities
  psw cities beach`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := ""
			if len(args) == 1 {
				term = args[0]
			}
			names, err := newClient().Cities(cmd.Context(), term)
			if err != nil {
				return fmt.Errorf("listing cities: %w", err)
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), names)
			}
			return printCities(cmd.OutOrStdout(), names)
		},
	}
}
