package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func searchCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "search <city>",
		Short: "Search listings in a city",
		Long:  "Fetches one page of listings for a supported city from the API server.",
		Example: `  psw search Miami
  psw search "Fort Lauderdale" --page 2
  psw search Hollywood --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := newClient().Search(cmd.Context(), args[0], page)
			if err != nil {
				return fmt.Errorf("searching %q: %w", args[0], err)
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), res)
			}
			return printListingsTable(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number, starting at 1")

	return cmd
}
