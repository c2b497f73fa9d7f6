package cmd

import (
	"net/url"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/property-search/internal/cities"
	"github.com/donaldgifford/property-search/internal/tui"
	"github.com/donaldgifford/property-search/internal/widget"
)

func browseCmd() *cobra.Command {
	var city string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse listings interactively",
		Long: "Opens the search widget in the terminal: pick a city, then scroll\n" +
			"through results; further pages load as you reach the bottom.",
		Example: `  psw browse
  psw browse --city Miami`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			location := ""
			if city != "" {
				location = "/results?" + url.Values{"city": {city}}.Encode()
			}

			b, err := tui.New(cmd.Context(), widget.New(cities.Default()), newClient(), location)
			if err != nil {
				return err
			}

			_, err = tea.NewProgram(b, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
	cmd.Flags().StringVar(&city, "city", "", "start with results for this city")

	return cmd
}
