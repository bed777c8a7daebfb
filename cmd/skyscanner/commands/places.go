package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

func PlacesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "places",
		Short: "Resolve cities and airports to Skyscanner codes",
	}
	cmd.AddCommand(placesSearchCmd())
	return cmd
}

func placesSearchCmd() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:     "search [query]",
		Short:   "Search places by name or code",
		Example: `  skyscanner places search --query paris
  skyscanner places search bangkok --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if query == "" && len(args) > 0 {
				query = strings.Join(args, " ")
			}
			if strings.TrimSpace(query) == "" {
				return cmd.Help()
			}
			a := setup(cmd)

			res, err := a.orch.SearchPlaces(cmd.Context(), query)
			if err != nil {
				return a.fail("places search failed", err)
			}
			return a.emit(res, func() {
				a.text.Places(res.Places)
				a.text.Errors(res.Errors)
			})
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "City, airport name or code")

	return cmd
}
