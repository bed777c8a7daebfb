package commands

import (
	"github.com/spf13/cobra"

	"github.com/h4ckm1n-dev/skyscanner-cli/internal/core"
)

func DeeplinksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deeplinks",
		Short: "Build Skyscanner booking links for the cheapest flights",
	}
	cmd.AddCommand(deeplinksExtractCmd())
	return cmd
}

func deeplinksExtractCmd() *cobra.Command {
	var (
		route routeFlags
		limit int
		save  bool
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Search, enrich through flight details and emit every link variant",
		Example: `  skyscanner deeplinks extract --from BKK --to CDG --depart 2025-03-15
  skyscanner deeplinks extract --from paris --to london --depart 2025-06-01 --limit 3 --save`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if route.missing() {
				return cmd.Help()
			}
			a := setup(cmd)
			ctx := cmd.Context()

			p, err := route.params(ctx, a)
			if err != nil {
				return a.fail("invalid route", err)
			}
			res, err := a.orch.ExtractDeeplinks(ctx, p, limit)
			if err != nil {
				return a.fail("extraction failed", err)
			}

			if save && len(res.Deeplinks) > 0 {
				if path, err := a.dumps.JSON("deeplinks", res.Deeplinks); err != nil {
					note("deeplinks not saved: %v", err)
				} else {
					note("deeplinks saved to %s", path)
				}
			}

			return a.emit(res, func() {
				a.text.Deeplinks(res.Deeplinks)
				a.text.Errors(res.Errors)
			})
		},
	}

	route.register(cmd)
	cmd.Flags().IntVar(&limit, "limit", core.DefaultDeeplinkLimit, "Number of flights to build links for")
	cmd.Flags().BoolVar(&save, "save", false, "Write the links as JSON in the output directory")

	return cmd
}
