package commands

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/h4ckm1n-dev/skyscanner-cli/internal/core"
	perr "github.com/h4ckm1n-dev/skyscanner-cli/internal/errors"
)

type trendsResult struct {
	From     string            `json:"from"`
	To       string            `json:"to"`
	Currency string            `json:"currency"`
	Points   []core.TrendPoint `json:"points"`
	Cheapest core.TrendPoint   `json:"cheapest"`
}

func TrendsCmd() *cobra.Command {
	var from, to, start string

	cmd := &cobra.Command{
		Use:     "trends",
		Short:   "Show synthetic weekly price trends for a route",
		Example: `  skyscanner trends --from CDG --to JFK --start 2025-06-01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == "" || to == "" {
				return cmd.Help()
			}
			a := setup(cmd)

			begin := time.Now().UTC().Truncate(24 * time.Hour)
			if start != "" {
				t, err := time.Parse("2006-01-02", core.NormalizeDate(start))
				if err != nil {
					return a.fail("invalid start", perr.Newf(perr.ErrorCodeInvalidArgument, "start must be a date, got %q", start))
				}
				begin = t
			}

			res := trendsResult{
				From:     strings.ToUpper(from),
				To:       strings.ToUpper(to),
				Currency: a.cfg.API.Currency,
				Points:   core.PriceTrends(strings.ToUpper(from), strings.ToUpper(to), begin),
			}
			res.Cheapest, _ = core.CheapestTrend(res.Points)

			return a.emit(res, func() { a.text.Trends(res.Points, res.Currency) })
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Origin code (required)")
	cmd.Flags().StringVar(&to, "to", "", "Destination code (required)")
	cmd.Flags().StringVar(&start, "start", "", "First week, YYYY-MM-DD (default today)")

	return cmd
}
