package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/h4ckm1n-dev/skyscanner-cli/internal/core"
	perr "github.com/h4ckm1n-dev/skyscanner-cli/internal/errors"
	"github.com/h4ckm1n-dev/skyscanner-cli/internal/output"
)

func FlightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flights",
		Short: "Search flights and fetch itinerary details",
	}
	cmd.AddCommand(flightsSearchCmd())
	cmd.AddCommand(flightsDetailsCmd())
	return cmd
}

func flightsSearchCmd() *cobra.Command {
	var (
		route        routeFlags
		filter       core.FilterSpec
		sortKey      string
		page         int
		pageSizeFlag int
		report       bool
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search for flights",
		Example: `  skyscanner flights search --from CDG --to JFK --depart 2025-06-01
  skyscanner flights search --from paris --to bangkok --depart 15/03/2025 --return 22/03/2025 --max-stops 1 --sort duration_asc
  skyscanner flights search --from CDG --to BKK --depart 2025-03-15 --airline "Air France" --max-price 900 --report --mode live`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if route.missing() {
				return cmd.Help()
			}
			a := setup(cmd)
			ctx := cmd.Context()

			key, ok := core.ParseSortKey(sortKey)
			if !ok {
				return a.fail("invalid sort", perr.Newf(perr.ErrorCodeInvalidArgument, "unknown sort %q, use one of %s", sortKey, sortKeyList()))
			}
			p, err := route.params(ctx, a)
			if err != nil {
				return a.fail("invalid route", err)
			}

			if !cmd.Flags().Changed("max-price") {
				filter.MaxPrice = core.NoPriceCap
			}
			q := core.FlightQuery{Params: p, Filter: filter, Sort: key}
			res, err := a.orch.SearchFlights(ctx, q)
			if err != nil {
				return a.fail("search failed", err)
			}

			if report {
				if path, err := a.dumps.Write("flights", "md", output.Report(q, res, a.cfg.API.Locale)); err != nil {
					note("report not saved: %v", err)
				} else {
					note("report saved to %s", path)
				}
			}

			size := pageSize(pageSizeFlag, a.cfg.Output.PageSize)
			page = max(page, 1)
			flights, pages := core.Paginate(res.Flights, page, size)
			return a.emit(res, func() {
				a.text.Flights(flights, (page-1)*size+1, page, pages, res.TotalFound)
				a.text.Session(res.Flights)
				a.text.Errors(res.Errors)
			})
		},
	}

	route.register(cmd)
	cmd.Flags().Float64Var(&filter.MaxPrice, "max-price", 0, "Maximum price (no limit when unset)")
	cmd.Flags().IntVar(&filter.MaxStops, "max-stops", core.Unlimited, "Maximum stops per leg")
	cmd.Flags().StringSliceVar(&filter.Airlines, "airline", nil, "Keep flights operated by these airlines (repeatable)")
	cmd.Flags().StringVar(&sortKey, "sort", string(core.SortPriceAsc), "Sort order: "+sortKeyList())
	cmd.Flags().IntVar(&page, "page", 1, "Result page to show")
	cmd.Flags().IntVar(&pageSizeFlag, "page-size", 0, "Results per page (default from config)")
	cmd.Flags().BoolVar(&report, "report", false, "Save a Markdown report in the output directory")

	return cmd
}

func flightsDetailsCmd() *cobra.Command {
	var (
		route   routeFlags
		session string
	)

	cmd := &cobra.Command{
		Use:   "details",
		Short: "Fetch detailed itineraries of a search session",
		Example: `  skyscanner flights details --from CDG --to JFK --depart 2025-06-01 --session <sessionId>`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if route.missing() || session == "" {
				return cmd.Help()
			}
			a := setup(cmd)
			ctx := cmd.Context()

			p, err := route.params(ctx, a)
			if err != nil {
				return a.fail("invalid route", err)
			}
			res, err := a.orch.FlightDetails(ctx, p, session)
			if err != nil {
				return a.fail("details failed", err)
			}
			return a.emit(res, func() {
				a.text.Flights(res.Flights, 1, 1, 1, res.TotalFound)
				a.text.Errors(res.Errors)
			})
		},
	}

	route.register(cmd)
	cmd.Flags().StringVar(&session, "session", "", "Session id returned by flights search (required)")

	return cmd
}

// pageSize picks the flag, then the config, then core.DefaultPageSize
func pageSize(flag, configured int) int {
	switch {
	case flag > 0:
		return flag
	case configured > 0:
		return configured
	}
	return core.DefaultPageSize
}

func sortKeyList() string {
	keys := core.SortKeys()
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}
