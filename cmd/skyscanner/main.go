package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/h4ckm1n-dev/skyscanner-cli/cmd/skyscanner/commands"
	"github.com/spf13/cobra"
)

var version = "v0.3.0"

func main() {
	root := &cobra.Command{
		Use:           "skyscanner",
		Short:         "Flight search on Skyscanner through the Sky-Scrapper API",
		Long:          "Search places and flights, filter and sort itineraries, and build Skyscanner booking links. Runs offline on synthetic data in mock mode.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("mode", "", "Provider mode: mock, live, hybrid (default from config/env)")
	root.PersistentFlags().Bool("json", false, "Output as JSON")
	root.PersistentFlags().Bool("debug", false, "Log upstream calls and payload previews to stderr")

	root.AddCommand(commands.PlacesCmd())
	root.AddCommand(commands.FlightsCmd())
	root.AddCommand(commands.DeeplinksCmd())
	root.AddCommand(commands.AirportsCmd())
	root.AddCommand(commands.AirlinesCmd())
	root.AddCommand(commands.TrendsCmd())
	root.AddCommand(commands.ProvidersCmd())
	root.AddCommand(commands.DoctorCmd())
	root.AddCommand(commands.ResultsCmd())
	root.AddCommand(versionCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print skyscanner CLI version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("skyscanner " + version)
		},
	}
}
