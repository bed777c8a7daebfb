package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/h4ckm1n-dev/skyscanner-cli/internal/adapters/mock"
	"github.com/h4ckm1n-dev/skyscanner-cli/internal/adapters/skyscrapper"
	"github.com/h4ckm1n-dev/skyscanner-cli/internal/config"
	"github.com/h4ckm1n-dev/skyscanner-cli/internal/core"
	"github.com/h4ckm1n-dev/skyscanner-cli/internal/deeplink"
	"github.com/h4ckm1n-dev/skyscanner-cli/internal/dump"
	"github.com/h4ckm1n-dev/skyscanner-cli/internal/logger"
	"github.com/h4ckm1n-dev/skyscanner-cli/internal/output"
)

func buildRouter(cfg *config.Config) *core.Router {
	router := core.NewRouter(cfg)

	router.RegisterFlight(mock.NewSkyScrapperAdapter(cfg))
	router.RegisterFlight(skyscrapper.New(cfg))

	return router
}

// app is what every command needs once flags and config are resolved
type app struct {
	cfg    *config.Config
	router *core.Router
	orch   *core.Orchestrator
	text   *output.Text
	dumps  *dump.Dir
	json   bool
}

func setup(cmd *cobra.Command) *app {
	modeFlag, _ := cmd.Flags().GetString("mode")
	debug, _ := cmd.Flags().GetBool("debug")
	asJSON, _ := cmd.Flags().GetBool("json")
	cfg := config.Load().WithMode(modeFlag).WithDebug(debug)

	opts := logger.FromEnv()
	if cfg.Debug {
		opts.Level = "debug"
	}
	logger.Init(opts)

	router := buildRouter(cfg)
	return &app{
		cfg:    cfg,
		router: router,
		orch:   core.NewOrchestrator(router, deeplink.NewSynthesizer(cfg.Deeplink, deeplink.WithPolicy(deeplink.PolicyFrom(cfg.Deeplink.Routes)))),
		text:   output.NewText(nil, cfg.API.Locale),
		dumps:  dump.New(cfg.Output.Dir),
		json:   asJSON,
	}
}

// emit prints v as JSON, or runs render for text output
func (a *app) emit(v any, render func()) error {
	if a.json {
		return output.JSON(v)
	}
	render()
	return nil
}

// fail reports err on stdout in JSON mode and returns it for the exit status
func (a *app) fail(msg string, err error) error {
	if a.json {
		output.JSONError(msg, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// note prints a side message to stderr so stdout stays parseable
func note(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
