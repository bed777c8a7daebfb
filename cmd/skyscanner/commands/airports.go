package commands

import (
	"github.com/spf13/cobra"

	"github.com/h4ckm1n-dev/skyscanner-cli/internal/core"
	"github.com/h4ckm1n-dev/skyscanner-cli/internal/logger"
)

type regionPlaces struct {
	Region string       `json:"region"`
	Places []core.Place `json:"places"`
}

func AirportsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "airports",
		Short: "List popular airports by region",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := setup(cmd)
			log := logger.Named("airports")

			var regions []regionPlaces
			for _, r := range core.PopularRegions() {
				rp := regionPlaces{Region: r.Name}
				for _, code := range r.Codes {
					p, err := a.orch.ResolvePlace(cmd.Context(), code)
					if err != nil {
						log.Warn().Str("code", code).Err(err).Msg("airport not resolved")
						continue
					}
					rp.Places = append(rp.Places, p)
				}
				regions = append(regions, rp)
			}

			return a.emit(regions, func() {
				for _, r := range regions {
					a.text.Section(r.Region)
					a.text.Places(r.Places)
				}
			})
		},
	}
}
