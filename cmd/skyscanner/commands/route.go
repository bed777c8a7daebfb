package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/h4ckm1n-dev/skyscanner-cli/internal/core"
)

// routeFlags are the search parameters shared by flights and deeplinks commands
type routeFlags struct {
	from, to             string
	fromEntity, toEntity string
	depart, ret          string
	adults               int
	cabin                string
}

func (r *routeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&r.from, "from", "", "Origin code or city name (required)")
	cmd.Flags().StringVar(&r.to, "to", "", "Destination code or city name (required)")
	cmd.Flags().StringVar(&r.fromEntity, "from-entity", "", "Origin entity id, skips place lookup")
	cmd.Flags().StringVar(&r.toEntity, "to-entity", "", "Destination entity id, skips place lookup")
	cmd.Flags().StringVar(&r.depart, "depart", "", "Departure date YYYY-MM-DD or DD/MM/YYYY (required)")
	cmd.Flags().StringVar(&r.ret, "return", "", "Return date for a round trip (optional)")
	cmd.Flags().IntVar(&r.adults, "adults", 1, "Number of adults")
	cmd.Flags().StringVar(&r.cabin, "cabin", string(core.CabinEconomy), "Cabin class: economy, premiumeconomy, business, first")
}

func (r *routeFlags) missing() bool {
	return r.from == "" || r.to == "" || r.depart == ""
}

// params resolves both ends of the route and builds the search parameters
func (r *routeFlags) params(ctx context.Context, a *app) (core.SearchParams, error) {
	origin, err := resolve(ctx, a, r.from, r.fromEntity)
	if err != nil {
		return core.SearchParams{}, err
	}
	dest, err := resolve(ctx, a, r.to, r.toEntity)
	if err != nil {
		return core.SearchParams{}, err
	}

	p := core.SearchParams{
		OriginID:            origin.Code(),
		DestinationID:       dest.Code(),
		OriginEntityID:      origin.EntityID,
		DestinationEntityID: dest.EntityID,
		DepartureDate:       core.NormalizeDate(r.depart),
		Adults:              r.adults,
		Cabin:               core.Cabin(strings.ToLower(strings.TrimSpace(r.cabin))),
	}
	if r.ret != "" {
		p.ReturnDate = core.NormalizeDate(r.ret)
	}
	return p, nil
}

func resolve(ctx context.Context, a *app, input, entity string) (core.Place, error) {
	if entity != "" {
		return core.Place{SkyID: strings.ToUpper(strings.TrimSpace(input)), EntityID: entity}, nil
	}
	return a.orch.ResolvePlace(ctx, input)
}
